package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin enters a room under a display name.
	CommandJoin CommandKind = iota
	// CommandUpdateProfile changes profile fields for the room entry.
	CommandUpdateProfile
	// CommandChatMessage delivers a chat message to room participants.
	CommandChatMessage
	// CommandSwitchRoom moves the participant from one room to another.
	CommandSwitchRoom
	// CommandLeaveRoom is an explicit leave, distinct from a transport drop.
	CommandLeaveRoom
	// CommandRoomStats requests an occupancy snapshot for the caller only.
	CommandRoomStats
)

// Command represents an action requested by a client. Only the fields
// relevant to the kind are set.
type Command struct {
	Kind     CommandKind
	Room     string
	OldRoom  string // switch only
	NewRoom  string // switch only
	Username string // join only
	Text     string // chat only
	Profile  ProfileUpdate
}
