package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin              = "join"
	InboundTypeUpdateProfile     = "update_profile"
	InboundTypeChatMessage       = "chat_message"
	InboundTypeSwitchRoom        = "switch_room"
	InboundTypeDisconnectRequest = "disconnect_request"
	InboundTypeGetRoomStats      = "get_room_stats"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventSystem      = "system"
	EventChatMessage = "chat_message"
	EventUserList    = "user_list"
	EventRoomStats   = "room_stats"
)

// JoinData requests entry into a room under a display name.
type JoinData struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// UpdateProfileData carries optional profile changes. Absent fields are
// left untouched, which is why these are pointers.
type UpdateProfileData struct {
	Room        string  `json:"room"`
	Username    *string `json:"username,omitempty"`
	NameColor   *string `json:"nameColor,omitempty"`
	BubbleColor *string `json:"bubbleColor,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
}

// ChatMessageData is a chat message from the client.
type ChatMessageData struct {
	Room string `json:"room"`
	Msg  string `json:"msg"`
}

// SwitchRoomData moves the sender between rooms.
type SwitchRoomData struct {
	OldRoom string `json:"oldRoom"`
	NewRoom string `json:"newRoom"`
}

// DisconnectRequestData is an explicit leave, distinct from a transport drop.
type DisconnectRequestData struct {
	Room string `json:"room"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// UserProfile is the profile snapshot embedded in outbound events.
type UserProfile struct {
	SID         string `json:"sid"`
	Username    string `json:"username"`
	NameColor   string `json:"nameColor"`
	BubbleColor string `json:"bubbleColor"`
	AvatarURL   string `json:"avatarUrl"`
}

// EventSystemData is a room-scoped notice.
type EventSystemData struct {
	Room string `json:"room"`
	Msg  string `json:"msg"`
}

// EventChatMessageData carries a chat message with the sender's profile.
type EventChatMessageData struct {
	SID  string      `json:"sid"`
	Room string      `json:"room"`
	Msg  string      `json:"msg"`
	User UserProfile `json:"user"`
}

// EventUserListData is the membership snapshot for one room.
type EventUserListData struct {
	Room  string        `json:"room"`
	Users []UserProfile `json:"users"`
}

// EventRoomStatsData maps room name to participant count.
type EventRoomStatsData struct {
	Stats map[string]int `json:"stats"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
