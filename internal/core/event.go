package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventSystem is a room-scoped notice ("X joined the room").
	EventSystem EventKind = iota
	// EventChatMessage carries a chat message with the sender's profile snapshot.
	EventChatMessage
	// EventUserList is the full membership snapshot for one room.
	EventUserList
	// EventRoomStats maps room name to participant count.
	EventRoomStats
)

// Event is sent to clients to describe what happened in the system.
// Participant data is copied at emit time so later profile mutations
// cannot tear an event already in flight.
type Event struct {
	Kind  EventKind
	Room  string
	Text  string        // notice text or chat message body
	From  Participant   // sender snapshot, chat messages only
	Users []Participant // membership snapshot, user lists only
	Stats map[string]int
}
