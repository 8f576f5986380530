package core

import "sort"

// Room groups the participants currently present in one named channel.
// Entries are keyed by connection id.
type Room struct {
	Name         string
	participants map[string]*Participant
}

// NewRoom constructs a room with no participants.
func NewRoom(name string) *Room {
	return &Room{
		Name:         name,
		participants: make(map[string]*Participant),
	}
}

// Add inserts or overwrites the entry for the participant's connection id.
func (r *Room) Add(p *Participant) {
	r.participants[p.ConnID] = p
}

// Remove deletes and returns the entry for connID if present. A miss is an
// expected case (the connection already moved away), not an error.
func (r *Room) Remove(connID string) (*Participant, bool) {
	p, ok := r.participants[connID]
	if !ok {
		return nil, false
	}
	delete(r.participants, connID)
	return p, true
}

// Get returns the entry for connID if present.
func (r *Room) Get(connID string) (*Participant, bool) {
	p, ok := r.participants[connID]
	return p, ok
}

// Size returns the number of participants in the room.
func (r *Room) Size() int {
	return len(r.participants)
}

// Participants returns the room's members ordered by username, then
// connection id for ties, so listings are stable.
func (r *Room) Participants() []*Participant {
	out := make([]*Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Username != out[j].Username {
			return out[i].Username < out[j].Username
		}
		return out[i].ConnID < out[j].ConnID
	})
	return out
}
