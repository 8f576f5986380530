package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Hub owns every room and the connection-to-room index. All presence
// mutations are serialized by the single goroutine inside Run, so no event
// handler ever observes a torn intermediate state and a connection can be
// member of at most one room at any instant.
type Hub struct {
	log *zerolog.Logger

	rooms     map[string]*Room
	roomOrder []string
	clients   map[string]*Client
	memberOf  map[string]string // connection id -> room name

	inbox      chan envelope
	register   chan *Client
	unregister chan *Client
	statsReq   chan chan map[string]int
	stopped    chan struct{}
}

type envelope struct {
	client *Client
	cmd    *Command
}

// NewHub constructs a hub over a fixed set of rooms. Room order is kept as
// given so statistics output is deterministic.
func NewHub(roomNames []string, logger *zerolog.Logger) *Hub {
	h := &Hub{
		log:        logger,
		rooms:      make(map[string]*Room, len(roomNames)),
		roomOrder:  make([]string, 0, len(roomNames)),
		clients:    make(map[string]*Client),
		memberOf:   make(map[string]string),
		inbox:      make(chan envelope, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		statsReq:   make(chan chan map[string]int),
		stopped:    make(chan struct{}),
	}
	for _, name := range roomNames {
		if _, dup := h.rooms[name]; dup {
			continue
		}
		h.rooms[name] = NewRoom(name)
		h.roomOrder = append(h.roomOrder, name)
	}
	return h
}

// RoomExists reports whether name is in the configured room set.
func (h *Hub) RoomExists(name string) bool {
	_, ok := h.rooms[name]
	return ok
}

// ListRooms returns room names in configuration order.
func (h *Hub) ListRooms() []string {
	out := make([]string, len(h.roomOrder))
	copy(out, h.roomOrder)
	return out
}

// RegisterClient hands a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.stopped:
	}
}

// UnregisterClient removes a connection, cleaning up whatever room it was
// in. Used for both explicit shutdown and transport-level disconnects.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

// Stats returns the current occupancy snapshot. The request is answered by
// the Run loop, so the counts never reflect a half-applied mutation.
func (h *Hub) Stats(ctx context.Context) (map[string]int, error) {
	reply := make(chan map[string]int, 1)
	select {
	case h.statsReq <- reply:
	case <-h.stopped:
		return nil, fmt.Errorf("hub stopped")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case stats := <-reply:
		return stats, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run processes registrations, commands, and queries until ctx is done.
// It must be running for any other hub method to make progress.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.dropClient(c)
		case env := <-h.inbox:
			h.handle(env.client, env.cmd)
		case reply := <-h.statsReq:
			reply <- h.countsByRoom()
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.clients[c.ID] = c
	h.log.Debug().Str("conn_id", c.ID).Msg("client registered")

	// Pump the client's commands into the shared inbox. Exits when the
	// transport closes the command channel or the hub stops.
	go func() {
		for cmd := range c.Commands {
			select {
			case h.inbox <- envelope{client: c, cmd: cmd}:
			case <-h.stopped:
				return
			}
		}
	}()
}

// dropClient implements the transport-initiated disconnect transition: the
// reverse index locates the room without a scan, the entry is removed, and
// the room is told exactly once.
func (h *Hub) dropClient(c *Client) {
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)

	if roomName, ok := h.memberOf[c.ID]; ok {
		delete(h.memberOf, c.ID)
		room := h.rooms[roomName]
		if p, removed := room.Remove(c.ID); removed {
			h.notifyLeft(room, p)
			h.broadcastAll(h.statsEvent())
		}
	}

	// The hub is the only writer on Events once registered, so closing
	// here cannot race a broadcast.
	close(c.Events)
	h.log.Debug().Str("conn_id", c.ID).Msg("client unregistered")
}

func (h *Hub) handle(c *Client, cmd *Command) {
	if _, ok := h.clients[c.ID]; !ok {
		// Command raced the disconnect; drop it.
		return
	}

	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(c, cmd)
	case CommandUpdateProfile:
		h.handleUpdateProfile(c, cmd)
	case CommandChatMessage:
		h.handleChatMessage(c, cmd)
	case CommandSwitchRoom:
		h.handleSwitchRoom(c, cmd)
	case CommandLeaveRoom:
		h.handleLeave(c, cmd)
	case CommandRoomStats:
		h.send(c, h.statsEvent())
	default:
		h.log.Warn().Int("kind", int(cmd.Kind)).Msg("unknown command kind")
	}
}

func (h *Hub) handleJoin(c *Client, cmd *Command) {
	username := ValidateDisplayName(cmd.Username, "")
	if username == "" {
		return
	}
	room, ok := h.rooms[cmd.Room]
	if !ok {
		return
	}
	if _, already := h.memberOf[c.ID]; already {
		// Must be absent everywhere before joining.
		return
	}

	p := NewParticipant(c.ID, username)
	room.Add(p)
	h.memberOf[c.ID] = room.Name

	h.log.Info().Str("conn_id", c.ID).Str("room", room.Name).Str("username", username).Msg("participant joined")
	h.notifyJoined(room, p)
	h.broadcastAll(h.statsEvent())
}

func (h *Hub) handleUpdateProfile(c *Client, cmd *Command) {
	room, ok := h.memberRoom(c, cmd.Room)
	if !ok {
		return
	}
	p, ok := room.Get(c.ID)
	if !ok {
		return
	}
	p.Apply(cmd.Profile)
	h.broadcastRoom(room, h.userListEvent(room))
}

func (h *Hub) handleChatMessage(c *Client, cmd *Command) {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return
	}
	room, ok := h.memberRoom(c, cmd.Room)
	if !ok {
		return
	}
	p, ok := room.Get(c.ID)
	if !ok {
		return
	}
	h.broadcastRoom(room, &Event{
		Kind: EventChatMessage,
		Room: room.Name,
		Text: text,
		From: *p,
	})
}

func (h *Hub) handleSwitchRoom(c *Client, cmd *Command) {
	oldRoom, ok := h.memberRoom(c, cmd.OldRoom)
	if !ok {
		return
	}
	newRoom, ok := h.rooms[cmd.NewRoom]
	if !ok || newRoom == oldRoom {
		return
	}

	p, removed := oldRoom.Remove(c.ID)
	if !removed {
		return
	}
	newRoom.Add(p)
	h.memberOf[c.ID] = newRoom.Name

	h.log.Info().Str("conn_id", c.ID).Str("from", oldRoom.Name).Str("to", newRoom.Name).Msg("participant switched room")
	h.notifyLeft(oldRoom, p)
	h.notifyJoined(newRoom, p)
	h.broadcastAll(h.statsEvent())
}

func (h *Hub) handleLeave(c *Client, cmd *Command) {
	room, ok := h.memberRoom(c, cmd.Room)
	if !ok {
		return
	}
	p, removed := room.Remove(c.ID)
	if !removed {
		return
	}
	delete(h.memberOf, c.ID)

	h.log.Info().Str("conn_id", c.ID).Str("room", room.Name).Msg("participant left")
	h.notifyLeft(room, p)
	h.broadcastAll(h.statsEvent())
}

// memberRoom resolves roomName, requiring that c is currently its member.
// Any mismatch is the benign race the edge-case policy ignores.
func (h *Hub) memberRoom(c *Client, roomName string) (*Room, bool) {
	room, ok := h.rooms[roomName]
	if !ok {
		return nil, false
	}
	if h.memberOf[c.ID] != roomName {
		return nil, false
	}
	return room, true
}

// Broadcast order within one triggering event is fixed: notice first, then
// the user list, then (from the caller) stats.

func (h *Hub) notifyJoined(room *Room, p *Participant) {
	h.broadcastRoom(room, &Event{
		Kind: EventSystem,
		Room: room.Name,
		Text: fmt.Sprintf("%s joined the room.", p.Username),
	})
	h.broadcastRoom(room, h.userListEvent(room))
}

func (h *Hub) notifyLeft(room *Room, p *Participant) {
	h.broadcastRoom(room, &Event{
		Kind: EventSystem,
		Room: room.Name,
		Text: fmt.Sprintf("%s left the room.", p.Username),
	})
	h.broadcastRoom(room, h.userListEvent(room))
}

func (h *Hub) userListEvent(room *Room) *Event {
	return &Event{
		Kind: EventUserList,
		Room: room.Name,
		Users: lo.Map(room.Participants(), func(p *Participant, _ int) Participant {
			return *p
		}),
	}
}

func (h *Hub) statsEvent() *Event {
	return &Event{
		Kind:  EventRoomStats,
		Stats: h.countsByRoom(),
	}
}

func (h *Hub) countsByRoom() map[string]int {
	counts := make(map[string]int, len(h.roomOrder))
	for _, name := range h.roomOrder {
		counts[name] = h.rooms[name].Size()
	}
	return counts
}

func (h *Hub) broadcastRoom(room *Room, ev *Event) {
	for connID := range room.participants {
		if c, ok := h.clients[connID]; ok {
			h.send(c, ev)
		}
	}
}

func (h *Hub) broadcastAll(ev *Event) {
	for _, c := range h.clients {
		h.send(c, ev)
	}
}

func (h *Hub) send(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Slow consumer; drop rather than stall the mutation path.
		h.log.Warn().Str("conn_id", c.ID).Int("kind", int(ev.Kind)).Msg("event dropped for slow consumer")
	}
}
