package core

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func zerologNop() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestHub(t *testing.T, rooms ...string) *Hub {
	t.Helper()

	if len(rooms) == 0 {
		rooms = []string{"General", "Random", "Tech"}
	}
	hub := NewHub(rooms, zerologNop())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	return hub
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// mustNoEvent asserts that no event of the given kind arrives within the
// window. Other kinds are drained and ignored.
func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event of kind %v: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func join(hub *Hub, c *Client, username, room string) {
	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandJoin, Room: room, Username: username}
}

// mustJoin joins and waits for the joiner's own stats echo, so the join is
// fully applied before the test moves on.
func mustJoin(t *testing.T, hub *Hub, c *Client, username, room string) {
	t.Helper()
	join(hub, c, username, room)
	mustEvent(t, c.Events, EventRoomStats)
}

func strptr(s string) *string {
	return &s
}
