package core

import "sync"

// Client is one live connection as seen by the core layer. The transport
// writes commands and drains events; the hub is the only other party on
// either channel.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	closeOnce sync.Once
}

// NewClient constructs a client with initialized channels. The events
// buffer absorbs broadcast bursts; a full buffer means the consumer is
// stalled and events are dropped rather than blocking the hub.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
	}
}

// Close stops the command stream. Safe to call more than once. Only the
// transport may call it, being the sole writer on Commands.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.Commands)
	})
}
