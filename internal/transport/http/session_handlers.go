package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sobachat/sobachat-server/internal/core"
	"github.com/sobachat/sobachat-server/internal/session"
)

const sessionCookie = "sobachat_session"

// SessionHandlers implements the join-form hand-off: the page layer posts
// the chosen username and room here and gets back a signed token for the
// chat surface.
type SessionHandlers struct {
	sessions *session.Manager
	hub      *core.Hub
	log      *zerolog.Logger
}

// NewSessionHandlers creates a new session handlers instance.
func NewSessionHandlers(sessions *session.Manager, hub *core.Hub, logger *zerolog.Logger) *SessionHandlers {
	return &SessionHandlers{
		sessions: sessions,
		hub:      hub,
		log:      logger,
	}
}

// JoinRequest is the join form submission.
type JoinRequest struct {
	Username string `form:"username" json:"username"`
	Room     string `form:"room" json:"room"`
}

// SessionResponse is returned on successful join and on session lookup.
type SessionResponse struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username"`
	Room     string `json:"room"`
}

// Create handles the join form.
// POST /api/session
func (h *SessionHandlers) Create(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	username := strings.TrimSpace(req.Username)
	room := strings.TrimSpace(req.Room)
	if username == "" || room == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username and room are required"})
		return
	}
	if !h.hub.RoomExists(room) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown room"})
		return
	}

	token, err := h.sessions.Issue(username, room)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to issue session token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusCreated, SessionResponse{
		Token:    token,
		Username: username,
		Room:     room,
	})
}

// Get returns the username and room for a presented token.
// GET /api/session
func (h *SessionHandlers) Get(c *gin.Context) {
	token := tokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no session"})
		return
	}

	claims, err := h.sessions.Verify(token)
	if err != nil {
		h.log.Debug().Err(err).Msg("invalid session token")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid session"})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Username: claims.Username,
		Room:     claims.Room,
	})
}

// Delete clears the session cookie (the original "leave" page).
// DELETE /api/session
func (h *SessionHandlers) Delete(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
