package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sobachat/sobachat-server/internal/core"
	"github.com/sobachat/sobachat-server/internal/proto"
)

// StatsHandlers exposes the occupancy snapshot to the page layer.
type StatsHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewStatsHandlers creates a new stats handlers instance.
func NewStatsHandlers(hub *core.Hub, logger *zerolog.Logger) *StatsHandlers {
	return &StatsHandlers{hub: hub, log: logger}
}

// RoomsResponse lists joinable rooms in configuration order.
type RoomsResponse struct {
	Rooms []string `json:"rooms"`
}

// Rooms returns the configured room set, for the join form.
// GET /api/rooms
func (h *StatsHandlers) Rooms(c *gin.Context) {
	c.JSON(http.StatusOK, RoomsResponse{Rooms: h.hub.ListRooms()})
}

// Stats returns room occupancy counts.
// GET /api/stats
func (h *StatsHandlers) Stats(c *gin.Context) {
	stats, err := h.hub.Stats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read room stats")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, proto.EventRoomStatsData{Stats: stats})
}
