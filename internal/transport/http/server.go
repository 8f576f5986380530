package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sobachat/sobachat-server/internal/config"
	"github.com/sobachat/sobachat-server/internal/core"
	"github.com/sobachat/sobachat-server/internal/session"
	"github.com/sobachat/sobachat-server/internal/uploads"
)

// ErrorResponse is the JSON body for request/response errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer builds the HTTP server: the websocket endpoint, the join/session
// hand-off, the avatar upload collaborator, and the stats API.
func NewServer(hub *core.Hub, sessions *session.Manager, ups *uploads.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	sessionHandlers := NewSessionHandlers(sessions, hub, logger)
	uploadHandlers := NewUploadHandlers(ups, cfg.UploadMaxBytes, logger)
	statsHandlers := NewStatsHandlers(hub, logger)

	api := router.Group("/api")
	{
		api.POST("/session", sessionHandlers.Create)
		api.GET("/session", sessionHandlers.Get)
		api.DELETE("/session", sessionHandlers.Delete)
		api.POST("/upload", uploadHandlers.Upload)
		api.GET("/rooms", statsHandlers.Rooms)
		api.GET("/stats", statsHandlers.Stats)
	}

	// Stored avatars are served from the same prefix the core validates.
	router.Static(core.AvatarURLPrefix, ups.Dir())

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
