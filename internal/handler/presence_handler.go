package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lanexam/lanexam-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// PresenceHandler streams login/logout events to connected teacher
// dashboards over WebSocket, fanned out through Redis Pub/Sub so every
// server instance sees every event.
type PresenceHandler struct {
	cfg      *config.Config
	rdb      *redis.Client
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewPresenceHandler creates a new PresenceHandler.
func NewPresenceHandler(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *PresenceHandler {
	h := &PresenceHandler{
		cfg: cfg,
		rdb: rdb,
		log: log.With().Str("component", "presence_handler").Logger(),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// LAN deployments typically run without a configured origin list; an empty
// list means any origin is accepted.
func (h *PresenceHandler) checkOrigin(r *http.Request) bool {
	if len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range h.cfg.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// Stream godoc
// GET /ws/v1/presence
// Upgrades to WebSocket and forwards presence events until the client
// disconnects. Teacher only; auth runs before the upgrade via ?token=.
func (h *PresenceHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	sub := h.rdb.Subscribe(ctx, config.CacheKey.PresenceChannel())
	defer sub.Close()

	// Drain client frames so pings and close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
