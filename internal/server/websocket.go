package server

import (
	"time"

	"github.com/alkime/teeshot/internal/images"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	// watchBuffer is how many status events a slow client may lag behind
	// before events are dropped for it.
	watchBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// statusMessage is one frame of the image status stream. The first frame is
// a snapshot of every known prompt; later frames carry single changes.
type statusMessage struct {
	Type     string          `json:"type"`
	Prompt   string          `json:"prompt,omitempty"`
	Status   *images.Status  `json:"status,omitempty"`
	Statuses images.Statuses `json:"statuses,omitempty"`
}

func (s *Server) handleWatch(c *gin.Context) {
	sess := currentSession(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	events := make(chan images.Event, watchBuffer)
	stop, err := sess.Watch(events)
	if err != nil {
		s.logger.Error("Failed to watch session", "session", sess.ID, "error", err)
		return
	}
	defer stop()

	log := s.logger.With("session", sess.ID, "remote", c.ClientIP())
	log.Debug("WebSocket client connected")

	// Reads only serve to notice the client going away and to keep the
	// pong deadline moving.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(msg statusMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg)
	}

	if err := write(statusMessage{Type: "snapshot", Statuses: sess.Images().Snapshot()}); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			log.Debug("WebSocket client disconnected")
			return
		case <-s.background.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case ev := <-events:
			st := ev.Status
			if err := write(statusMessage{Type: "status", Prompt: ev.Prompt, Status: &st}); err != nil {
				log.Debug("WebSocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
