package routes

import (
	"companion/cmd/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/net/websocket"
)

// lifecycleEvent is the only payload the realtime channel carries.
type lifecycleEvent struct {
	Type string `json:"type"`
}

type DefaultRealtimeRoute struct {
	Metrics *metrics.Metrics
}

func NewRealtimeDefault(m *metrics.Metrics) *DefaultRealtimeRoute {
	return &DefaultRealtimeRoute{Metrics: m}
}

// Socket holds the connection open and logs its lifecycle. Anything the
// client sends is read and dropped.
func (r *DefaultRealtimeRoute) Socket(c echo.Context) error {
	remote := c.RealIP()
	websocket.Handler(func(ws *websocket.Conn) {
		defer ws.Close()

		log.Infof("client connected: %s", remote)
		r.Metrics.SocketOpened()
		defer func() {
			r.Metrics.SocketClosed()
			log.Infof("client disconnected: %s", remote)
		}()

		if err := websocket.JSON.Send(ws, lifecycleEvent{Type: "connected"}); err != nil {
			return
		}
		for {
			var discard string
			if err := websocket.Message.Receive(ws, &discard); err != nil {
				return
			}
		}
	}).ServeHTTP(c.Response(), c.Request())
	return nil
}
