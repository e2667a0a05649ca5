package controllers

import (
	"net/http"
	"time"

	"github.com/souramoo/calorie-counter-vibe/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const pingInterval = 25 * time.Second

type RealtimeController struct {
	RT *services.RealtimeHub
}

func NewRealtimeController(rt *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{RT: rt}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // the JWT is the access check
}

// EntriesWS streams the caller's entry events until the socket closes.
func (rc *RealtimeController) EntriesWS(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := services.NewWSClient(uid, conn)
	rc.RT.Register(cl)

	done := make(chan struct{})
	defer close(done)

	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.Write(websocket.PingMessage, nil); err != nil {
					rc.RT.Unregister(cl)
					return
				}
			}
		}
	}()

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.RT.Unregister(cl)
			return
		}
	}
}
