package notify

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/polkiloo/backoffice/internal/domain/model"
)

// TokenParser resolves the actor behind a bearer token.
type TokenParser interface {
	ParseToken(token string) (model.Actor, error)
}

// Handler upgrades authenticated requests to a notification stream. Browsers
// cannot set headers on websocket requests, so the token travels in the
// "token" query parameter.
func (h *Hub) Handler(tokens TokenParser) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		actor, err := tokens.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !actor.Can(model.CapOrders) && !actor.Can(model.CapPipelines) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		cl := &client{hub: h, conn: conn, send: make(chan []byte, clientBuffer), caps: actor.Capabilities}
		if !h.attach(cl) {
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			_ = conn.Close()
			return
		}
		go cl.writePump()
		go cl.readPump()
	}
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if len(h.origins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(h.origins, origin)
}
