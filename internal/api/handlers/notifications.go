package handlers

import (
	"log"
	"net/http"
	"time"

	"gigflow/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// NotificationHandler streams a user's hiring events over a websocket.
type NotificationHandler struct {
	subscriber notify.Subscriber
	upgrader   websocket.Upgrader
}

// NewNotificationHandler creates a handler. A nil subscriber makes Stream
// answer 503; allowedOrigins follows the CORS rules ("*" allows any).
func NewNotificationHandler(subscriber notify.Subscriber, allowedOrigins []string) *NotificationHandler {
	return &NotificationHandler{
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// Stream godoc
// @Summary      Notification stream
// @Description  Upgrades to a websocket and pushes hired / bid_rejected events addressed to the caller as JSON text frames. The token may be passed as ?token= instead of the Authorization header.
// @Tags         notifications
// @Param        token query string false "Bearer token"
// @Success      101 {object}  notify.Event "Switching protocols"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      503 {object}  map[string]string "Streaming not configured"
// @Router       /notifications/ws [get]
// @Security     BearerAuth
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if h.subscriber == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": notify.ErrNoSubscriber.Error()})
		return
	}

	// Subscribe before upgrading so a broker failure is still a plain HTTP error.
	sub, err := h.subscriber.Subscribe(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Notifications: failed to subscribe user %s: %v", userID, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to open notification stream"})
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		log.Printf("Notifications: websocket upgrade failed for user %s: %v", userID, err)
		return
	}
	defer conn.Close()
	log.Printf("Notifications: user %s connected", userID)

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream ended"))
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("Notifications: write to user %s failed: %v", userID, err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			log.Printf("Notifications: user %s disconnected", userID)
			return
		}
	}
}

// readPump discards client frames and closes done once the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
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
}
