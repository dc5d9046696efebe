package controllers

import (
	"log"
	"net/http"
	"strings"

	"fablink/internal/livefeed"
	"fablink/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type LiveFeedController struct {
	hub *livefeed.Hub
}

func NewLiveFeedController(hub *livefeed.Hub) *LiveFeedController {
	return &LiveFeedController{hub: hub}
}

// Connect godoc
// @Summary Open the live query WebSocket
// @Description Authenticate with a token query param or Bearer header, then
// send subscribe/unsubscribe commands over the socket
// @Tags LiveFeed
// @Param token query string false "JWT"
// @Success 101 {string} string "Switching Protocols"
// @Router /livefeed [get]
func (l *LiveFeedController) Connect(c *gin.Context) {
	// Browsers cannot set headers on a WebSocket handshake, so the token
	// is also accepted as a query param.
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &livefeed.WebSocketClient{
		ConnID: uuid.NewString(),
		UserID: userID,
		Role:   claims.Role,
		Conn:   conn,
		Hub:    l.hub,
		Send:   make(chan livefeed.Snapshot, 16),
	}

	l.hub.RegisterCh <- client
	client.Run()
}
