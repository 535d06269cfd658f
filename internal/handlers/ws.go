package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/dil-bolahlautner/automatic-poll-generator/internal/services"
	"github.com/dil-bolahlautner/automatic-poll-generator/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	estimation  *services.EstimationService
	authService *services.AuthService
	userService *services.UserService
}

func NewWSHandler(estimation *services.EstimationService, authService *services.AuthService, userService *services.UserService) *WSHandler {
	return &WSHandler{estimation: estimation, authService: authService, userService: userService}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleEstimation godoc
// @Summary      WebSocket endpoint for estimation sessions
// @Description  Connect with userId+name query params, or a JWT token to derive identity
// @Tags         websocket
// @Param        userId query string false "Participant identity"
// @Param        name query string false "Display name"
// @Param        token query string false "JWT issued by /auth/login"
// @Router       /ws/estimation [get]
func (h *WSHandler) HandleEstimation(c *gin.Context) {
	userID := c.Query("userId")
	userName := c.DefaultQuery("name", "Anonymous")

	// A token takes precedence: the identity then comes from the user row
	// the token was issued for, not from the query string.
	if token := c.Query("token"); token != "" {
		uid, err := h.authService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
			return
		}
		user, err := h.userService.GetByID(uid)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unknown user"})
			return
		}
		userID = strconv.FormatUint(uint64(user.ID), 10)
		if c.Query("name") == "" {
			userName = user.Email
		}
	}

	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "userId required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := ws.NewClient(conn)
	go client.WritePump()
	h.estimation.Registry().Register(userID, client)

	// Connection loss is the only cancellation signal: the reconciler runs
	// exactly once per connection, however the read loop ends. A connection
	// that was replaced by a reconnect skips reconciliation so the stale
	// socket cannot evict the identity's live replacement.
	defer func() {
		if h.estimation.Registry().Remove(userID, client) {
			h.estimation.HandleDisconnect(userID)
		}
		client.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		h.estimation.HandleMessage(userID, userName, data)
	}
}
