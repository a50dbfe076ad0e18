package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"glow/internal/domain"
	"glow/internal/service"
)

// Event — событие, доставляемое подключённым клиентам: новое сообщение,
// отметка о прочтении, смена статуса записи.
type Event struct {
	Type      string      `json:"type"`
	From      int64       `json:"from,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

const (
	EventNewMessage    = "message.new"
	EventMessagesRead  = "message.read"
	EventBookingStatus = "booking.status"
)

type Client struct {
	UserID int64
	Role   domain.UserRole
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

// Hub держит активные соединения по ID пользователя и рассылает события.
// На пользователя хранится одно соединение, новое вытесняет старое.
type Hub struct {
	clients    map[int64]*Client
	register   chan *Client
	unregister chan *Client

	logger   *zap.Logger
	services *service.Services

	mutex sync.RWMutex
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

func NewHub(logger *zap.Logger, services *service.Services) *Hub {
	return &Hub{
		clients:    make(map[int64]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		services:   services,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			if old, ok := h.clients[client.UserID]; ok {
				close(old.Send)
			}
			h.clients[client.UserID] = client
			h.mutex.Unlock()
			h.logger.Info("клиент подключился",
				zap.Int64("userId", client.UserID),
				zap.String("role", string(client.Role)))

		case client := <-h.unregister:
			h.mutex.Lock()
			if current, ok := h.clients[client.UserID]; ok && current == client {
				delete(h.clients, client.UserID)
				close(client.Send)
			}
			h.mutex.Unlock()
			h.logger.Info("клиент отключился", zap.Int64("userId", client.UserID))
		}
	}
}

// Notify отправляет событие пользователю, если тот подключён. Неподключённый
// получатель не ошибка: события доставляются только онлайн-клиентам.
func (h *Hub) Notify(userID int64, event Event) {
	event.Timestamp = time.Now().Format(time.RFC3339)

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("ошибка сериализации события", zap.Error(err))
		return
	}

	h.mutex.RLock()
	client, ok := h.clients[userID]
	h.mutex.RUnlock()
	if !ok {
		return
	}

	select {
	case client.Send <- data:
	default:
		h.logger.Warn("канал клиента переполнен, событие отброшено",
			zap.Int64("userId", userID),
			zap.String("type", event.Type))
	}
}

func (h *Hub) IsUserConnected(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.clients[userID]
	return exists
}

// HandleWebSocket апгрейдит соединение. Токен передаётся query-параметром,
// заголовки при websocket-хендшейке с мобильного клиента недоступны.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется токен"})
		return
	}

	userID, role, err := h.services.Auth.ParseToken(c.Request.Context(), tokenStr)
	if err != nil {
		h.logger.Warn("недействительный токен при подключении", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "недействительный токен"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("ошибка апгрейда соединения", zap.Error(err))
		return
	}

	client := &Client{
		UserID: userID,
		Role:   role,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		Hub:    h,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(64 * 1024)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Входящие кадры служат только keepalive, вся запись идёт через REST.
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("ошибка чтения websocket", zap.Int64("userId", c.UserID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.logger.Warn("ошибка записи в websocket",
					zap.Int64("userId", c.UserID),
					zap.Error(err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
