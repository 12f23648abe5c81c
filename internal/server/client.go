package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/engine"
	"github.com/tripstych/elemental/pkg/api"
	"github.com/tripstych/elemental/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и сессией. Команды обрабатываются
// строго по одной: следующая читается только после того, как ответ на
// предыдущую ушёл в канал отправки.
type Client struct {
	Session *engine.Session
	Conn    *websocket.Conn
	Send    chan *api.ServerResponse
}

func NewClient(session *engine.Session, conn *websocket.Conn) *Client {
	return &Client{
		Session: session,
		Conn:    conn,
		Send:    make(chan *api.ServerResponse, 16),
	}
}

// readPump читает команды клиента и прогоняет их через сессию.
func (c *Client) readPump() {
	defer func() {
		close(c.Send)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
		logger.Log.WithField("session_id", c.Session.ID).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	logger.Log.WithFields(logrus.Fields{
		"component":  "ws",
		"session_id": c.Session.ID,
	}).Info("Client connected")

	// Первый кадр - актуальный снимок, чтобы клиенту было что рисовать.
	c.Send <- c.Session.Snapshot()

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Error("WS error")
			}
			break
		}
		c.Send <- c.execute(cmd)
	}
}

// execute разрешает одну команду. Игровой отказ превращается в
// ERROR-кадр: соединение живёт дальше, сессия не изменилась.
func (c *Client) execute(cmd api.ClientCommand) *api.ServerResponse {
	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		return errorResponse(c.Session.ID, domain.Validation("Неизвестное действие %q.", cmd.Action))
	}

	resp, err := c.Session.Perform(action, cmd.Payload)
	if err != nil {
		return errorResponse(c.Session.ID, err)
	}
	return resp
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
