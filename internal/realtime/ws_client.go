package realtime

import (
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// EventHandler 处理一条入站事件帧
type EventHandler func(ctx context.Context, c *WSClient, evt InboundEvent)

// WSClient 实现 realtime.Client 的 WebSocket 连接
type WSClient struct {
	connID  string
	conn    *websocket.Conn
	hub     *Hub
	send    chan OutboundEvent
	handler EventHandler
}

func NewWSClient(conn *websocket.Conn, hub *Hub, sendBuffer int, handler EventHandler) *WSClient {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	return &WSClient{
		connID:  uuid.NewString(),
		conn:    conn,
		hub:     hub,
		send:    make(chan OutboundEvent, sendBuffer),
		handler: handler,
	}
}

func (c *WSClient) GetConnID() string { return c.connID }

func (c *WSClient) GetSendChannel() chan<- OutboundEvent { return c.send }

// Run 启动读写泵
func (c *WSClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close 关闭待发队列，writePump 随之退出
func (c *WSClient) Close() {
	close(c.send)
}

func (c *WSClient) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error("websocket read failed", "conn", c.connID, "err", err)
			}
			break
		}

		var evt InboundEvent
		if err := json.Unmarshal(message, &evt); err != nil {
			// 非法帧直接跳过，不中断连接
			log.Warn("websocket frame decode failed", "conn", c.connID, "err", err)
			continue
		}

		c.handler(context.Background(), c, evt)
	}
}

func (c *WSClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case evt, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(evt)
			if err != nil {
				log.Error("websocket frame encode failed", "conn", c.connID, "err", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

			// 队列里还有积压时继续写，减少系统调用
			n := len(c.send)
			for i := 0; i < n; i++ {
				next := <-c.send
				extra, err := json.Marshal(next)
				if err != nil {
					continue
				}
				if err := c.conn.WriteMessage(websocket.TextMessage, extra); err != nil {
					return
				}
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
