package service_test

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/realtime"
	"Ripple/internal/service"
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// hubEmitter 把发射直接投进本地 Hub，等价于单实例下
// Redis 总线的发布-回环路径。
type hubEmitter struct {
	hub *realtime.Hub
}

func (e *hubEmitter) EmitToRooms(ctx context.Context, rooms []string, event string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	e.hub.Deliver(realtime.Envelope{Rooms: rooms, Event: event, Data: raw})
	return nil
}

func (e *hubEmitter) Broadcast(ctx context.Context, event string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	e.hub.Deliver(realtime.Envelope{Broadcast: true, Event: event, Data: raw})
	return nil
}

// hubConn 只收不发的连接替身
type hubConn struct {
	connID string
	recv   chan realtime.OutboundEvent
}

func newHubConn(connID string) *hubConn {
	return &hubConn{connID: connID, recv: make(chan realtime.OutboundEvent, 8)}
}

func (c *hubConn) GetConnID() string { return c.connID }

func (c *hubConn) GetSendChannel() chan<- realtime.OutboundEvent { return c.recv }

func (c *hubConn) Run() {}

func (c *hubConn) Close() {}

// 两位参与者各自用原始拼写声明身份后，一方按任意顺序的
// 会话 ID 发消息，双方各收到一次携带规范会话 ID 的推送。
func TestSendMessage_BothPartiesReceiveCanonicalPayload(t *testing.T) {
	hub := realtime.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	sender := newHubConn("conn-sender")
	receiver := newHubConn("conn-receiver")
	hub.Register(sender)
	hub.Register(receiver)
	hub.RegisterIdentity(sender, "+91 91234 56789")
	hub.RegisterIdentity(receiver, "9876543210")
	time.Sleep(100 * time.Millisecond)

	messageRepo := new(MockMessageRepo)
	messageRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	svc := service.NewChatService(messageRepo, new(MockGroupRepo), &hubEmitter{hub: hub})

	res, err := svc.SendMessage(ctx, &dto.SendMessageReq{
		ChatID: "9876543210_9123456789",
		Sender: "+91 91234 56789",
		Text:   "chai later?",
	})
	assert.NoError(t, err)
	assert.Equal(t, "9123456789_9876543210", res.ChatID)
	time.Sleep(100 * time.Millisecond)

	for _, conn := range []*hubConn{sender, receiver} {
		if !assert.Equalf(t, 1, len(conn.recv), "conn %s delivery count", conn.connID) {
			continue
		}
		evt := <-conn.recv
		assert.Equal(t, realtime.EventReceiveMessage, evt.Event)

		raw, ok := evt.Data.(json.RawMessage)
		if !assert.True(t, ok) {
			continue
		}
		var msg dto.MessageDTO
		assert.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "9123456789_9876543210", msg.ChatID)
		assert.Equal(t, "chai later?", msg.Text)
		assert.Equal(t, "+91 91234 56789", msg.Sender)
	}
}
