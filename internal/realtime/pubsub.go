package realtime

import (
	"Ripple/internal/pkg/redis"
	"context"
	log "log/slog"

	"github.com/goccy/go-json"
)

// Emitter 是服务层唯一的事件发射出口。
// 所有实时推送都先经 Redis 总线再回到各实例的 Hub，
// 多实例部署时无需额外协调。
type Emitter interface {
	// EmitToRooms 向目标房间集合发射一个事件
	EmitToRooms(ctx context.Context, rooms []string, event string, data interface{}) error
	// Broadcast 向全部在线连接发射一个事件
	Broadcast(ctx context.Context, event string, data interface{}) error
}

// RedisEmitter 把投递指令发布到共享频道
type RedisEmitter struct {
	channel string
}

func NewRedisEmitter(channel string) *RedisEmitter {
	return &RedisEmitter{channel: channel}
}

func (e *RedisEmitter) EmitToRooms(ctx context.Context, rooms []string, event string, data interface{}) error {
	if len(rooms) == 0 {
		return nil
	}
	return e.publish(ctx, Envelope{Rooms: rooms, Event: event}, data)
}

func (e *RedisEmitter) Broadcast(ctx context.Context, event string, data interface{}) error {
	return e.publish(ctx, Envelope{Broadcast: true, Event: event}, data)
}

func (e *RedisEmitter) publish(ctx context.Context, env Envelope, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	env.Data = raw

	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return redis.Publish(ctx, e.channel, payload)
}

// StartEventListener 订阅共享频道，把收到的投递指令交给 Hub。
// 在独立 Goroutine 中运行直到 ctx 取消。
func StartEventListener(ctx context.Context, channel string, hub *Hub) {
	go func() {
		pubsub := redis.Subscribe(ctx, channel)
		defer func() { _ = pubsub.Close() }()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var env Envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					log.Error("event envelope decode failed", "err", err)
					continue
				}
				hub.Deliver(env)
			}
		}
	}()
}
