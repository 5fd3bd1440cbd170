package realtime

import (
	"Ripple/internal/pkg/identity"
	"context"
	log "log/slog"
)

type joinCmd struct {
	client Client
	room   string
}

// Hub 维护所有在线连接及其房间成员关系。
// 全部状态仅在 Run 的单一事件循环中被修改，因此无需加锁；
// 一次投递在循环内跑完，别名表不会被并发改写。
type Hub struct {
	// clients 在线连接集合，键为连接 ID
	clients map[string]Client
	// rooms 房间名 -> 加入该房间的连接集合
	rooms map[string]map[Client]struct{}
	// memberships 连接 -> 已加入的房间集合，断开时整体丢弃
	memberships map[Client]map[string]struct{}

	registerCh   chan Client
	unregisterCh chan Client
	joinCh       chan joinCmd
	deliverCh    chan Envelope
}

func NewHub() *Hub {
	return &Hub{
		clients:      make(map[string]Client),
		rooms:        make(map[string]map[Client]struct{}),
		memberships:  make(map[Client]map[string]struct{}),
		registerCh:   make(chan Client),
		unregisterCh: make(chan Client),
		joinCh:       make(chan joinCmd),
		deliverCh:    make(chan Envelope, 256),
	}
}

// Register 连接上线
func (h *Hub) Register(c Client) {
	h.registerCh <- c
}

// Unregister 连接断开，其全部房间成员关系被原子丢弃
func (h *Hub) Unregister(c Client) {
	h.unregisterCh <- c
}

// JoinRoom 将连接加入房间，重复加入是无操作
func (h *Hub) JoinRoom(c Client, room string) {
	if room == "" {
		return
	}
	h.joinCh <- joinCmd{client: c, room: room}
}

// RegisterIdentity 以某个原始标识注册连接：加入原始房间；
// 归一化结果是合法标识且与原始拼写不同时，再加入归一化房间。
func (h *Hub) RegisterIdentity(c Client, rawID string) {
	h.JoinRoom(c, rawID)
	key := identity.Normalize(rawID)
	if key != rawID && identity.IsParticipantKey(key) {
		h.JoinRoom(c, key)
	}
}

// Deliver 按投递指令把事件推给目标房间的连接
func (h *Hub) Deliver(env Envelope) {
	h.deliverCh <- env
}

// Run 启动事件循环，应在独立 Goroutine 中调用
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.registerCh:
			h.clients[c.GetConnID()] = c
			h.memberships[c] = make(map[string]struct{})
			log.Info("realtime client connected", "conn", c.GetConnID(), "total", len(h.clients))

		case c := <-h.unregisterCh:
			h.removeClient(c)

		case cmd := <-h.joinCh:
			h.join(cmd.client, cmd.room)

		case env := <-h.deliverCh:
			h.dispatch(env)
		}
	}
}

func (h *Hub) join(c Client, room string) {
	if _, online := h.clients[c.GetConnID()]; !online {
		return
	}
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	h.memberships[c][room] = struct{}{}
}

func (h *Hub) removeClient(c Client) {
	if _, ok := h.clients[c.GetConnID()]; !ok {
		return
	}
	delete(h.clients, c.GetConnID())
	for room := range h.memberships[c] {
		delete(h.rooms[room], c)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.memberships, c)
	c.Close()
	log.Info("realtime client disconnected", "conn", c.GetConnID(), "total", len(h.clients))
}

// dispatch 把一条指令投递给目标连接。
// 同一事件命中多个房间的连接只收到一次（先合并连接集合再发送）。
func (h *Hub) dispatch(env Envelope) {
	targets := make(map[Client]struct{})

	if env.Broadcast {
		for _, c := range h.clients {
			targets[c] = struct{}{}
		}
	} else {
		for _, room := range env.Rooms {
			for c := range h.rooms[room] {
				targets[c] = struct{}{}
			}
		}
	}

	// 空房间是静默无操作
	if len(targets) == 0 {
		return
	}

	evt := OutboundEvent{Event: env.Event, Data: env.Data}
	for c := range targets {
		select {
		case c.GetSendChannel() <- evt:
		default:
			// 投递是尽力而为：慢连接丢事件，不阻塞事件循环
			log.Warn("realtime send queue full, event dropped", "conn", c.GetConnID(), "event", env.Event)
		}
	}
}

func (h *Hub) shutdown() {
	for _, c := range h.clients {
		h.removeClient(c)
	}
}
