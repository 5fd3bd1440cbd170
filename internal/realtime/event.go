package realtime

import "github.com/goccy/go-json"

// 客户端入站事件
const (
	EventRegister    = "register"
	EventJoinChat    = "join_chat"
	EventSendMessage = "send_message"
	EventCreateGroup = "create_group"
	EventCallUser    = "call_user"
	EventGroupCall   = "group_call"
	EventRejectCall  = "reject_call"
	EventEndCall     = "end_call"
)

// 服务端出站事件
const (
	EventReceiveMessage  = "receive_message"
	EventNewStatus       = "new_status"
	EventNewGroupCreated = "new_group_created"
	EventIncomingCall    = "incoming_call"
	EventCallRejected    = "call_rejected"
	EventCallEnded       = "call_ended"
)

// InboundEvent WebSocket 入站事件帧
type InboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutboundEvent 推送给单个连接的事件帧
type OutboundEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Envelope 经 Redis 总线广播的投递指令。
// Rooms 为目标房间集合；Broadcast 为真时忽略 Rooms，推送给全部连接。
type Envelope struct {
	Rooms     []string        `json:"rooms,omitempty"`
	Broadcast bool            `json:"broadcast,omitempty"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
}
