package handler

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/identity"
	"Ripple/internal/pkg/util"
	"Ripple/internal/realtime"
	"Ripple/internal/service"
	"context"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct {
	hub        *realtime.Hub
	chatSvc    service.ChatService
	groupSvc   service.GroupService
	callSvc    service.CallService
	sendBuffer int
}

func NewWsHandler(hub *realtime.Hub, chatSvc service.ChatService, groupSvc service.GroupService, callSvc service.CallService, sendBuffer int) *WsHandler {
	return &WsHandler{
		hub:        hub,
		chatSvc:    chatSvc,
		groupSvc:   groupSvc,
		callSvc:    callSvc,
		sendBuffer: sendBuffer,
	}
}

// Connect 升级 WebSocket 并把连接挂入事件循环。
// 身份在连接建立后由 register 事件声明，而非连接参数。
func (s *WsHandler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}

	client := realtime.NewWSClient(conn, s.hub, s.sendBuffer, s.dispatch)
	s.hub.Register(client)
	client.Run()

	log.Info("WS 连接已建立", "conn", client.GetConnID())
}

// dispatch 入站事件总入口，未知事件与坏负载一律丢弃
func (s *WsHandler) dispatch(ctx context.Context, c *realtime.WSClient, evt realtime.InboundEvent) {
	switch evt.Event {
	case realtime.EventRegister:
		s.onRegister(ctx, c, evt.Data)
	case realtime.EventJoinChat:
		s.onJoinChat(ctx, c, evt.Data)
	case realtime.EventSendMessage:
		s.onSendMessage(ctx, evt.Data)
	case realtime.EventCreateGroup:
		s.onCreateGroup(ctx, evt.Data)
	case realtime.EventCallUser:
		decodeInto(ctx, evt, func(req *dto.CallUserReq) error {
			return s.callSvc.CallUser(ctx, req)
		})
	case realtime.EventGroupCall:
		decodeInto(ctx, evt, func(req *dto.GroupCallReq) error {
			return s.callSvc.GroupCall(ctx, req)
		})
	case realtime.EventRejectCall:
		decodeInto(ctx, evt, func(req *dto.CallActionReq) error {
			return s.callSvc.RejectCall(ctx, req)
		})
	case realtime.EventEndCall:
		decodeInto(ctx, evt, func(req *dto.CallActionReq) error {
			return s.callSvc.EndCall(ctx, req)
		})
	default:
		log.WarnContext(ctx, "未知事件被丢弃", "event", evt.Event)
	}
}

// onRegister 连接声明身份：登记别名房间，并自动加入其全部群房间
func (s *WsHandler) onRegister(ctx context.Context, c *realtime.WSClient, data json.RawMessage) {
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.ID == "" {
		log.WarnContext(ctx, "register 负载非法，忽略", "err", err)
		return
	}

	s.hub.RegisterIdentity(c, payload.ID)

	groupIDs, err := s.groupSvc.ListJoinableGroupIDs(ctx, payload.ID)
	if err != nil {
		// 群房间加入失败不影响私聊可达性
		log.ErrorContext(ctx, "自动加入群房间失败", "id", payload.ID, "err", err)
		return
	}
	for _, groupID := range groupIDs {
		s.hub.JoinRoom(c, groupID)
	}
}

// onJoinChat 显式加入会话房间，chatId 统一走规范化键
func (s *WsHandler) onJoinChat(ctx context.Context, c *realtime.WSClient, data json.RawMessage) {
	var payload struct {
		ChatID string `json:"chatId"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.ChatID == "" {
		log.WarnContext(ctx, "join_chat 负载非法，忽略", "err", err)
		return
	}
	s.hub.JoinRoom(c, identity.DeriveConversationKey(payload.ChatID))
}

func (s *WsHandler) onSendMessage(ctx context.Context, data json.RawMessage) {
	var req dto.SendMessageReq
	if err := json.Unmarshal(data, &req); err != nil {
		log.WarnContext(ctx, "send_message 负载非法，忽略", "err", err)
		return
	}
	if _, err := s.chatSvc.SendMessage(ctx, &req); err != nil {
		log.WarnContext(ctx, "消息发送失败", "chatId", req.ChatID, "err", err)
	}
}

func (s *WsHandler) onCreateGroup(ctx context.Context, data json.RawMessage) {
	var req dto.CreateGroupReq
	if err := json.Unmarshal(data, &req); err != nil {
		log.WarnContext(ctx, "create_group 负载非法，忽略", "err", err)
		return
	}
	// WS 入口不经过 gin 绑定，字段规则在这里补上
	if err := util.ValidateDTO(&req); err != nil {
		log.WarnContext(ctx, "create_group 负载非法，忽略", "err", err)
		return
	}
	if _, err := s.groupSvc.CreateGroup(ctx, &req); err != nil {
		log.WarnContext(ctx, "建群失败", "groupId", req.ID, "err", err)
	}
}

// decodeInto 信令事件共用的解码转发
func decodeInto[T any](ctx context.Context, evt realtime.InboundEvent, call func(*T) error) {
	var req T
	if err := json.Unmarshal(evt.Data, &req); err != nil {
		log.WarnContext(ctx, "信令负载非法，忽略", "event", evt.Event, "err", err)
		return
	}
	if err := call(&req); err != nil {
		log.WarnContext(ctx, "信令处理失败", "event", evt.Event, "err", err)
	}
}
