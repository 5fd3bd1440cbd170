package dto

// CallUserReq 一对一呼叫事件体
type CallUserReq struct {
	From    string                 `json:"from"`
	To      string                 `json:"to"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// GroupCallReq 群呼事件体
type GroupCallReq struct {
	From    string                 `json:"from"`
	GroupID string                 `json:"groupId"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// CallActionReq 拒接/挂断事件体，路由回对端
type CallActionReq struct {
	From    string                 `json:"from"`
	To      string                 `json:"to"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// CallEventDTO 呼叫信令推送
type CallEventDTO struct {
	From    string                 `json:"from"`
	GroupID string                 `json:"groupId,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}
