package dto

import "time"

// PostStatusReq 发布状态请求体
type PostStatusReq struct {
	Text     string  `json:"text"`
	MediaURL *string `json:"mediaUrl,omitempty"`
	Type     string  `json:"type"`
}

// StatusDTO 状态动态响应
type StatusDTO struct {
	ID        uint64    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	MediaURL  *string   `json:"mediaUrl,omitempty"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
