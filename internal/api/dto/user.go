package dto

import "time"

// RegisterParticipantReq 注册或更新参与者请求体
type RegisterParticipantReq struct {
	Phone     string  `json:"phone" binding:"required"`
	Name      string  `json:"name" binding:"required,min=1,max=50"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	About     *string `json:"about,omitempty" binding:"omitempty,max=200"`
}

// ParticipantDTO 参与者资料响应
type ParticipantDTO struct {
	Phone          string     `json:"phone"`
	ParticipantKey string     `json:"participant_key"`
	Name           string     `json:"name"`
	AvatarURL      *string    `json:"avatar_url,omitempty"`
	About          *string    `json:"about,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}
