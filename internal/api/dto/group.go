package dto

import "time"

// CreateGroupMemberReq 建群时的初始成员项
type CreateGroupMemberReq struct {
	ID      string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
}

// CreateGroupReq 建群事件体
type CreateGroupReq struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name" validate:"required,max=50"`
	Avatar    *string                `json:"avatar,omitempty"`
	CreatedBy string                 `json:"createdBy" validate:"required"`
	Admins    []string               `json:"admins,omitempty"`
	Type      string                 `json:"type"` // public / private
	Members   []CreateGroupMemberReq `json:"members"`
}

// GroupMemberDTO 群成员响应，资料字段按参与者表补齐
type GroupMemberDTO struct {
	ParticipantKey string  `json:"participantKey"`
	Role           string  `json:"role"`
	Name           string  `json:"name,omitempty"`
	AvatarURL      *string `json:"avatarUrl,omitempty"`
}

// GroupDTO 群资料响应
type GroupDTO struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	AvatarURL  *string          `json:"avatarUrl,omitempty"`
	CreatedBy  string           `json:"createdBy"`
	Visibility string           `json:"visibility"`
	CreatedAt  time.Time        `json:"createdAt"`
	Members    []GroupMemberDTO `json:"members,omitempty"`
}
