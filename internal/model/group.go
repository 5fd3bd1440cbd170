package model

import "time"

// Group 群会话主体，ID 为外部分配的稳定字符串，路由时不做归一化
type Group struct {
	ID        string  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string  `gorm:"type:varchar(50);not null" json:"name"`
	AvatarURL *string `gorm:"type:varchar(255)" json:"avatarUrl"`
	// CreatedBy 建群者的原始标识
	CreatedBy string `gorm:"type:varchar(30);not null" json:"createdBy"`
	// Visibility public-所有成员可发言 / private-仅管理员可发言
	Visibility string `gorm:"type:varchar(10);default:public" json:"visibility"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Members []GroupMember `gorm:"foreignKey:GroupID;references:ID" json:"members"`
}

func (Group) TableName() string { return "groups" }

// GroupMember 群成员行，(群, 参与者) 唯一
type GroupMember struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID        string    `gorm:"type:varchar(64);uniqueIndex:idx_group_participant" json:"groupId"`
	ParticipantKey string    `gorm:"type:varchar(10);uniqueIndex:idx_group_participant;index" json:"participantKey"`
	Role           string    `gorm:"type:varchar(10);default:member" json:"role"` // member / admin
	JoinedAt       time.Time `json:"joinedAt"`
}

func (GroupMember) TableName() string { return "group_members" }
