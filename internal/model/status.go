package model

import "time"

// Status 阅后即焚式的状态动态，到期后仅对读取隐藏，不做后台清除
type Status struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Sender    string    `gorm:"type:varchar(30);not null" json:"sender"`
	Text      string    `gorm:"type:varchar(255)" json:"text"`
	MediaURL  *string   `gorm:"type:varchar(255)" json:"mediaUrl"`
	Type      string    `gorm:"type:varchar(20);default:text" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	// ExpiresAt 过期时间，读取时以 expires_at > now 过滤
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
}

func (Status) TableName() string { return "statuses" }
