package model

import "time"

// Message 聊天消息，落库后不可变
type Message struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	// ChatID 规范会话 ID（私聊为升序拼接的 key，群聊为群 ID）
	ChatID    string    `gorm:"type:varchar(64);index:idx_chat_id;not null" json:"chatId"`
	Sender    string    `gorm:"type:varchar(30);not null" json:"sender"`
	Text      string    `gorm:"type:text" json:"text"`
	Type      string    `gorm:"type:varchar(20);default:text" json:"type"` // text / image / video / audio
	MediaURL  *string   `gorm:"type:varchar(255)" json:"mediaUrl"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (Message) TableName() string { return "messages" }
