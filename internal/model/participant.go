package model

import "time"

// Participant 以手机号为身份的注册用户
type Participant struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	// Phone 用户提交的原始号码拼写
	Phone string `gorm:"type:varchar(30);not null" json:"phone"`
	// ParticipantKey 归一化后的 10 位标识，身份判等的唯一依据
	ParticipantKey string  `gorm:"type:varchar(10);uniqueIndex:idx_participant_key" json:"participantKey"`
	Name           string  `gorm:"type:varchar(50)" json:"name"`
	AvatarURL      *string `gorm:"type:varchar(255)" json:"avatarUrl"`
	About          *string `gorm:"type:varchar(200)" json:"about"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Participant) TableName() string {
	return "participants"
}
