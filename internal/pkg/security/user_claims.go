package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Ripple"
	JWTExpirationTime        = time.Hour * 24 * 30
)

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	// ParticipantKey 归一化后的 10 位参与者标识
	ParticipantKey string `json:"participant_key"`
	jwt.RegisteredClaims
}
