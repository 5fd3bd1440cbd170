package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrPhoneInvalid        = errors.New("手机号无法归一化为合法标识")
	ErrParticipantNotFound = errors.New("参与者不存在")
	ErrGroupNotFound       = errors.New("群不存在")
	ErrNotGroupAdmin       = errors.New("私有群仅管理员可发言")
	ErrGroupNoMembers      = errors.New("群成员不能为空")
	ErrMessagePersist      = errors.New("消息持久化失败")
	ErrFileNotSupported    = errors.New("不支持的文件类型")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrPhoneInvalid:        BadRequest,
	ErrParticipantNotFound: NotFound,
	ErrGroupNotFound:       NotFound,
	ErrNotGroupAdmin:       Forbidden,
	ErrGroupNoMembers:      BadRequest,
	ErrMessagePersist:      InternalServerError,
	ErrFileNotSupported:    BadRequest,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
