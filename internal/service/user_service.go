package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/identity"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/pkg/security"
	"Ripple/internal/repository"
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type UserService interface {
	// RegisterOrUpdate 按归一化标识注册或更新参与者，返回资料与访问令牌
	RegisterOrUpdate(ctx context.Context, req *dto.RegisterParticipantReq) (*dto.ParticipantDTO, string, error)
	GetByKey(ctx context.Context, rawID string) (*dto.ParticipantDTO, error)
	// Logout 将令牌签名拉黑，余下有效期内该令牌不再可用
	Logout(ctx context.Context, token string) error
}

type UserServiceImpl struct {
	participantRepo repository.ParticipantRepo
}

func NewUserService(participantRepo repository.ParticipantRepo) UserService {
	return &UserServiceImpl{participantRepo: participantRepo}
}

func (s *UserServiceImpl) RegisterOrUpdate(ctx context.Context, req *dto.RegisterParticipantReq) (*dto.ParticipantDTO, string, error) {
	key := identity.Normalize(req.Phone)
	if !identity.IsParticipantKey(key) {
		return nil, "", ErrPhoneInvalid
	}

	participant := &model.Participant{}
	if err := copier.Copy(participant, req); err != nil {
		return nil, "", err
	}
	participant.ParticipantKey = key
	if participant.AvatarURL == nil {
		avatar := consts.DefaultAvatarURL
		participant.AvatarURL = &avatar
	}

	if err := s.participantRepo.Upsert(ctx, participant); err != nil {
		return nil, "", err
	}

	// 资料可能已变化，失效缓存
	_ = redis.DeleteKey(ctx, consts.ParticipantInfoKey+key)

	token, err := security.GenerateToken(key)
	if err != nil {
		return nil, "", err
	}

	res := &dto.ParticipantDTO{}
	if err = copier.Copy(res, participant); err != nil {
		return nil, "", err
	}
	return res, token, nil
}

func (s *UserServiceImpl) GetByKey(ctx context.Context, rawID string) (*dto.ParticipantDTO, error) {
	key := identity.Normalize(rawID)
	if !identity.IsParticipantKey(key) {
		return nil, ErrParticipantNotFound
	}

	cacheKey := consts.ParticipantInfoKey + key
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		res := &dto.ParticipantDTO{}
		if err = json.Unmarshal([]byte(cached), res); err == nil {
			return res, nil
		}
	}

	participant, err := s.participantRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	res := &dto.ParticipantDTO{}
	if err = copier.Copy(res, participant); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(res); err == nil {
		_ = redis.SetWithExpiration(ctx, cacheKey, string(data), 10*time.Minute)
	}
	return res, nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return UnauthorizedError
	}
	// 黑名单按令牌最长有效期兜底，之后自然过期
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, "1", security.JWTExpirationTime)
}
