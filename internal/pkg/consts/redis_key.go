package consts

const (
	ParticipantInfoKey = "participant:info:"
	TokenBlacklistKey  = "token:blacklist:"
)
