package consts

const (
	MimePrefixImage = "image"
	MimePrefixAudio = "audio"
	MimePrefixVideo = "video"
)

const (
	// GroupVisibilityPublic 所有成员均可发言
	GroupVisibilityPublic = "public"
	// GroupVisibilityPrivate 仅管理员可发言
	GroupVisibilityPrivate = "private"
)

const (
	GroupRoleMember = "member"
	GroupRoleAdmin  = "admin"
)

const (
	// StatusTTL 状态动态的可见时长
	StatusTTLHours = 24
)

const (
	DefaultAvatarURL = "default_avatar.png"
)
