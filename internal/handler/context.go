package handler

type ContextKey string

var (
	RoleCtxKey  ContextKey = "role"
	SubCtxKey   ContextKey = "sub"
	MyInfoCtx   ContextKey = "myInfo"
	UserInfoCtx ContextKey = "userInfo"
	MemberCtx   ContextKey = "member"
	DutyTypeCtx ContextKey = "dutyType"
	ScheduleCtx ContextKey = "schedule"
)
