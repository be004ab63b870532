package handler

type ContextKey string

var (
	RoleCtxKey       ContextKey = "role"
	SubCtxKey        ContextKey = "sub"
	MyInfoCtx        ContextKey = "myInfo"
	UserInfoCtx      ContextKey = "userInfo"
	TenantCtx        ContextKey = "tenant"
	SkillCtx         ContextKey = "skill"
	SpotCtx          ContextKey = "spot"
	ContractCtx      ContextKey = "contract"
	EmployeeCtx      ContextKey = "employee"
	AvailabilityCtx  ContextKey = "availability"
	ShiftTemplateCtx ContextKey = "shiftTemplate"
	ShiftCtx         ContextKey = "shift"
)
