package usercontext

// Shared Locals keys used across controllers and middlewares
const (
	KeyUserContext   = "USER_CONTEXT"
	KeyAccountID     = "account_id"
	KeyProfileID     = "profile_id"
	KeyUsername      = "username"
	KeyFromProtected = "from_protected"
)
