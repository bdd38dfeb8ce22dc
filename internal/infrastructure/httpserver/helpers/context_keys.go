package helpers

// Context keys set by the session middleware.
const (
	CurrentUserKey = "current_user"
	SessionIDKey   = "session_id"
)
