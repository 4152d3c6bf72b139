package constants

// Context and session keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"

	SessionCookieName = "workforce_session"
)

// Authentication
const (
	MinPasswordLength       = 5
	GeneratedPasswordLength = 5
)

// Pagination
const (
	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 100
)

// PlaceholderScreenshot is stored when a claim or earnings capture is
// submitted without a proof attachment.
const PlaceholderScreenshot = "no-screenshot.png"
