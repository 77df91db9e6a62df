package handler

const (
	errInternalServer     = "Internal server error"
	errUpstream           = "Upstream service unavailable"
	errAuthUnavailable    = "Sign-in is not configured"
	errNotFound           = "Not found"
	errProfileNotFound    = "Profile not found"
	errCountdownNotFound  = "Countdown not found"
	errMediaNotFound      = "Media not found"
	errAniListUser        = "AniList user not found"
	errNoRelease          = "No release published yet"
	errPostNotFound       = "Post not found"
	errInvalidCursor      = "Invalid cursor"
	errInvalidID          = "Invalid id"
	errUsernameTaken      = "Username is already taken"
	errEmailTaken         = "Email is already registered"
	errInvalidCredentials = "Invalid email or password"
)
