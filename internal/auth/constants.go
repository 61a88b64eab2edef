package auth

const (
	headerAuthorization = "Authorization"
	bearerScheme        = "bearer"
	authHeaderParts     = 2

	// StudioCookieName carries the studio session token.
	StudioCookieName = "studio_token"
	// AdminCookieName carries the master-admin session token.
	AdminCookieName = "token"

	ContextKeyStudioID = "studio_id"
	ContextKeyEmail    = "studio_email"
	ContextKeyAdminID  = "admin_id"
	ContextKeyRole     = "auth_role"

	RoleStudio      = "studio"
	RoleMasterAdmin = "master_admin"

	studioLoginPath = "/studio/auth/login"
	adminLoginPath  = "/master-admin/auth/login"
	upgradePath     = "/studio/subscription/upgrade"

	headerCacheControl = "Cache-Control"
	headerPragma       = "Pragma"
	headerExpires      = "Expires"
	cacheControlValue  = "no-store, max-age=0"
	pragmaValue        = "no-cache"
	expiresValue       = "0"

	msgMissingToken          = "authentication required"
	msgInvalidOrExpiredToken = "invalid or expired token"
	msgTrialCheckFailed      = "subscription check failed"
	msgAccountInactive       = "account is inactive"
	msgStudioNotAuthed       = "studio not authenticated"
	msgAdminNotAuthed        = "master admin not authenticated"
	msgInvalidStudioIDCtx    = "invalid studio id in context"
	msgInvalidAdminIDCtx     = "invalid admin id in context"

	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
	msgWrongTokenRole          = "token role mismatch"
)
