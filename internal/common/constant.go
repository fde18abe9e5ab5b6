package common

// Storage keys shared by every surface. The values are part of the persisted
// schema and must not change.
const (
	KeyProducts       = "products"
	KeyCart           = "cart"
	KeyAccounts       = "gamingclub_users"
	KeyFailedAttempts = "gamingclub_failed_attempts"
	KeySession        = "gamingclub_session"
	KeyClientID       = "gamingclub_client_id"
	KeyTokenSecret    = "gamingclub_token_secret"
)
