package ports

// CredentialStore persists the opaque bearer token across page loads. The
// token is pass-through: no validation of its contents happens here.
//
// Implementations must fail open: when the underlying storage is unavailable,
// Get reports "no credential" rather than erroring, and Set/Clear are no-ops.
type CredentialStore interface {
	// Get returns the stored token and whether one is present.
	Get() (string, bool)
	// Set persists the token with the given lifetime in days, superseding
	// any previous credential.
	Set(token string, ttlDays int)
	// Clear removes the credential. Clearing an empty store is a no-op.
	Clear()
}
