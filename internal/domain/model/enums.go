package model

// AuthState is the per-session login state.
type AuthState string

const (
	AuthStateAnonymous     AuthState = "anonymous"
	AuthStateAuthenticated AuthState = "authenticated"
)

// AuthRequiredMessage is returned by operations that need a bearer token
// when none is held.
const AuthRequiredMessage = "Authentication required"
