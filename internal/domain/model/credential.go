package model

import "time"

// CredentialKey is the fixed name under which the bearer token is persisted.
const CredentialKey = "trailtail_auth_token"

// Credential is a persisted bearer token. Token is opaque to this layer.
type Credential struct {
	Key       string
	Token     string
	UpdatedAt time.Time
}
