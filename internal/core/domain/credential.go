package domain

import "time"

// Credential is the persisted record of a user's OAuth tokens for one
// provider. At most one Credential exists per (user, provider); the stores
// enforce this with upsert-on-conflict semantics.
type Credential struct {
	UserID   string   `json:"user_id"`
	Provider Provider `json:"provider"`

	// AccessToken is the short-lived bearer credential for provider API
	// calls. Never serialized.
	AccessToken string `json:"-"`

	// RefreshToken is the long-lived credential used to mint new access
	// tokens. Empty when the provider withheld one. Never serialized.
	RefreshToken string `json:"-"`

	// TokenExpiry is the absolute time after which AccessToken must be
	// treated as invalid without attempting use. Nil means the provider
	// reported no expiry.
	TokenExpiry *time.Time `json:"token_expiry,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the access token must be considered unusable at
// the given instant. The boundary is inclusive: an expiry of exactly now is
// expired. A nil expiry never expires.
func (c *Credential) Expired(now time.Time) bool {
	if c.TokenExpiry == nil {
		return false
	}
	return !c.TokenExpiry.After(now)
}

// CanRefresh reports whether a refresh attempt is even possible.
func (c *Credential) CanRefresh() bool {
	return c.RefreshToken != ""
}

// ConnectionSummary is a safe view of a Credential without token material.
type ConnectionSummary struct {
	Provider    Provider   `json:"provider"`
	Connected   bool       `json:"connected"`
	TokenExpiry *time.Time `json:"token_expiry,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToSummary converts a Credential to a ConnectionSummary.
func (c *Credential) ToSummary() *ConnectionSummary {
	return &ConnectionSummary{
		Provider:    c.Provider,
		Connected:   c.AccessToken != "",
		TokenExpiry: c.TokenExpiry,
		UpdatedAt:   c.UpdatedAt,
	}
}
