package driven

import "github.com/studydeck-labs/studydeck-core/internal/core/domain"

// AuthAdapter handles password hashing and session token signing.
type AuthAdapter interface {
	// HashPassword generates a hash from a plaintext password.
	HashPassword(password string) (string, error)

	// VerifyPassword checks a password against a stored hash.
	VerifyPassword(password, hash string) bool

	// GenerateToken creates a signed session token from claims.
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ParseToken validates a session token and extracts its claims.
	ParseToken(token string) (*domain.TokenClaims, error)
}
