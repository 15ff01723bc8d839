package config

import (
	"fmt"
	"time"
)

const defaultExpirationHours = 24

// TokenIssuer is the iss claim on session tokens.
const TokenIssuer = "job-tracker"

// JWTConfig configures the session tokens issued at login and checked by the
// scrape service.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	// Issuer, when set, is written on issue and required on validation.
	Issuer string
}

// TTL is the token lifetime.
func (c *JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// Validate rejects an empty secret and lifetimes under an hour.
func (c *JWTConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("config error: 'jwt_secret' cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("config error: 'jwt_expiration_hours' must be at least 1, got %d", c.ExpirationHours)
	}
	return nil
}
