// Package session tracks whether the user is logged in. The only consumer is
// ingestion path selection; login is a stub that performs no verification.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/jonathan/job-tracker/internal/storage"
	"github.com/jonathan/job-tracker/internal/types"
)

// TokenIssuer signs session tokens. A nil issuer means logins carry no token.
type TokenIssuer interface {
	GenerateToken(username string) (string, error)
}

// Gate holds the authenticated flag, backed by the user marker in storage.
type Gate struct {
	mu     sync.RWMutex
	kv     storage.KV
	tokens TokenIssuer
	marker *types.SessionMarker
}

// Open restores the gate from storage. The session is authenticated iff a
// well-formed marker is stored under storage.KeyUser; anything else reads as
// logged out.
func Open(ctx context.Context, kv storage.KV, tokens TokenIssuer) *Gate {
	g := &Gate{kv: kv, tokens: tokens}

	data, err := kv.Get(ctx, storage.KeyUser)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[session] could not read %s: %v", storage.KeyUser, err)
		}
		return g
	}

	var marker types.SessionMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		log.Printf("[session] ignoring malformed marker: %v", err)
		return g
	}
	if err := marker.Validate(); err != nil {
		log.Printf("[session] ignoring malformed marker: %v", err)
		return g
	}
	g.marker = &marker
	return g
}

// IsAuthenticated reports whether a user is logged in.
func (g *Gate) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.marker != nil
}

// Username returns the logged-in username, or "".
func (g *Gate) Username() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.marker == nil {
		return ""
	}
	return g.marker.Username
}

// Token returns the session token forwarded to the scrape endpoint, or "".
func (g *Gate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.marker == nil {
		return ""
	}
	return g.marker.Token
}

// Login records a session for req.Username. The password is not checked.
func (g *Gate) Login(ctx context.Context, req types.LoginRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid login: %w", err)
	}

	marker := types.SessionMarker{Username: req.Username}
	if g.tokens != nil {
		token, err := g.tokens.GenerateToken(req.Username)
		if err != nil {
			return fmt.Errorf("failed to issue session token: %w", err)
		}
		marker.Token = token
	}

	data, err := json.Marshal(marker)
	if err != nil {
		return fmt.Errorf("failed to encode session marker: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.kv.Put(ctx, storage.KeyUser, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	g.marker = &marker
	return nil
}

// Logout removes the marker and flips the gate to unauthenticated.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.kv.Delete(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	g.marker = nil
	return nil
}
