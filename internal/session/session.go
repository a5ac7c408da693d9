// Package session maps opaque bearer tokens to user identities. Sessions
// live in process memory and die with the process; that tradeoff is part of
// the system's contract, and the Store interface is the seam for swapping in
// a durable backend if that ever changes.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
)

// ErrUnauthenticated signals a missing or unknown session token.
var ErrUnauthenticated = errors.New("unauthenticated")

// Store creates and resolves session tokens.
type Store interface {
	Create(userID string) (string, error)
	Resolve(token string) (string, error)
	Revoke(token string)
}

// MemoryStore is the in-process Store. Safe for concurrent request handling.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

// Create issues a cryptographically random opaque token for userID.
func (s *MemoryStore) Create(userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()
	return token, nil
}

// Resolve returns the user id a token was issued for.
func (s *MemoryStore) Resolve(token string) (string, error) {
	s.mu.RLock()
	userID, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok {
		return "", ErrUnauthenticated
	}
	return userID, nil
}

// Revoke invalidates a token. Revoking an unknown token is a no-op.
func (s *MemoryStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
