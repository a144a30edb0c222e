package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const (
	TTL         = 10 * time.Minute
	maxAttempts = 3
)

// Store holds pending OTP codes. One code per phone; verification consumes
// the code on success and after maxAttempts failures.
type Store interface {
	Put(ctx context.Context, phone, code string) error
	Verify(ctx context.Context, phone, code string) (bool, error)
}

// Generate returns a 6-digit code.
func Generate() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the process is in bad shape anyway
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

type memEntry struct {
	code      string
	expiresAt time.Time
	attempts  int
}

type memStore struct {
	mu      sync.Mutex
	entries map[string]*memEntry
	now     func() time.Time
}

// NewMemory returns the in-process store used when no Redis is configured.
func NewMemory() Store {
	return &memStore{entries: map[string]*memEntry{}, now: time.Now}
}

func (s *memStore) Put(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[phone] = &memEntry{code: code, expiresAt: s.now().Add(TTL)}
	return nil
}

func (s *memStore) Verify(_ context.Context, phone, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[phone]
	if !ok {
		return false, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, phone)
		return false, nil
	}
	e.attempts++
	if e.attempts > maxAttempts {
		delete(s.entries, phone)
		return false, nil
	}
	if e.code == code {
		delete(s.entries, phone)
		return true, nil
	}
	return false, nil
}
