package usecases_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"passlink.backend/internal/domain/entities"
	domainerrors "passlink.backend/internal/domain/errors"
)

// Mock LoginTokenRepository
type MockLoginTokenRepository struct {
	mock.Mock
}

func (m *MockLoginTokenRepository) Create(ctx context.Context, token *entities.LoginToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockLoginTokenRepository) GetUnconsumed(ctx context.Context, token string) (*entities.LoginToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoginToken), args.Error(1)
}

func (m *MockLoginTokenRepository) Consume(ctx context.Context, token string, consumedAt time.Time) error {
	args := m.Called(ctx, token, consumedAt)
	return args.Error(0)
}

func (m *MockLoginTokenRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoginTokenRepository) HasUnconsumed(ctx context.Context, email string, now time.Time) (bool, error) {
	args := m.Called(ctx, email, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginTokenRepository) HasConsumedSince(ctx context.Context, email string, since time.Time) (bool, error) {
	args := m.Called(ctx, email, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginTokenRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// Mock VerificationLinkRepository
type MockVerificationLinkRepository struct {
	mock.Mock
}

func (m *MockVerificationLinkRepository) Put(ctx context.Context, link *entities.VerificationLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockVerificationLinkRepository) GetByCorrelationID(ctx context.Context, correlationID uuid.UUID) (*entities.VerificationLink, error) {
	args := m.Called(ctx, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationLink), args.Error(1)
}

func (m *MockVerificationLinkRepository) GetWithRetry(ctx context.Context, correlationID uuid.UUID, maxAttempts int, interval time.Duration) (*entities.VerificationLink, error) {
	args := m.Called(ctx, correlationID, maxAttempts, interval)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationLink), args.Error(1)
}

func (m *MockVerificationLinkRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// Mock CredentialIssuer
type MockCredentialIssuer struct {
	mock.Mock
}

func (m *MockCredentialIssuer) RequestVerificationLink(ctx context.Context, email, destinationURL string) error {
	args := m.Called(ctx, email, destinationURL)
	return args.Error(0)
}

// fakeTokenStore is an in-memory LoginTokenRepository with real
// compare-and-set semantics, used for concurrency tests where a mock's
// scripted answers would hide the race.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*entities.LoginToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*entities.LoginToken)}
}

func (s *fakeTokenStore) Create(_ context.Context, token *entities.LoginToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *token
	s.tokens[token.Token] = &cp
	return nil
}

func (s *fakeTokenStore) GetUnconsumed(_ context.Context, token string) (*entities.LoginToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok || t.ConsumedAt.Valid {
		return nil, domainerrors.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTokenStore) Consume(_ context.Context, token string, consumedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok || t.ConsumedAt.Valid {
		return domainerrors.ErrNotFound
	}
	t.ConsumedAt.SetValid(consumedAt)
	return nil
}

func (s *fakeTokenStore) DeleteByEmail(_ context.Context, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, t := range s.tokens {
		if t.Email == email {
			delete(s.tokens, k)
			n++
		}
	}
	return n, nil
}

func (s *fakeTokenStore) HasUnconsumed(_ context.Context, email string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.Email == email && !t.ConsumedAt.Valid && t.ExpiresAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeTokenStore) HasConsumedSince(_ context.Context, email string, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.Email == email && t.ConsumedAt.Valid && t.ConsumedAt.Time.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeTokenStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, t := range s.tokens {
		if t.IssuedAt.Before(cutoff) {
			delete(s.tokens, k)
			n++
		}
	}
	return n, nil
}
