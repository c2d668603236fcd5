package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"storefront-gateway/internal/features/auth/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAuthProvider is a mock implementation of AuthProvider for testing.
type mockAuthProvider struct {
	loginPair    domain.TokenPair
	loginErr     error
	refreshPair  domain.TokenPair
	refreshErr   error
	refreshCalls atomic.Int32
	profile      *domain.Profile
}

func (m *mockAuthProvider) Login(ctx context.Context, userName, password string) (domain.TokenPair, error) {
	return m.loginPair, m.loginErr
}

func (m *mockAuthProvider) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	m.refreshCalls.Add(1)
	if m.refreshErr != nil {
		return domain.TokenPair{}, m.refreshErr
	}
	return m.refreshPair, nil
}

func (m *mockAuthProvider) Me(ctx context.Context, accessToken string) (*domain.Profile, error) {
	if m.profile == nil {
		return nil, errors.New("unknown token")
	}
	return m.profile, nil
}

// mockTokenStore is an in-memory TokenStore.
type mockTokenStore struct {
	mu    sync.Mutex
	pairs map[string]domain.TokenPair
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{pairs: map[string]domain.TokenPair{}}
}

func (m *mockTokenStore) Save(ctx context.Context, userID string, pair domain.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairs[userID] = pair
	return nil
}

func (m *mockTokenStore) Load(ctx context.Context, userID string) (*domain.TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pair, ok := m.pairs[userID]; ok {
		return &pair, nil
	}
	return nil, nil
}

func (m *mockTokenStore) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pairs, userID)
	return nil
}

func TestAuthService_Login(t *testing.T) {
	provider := &mockAuthProvider{
		loginPair: domain.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"},
		profile:   &domain.Profile{ID: "user-1", UserName: "milklover"},
	}
	store := newMockTokenStore()
	svc := NewAuthService(provider, store)

	session, err := svc.Login(context.Background(), "milklover", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.Profile.ID)
	assert.Equal(t, "access-1", session.Tokens.AccessToken)

	saved, err := store.Load(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "refresh-1", saved.RefreshToken)
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	svc := NewAuthService(&mockAuthProvider{}, newMockTokenStore())

	_, err := svc.Login(context.Background(), "milklover", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	provider := &mockAuthProvider{loginErr: errors.New("401")}
	store := newMockTokenStore()
	svc := NewAuthService(provider, store)

	_, err := svc.Login(context.Background(), "milklover", "wrong")
	require.Error(t, err)
	assert.Empty(t, store.pairs)
}

func TestAuthService_Logout(t *testing.T) {
	store := newMockTokenStore()
	require.NoError(t, store.Save(context.Background(), "user-1", domain.TokenPair{AccessToken: "access-1"}))
	svc := NewAuthService(&mockAuthProvider{}, store)

	require.NoError(t, svc.Logout(context.Background(), "user-1"))

	_, err := svc.AccessToken(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestAuthService_AccessToken(t *testing.T) {
	store := newMockTokenStore()
	require.NoError(t, store.Save(context.Background(), "user-1", domain.TokenPair{AccessToken: "access-1"}))
	svc := NewAuthService(&mockAuthProvider{}, store)

	token, err := svc.AccessToken(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)
}

func TestAuthService_RefreshAccess_RotatesAndPersists(t *testing.T) {
	provider := &mockAuthProvider{
		refreshPair: domain.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"},
	}
	store := newMockTokenStore()
	require.NoError(t, store.Save(context.Background(), "user-1", domain.TokenPair{
		AccessToken: "access-1", RefreshToken: "refresh-1",
	}))
	svc := NewAuthService(provider, store)

	token, err := svc.RefreshAccess(context.Background(), "user-1", "access-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", token)

	saved, err := store.Load(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", saved.RefreshToken)
}

func TestAuthService_RefreshAccess_SkipsWhenAlreadyRotated(t *testing.T) {
	provider := &mockAuthProvider{}
	store := newMockTokenStore()
	require.NoError(t, store.Save(context.Background(), "user-1", domain.TokenPair{
		AccessToken: "access-2", RefreshToken: "refresh-2",
	}))
	svc := NewAuthService(provider, store)

	token, err := svc.RefreshAccess(context.Background(), "user-1", "access-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", token)
	assert.Equal(t, int32(0), provider.refreshCalls.Load())
}

func TestAuthService_RefreshAccess_Concurrent(t *testing.T) {
	provider := &mockAuthProvider{
		refreshPair: domain.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"},
	}
	store := newMockTokenStore()
	require.NoError(t, store.Save(context.Background(), "user-1", domain.TokenPair{
		AccessToken: "access-1", RefreshToken: "refresh-1",
	}))
	svc := NewAuthService(provider, store)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := svc.RefreshAccess(context.Background(), "user-1", "access-1")
			assert.NoError(t, err)
			assert.Equal(t, "access-2", token)
		}()
	}
	wg.Wait()

	// Coalesced plus at-most-one late arrival that reloads the rotated pair.
	assert.LessOrEqual(t, provider.refreshCalls.Load(), int32(2))
}

func TestAuthService_RefreshAccess_NotAuthenticated(t *testing.T) {
	svc := NewAuthService(&mockAuthProvider{}, newMockTokenStore())

	_, err := svc.RefreshAccess(context.Background(), "ghost", "access-1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestAuthService_Profile(t *testing.T) {
	provider := &mockAuthProvider{profile: &domain.Profile{ID: "user-1", FullName: "Nguyen Van A"}}
	store := newMockTokenStore()
	require.NoError(t, store.Save(context.Background(), "user-1", domain.TokenPair{AccessToken: "access-1"}))
	svc := NewAuthService(provider, store)

	profile, err := svc.Profile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Nguyen Van A", profile.FullName)
}

func TestAuthService_Profile_NotAuthenticated(t *testing.T) {
	svc := NewAuthService(&mockAuthProvider{}, newMockTokenStore())

	_, err := svc.Profile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
