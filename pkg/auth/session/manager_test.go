package session

import (
	"context"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string]string{}}
}

func (m *mockStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value.(string)
	return nil
}

func (m *mockStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *mockStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return "cl:session:" + accessID
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{store: store, keyer: store, ttl: time.Hour}
}

func TestGenerateStoresToken(t *testing.T) {
	store := newMockStore()
	mgr := newTestManager(store)

	token, err := mgr.Generate(context.Background(), "access-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	stored, err := store.Get(context.Background(), store.AccessSessionKey("access-1"))
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestGenerateRequiresAccessID(t *testing.T) {
	mgr := newTestManager(newMockStore())

	_, err := mgr.Generate(context.Background(), "  ")
	assert.Error(t, err)
}

func TestRotateIssuesNewPairAndRevokesOld(t *testing.T) {
	store := newMockStore()
	mgr := newTestManager(store)

	token, err := mgr.Generate(context.Background(), "access-1")
	require.NoError(t, err)

	newAccessID, newToken, err := mgr.Rotate(context.Background(), "access-1", token)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccessID)
	assert.NotEqual(t, token, newToken)

	_, err = store.Get(context.Background(), store.AccessSessionKey("access-1"))
	assert.ErrorIs(t, err, redislib.Nil)

	stored, err := store.Get(context.Background(), store.AccessSessionKey(newAccessID))
	require.NoError(t, err)
	assert.Equal(t, newToken, stored)
}

func TestRotateRejectsWrongToken(t *testing.T) {
	store := newMockStore()
	mgr := newTestManager(store)

	_, err := mgr.Generate(context.Background(), "access-1")
	require.NoError(t, err)

	_, _, err = mgr.Rotate(context.Background(), "access-1", "not-the-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRotateRejectsUnknownSession(t *testing.T) {
	mgr := newTestManager(newMockStore())

	_, _, err := mgr.Rotate(context.Background(), "missing", "whatever")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevokeThenHasSession(t *testing.T) {
	store := newMockStore()
	mgr := newTestManager(store)

	_, err := mgr.Generate(context.Background(), "access-1")
	require.NoError(t, err)

	ok, err := mgr.HasSession(context.Background(), "access-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, mgr.Revoke(context.Background(), "access-1"))

	ok, err = mgr.HasSession(context.Background(), "access-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
