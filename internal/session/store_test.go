package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/front-gateway/internal/model"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := Session{
		ID:        "sess-1",
		AuthToken: "upstream-token",
		Profile:   Profile{ID: 3, DisplayName: "Ana Diaz", Email: "ana@example.com", Role: model.RoleClient},
	}
	require.NoError(t, store.Set(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)
	assert.True(t, got.IsAuthenticated())

	require.NoError(t, store.Clear(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreMissingSession(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing a session that never existed is not an error.
	assert.NoError(t, store.Clear(context.Background(), "nope"))
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, Session{ID: "sess-1", AuthToken: "old"}))
	require.NoError(t, store.Set(ctx, Session{ID: "sess-1", AuthToken: "new"}))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.AuthToken)
}

func TestProfileFromUser(t *testing.T) {
	p := ProfileFromUser(model.User{
		ID:        3,
		FirstName: "Ana",
		LastName:  "Diaz",
		Email:     "ana@example.com",
		Role:      model.RoleReceptionist,
	})
	assert.Equal(t, Profile{ID: 3, DisplayName: "Ana Diaz", Email: "ana@example.com", Role: model.RoleReceptionist}, p)
}

func TestIsAuthenticated(t *testing.T) {
	assert.False(t, Session{ID: "s"}.IsAuthenticated())
	assert.True(t, Session{ID: "s", AuthToken: "t"}.IsAuthenticated())
}

func TestContextRoundTrip(t *testing.T) {
	sess := Session{ID: "sess-1", AuthToken: "tok"}
	ctx := NewContext(context.Background(), sess)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, sess, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
