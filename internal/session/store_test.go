package session_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/DeafMist/guestpost-report/internal/session"
)

func TestStorePutReplaces(t *testing.T) {
	store := session.NewStore(10, time.Minute)
	_, ok := store.Get("alpha")
	require.False(t, ok)

	store.Put("alpha", &session.Upload{FileName: "march.xlsx"})
	store.Put("alpha", &session.Upload{FileName: "april.xlsx"})

	got, ok := store.Get("alpha")
	require.True(t, ok)
	require.Equal(t, "april.xlsx", got.FileName)
	require.Equal(t, 1, store.Len())
}

func TestStoreTTLExpiry(t *testing.T) {
	store := session.NewStore(10, 20*time.Millisecond)
	store.Put("beta", &session.Upload{})
	time.Sleep(40 * time.Millisecond)

	_, ok := store.Get("beta")
	require.False(t, ok)
}

func TestStoreCapacityEvictsOldest(t *testing.T) {
	store := session.NewStore(1, time.Minute)
	store.Put("first", &session.Upload{})
	store.Put("second", &session.Upload{})

	_, ok := store.Get("first")
	require.False(t, ok)
	_, ok = store.Get("second")
	require.True(t, ok)
}

func TestStoreDeleteAndEmptyID(t *testing.T) {
	store := session.NewStore(0, 0)
	store.Put("gamma", &session.Upload{})
	store.Delete("gamma")

	_, ok := store.Get("gamma")
	require.False(t, ok)
	_, ok = store.Get("")
	require.False(t, ok)
}

func TestNewID(t *testing.T) {
	id := session.NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.NotEqual(t, id, session.NewID())
}
