package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRegistry(t *testing.T, seed bool) *Registry {
	r := NewRegistry(Config{TTL: time.Minute, CleanupInterval: time.Hour, Seed: seed})
	t.Cleanup(r.Shutdown)
	return r
}

func TestRegistry_Open_SeedsNewSession(t *testing.T) {
	r := setupRegistry(t, true)

	inv := r.Open("alice")
	assert.Equal(t, 3, inv.ItemCount())
	assert.Equal(t, 50, inv.TotalQuantity())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Open_WithoutSeed(t *testing.T) {
	r := setupRegistry(t, false)

	inv := r.Open("alice")
	assert.Equal(t, 0, inv.ItemCount())
	assert.Equal(t, 1, inv.NextID())
}

func TestRegistry_Open_ReturnsSameInventory(t *testing.T) {
	r := setupRegistry(t, true)

	_, err := r.Open("alice").AddItem("Paint can", 10)
	require.NoError(t, err)

	assert.Equal(t, 4, r.Open("alice").ItemCount())
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	r := setupRegistry(t, true)

	require.NoError(t, r.Open("alice").DeleteItem(1))

	assert.Equal(t, 2, r.Open("alice").ItemCount())
	assert.Equal(t, 3, r.Open("bob").ItemCount())
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Close(t *testing.T) {
	r := setupRegistry(t, true)
	require.NoError(t, r.Open("alice").DeleteItem(1))

	assert.True(t, r.Close("alice"))
	assert.False(t, r.Close("alice"))
	assert.Equal(t, 0, r.Len())

	// A closed session starts over from the seed
	assert.Equal(t, 3, r.Open("alice").ItemCount())
}

func TestRegistry_ExpireSessions(t *testing.T) {
	r := setupRegistry(t, true)

	now := time.Now()
	r.now = func() time.Time { return now }
	r.Open("idle")

	now = now.Add(30 * time.Second)
	r.Open("active")

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, r.expireSessions())
	assert.Equal(t, 1, r.Len())

	r.mu.Lock()
	_, idleExists := r.sessions["idle"]
	_, activeExists := r.sessions["active"]
	r.mu.Unlock()
	assert.False(t, idleExists)
	assert.True(t, activeExists)
}

func TestRegistry_CleanupLoopRuns(t *testing.T) {
	r := NewRegistry(Config{TTL: time.Millisecond, CleanupInterval: 5 * time.Millisecond, Seed: true})
	t.Cleanup(r.Shutdown)

	r.Open("short-lived")

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRegistry_ShutdownIsIdempotent(t *testing.T) {
	r := NewRegistry(Config{})
	r.Shutdown()
	r.Shutdown()
}
