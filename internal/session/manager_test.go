package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenReplacesExisting(t *testing.T) {
	m := NewManager(time.Hour)
	first := m.Open("seller-1", "Ivan", "10.0.0.1")
	second := m.Open("seller-1", "Ivan", "10.0.0.2")

	assert.NotEqual(t, first.SessionID, second.SessionID)
	got := m.Get("seller-1")
	require.NotNil(t, got)
	assert.Equal(t, second.SessionID, got.SessionID)
	assert.Len(t, m.Active(), 1)
}

func TestGetExpiredSessionDropped(t *testing.T) {
	m := NewManager(time.Millisecond)
	m.Open("seller-1", "Ivan", "")
	time.Sleep(5 * time.Millisecond)

	assert.Nil(t, m.Get("seller-1"))
	assert.Empty(t, m.Active())
}

func TestClose(t *testing.T) {
	m := NewManager(time.Hour)
	m.Open("seller-1", "Ivan", "")

	assert.True(t, m.Close("seller-1"))
	assert.False(t, m.Close("seller-1"), "closing twice reports no session")
	assert.Nil(t, m.Get("seller-1"))
}

func TestActiveSweepsExpired(t *testing.T) {
	m := NewManager(time.Hour)
	m.Open("fresh", "A", "")
	stale := m.Open("stale", "B", "")
	stale.ExpiresAt = time.Now().Add(-time.Minute)

	active := m.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "fresh", active[0].UserID)
	assert.Nil(t, m.Get("stale"))
}
