package lockmgr

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockGrantAndUnlock(t *testing.T) {
	m := New(0)
	defer m.Close()

	tk := m.Lock("/a.txt", ScopeExclusive, "alice", 0, "")
	assert.True(t, strings.HasPrefix(tk.ID, "urn:uuid:"))
	assert.Equal(t, "/a.txt", tk.Path)
	assert.Equal(t, ScopeExclusive, tk.Scope)

	live, ok := m.Get("/a.txt")
	assert.True(t, ok)
	assert.Equal(t, tk.ID, live.ID)

	assert.ErrorIs(t, m.Unlock("/a.txt", "urn:uuid:other"), ErrTokenMismatch)
	assert.NoError(t, m.Unlock("/a.txt", tk.ID))
	assert.ErrorIs(t, m.Unlock("/a.txt", tk.ID), ErrNotLocked)
	_, ok = m.Get("/a.txt")
	assert.False(t, ok)
}

func TestLockRefresh(t *testing.T) {
	m := New(0)
	defer m.Close()

	tk := m.Lock("/a.txt", ScopeExclusive, "alice", time.Minute, "")
	// presenting the live token extends expiry, keeps identity
	rf := m.Lock("/a.txt", ScopeExclusive, "alice", time.Hour, tk.ID)
	assert.Equal(t, tk.ID, rf.ID)
	assert.True(t, rf.ExpiresAt.After(tk.ExpiresAt))

	// another caller gets the existing token back unchanged
	other := m.Lock("/a.txt", ScopeShared, "bob", time.Minute, "")
	assert.Equal(t, tk.ID, other.ID)
	assert.Equal(t, "alice", other.Owner)
}

func TestLockExpiry(t *testing.T) {
	m := New(0)
	defer m.Close()

	tk := m.Lock("/a.txt", ScopeExclusive, "alice", 10*time.Millisecond, "")
	time.Sleep(20 * time.Millisecond)
	_, ok := m.Get("/a.txt")
	assert.False(t, ok)
	assert.ErrorIs(t, m.Unlock("/a.txt", tk.ID), ErrNotLocked)

	// expired lock is replaced by a fresh grant
	nk := m.Lock("/a.txt", ScopeExclusive, "bob", time.Minute, "")
	assert.NotEqual(t, tk.ID, nk.ID)
}

func TestTimeoutClamp(t *testing.T) {
	m := New(time.Minute)
	defer m.Close()

	tk := m.Lock("/a.txt", ScopeExclusive, "alice", 24*time.Hour, "")
	assert.True(t, time.Until(tk.ExpiresAt) <= time.Minute+time.Second)
}

func TestSweep(t *testing.T) {
	m := New(0)
	defer m.Close()

	m.Lock("/a.txt", ScopeExclusive, "alice", time.Millisecond, "")
	m.Lock("/b.txt", ScopeExclusive, "alice", time.Minute, "")
	time.Sleep(5 * time.Millisecond)
	m.sweep()
	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Len(t, m.locks, 1)
	_, ok := m.locks["/b.txt"]
	assert.True(t, ok)
}
