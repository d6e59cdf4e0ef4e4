package lockmgr

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager keeps one live lock token per path. Locking here is a
// compatibility shim for clients that refuse to mount a share without
// class-2 support (the macOS WebDAV client in particular): LOCK is
// granted unconditionally once token bookkeeping succeeds and no
// mutual exclusion is enforced against concurrent writers.
type Manager struct {
	mu      sync.Mutex
	locks   map[string]*Token
	def     time.Duration
	max     time.Duration
	done    chan struct{}
	swept   sync.Once
	sweepIv time.Duration
}

type Scope string

const (
	ScopeExclusive Scope = "exclusive"
	ScopeShared    Scope = "shared"
)

// Token proves ownership of a lock on Path until ExpiresAt.
type Token struct {
	ID        string
	Path      string
	Scope     Scope
	Owner     string
	ExpiresAt time.Time
}

var (
	ErrNotLocked     = errors.New("no live lock on path")
	ErrTokenMismatch = errors.New("lock token does not match")
)

const (
	defaultLockTimeout = 10 * time.Minute
	defaultMaxTimeout  = 24 * time.Hour
	sweepInterval      = time.Minute
)

func New(max time.Duration) *Manager {
	if max <= 0 {
		max = defaultMaxTimeout
	}
	m := &Manager{
		locks:   make(map[string]*Token),
		def:     defaultLockTimeout,
		max:     max,
		done:    make(chan struct{}),
		sweepIv: sweepInterval,
	}
	go m.sweepLoop()
	return m
}

func (m *Manager) Close() {
	m.swept.Do(func() { close(m.done) })
}

// Lock grants or refreshes the lock on path. If a live token exists
// and the caller presented it, its expiry is extended; if a live token
// exists and the caller presented anything else, the existing token is
// returned unchanged. Otherwise a fresh token is issued.
func (m *Manager) Lock(path string, scope Scope, owner string, timeoutHint time.Duration, presented string) *Token {
	timeout := m.clamp(timeoutHint)
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.locks[path]; ok && now.Before(t.ExpiresAt) {
		if presented != "" && presented == t.ID {
			t.ExpiresAt = now.Add(timeout)
		}
		cp := *t
		return &cp
	}
	t := &Token{
		ID:        "urn:uuid:" + uuid.NewString(),
		Path:      path,
		Scope:     scope,
		Owner:     owner,
		ExpiresAt: now.Add(timeout),
	}
	m.locks[path] = t
	cp := *t
	return &cp
}

// Unlock releases the lock on path. It fails with ErrNotLocked when no
// live token exists and with ErrTokenMismatch when the presented token
// is not the live one.
func (m *Manager) Unlock(path string, token string) error {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.locks[path]
	if ok && !now.Before(t.ExpiresAt) {
		delete(m.locks, path)
		ok = false
	}
	if !ok {
		return ErrNotLocked
	}
	if t.ID != token {
		return ErrTokenMismatch
	}
	delete(m.locks, path)
	return nil
}

// Get reports the live token on path, if any.
func (m *Manager) Get(path string) (*Token, bool) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.locks[path]
	if !ok {
		return nil, false
	}
	if !now.Before(t.ExpiresAt) {
		delete(m.locks, path)
		return nil, false
	}
	cp := *t
	return &cp, true
}

func (m *Manager) clamp(d time.Duration) time.Duration {
	if d <= 0 {
		return m.def
	}
	if d > m.max {
		return m.max
	}
	return d
}

func (m *Manager) sweepLoop() {
	tick := time.NewTicker(m.sweepIv)
	defer tick.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-tick.C:
			m.sweep()
		}
	}
}

func (m *Manager) sweep() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for path, t := range m.locks {
		if !now.Before(t.ExpiresAt) {
			delete(m.locks, path)
		}
	}
}
