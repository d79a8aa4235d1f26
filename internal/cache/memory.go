package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// DefaultMaxEntries bounds the in-process cache
const DefaultMaxEntries = 10000

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process cache. Values are stored JSON encoded so callers
// get the same copy semantics as the Redis backend.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

// NewMemory creates an empty in-process cache holding up to
// DefaultMaxEntries values
func NewMemory() *Memory {
	return NewMemoryWithLimit(DefaultMaxEntries)
}

// NewMemoryWithLimit creates an empty in-process cache. When full, Set drops
// expired entries first and then the entry closest to expiry.
func NewMemoryWithLimit(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		// a Set may have replaced the entry since the read lock was released
		if current, ok := m.entries[key]; ok && !m.now().Before(current.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.value, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.sweepLocked(now)
		if len(m.entries) >= m.maxEntries {
			m.evictSoonestLocked()
		}
	}
	m.entries[key] = memoryEntry{value: b, expiresAt: now.Add(ttl)}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

// Sweep removes expired entries and returns how many were dropped
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(m.now())
}

// Run sweeps expired entries every interval until ctx is done
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Len returns the number of stored entries, expired ones included
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) sweepLocked(now time.Time) int {
	removed := 0
	for key, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

func (m *Memory) evictSoonestLocked() {
	var (
		victim  string
		soonest time.Time
		found   bool
	)
	for key, entry := range m.entries {
		if !found || entry.expiresAt.Before(soonest) {
			victim, soonest, found = key, entry.expiresAt, true
		}
	}
	if found {
		delete(m.entries, victim)
	}
}
