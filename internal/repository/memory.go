package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

type memoryEntry struct {
	snapshot  gomoku.Snapshot
	expiresAt time.Time
}

type memorySession struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemorySessionRepository keeps snapshots in process memory with the same
// expiry rules as the Redis repository.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return newMemorySessionRepository(ttl, time.Now)
}

func newMemorySessionRepository(ttl time.Duration, now func() time.Time) *memorySession {
	return &memorySession{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, id string, snapshot gomoku.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	that.evictExpired(now)

	entry := memoryEntry{snapshot: copySnapshot(snapshot)}
	if that.ttl > 0 {
		entry.expiresAt = now.Add(that.ttl)
	}
	that.entries[id] = entry

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (gomoku.Snapshot, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entry, ok := that.entries[id]
	if !ok || entry.expired(that.now()) {
		return gomoku.Snapshot{}, apperror.ErrSessionNotFound
	}

	return copySnapshot(entry.snapshot), nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.entries[id]
	if !ok || entry.expired(that.now()) {
		delete(that.entries, id)
		return apperror.ErrSessionNotFound
	}

	delete(that.entries, id)

	return nil
}

// evictExpired must be called with the write lock held.
func (that *memorySession) evictExpired(now time.Time) {
	for id, entry := range that.entries {
		if entry.expired(now) {
			delete(that.entries, id)
		}
	}
}

func (that memoryEntry) expired(now time.Time) bool {
	return !that.expiresAt.IsZero() && !now.Before(that.expiresAt)
}

// boards are immutable, only the slice needs copying.
func copySnapshot(snapshot gomoku.Snapshot) gomoku.Snapshot {
	snapshot.History = append([]entity.Board(nil), snapshot.History...)
	return snapshot
}
