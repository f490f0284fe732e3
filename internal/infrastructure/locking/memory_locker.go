// Package locking serializes claim submissions so at most one export is in
// flight per claim.
package locking

import (
	"context"
	"sync"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/google/uuid"
)

// MemoryLocker is an in-process claim locker. Suitable for single-instance
// deployments; distributed deployments should use RedisLocker.
type MemoryLocker struct {
	mu     sync.Mutex
	locked map[uuid.UUID]struct{}
}

// NewMemoryLocker creates an in-process claim locker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		locked: make(map[uuid.UUID]struct{}),
	}
}

// TryLock acquires the per-claim lock without blocking. The returned release
// function is idempotent.
func (l *MemoryLocker) TryLock(_ context.Context, claimID uuid.UUID) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.locked[claimID]; held {
		return nil, claims.ErrExportInProgress
	}
	l.locked[claimID] = struct{}{}

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			delete(l.locked, claimID)
		})
	}
	return release, nil
}

var _ appclaims.ClaimLocker = (*MemoryLocker)(nil)
