package memory

import (
	"sync"
	"time"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/repository/contract"

	"github.com/google/uuid"
)

// CompartmentLockRegistry is the in-process lock coordinator. A single
// registry-wide mutex over nested maps is enough: contention is a handful
// of inspectors at one station, and every operation is a short critical
// section. Locks are advisory and vanish on restart; the next Acquire
// simply succeeds.
type CompartmentLockRegistry struct {
	mu    sync.RWMutex
	locks map[uuid.UUID]map[uuid.UUID]entity.CompartmentLock // sessionId -> subLocationId -> lock
	clock func() time.Time
}

func NewCompartmentLockRegistry() contract.CompartmentLockRegistry {
	return &CompartmentLockRegistry{
		locks: make(map[uuid.UUID]map[uuid.UUID]entity.CompartmentLock),
		clock: time.Now,
	}
}

// NewCompartmentLockRegistryWithClock injects a clock for deterministic tests.
func NewCompartmentLockRegistryWithClock(clock func() time.Time) contract.CompartmentLockRegistry {
	return &CompartmentLockRegistry{
		locks: make(map[uuid.UUID]map[uuid.UUID]entity.CompartmentLock),
		clock: clock,
	}
}

func (r *CompartmentLockRegistry) Acquire(sessionId, subLocationId, userId uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.locks[sessionId]
	if !ok {
		session = make(map[uuid.UUID]entity.CompartmentLock)
		r.locks[sessionId] = session
	}

	if existing, held := session[subLocationId]; held {
		// Idempotent re-acquire keeps the original acquisition time.
		return existing.HolderId == userId
	}

	session[subLocationId] = entity.CompartmentLock{
		SessionId:     sessionId,
		SubLocationId: subLocationId,
		HolderId:      userId,
		AcquiredAt:    r.clock(),
	}
	return true
}

func (r *CompartmentLockRegistry) Release(sessionId, subLocationId, userId uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.locks[sessionId]
	if !ok {
		return
	}
	existing, held := session[subLocationId]
	if !held || existing.HolderId != userId {
		return
	}
	delete(session, subLocationId)
	if len(session) == 0 {
		delete(r.locks, sessionId)
	}
}

func (r *CompartmentLockRegistry) Get(sessionId, subLocationId uuid.UUID) *entity.CompartmentLock {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.locks[sessionId]
	if !ok {
		return nil
	}
	lock, held := session[subLocationId]
	if !held {
		return nil
	}
	return &lock
}

func (r *CompartmentLockRegistry) TakeOver(sessionId, subLocationId, newUserId uuid.UUID) *uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.locks[sessionId]
	if !ok {
		session = make(map[uuid.UUID]entity.CompartmentLock)
		r.locks[sessionId] = session
	}

	var previous *uuid.UUID
	if existing, held := session[subLocationId]; held && existing.HolderId != newUserId {
		holder := existing.HolderId
		previous = &holder
	}

	session[subLocationId] = entity.CompartmentLock{
		SessionId:     sessionId,
		SubLocationId: subLocationId,
		HolderId:      newUserId,
		AcquiredAt:    r.clock(),
	}
	return previous
}

func (r *CompartmentLockRegistry) ListForSession(sessionId uuid.UUID) map[uuid.UUID]uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[uuid.UUID]uuid.UUID)
	for subLocationId, lock := range r.locks[sessionId] {
		snapshot[subLocationId] = lock.HolderId
	}
	return snapshot
}

func (r *CompartmentLockRegistry) ReleaseAllForUser(userId uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for sessionId, session := range r.locks {
		for subLocationId, lock := range session {
			if lock.HolderId == userId {
				delete(session, subLocationId)
			}
		}
		if len(session) == 0 {
			delete(r.locks, sessionId)
		}
	}
}

func (r *CompartmentLockRegistry) ClearForSession(sessionId uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, sessionId)
}
