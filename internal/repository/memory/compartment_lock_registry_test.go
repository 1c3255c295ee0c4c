package memory

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireReleaseTakeOver(t *testing.T) {
	reg := NewCompartmentLockRegistry()
	session := uuid.New()
	compartment := uuid.New()
	userA := uuid.New()
	userB := uuid.New()

	require.True(t, reg.Acquire(session, compartment, userA))
	assert.True(t, reg.Acquire(session, compartment, userA), "re-acquire by holder must be idempotent")
	assert.False(t, reg.Acquire(session, compartment, userB), "acquire against a held slot must fail")

	// Releasing a lock you do not hold is silently ignored.
	reg.Release(session, compartment, userB)
	lock := reg.Get(session, compartment)
	require.NotNil(t, lock)
	assert.Equal(t, userA, lock.HolderId)

	previous := reg.TakeOver(session, compartment, userB)
	require.NotNil(t, previous)
	assert.Equal(t, userA, *previous)

	lock = reg.Get(session, compartment)
	require.NotNil(t, lock)
	assert.Equal(t, userB, lock.HolderId)

	reg.Release(session, compartment, userB)
	assert.Nil(t, reg.Get(session, compartment))
}

func TestTakeOverIsTotal(t *testing.T) {
	reg := NewCompartmentLockRegistry()
	session := uuid.New()
	compartment := uuid.New()
	user := uuid.New()

	// Taking over a free slot succeeds and reports no previous holder.
	previous := reg.TakeOver(session, compartment, user)
	assert.Nil(t, previous)
	require.NotNil(t, reg.Get(session, compartment))

	// Taking over your own lock reports no displaced holder either.
	previous = reg.TakeOver(session, compartment, user)
	assert.Nil(t, previous)
}

func TestListForSession(t *testing.T) {
	reg := NewCompartmentLockRegistry()
	session := uuid.New()
	other := uuid.New()
	cab := uuid.New()
	pump := uuid.New()
	userA := uuid.New()
	userB := uuid.New()

	require.True(t, reg.Acquire(session, cab, userA))
	require.True(t, reg.Acquire(session, pump, userB))
	require.True(t, reg.Acquire(other, cab, userB))

	snapshot := reg.ListForSession(session)
	assert.Len(t, snapshot, 2)
	assert.Equal(t, userA, snapshot[cab])
	assert.Equal(t, userB, snapshot[pump])

	// Snapshot is detached from the registry.
	delete(snapshot, cab)
	assert.NotNil(t, reg.Get(session, cab))
}

func TestReleaseAllForUser(t *testing.T) {
	reg := NewCompartmentLockRegistry()
	sessionA := uuid.New()
	sessionB := uuid.New()
	user := uuid.New()
	other := uuid.New()

	require.True(t, reg.Acquire(sessionA, uuid.New(), user))
	require.True(t, reg.Acquire(sessionB, uuid.New(), user))
	keptCompartment := uuid.New()
	require.True(t, reg.Acquire(sessionA, keptCompartment, other))

	reg.ReleaseAllForUser(user)

	assert.Empty(t, reg.ListForSession(sessionB))
	snapshot := reg.ListForSession(sessionA)
	assert.Len(t, snapshot, 1)
	assert.Equal(t, other, snapshot[keptCompartment])
}

func TestClearForSession(t *testing.T) {
	reg := NewCompartmentLockRegistry()
	session := uuid.New()
	survivor := uuid.New()
	user := uuid.New()

	require.True(t, reg.Acquire(session, uuid.New(), user))
	require.True(t, reg.Acquire(session, uuid.New(), user))
	require.True(t, reg.Acquire(survivor, uuid.New(), user))

	reg.ClearForSession(session)

	assert.Empty(t, reg.ListForSession(session))
	assert.Len(t, reg.ListForSession(survivor), 1)
}

func TestConcurrentAcquireGrantsExactlyOne(t *testing.T) {
	reg := NewCompartmentLockRegistry()
	session := uuid.New()
	compartment := uuid.New()

	const contenders = 32
	users := make([]uuid.UUID, contenders)
	for i := range users {
		users[i] = uuid.New()
	}

	var wg sync.WaitGroup
	wins := make(chan uuid.UUID, contenders)
	start := make(chan struct{})

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(u uuid.UUID) {
			defer wg.Done()
			<-start
			if reg.Acquire(session, compartment, u) {
				wins <- u
			}
		}(users[i])
	}

	close(start)
	wg.Wait()
	close(wins)

	var winners []uuid.UUID
	for w := range wins {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1, "exactly one contender must win")

	lock := reg.Get(session, compartment)
	require.NotNil(t, lock)
	assert.Equal(t, winners[0], lock.HolderId, "Get must report the winner")
}

func TestConcurrentMixedOperations(t *testing.T) {
	// Hammer the registry from many goroutines; run with -race.
	reg := NewCompartmentLockRegistry()
	sessions := []uuid.UUID{uuid.New(), uuid.New()}
	compartments := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := sessions[i%len(sessions)]
			c := compartments[i%len(compartments)]
			u := users[i%len(users)]
			switch i % 5 {
			case 0:
				reg.Acquire(s, c, u)
			case 1:
				reg.Release(s, c, u)
			case 2:
				reg.TakeOver(s, c, u)
			case 3:
				reg.ListForSession(s)
			case 4:
				reg.ReleaseAllForUser(u)
			}
		}(i)
	}
	wg.Wait()

	// Registry must still be internally consistent.
	for _, s := range sessions {
		for c, holder := range reg.ListForSession(s) {
			lock := reg.Get(s, c)
			require.NotNil(t, lock)
			assert.Equal(t, holder, lock.HolderId)
		}
	}
}
