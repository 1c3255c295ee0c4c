package service

import (
	"context"
	"encoding/json"
	"testing"

	"firecheck-be/internal/dto"
	"firecheck-be/internal/entity"
	"firecheck-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureDelivery struct {
	sent      map[uuid.UUID][][]byte
	broadcast map[uuid.UUID][][]byte
}

func newCaptureDelivery() *captureDelivery {
	return &captureDelivery{
		sent:      make(map[uuid.UUID][][]byte),
		broadcast: make(map[uuid.UUID][][]byte),
	}
}

func (d *captureDelivery) Send(userId uuid.UUID, payload []byte) {
	d.sent[userId] = append(d.sent[userId], payload)
}

func (d *captureDelivery) BroadcastToSession(sessionId uuid.UUID, payload []byte) {
	d.broadcast[sessionId] = append(d.broadcast[sessionId], payload)
}

type lockEnv struct {
	state    *fakeState
	delivery *captureDelivery
	svc      ILockService
}

func newLockEnv(t *testing.T) *lockEnv {
	t.Helper()
	state := newFakeState()
	delivery := newCaptureDelivery()
	svc := NewLockService(
		memory.NewCompartmentLockRegistry(),
		&fakeUowFactory{state: state},
		delivery,
		nopLogger{},
	)
	return &lockEnv{state: state, delivery: delivery, svc: svc}
}

func (env *lockEnv) addUser(name string) uuid.UUID {
	id := uuid.New()
	env.state.users[id] = &entity.User{Id: id, Name: name}
	return id
}

func TestLockAcquireAndContention(t *testing.T) {
	env := newLockEnv(t)
	ctx := context.Background()
	alice := env.addUser("Alice")
	bob := env.addUser("Bob")
	sessionId := uuid.New()
	subLocationId := uuid.New()

	req := &dto.AcquireLockRequest{SessionId: sessionId, SubLocationId: subLocationId}

	res, err := env.svc.Acquire(ctx, alice, req)
	require.NoError(t, err)
	assert.True(t, res.Acquired)

	// Re-acquiring one's own lock succeeds.
	res, err = env.svc.Acquire(ctx, alice, req)
	require.NoError(t, err)
	assert.True(t, res.Acquired)

	// Contention reports the holder instead of failing.
	res, err = env.svc.Acquire(ctx, bob, req)
	require.NoError(t, err)
	assert.False(t, res.Acquired)
	require.NotNil(t, res.HolderId)
	assert.Equal(t, alice, *res.HolderId)
	assert.Equal(t, "Alice", res.HolderName)

	// Acquisitions are broadcast to the session's viewers.
	assert.NotEmpty(t, env.delivery.broadcast[sessionId])
}

func TestLockReleaseByNonHolderIsNoOp(t *testing.T) {
	env := newLockEnv(t)
	ctx := context.Background()
	alice := env.addUser("Alice")
	bob := env.addUser("Bob")
	sessionId := uuid.New()
	subLocationId := uuid.New()

	_, err := env.svc.Acquire(ctx, alice, &dto.AcquireLockRequest{SessionId: sessionId, SubLocationId: subLocationId})
	require.NoError(t, err)

	err = env.svc.Release(ctx, bob, &dto.ReleaseLockRequest{SessionId: sessionId, SubLocationId: subLocationId})
	require.NoError(t, err)

	res, err := env.svc.Acquire(ctx, bob, &dto.AcquireLockRequest{SessionId: sessionId, SubLocationId: subLocationId})
	require.NoError(t, err)
	assert.False(t, res.Acquired, "Alice's lock must survive Bob's release")

	err = env.svc.Release(ctx, alice, &dto.ReleaseLockRequest{SessionId: sessionId, SubLocationId: subLocationId})
	require.NoError(t, err)

	res, err = env.svc.Acquire(ctx, bob, &dto.AcquireLockRequest{SessionId: sessionId, SubLocationId: subLocationId})
	require.NoError(t, err)
	assert.True(t, res.Acquired)
}

func TestLockTakeOverNotifiesDisplaced(t *testing.T) {
	env := newLockEnv(t)
	ctx := context.Background()
	alice := env.addUser("Alice")
	bob := env.addUser("Bob")
	sessionId := uuid.New()
	subLocationId := uuid.New()

	_, err := env.svc.Acquire(ctx, alice, &dto.AcquireLockRequest{SessionId: sessionId, SubLocationId: subLocationId})
	require.NoError(t, err)

	res, err := env.svc.TakeOver(ctx, bob, &dto.TakeOverLockRequest{SessionId: sessionId, SubLocationId: subLocationId})
	require.NoError(t, err)
	require.NotNil(t, res.PreviousHolderId)
	assert.Equal(t, alice, *res.PreviousHolderId)

	// Displaced user got a persistent notification and a push.
	require.Len(t, env.state.notifications, 1)
	assert.Equal(t, alice, env.state.notifications[0].UserId)
	assert.Equal(t, "LOCK_TAKEN_OVER", env.state.notifications[0].Type)
	assert.NotEmpty(t, env.delivery.sent[alice])

	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(env.delivery.sent[alice][0], &msg))
	assert.Contains(t, msg["message"], "Bob")
}

func TestLockTakeOverOfFreeSlot(t *testing.T) {
	env := newLockEnv(t)
	ctx := context.Background()
	bob := env.addUser("Bob")
	sessionId := uuid.New()

	res, err := env.svc.TakeOver(ctx, bob, &dto.TakeOverLockRequest{SessionId: sessionId, SubLocationId: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, res.PreviousHolderId)
	assert.Empty(t, env.state.notifications)
}

func TestLockListForSession(t *testing.T) {
	env := newLockEnv(t)
	ctx := context.Background()
	alice := env.addUser("Alice")
	sessionId := uuid.New()
	subA := uuid.New()
	subB := uuid.New()

	_, err := env.svc.Acquire(ctx, alice, &dto.AcquireLockRequest{SessionId: sessionId, SubLocationId: subA})
	require.NoError(t, err)
	_, err = env.svc.Acquire(ctx, alice, &dto.AcquireLockRequest{SessionId: sessionId, SubLocationId: subB})
	require.NoError(t, err)

	locks, err := env.svc.ListForSession(ctx, sessionId)
	require.NoError(t, err)
	assert.Len(t, locks, 2)
	for _, lock := range locks {
		require.NotNil(t, lock.HolderId)
		assert.Equal(t, alice, *lock.HolderId)
		assert.Equal(t, "Alice", lock.HolderName)
	}
}

func TestReleaseAllForUserOnDisconnect(t *testing.T) {
	env := newLockEnv(t)
	ctx := context.Background()
	alice := env.addUser("Alice")
	bob := env.addUser("Bob")
	sessionA := uuid.New()
	sessionB := uuid.New()

	_, err := env.svc.Acquire(ctx, alice, &dto.AcquireLockRequest{SessionId: sessionA, SubLocationId: uuid.New()})
	require.NoError(t, err)
	_, err = env.svc.Acquire(ctx, alice, &dto.AcquireLockRequest{SessionId: sessionB, SubLocationId: uuid.New()})
	require.NoError(t, err)
	_, err = env.svc.Acquire(ctx, bob, &dto.AcquireLockRequest{SessionId: sessionA, SubLocationId: uuid.New()})
	require.NoError(t, err)

	env.svc.ReleaseAllForUser(alice)

	locksA, err := env.svc.ListForSession(ctx, sessionA)
	require.NoError(t, err)
	require.Len(t, locksA, 1)
	assert.Equal(t, bob, *locksA[0].HolderId)

	locksB, err := env.svc.ListForSession(ctx, sessionB)
	require.NoError(t, err)
	assert.Empty(t, locksB)
}
