package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"firecheck-be/internal/dto"
	"firecheck-be/internal/entity"
	"firecheck-be/internal/pkg/logger"
	"firecheck-be/internal/repository/contract"
	"firecheck-be/internal/repository/memory"
	"firecheck-be/internal/repository/specification"
	"firecheck-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- In-memory doubles -------------------------------------------------

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

type capturePublisher struct {
	published [][]byte
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	p.published = append(p.published, payload)
	return nil
}

// fakeState is the shared backing store every unit of work sees, standing in
// for the database.
type fakeState struct {
	sessions        map[uuid.UUID]entity.InspectionSession
	outcomes        map[uuid.UUID][]entity.OutcomeRecord
	units           map[uuid.UUID]*entity.Unit
	users           map[uuid.UUID]*entity.User
	notifications   []*entity.Notification
	equipmentCount  int64
	consumableCount int64
}

func newFakeState() *fakeState {
	return &fakeState{
		sessions: make(map[uuid.UUID]entity.InspectionSession),
		outcomes: make(map[uuid.UUID][]entity.OutcomeRecord),
		units:    make(map[uuid.UUID]*entity.Unit),
		users:    make(map[uuid.UUID]*entity.User),
	}
}

type fakeUowFactory struct{ state *fakeState }

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{state: f.state}
}

type fakeUow struct{ state *fakeState }

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) InspectionSessionRepository() contract.InspectionSessionRepository {
	return &fakeSessionRepo{state: u.state}
}
func (u *fakeUow) OutcomeRepository() contract.OutcomeRepository {
	return &fakeOutcomeRepo{state: u.state}
}
func (u *fakeUow) UnitRepository() contract.UnitRepository {
	return &fakeUnitRepo{state: u.state}
}
func (u *fakeUow) SubLocationRepository() contract.SubLocationRepository { return nil }
func (u *fakeUow) EquipmentItemRepository() contract.EquipmentItemRepository {
	return &fakeEquipmentRepo{state: u.state}
}
func (u *fakeUow) ConsumableStockRepository() contract.ConsumableStockRepository {
	return &fakeConsumableRepo{state: u.state}
}
func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{state: u.state}
}
func (u *fakeUow) IssueTicketRepository() contract.IssueTicketRepository { return nil }
func (u *fakeUow) NotificationRepository() contract.NotificationRepository {
	return &fakeNotificationRepo{state: u.state}
}

type sessionFilter struct {
	id      *uuid.UUID
	unitId  *uuid.UUID
	kind    string
	status  string
	cutoff  *time.Time
	station *uuid.UUID
}

func parseSessionSpecs(specs []specification.Specification) sessionFilter {
	var f sessionFilter
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			f.id = &id
		case specification.ByUnitID:
			id := s.UnitID
			f.unitId = &id
		case specification.ByStationID:
			id := s.StationID
			f.station = &id
		case specification.ByKind:
			f.kind = s.Kind
		case specification.BySessionStatus:
			f.status = s.Status
		case specification.IdleSince:
			c := s.Cutoff
			f.cutoff = &c
		}
	}
	return f
}

func sessionStatus(s entity.InspectionSession) string {
	switch s.(type) {
	case entity.ActiveSession:
		return "active"
	case entity.CompletedSession:
		return "completed"
	default:
		return "abandoned"
	}
}

func (f sessionFilter) matches(s entity.InspectionSession) bool {
	if f.id != nil && s.Id() != *f.id {
		return false
	}
	if f.unitId != nil && s.UnitId() != *f.unitId {
		return false
	}
	if f.station != nil && s.StationId() != *f.station {
		return false
	}
	if f.kind != "" && string(s.Kind()) != f.kind {
		return false
	}
	if f.status != "" && sessionStatus(s) != f.status {
		return false
	}
	if f.cutoff != nil {
		active, ok := s.(entity.ActiveSession)
		if !ok || !active.LastActivityAt().Before(*f.cutoff) {
			return false
		}
	}
	return true
}

type fakeSessionRepo struct{ state *fakeState }

func (r *fakeSessionRepo) Create(ctx context.Context, session entity.InspectionSession) error {
	r.state.sessions[session.Id()] = session
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session entity.InspectionSession) error {
	r.state.sessions[session.Id()] = session
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (entity.InspectionSession, error) {
	f := parseSessionSpecs(specs)
	var best entity.InspectionSession
	for _, s := range r.state.sessions {
		if !f.matches(s) {
			continue
		}
		if best == nil {
			best = s
			continue
		}
		// Newest abandonment wins when several rows match.
		a, aok := s.(entity.AbandonedSession)
		b, bok := best.(entity.AbandonedSession)
		if aok && bok && a.AbandonedAt().After(b.AbandonedAt()) {
			best = s
		}
	}
	return best, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.InspectionSession, error) {
	f := parseSessionSpecs(specs)
	var result []entity.InspectionSession
	for _, s := range r.state.sessions {
		if f.matches(s) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeSessionRepo) FindActiveByUnit(ctx context.Context, unitId uuid.UUID, kind entity.InspectionKind) (*entity.ActiveSession, error) {
	for _, s := range r.state.sessions {
		active, ok := s.(entity.ActiveSession)
		if ok && active.UnitId() == unitId && active.Kind() == kind {
			return &active, nil
		}
	}
	return nil, nil
}

type fakeOutcomeRepo struct{ state *fakeState }

func (r *fakeOutcomeRepo) Create(ctx context.Context, sessionId uuid.UUID, outcome entity.OutcomeRecord) error {
	r.state.outcomes[sessionId] = append(r.state.outcomes[sessionId], outcome)
	return nil
}

func (r *fakeOutcomeRepo) HasOutcome(ctx context.Context, sessionId uuid.UUID, targetKey string) (bool, error) {
	for _, o := range r.state.outcomes[sessionId] {
		if o.Target().Key() == targetKey {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOutcomeRepo) FindBySession(ctx context.Context, sessionId uuid.UUID) ([]entity.OutcomeRecord, error) {
	return r.state.outcomes[sessionId], nil
}

func (r *fakeOutcomeRepo) CountBySession(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	return int64(len(r.state.outcomes[sessionId])), nil
}

type fakeUnitRepo struct{ state *fakeState }

func (r *fakeUnitRepo) Create(ctx context.Context, unit *entity.Unit) error {
	r.state.units[unit.Id] = unit
	return nil
}
func (r *fakeUnitRepo) Update(ctx context.Context, unit *entity.Unit) error { return nil }
func (r *fakeUnitRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Unit, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.state.units[byId.ID], nil
		}
	}
	return nil, nil
}
func (r *fakeUnitRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Unit, error) {
	return nil, nil
}

type fakeEquipmentRepo struct{ state *fakeState }

func (r *fakeEquipmentRepo) Create(ctx context.Context, item *entity.EquipmentItem) error { return nil }
func (r *fakeEquipmentRepo) Update(ctx context.Context, item *entity.EquipmentItem) error { return nil }
func (r *fakeEquipmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EquipmentItem, error) {
	return nil, nil
}
func (r *fakeEquipmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EquipmentItem, error) {
	return nil, nil
}
func (r *fakeEquipmentRepo) CountByUnit(ctx context.Context, unitId uuid.UUID) (int64, error) {
	return r.state.equipmentCount, nil
}

type fakeConsumableRepo struct{ state *fakeState }

func (r *fakeConsumableRepo) Create(ctx context.Context, stock *entity.ConsumableStock) error { return nil }
func (r *fakeConsumableRepo) Update(ctx context.Context, stock *entity.ConsumableStock) error { return nil }
func (r *fakeConsumableRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConsumableStock, error) {
	return nil, nil
}
func (r *fakeConsumableRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConsumableStock, error) {
	return nil, nil
}
func (r *fakeConsumableRepo) CountByUnit(ctx context.Context, unitId uuid.UUID) (int64, error) {
	return r.state.consumableCount, nil
}

type fakeUserRepo struct{ state *fakeState }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.state.users[user.Id] = user
	return nil
}
func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.state.users[byId.ID], nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}

type fakeNotificationRepo struct{ state *fakeState }

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	r.state.notifications = append(r.state.notifications, notification)
	return nil
}
func (r *fakeNotificationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	return r.state.notifications, nil
}
func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userId uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, id uuid.UUID) error      { return nil }
func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error { return nil }

// ---- Test environment --------------------------------------------------

type inspectionEnv struct {
	state          *fakeState
	lockRegistry   contract.CompartmentLockRegistry
	resumeRegistry *memory.ResumeWindowRegistry
	issues         *capturePublisher
	unitId         uuid.UUID
	inspectorId    uuid.UUID
	stationId      uuid.UUID
}

func newInspectionEnv(t *testing.T, equipment, consumables int64) *inspectionEnv {
	t.Helper()
	state := newFakeState()
	env := &inspectionEnv{
		state:          state,
		lockRegistry:   memory.NewCompartmentLockRegistry(),
		resumeRegistry: memory.NewResumeWindowRegistry(30 * time.Minute),
		issues:         &capturePublisher{},
		unitId:         uuid.New(),
		inspectorId:    uuid.New(),
		stationId:      uuid.New(),
	}
	state.equipmentCount = equipment
	state.consumableCount = consumables
	state.units[env.unitId] = &entity.Unit{
		Id:        env.unitId,
		StationId: env.stationId,
		Name:      "Engine 12",
		CallSign:  "E12",
		UnitType:  "engine",
		InService: true,
	}
	return env
}

func (env *inspectionEnv) auditService() IInspectionService {
	return NewAuditService(
		entity.FormalAuditPolicy(0),
		&fakeUowFactory{state: env.state},
		env.lockRegistry,
		env.issues,
		nil,
		nopLogger{},
	)
}

func (env *inspectionEnv) shiftCheckService() IInspectionService {
	return NewShiftCheckService(
		entity.ShiftCheckPolicy(0, 0),
		&fakeUowFactory{state: env.state},
		env.lockRegistry,
		env.resumeRegistry,
		env.issues,
		nil,
		nopLogger{},
	)
}

func equipmentOutcome(status string) *dto.RecordOutcomeRequest {
	id := uuid.New()
	return &dto.RecordOutcomeRequest{EquipmentId: &id, Status: status}
}

// ---- Tests -------------------------------------------------------------

func TestStartSessionCountsManifest(t *testing.T) {
	env := newInspectionEnv(t, 3, 2)
	svc := env.auditService()

	res, err := svc.Start(context.Background(), env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	assert.Equal(t, "active", res.Status)
	assert.Equal(t, "formal_audit", res.Kind)
	assert.Equal(t, 5, res.Progress.TotalItems)
	assert.False(t, res.Resumed)
	assert.Len(t, env.state.sessions, 1)
}

func TestStartSessionUnknownUnit(t *testing.T) {
	env := newInspectionEnv(t, 1, 0)
	svc := env.auditService()

	_, err := svc.Start(context.Background(), env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartSessionRejectsSecondActive(t *testing.T) {
	env := newInspectionEnv(t, 2, 0)
	svc := env.auditService()
	ctx := context.Background()

	_, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	_, err = svc.Start(ctx, uuid.New(), env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	var exists *entity.ActiveSessionExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, env.unitId, exists.UnitId)

	// A different ceremony on the same unit is allowed.
	_, err = env.shiftCheckService().Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	assert.NoError(t, err)
}

func TestRecordOutcomeAdvancesProgress(t *testing.T) {
	env := newInspectionEnv(t, 3, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	res, err := svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("verified"))
	require.NoError(t, err)
	assert.False(t, res.IssueRaised)
	assert.Equal(t, 1, res.Progress.CompletedCount)
	assert.Equal(t, 0, res.Progress.IssueCount)
	assert.Empty(t, env.issues.published)
}

func TestRecordOutcomeDuplicateTarget(t *testing.T) {
	env := newInspectionEnv(t, 3, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	req := equipmentOutcome("verified")
	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, req)
	require.NoError(t, err)

	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, req)
	var dup *entity.DuplicateOutcomeError
	require.ErrorAs(t, err, &dup)
	assert.Contains(t, dup.TargetKey, "equipment:")
}

func TestRecordOutcomePublishesIssue(t *testing.T) {
	env := newInspectionEnv(t, 3, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	res, err := svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("missing"))
	require.NoError(t, err)
	assert.True(t, res.IssueRaised)
	assert.Equal(t, 1, res.Progress.IssueCount)

	require.Len(t, env.issues.published, 1)
	var msg dto.RaiseIssueMessage
	require.NoError(t, json.Unmarshal(env.issues.published[0], &msg))
	assert.Equal(t, started.Id, msg.SessionId)
	assert.Equal(t, env.stationId, msg.StationId)
	assert.Equal(t, "MISSING", msg.Category)
	assert.Equal(t, "HIGH", msg.Severity)
}

func TestRecordOutcomeForeignInspector(t *testing.T) {
	env := newInspectionEnv(t, 3, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	_, err = svc.RecordOutcome(ctx, uuid.New(), started.Id, equipmentOutcome("verified"))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCompleteRequiresFullCoverage(t *testing.T) {
	env := newInspectionEnv(t, 2, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("verified"))
	require.NoError(t, err)

	_, err = svc.Complete(ctx, env.inspectorId, started.Id)
	var incomplete *entity.IncompleteSessionError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 1, incomplete.Remaining)

	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("verified"))
	require.NoError(t, err)

	res, err := svc.Complete(ctx, env.inspectorId, started.Id)
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Status)
	require.NotNil(t, res.CompletedAt)

	// Terminal sessions accept no further outcomes.
	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("verified"))
	assert.True(t, errors.Is(err, entity.ErrSessionNotActive))
}

func TestCompleteClearsSessionLocks(t *testing.T) {
	env := newInspectionEnv(t, 1, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	subLocationId := uuid.New()
	require.True(t, env.lockRegistry.Acquire(started.Id, subLocationId, env.inspectorId))

	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("verified"))
	require.NoError(t, err)
	_, err = svc.Complete(ctx, env.inspectorId, started.Id)
	require.NoError(t, err)

	assert.Empty(t, env.lockRegistry.ListForSession(started.Id))
}

func TestPauseResumeTransitions(t *testing.T) {
	env := newInspectionEnv(t, 2, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	paused, err := svc.Pause(ctx, env.inspectorId, started.Id)
	require.NoError(t, err)
	assert.NotNil(t, paused.PausedAt)

	_, err = svc.Pause(ctx, env.inspectorId, started.Id)
	assert.ErrorIs(t, err, entity.ErrAlreadyPaused)

	resumed, err := svc.Resume(ctx, env.inspectorId, started.Id)
	require.NoError(t, err)
	assert.Nil(t, resumed.PausedAt)

	_, err = svc.Resume(ctx, env.inspectorId, started.Id)
	assert.ErrorIs(t, err, entity.ErrNotPaused)
}

func TestAbandonKeepsPartialProgress(t *testing.T) {
	env := newInspectionEnv(t, 3, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)
	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("verified"))
	require.NoError(t, err)

	res, err := svc.Abandon(ctx, env.inspectorId, started.Id, &dto.AbandonSessionRequest{Reason: "alarm call"})
	require.NoError(t, err)
	assert.Equal(t, "abandoned", res.Status)
	assert.Equal(t, "alarm call", res.Reason)
	assert.Equal(t, 1, res.Progress.CompletedCount)
	require.NotNil(t, res.AbandonedAt)
}

func TestShiftCheckResumeCarriesCounters(t *testing.T) {
	env := newInspectionEnv(t, 4, 0)
	svc := env.shiftCheckService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("present"))
	require.NoError(t, err)
	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("missing"))
	require.NoError(t, err)

	_, err = svc.Abandon(ctx, env.inspectorId, started.Id, &dto.AbandonSessionRequest{Reason: "shift change"})
	require.NoError(t, err)

	fresh, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)
	assert.True(t, fresh.Resumed)
	assert.NotEqual(t, started.Id, fresh.Id)
	assert.Equal(t, 2, fresh.Progress.CompletedCount)
	assert.Equal(t, 1, fresh.Progress.IssueCount)

	// The old session stays terminal.
	old, err := svc.Show(ctx, started.Id)
	require.NoError(t, err)
	assert.Equal(t, "abandoned", old.Status)
}

func TestShiftCheckResumeIsSingleUse(t *testing.T) {
	env := newInspectionEnv(t, 4, 0)
	svc := env.shiftCheckService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)
	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("present"))
	require.NoError(t, err)
	_, err = svc.Abandon(ctx, env.inspectorId, started.Id, &dto.AbandonSessionRequest{Reason: "shift change"})
	require.NoError(t, err)

	first, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)
	require.True(t, first.Resumed)

	_, err = svc.Abandon(ctx, env.inspectorId, first.Id, &dto.AbandonSessionRequest{Reason: "again"})
	require.NoError(t, err)
	// Abandoning the resumed session with one completed item re-arms the
	// window with its own counters, not the original's.
	second, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)
	assert.True(t, second.Resumed)
	assert.Equal(t, 1, second.Progress.CompletedCount)
}

func TestShiftCheckResumeDeniedToOtherInspector(t *testing.T) {
	env := newInspectionEnv(t, 4, 0)
	svc := env.shiftCheckService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)
	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("present"))
	require.NoError(t, err)
	_, err = svc.Abandon(ctx, env.inspectorId, started.Id, &dto.AbandonSessionRequest{Reason: "shift change"})
	require.NoError(t, err)

	other, err := svc.Start(ctx, uuid.New(), env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)
	assert.False(t, other.Resumed)
	assert.Equal(t, 0, other.Progress.CompletedCount)
}

func TestAuditAbandonIsFinal(t *testing.T) {
	env := newInspectionEnv(t, 4, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)
	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("verified"))
	require.NoError(t, err)
	_, err = svc.Abandon(ctx, env.inspectorId, started.Id, &dto.AbandonSessionRequest{Reason: "called out"})
	require.NoError(t, err)

	fresh, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)
	assert.False(t, fresh.Resumed)
	assert.Equal(t, 0, fresh.Progress.CompletedCount)
}

func TestRecordUnexpectedItem(t *testing.T) {
	env := newInspectionEnv(t, 2, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	req := equipmentOutcome("damaged")
	req.Unexpected = true
	res, err := svc.RecordOutcome(ctx, env.inspectorId, started.Id, req)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Progress.CompletedCount)
	assert.Equal(t, 1, res.Progress.UnexpectedCount)
	assert.Equal(t, 1, res.Progress.IssueCount)
}

func TestRecordOutcomeTargetRequired(t *testing.T) {
	env := newInspectionEnv(t, 2, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)

	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, &dto.RecordOutcomeRequest{Status: "verified"})
	var invalid *entity.InvalidTargetError
	assert.ErrorAs(t, err, &invalid)
}

func TestListOutcomesAndSessions(t *testing.T) {
	env := newInspectionEnv(t, 2, 0)
	svc := env.auditService()
	ctx := context.Background()

	started, err := svc.Start(ctx, env.inspectorId, env.stationId, &dto.StartSessionRequest{UnitId: env.unitId})
	require.NoError(t, err)
	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("verified"))
	require.NoError(t, err)
	_, err = svc.RecordOutcome(ctx, env.inspectorId, started.Id, equipmentOutcome("expired"))
	require.NoError(t, err)

	outcomes, err := svc.ListOutcomes(ctx, started.Id)
	require.NoError(t, err)
	assert.Len(t, outcomes, 2)

	sessions, err := svc.List(ctx, env.stationId, &dto.ListSessionsRequest{Status: "active"})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, started.Id, sessions[0].Id)

	none, err := svc.List(ctx, uuid.New(), &dto.ListSessionsRequest{})
	require.NoError(t, err)
	assert.Empty(t, none)
}
