package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"firecheck-be/internal/dto"
	"firecheck-be/internal/entity"
	"firecheck-be/internal/pkg/logger"
	"firecheck-be/internal/repository/contract"
	"firecheck-be/internal/repository/memory"
	"firecheck-be/internal/repository/specification"
	"firecheck-be/internal/repository/unitofwork"
	"firecheck-be/pkg/events"
	pktNats "firecheck-be/pkg/nats"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("resource not found")
var ErrForbidden = errors.New("session belongs to another inspector")

// IInspectionService drives one inspection ceremony. The formal audit and
// the shift check share the lifecycle; the injected policy decides staleness
// thresholds and whether an abandoned session can be resumed.
type IInspectionService interface {
	Start(ctx context.Context, inspectorId, stationId uuid.UUID, req *dto.StartSessionRequest) (*dto.SessionResponse, error)
	RecordOutcome(ctx context.Context, inspectorId, sessionId uuid.UUID, req *dto.RecordOutcomeRequest) (*dto.OutcomeResponse, error)
	Pause(ctx context.Context, inspectorId, sessionId uuid.UUID) (*dto.SessionResponse, error)
	Resume(ctx context.Context, inspectorId, sessionId uuid.UUID) (*dto.SessionResponse, error)
	Complete(ctx context.Context, inspectorId, sessionId uuid.UUID) (*dto.SessionResponse, error)
	Abandon(ctx context.Context, inspectorId, sessionId uuid.UUID, req *dto.AbandonSessionRequest) (*dto.SessionResponse, error)
	Show(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error)
	ListOutcomes(ctx context.Context, sessionId uuid.UUID) ([]*dto.OutcomeListItemResponse, error)
	List(ctx context.Context, stationId uuid.UUID, req *dto.ListSessionsRequest) ([]*dto.SessionResponse, error)
}

type inspectionService struct {
	policy         entity.Policy
	uowFactory     unitofwork.RepositoryFactory
	lockRegistry   contract.CompartmentLockRegistry
	resumeRegistry *memory.ResumeWindowRegistry
	issuePublisher IPublisherService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

// NewAuditService builds the formal-audit lifecycle. Audits are never
// resumable; abandoning one discards its partial coverage for good.
func NewAuditService(
	policy entity.Policy,
	uowFactory unitofwork.RepositoryFactory,
	lockRegistry contract.CompartmentLockRegistry,
	issuePublisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IInspectionService {
	return &inspectionService{
		policy:         policy,
		uowFactory:     uowFactory,
		lockRegistry:   lockRegistry,
		issuePublisher: issuePublisher,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// NewShiftCheckService builds the shift-check lifecycle. Its resume registry
// lets the same inspector pick an abandoned check back up within the
// policy's resume window, carrying the partial counters forward.
func NewShiftCheckService(
	policy entity.Policy,
	uowFactory unitofwork.RepositoryFactory,
	lockRegistry contract.CompartmentLockRegistry,
	resumeRegistry *memory.ResumeWindowRegistry,
	issuePublisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IInspectionService {
	return &inspectionService{
		policy:         policy,
		uowFactory:     uowFactory,
		lockRegistry:   lockRegistry,
		resumeRegistry: resumeRegistry,
		issuePublisher: issuePublisher,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *inspectionService) Start(ctx context.Context, inspectorId, stationId uuid.UUID, req *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	unit, err := uow.UnitRepository().FindOne(ctx, specification.ByID{ID: req.UnitId})
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, ErrNotFound
	}

	existing, err := uow.InspectionSessionRepository().FindActiveByUnit(ctx, req.UnitId, s.policy.Kind)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &entity.ActiveSessionExistsError{UnitId: req.UnitId}
	}

	equipmentCount, err := uow.EquipmentItemRepository().CountByUnit(ctx, req.UnitId)
	if err != nil {
		return nil, err
	}
	consumableCount, err := uow.ConsumableStockRepository().CountByUnit(ctx, req.UnitId)
	if err != nil {
		return nil, err
	}
	totalItems := int(equipmentCount + consumableCount)

	now := time.Now()
	session, err := entity.StartSession(uuid.New(), req.UnitId, inspectorId, stationId, s.policy, now, totalItems)
	if err != nil {
		return nil, err
	}

	resumed := false
	if s.policy.Resumable() && s.resumeRegistry != nil {
		session, resumed = s.tryResume(ctx, uow, session, inspectorId, totalItems, now)
	}

	if err := uow.InspectionSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	s.publishLifecycleEvent(ctx, "SESSION_STARTED", session)
	s.logger.Info("InspectionService", "Session started", map[string]interface{}{
		"session_id": session.Id().String(),
		"unit_id":    req.UnitId.String(),
		"kind":       string(s.policy.Kind),
		"resumed":    resumed,
	})

	res := toSessionResponse(session)
	res.Resumed = resumed
	return res, nil
}

// tryResume carries the counters of the unit's most recently abandoned
// session into the fresh one when the resume window is still open for this
// inspector. The abandoned session itself stays terminal.
func (s *inspectionService) tryResume(ctx context.Context, uow unitofwork.UnitOfWork, session entity.ActiveSession, inspectorId uuid.UUID, totalItems int, now time.Time) (entity.ActiveSession, bool) {
	prior, err := uow.InspectionSessionRepository().FindOne(ctx,
		specification.ByUnitID{UnitID: session.UnitId()},
		specification.ByKind{Kind: string(s.policy.Kind)},
		specification.BySessionStatus{Status: "abandoned"},
		specification.OrderBy{Field: "abandoned_at", Desc: true},
	)
	if err != nil || prior == nil {
		return session, false
	}

	completed, issues, unexpected, ok := s.resumeRegistry.Lookup(prior.Id(), inspectorId)
	if !ok {
		return session, false
	}
	s.resumeRegistry.Forget(prior.Id())

	if completed > totalItems {
		completed = totalItems
	}
	progress := entity.RehydrateProgress(totalItems, completed, issues, unexpected)
	return entity.RehydrateActiveSession(
		session.Id(), session.UnitId(), session.InspectorId(), session.StationId(),
		s.policy, now, progress, now, nil,
	), true
}

func (s *inspectionService) RecordOutcome(ctx context.Context, inspectorId, sessionId uuid.UUID, req *dto.RecordOutcomeRequest) (*dto.OutcomeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	active, err := s.loadActive(ctx, uow, inspectorId, sessionId)
	if err != nil {
		return nil, err
	}

	target, err := buildTarget(req)
	if err != nil {
		return nil, err
	}

	exists, err := uow.OutcomeRepository().HasOutcome(ctx, sessionId, target.Key())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &entity.DuplicateOutcomeError{TargetKey: target.Key()}
	}

	var quantity *entity.QuantityComparison
	if req.ExpectedQty != nil && req.CountedQty != nil {
		quantity = &entity.QuantityComparison{Expected: *req.ExpectedQty, Counted: *req.CountedQty}
	}

	now := time.Now()
	status := entity.OutcomeStatus(req.Status)
	outcome, err := entity.NewOutcomeRecord(target, status, entity.OutcomeDetails{
		Condition:  req.Condition,
		TestResult: req.TestResult,
		Expiry:     req.Expiry,
		Quantity:   quantity,
		Notes:      req.Notes,
	}, now)
	if err != nil {
		return nil, err
	}

	hasIssue := entity.RequiresIssue(status)
	var updated entity.ActiveSession
	if req.Unexpected {
		updated = active.RecordUnexpectedItem(hasIssue, now)
	} else {
		updated = active.RecordOutcome(hasIssue, now)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.OutcomeRepository().Create(ctx, sessionId, outcome); err != nil {
		return nil, err
	}
	if err := uow.InspectionSessionRepository().Update(ctx, updated); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if hasIssue {
		s.publishIssue(ctx, updated, outcome)
	}

	return &dto.OutcomeResponse{
		TargetKey:   target.Key(),
		Status:      string(status),
		IssueRaised: hasIssue,
		Progress:    toProgressResponse(updated.Progress()),
	}, nil
}

func (s *inspectionService) Pause(ctx context.Context, inspectorId, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	active, err := s.loadActive(ctx, uow, inspectorId, sessionId)
	if err != nil {
		return nil, err
	}

	paused, err := active.Pause(time.Now())
	if err != nil {
		return nil, err
	}
	if err := uow.InspectionSessionRepository().Update(ctx, paused); err != nil {
		return nil, err
	}
	return toSessionResponse(paused), nil
}

func (s *inspectionService) Resume(ctx context.Context, inspectorId, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	active, err := s.loadActive(ctx, uow, inspectorId, sessionId)
	if err != nil {
		return nil, err
	}

	resumed, err := active.Resume(time.Now())
	if err != nil {
		return nil, err
	}
	if err := uow.InspectionSessionRepository().Update(ctx, resumed); err != nil {
		return nil, err
	}
	return toSessionResponse(resumed), nil
}

func (s *inspectionService) Complete(ctx context.Context, inspectorId, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	active, err := s.loadActive(ctx, uow, inspectorId, sessionId)
	if err != nil {
		return nil, err
	}

	completed, err := active.Complete(time.Now())
	if err != nil {
		return nil, err
	}
	if err := uow.InspectionSessionRepository().Update(ctx, completed); err != nil {
		return nil, err
	}

	s.lockRegistry.ClearForSession(sessionId)
	s.publishLifecycleEvent(ctx, "SESSION_COMPLETED", completed)
	s.logger.Info("InspectionService", "Session completed", map[string]interface{}{
		"session_id":  sessionId.String(),
		"issue_count": completed.Progress().IssueCount(),
	})
	return toSessionResponse(completed), nil
}

func (s *inspectionService) Abandon(ctx context.Context, inspectorId, sessionId uuid.UUID, req *dto.AbandonSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	active, err := s.loadActive(ctx, uow, inspectorId, sessionId)
	if err != nil {
		return nil, err
	}

	abandoned := active.Abandon(req.Reason, time.Now())
	if err := uow.InspectionSessionRepository().Update(ctx, abandoned); err != nil {
		return nil, err
	}

	if s.policy.Resumable() && s.resumeRegistry != nil {
		p := abandoned.Progress()
		s.resumeRegistry.Remember(sessionId, inspectorId, p.CompletedCount(), p.IssueCount(), p.UnexpectedCount(), s.policy.ResumeWindow)
	}

	s.lockRegistry.ClearForSession(sessionId)
	s.publishLifecycleEvent(ctx, "SESSION_ABANDONED", abandoned)
	s.logger.Info("InspectionService", "Session abandoned", map[string]interface{}{
		"session_id": sessionId.String(),
		"reason":     req.Reason,
	})
	return toSessionResponse(abandoned), nil
}

func (s *inspectionService) Show(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.InspectionSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}
	return toSessionResponse(session), nil
}

func (s *inspectionService) ListOutcomes(ctx context.Context, sessionId uuid.UUID) ([]*dto.OutcomeListItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	outcomes, err := uow.OutcomeRepository().FindBySession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.OutcomeListItemResponse, 0, len(outcomes))
	for _, o := range outcomes {
		result = append(result, &dto.OutcomeListItemResponse{
			TargetKey:  o.Target().Key(),
			Status:     string(o.Status()),
			Notes:      o.Notes(),
			RecordedAt: o.RecordedAt(),
		})
	}
	return result, nil
}

func (s *inspectionService) List(ctx context.Context, stationId uuid.UUID, req *dto.ListSessionsRequest) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByStationID{StationID: stationId},
		specification.ByKind{Kind: string(s.policy.Kind)},
		specification.OrderBy{Field: "started_at", Desc: true},
	}
	if req.Status != "" {
		specs = append(specs, specification.BySessionStatus{Status: req.Status})
	}
	if req.UnitId != "" {
		unitId, err := uuid.Parse(req.UnitId)
		if err == nil {
			specs = append(specs, specification.ByUnitID{UnitID: unitId})
		}
	}

	limit := req.Limit
	if limit == 0 {
		limit = 20
	}
	page := req.Page
	if page == 0 {
		page = 1
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: (page - 1) * limit})

	sessions, err := uow.InspectionSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, toSessionResponse(session))
	}
	return result, nil
}

// loadActive fetches the session and insists it is the active variant owned
// by the calling inspector.
func (s *inspectionService) loadActive(ctx context.Context, uow unitofwork.UnitOfWork, inspectorId, sessionId uuid.UUID) (entity.ActiveSession, error) {
	session, err := uow.InspectionSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return entity.ActiveSession{}, err
	}
	if session == nil {
		return entity.ActiveSession{}, ErrNotFound
	}
	active, ok := session.(entity.ActiveSession)
	if !ok {
		return entity.ActiveSession{}, entity.ErrSessionNotActive
	}
	if active.InspectorId() != inspectorId {
		return entity.ActiveSession{}, ErrForbidden
	}
	return active, nil
}

func (s *inspectionService) publishIssue(ctx context.Context, session entity.ActiveSession, outcome entity.OutcomeRecord) {
	classification, ok := entity.ClassifyOutcome(outcome.Status())
	if !ok {
		return
	}
	msg := dto.RaiseIssueMessage{
		SessionId:  session.Id(),
		StationId:  session.StationId(),
		TargetKey:  outcome.Target().Key(),
		Title:      classification.Title,
		Category:   string(classification.Category),
		Severity:   string(classification.Severity),
		Notes:      outcome.Notes(),
		RecordedAt: outcome.RecordedAt(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("InspectionService", "Failed to marshal issue message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.issuePublisher.Publish(ctx, payload); err != nil {
		s.logger.Error("InspectionService", "Failed to publish issue message", map[string]interface{}{"error": err.Error()})
	}
}

func (s *inspectionService) publishLifecycleEvent(ctx context.Context, eventType string, session entity.InspectionSession) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"session_id": session.Id().String(),
			"unit_id":    session.UnitId().String(),
			"user_id":    session.InspectorId().String(),
			"station_id": session.StationId().String(),
			"kind":       string(session.Kind()),
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("InspectionService", "Failed to publish lifecycle event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func buildTarget(req *dto.RecordOutcomeRequest) (entity.ItemTarget, error) {
	if req.EquipmentId != nil {
		return entity.NewEquipmentTarget(*req.EquipmentId)
	}
	if req.ConsumableId != nil {
		return entity.NewConsumableTarget(*req.ConsumableId)
	}
	return entity.ItemTarget{}, &entity.InvalidTargetError{Reason: "either equipment_id or consumable_id is required"}
}

func toProgressResponse(p entity.Progress) dto.ProgressResponse {
	return dto.ProgressResponse{
		TotalItems:      p.TotalItems(),
		CompletedCount:  p.CompletedCount(),
		IssueCount:      p.IssueCount(),
		UnexpectedCount: p.UnexpectedCount(),
		Percentage:      p.Percentage(),
		IsComplete:      p.IsComplete(),
	}
}

func toSessionResponse(session entity.InspectionSession) *dto.SessionResponse {
	res := &dto.SessionResponse{
		Id:          session.Id(),
		UnitId:      session.UnitId(),
		InspectorId: session.InspectorId(),
		StationId:   session.StationId(),
		Kind:        string(session.Kind()),
		Progress:    toProgressResponse(session.Progress()),
		StartedAt:   session.StartedAt(),
	}

	switch v := session.(type) {
	case entity.ActiveSession:
		res.Status = "active"
		res.PausedAt = v.PausedAt()
	case entity.CompletedSession:
		res.Status = "completed"
		completedAt := v.CompletedAt()
		res.CompletedAt = &completedAt
	case entity.AbandonedSession:
		res.Status = "abandoned"
		abandonedAt := v.AbandonedAt()
		res.AbandonedAt = &abandonedAt
		res.Reason = v.Reason()
	}
	return res
}
