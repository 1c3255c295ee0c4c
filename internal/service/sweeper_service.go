package service

import (
	"context"
	"time"

	"firecheck-be/internal/entity"
	"firecheck-be/internal/pkg/logger"
	"firecheck-be/internal/repository/contract"
	"firecheck-be/internal/repository/memory"
	"firecheck-be/internal/repository/specification"
	"firecheck-be/internal/repository/unitofwork"
	"firecheck-be/pkg/events"
	pktNats "firecheck-be/pkg/nats"
)

// ISweeperService auto-abandons sessions that idled past their policy
// threshold. The database filter on last activity is a cheap pre-selection;
// the entity's own staleness check makes the final call.
type ISweeperService interface {
	Start(ctx context.Context)
	SweepOnce(ctx context.Context) int
}

type sweeperService struct {
	policies       []entity.Policy
	interval       time.Duration
	uowFactory     unitofwork.RepositoryFactory
	lockRegistry   contract.CompartmentLockRegistry
	resumeRegistry *memory.ResumeWindowRegistry
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewSweeperService(
	policies []entity.Policy,
	interval time.Duration,
	uowFactory unitofwork.RepositoryFactory,
	lockRegistry contract.CompartmentLockRegistry,
	resumeRegistry *memory.ResumeWindowRegistry,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISweeperService {
	return &sweeperService{
		policies:       policies,
		interval:       interval,
		uowFactory:     uowFactory,
		lockRegistry:   lockRegistry,
		resumeRegistry: resumeRegistry,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *sweeperService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				swept := s.SweepOnce(ctx)
				if swept > 0 {
					s.logger.Info("SweeperService", "Stale sessions auto-abandoned", map[string]interface{}{"count": swept})
				}
			}
		}
	}()
}

// SweepOnce abandons every stale active session across all policies and
// returns how many it closed.
func (s *sweeperService) SweepOnce(ctx context.Context) int {
	swept := 0
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	for _, policy := range s.policies {
		sessions, err := uow.InspectionSessionRepository().FindAll(ctx,
			specification.BySessionStatus{Status: "active"},
			specification.ByKind{Kind: string(policy.Kind)},
			specification.IdleSince{Cutoff: now.Add(-policy.StaleAfter)},
		)
		if err != nil {
			s.logger.Error("SweeperService", "Failed to query idle sessions", map[string]interface{}{"error": err.Error()})
			continue
		}

		for _, session := range sessions {
			active, ok := session.(entity.ActiveSession)
			if !ok || !active.IsStale(now) {
				continue
			}

			abandoned := active.Abandon("auto-abandoned after inactivity", now)
			if err := uow.InspectionSessionRepository().Update(ctx, abandoned); err != nil {
				s.logger.Error("SweeperService", "Failed to abandon stale session", map[string]interface{}{
					"session_id": active.Id().String(),
					"error":      err.Error(),
				})
				continue
			}

			if policy.Resumable() && s.resumeRegistry != nil {
				p := abandoned.Progress()
				s.resumeRegistry.Remember(abandoned.Id(), abandoned.InspectorId(), p.CompletedCount(), p.IssueCount(), p.UnexpectedCount(), policy.ResumeWindow)
			}

			s.lockRegistry.ClearForSession(abandoned.Id())
			s.publishAbandoned(ctx, abandoned)
			swept++
		}
	}
	return swept
}

func (s *sweeperService) publishAbandoned(ctx context.Context, session entity.AbandonedSession) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events.BaseEvent{
		Type: "SESSION_ABANDONED",
		Data: map[string]interface{}{
			"session_id": session.Id().String(),
			"unit_id":    session.UnitId().String(),
			"user_id":    session.InspectorId().String(),
			"station_id": session.StationId().String(),
			"kind":       string(session.Kind()),
			"reason":     session.Reason(),
		},
		OccurredAt: time.Now(),
	})
}
