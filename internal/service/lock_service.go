package service

import (
	"context"
	"encoding/json"
	"time"

	"firecheck-be/internal/dto"
	"firecheck-be/internal/entity"
	"firecheck-be/internal/pkg/logger"
	"firecheck-be/internal/repository/contract"
	"firecheck-be/internal/repository/specification"
	"firecheck-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// LockDelivery pushes real-time lock updates to the clients viewing a
// session. Implemented by the WebSocket Hub.
type LockDelivery interface {
	Send(userId uuid.UUID, payload []byte)
	BroadcastToSession(sessionId uuid.UUID, payload []byte)
}

type ILockService interface {
	Acquire(ctx context.Context, userId uuid.UUID, req *dto.AcquireLockRequest) (*dto.AcquireLockResponse, error)
	Release(ctx context.Context, userId uuid.UUID, req *dto.ReleaseLockRequest) error
	TakeOver(ctx context.Context, userId uuid.UUID, req *dto.TakeOverLockRequest) (*dto.TakeOverLockResponse, error)
	ListForSession(ctx context.Context, sessionId uuid.UUID) ([]*dto.LockStateResponse, error)
	ReleaseAllForUser(userId uuid.UUID)
}

type lockService struct {
	registry   contract.CompartmentLockRegistry
	uowFactory unitofwork.RepositoryFactory
	delivery   LockDelivery
	logger     logger.ILogger
}

func NewLockService(
	registry contract.CompartmentLockRegistry,
	uowFactory unitofwork.RepositoryFactory,
	delivery LockDelivery,
	log logger.ILogger,
) ILockService {
	return &lockService{
		registry:   registry,
		uowFactory: uowFactory,
		delivery:   delivery,
		logger:     log,
	}
}

type lockEventMessage struct {
	Type          string    `json:"type"`
	SessionId     uuid.UUID `json:"session_id"`
	SubLocationId uuid.UUID `json:"sub_location_id"`
	HolderId      string    `json:"holder_id,omitempty"`
	HolderName    string    `json:"holder_name,omitempty"`
}

func (s *lockService) Acquire(ctx context.Context, userId uuid.UUID, req *dto.AcquireLockRequest) (*dto.AcquireLockResponse, error) {
	if s.registry.Acquire(req.SessionId, req.SubLocationId, userId) {
		s.broadcast(req.SessionId, lockEventMessage{
			Type:          "lock_acquired",
			SessionId:     req.SessionId,
			SubLocationId: req.SubLocationId,
			HolderId:      userId.String(),
			HolderName:    s.resolveName(ctx, userId),
		})
		return &dto.AcquireLockResponse{Acquired: true}, nil
	}

	// Contention is routine. Report who holds the slot so the client can
	// offer a take-over.
	lock := s.registry.Get(req.SessionId, req.SubLocationId)
	res := &dto.AcquireLockResponse{Acquired: false}
	if lock != nil {
		holderId := lock.HolderId
		res.HolderId = &holderId
		res.HolderName = s.resolveName(ctx, holderId)
	}
	return res, nil
}

func (s *lockService) Release(ctx context.Context, userId uuid.UUID, req *dto.ReleaseLockRequest) error {
	s.registry.Release(req.SessionId, req.SubLocationId, userId)
	s.broadcast(req.SessionId, lockEventMessage{
		Type:          "lock_released",
		SessionId:     req.SessionId,
		SubLocationId: req.SubLocationId,
	})
	return nil
}

func (s *lockService) TakeOver(ctx context.Context, userId uuid.UUID, req *dto.TakeOverLockRequest) (*dto.TakeOverLockResponse, error) {
	previous := s.registry.TakeOver(req.SessionId, req.SubLocationId, userId)

	takerName := s.resolveName(ctx, userId)
	s.broadcast(req.SessionId, lockEventMessage{
		Type:          "lock_taken_over",
		SessionId:     req.SessionId,
		SubLocationId: req.SubLocationId,
		HolderId:      userId.String(),
		HolderName:    takerName,
	})

	if previous != nil {
		s.notifyDisplaced(ctx, *previous, takerName, req.SubLocationId)
	}

	s.logger.Info("LockService", "Compartment lock taken over", map[string]interface{}{
		"session_id":      req.SessionId.String(),
		"sub_location_id": req.SubLocationId.String(),
		"new_holder":      userId.String(),
	})
	return &dto.TakeOverLockResponse{PreviousHolderId: previous}, nil
}

func (s *lockService) ListForSession(ctx context.Context, sessionId uuid.UUID) ([]*dto.LockStateResponse, error) {
	holders := s.registry.ListForSession(sessionId)
	result := make([]*dto.LockStateResponse, 0, len(holders))
	for subLocationId, holderId := range holders {
		hid := holderId
		result = append(result, &dto.LockStateResponse{
			SubLocationId: subLocationId,
			HolderId:      &hid,
			HolderName:    s.resolveName(ctx, holderId),
		})
	}
	return result, nil
}

func (s *lockService) ReleaseAllForUser(userId uuid.UUID) {
	s.registry.ReleaseAllForUser(userId)
}

// notifyDisplaced records a persistent notification for the user whose lock
// was taken and pushes it over their socket if connected.
func (s *lockService) notifyDisplaced(ctx context.Context, displacedId uuid.UUID, takerName string, subLocationId uuid.UUID) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	title := "Compartment taken over"
	message := takerName + " took over the compartment you were checking"
	notification := &entity.Notification{
		Id:        uuid.New(),
		UserId:    displacedId,
		Type:      "LOCK_TAKEN_OVER",
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		s.logger.Error("LockService", "Failed to save take-over notification", map[string]interface{}{"error": err.Error()})
	}

	if s.delivery != nil {
		payload, err := json.Marshal(map[string]interface{}{
			"type":            "notification",
			"title":           title,
			"message":         message,
			"sub_location_id": subLocationId.String(),
		})
		if err == nil {
			s.delivery.Send(displacedId, payload)
		}
	}
}

func (s *lockService) broadcast(sessionId uuid.UUID, msg lockEventMessage) {
	if s.delivery == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.delivery.BroadcastToSession(sessionId, payload)
}

func (s *lockService) resolveName(ctx context.Context, userId uuid.UUID) string {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return "Another firefighter"
	}
	return user.Name
}
