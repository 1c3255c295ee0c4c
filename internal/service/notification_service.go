package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"firecheck-be/internal/dto"
	"firecheck-be/internal/entity"
	"firecheck-be/internal/pkg/logger"
	"firecheck-be/internal/repository/specification"
	"firecheck-be/internal/repository/unitofwork"
	"firecheck-be/pkg/events"
	pktNats "firecheck-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery pushes a notification payload to a connected user.
// Implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userId uuid.UUID, payload []byte)
}

type INotificationService interface {
	Start()
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.NotificationResponse, error)
	GetUnreadCount(ctx context.Context, userId uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *notificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event subscriber configured, notifications disabled", nil)
		return
	}
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	switch event.EventType() {
	case "SESSION_ABANDONED", "events.SESSION_ABANDONED":
		return s.notifyUser(ctx, payload, "Inspection abandoned",
			"Your inspection session was abandoned. Partial findings were kept.")
	case "SESSION_COMPLETED", "events.SESSION_COMPLETED":
		return s.notifyUser(ctx, payload, "Inspection completed",
			"Your inspection session was completed.")
	case "ISSUE_RAISED", "events.ISSUE_RAISED":
		return s.notifyQuartermasters(ctx, payload)
	}
	return nil
}

func (s *notificationService) notifyUser(ctx context.Context, payload map[string]interface{}, title, message string) error {
	uidStr, ok := payload["user_id"].(string)
	if !ok {
		return nil
	}
	userId, err := uuid.Parse(uidStr)
	if err != nil {
		return nil
	}
	return s.deliver(ctx, userId, "SESSION_LIFECYCLE", title, message)
}

func (s *notificationService) notifyQuartermasters(ctx context.Context, payload map[string]interface{}) error {
	sidStr, ok := payload["station_id"].(string)
	if !ok {
		return nil
	}
	stationId, err := uuid.Parse(sidStr)
	if err != nil {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	quartermasters, err := uow.UserRepository().FindAll(ctx,
		specification.ByStationID{StationID: stationId},
		specification.Filter("role", "quartermaster"),
	)
	if err != nil {
		return err
	}

	title := "New issue raised"
	message := fmt.Sprintf("A %v issue was raised for %v", payload["severity"], payload["target_key"])
	for _, qm := range quartermasters {
		if err := s.deliver(ctx, qm.Id, "ISSUE_RAISED", title, message); err != nil {
			s.logger.Error("NotificationService", "Failed to notify quartermaster", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (s *notificationService) deliver(ctx context.Context, userId uuid.UUID, notifType, title, message string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notification := &entity.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		Type:      notifType,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		return err
	}

	if s.delivery != nil {
		payload, err := json.Marshal(map[string]interface{}{
			"type":    "notification",
			"id":      notification.Id.String(),
			"title":   title,
			"message": message,
		})
		if err == nil {
			s.delivery.Send(userId, payload)
		}
	}
	return nil
}

func (s *notificationService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.NotificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notifications, err := uow.NotificationRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, &dto.NotificationResponse{
			Id:        n.Id,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return result, nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().CountUnread(ctx, userId)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllAsRead(ctx, userId)
}
