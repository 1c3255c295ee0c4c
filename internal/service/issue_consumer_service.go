package service

import (
	"context"
	"encoding/json"
	"time"

	"firecheck-be/internal/dto"
	"firecheck-be/internal/entity"
	"firecheck-be/internal/pkg/logger"
	"firecheck-be/internal/pkg/mailer"
	"firecheck-be/internal/repository/specification"
	"firecheck-be/internal/repository/unitofwork"
	"firecheck-be/pkg/events"
	pktNats "firecheck-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IIssueConsumerService interface {
	Consume(ctx context.Context) error
}

// issueConsumerService turns issue messages from the inspection services
// into persisted tickets. High-severity tickets additionally alert the
// station's quartermasters by email.
type issueConsumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewIssueConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IIssueConsumerService {
	return &issueConsumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *issueConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *issueConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.RaiseIssueMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("IssueConsumer", "Failed to unmarshal issue message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid messages are not retriable
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	ticket := &entity.IssueTicket{
		Id:        uuid.New(),
		StationId: payload.StationId,
		SessionId: payload.SessionId,
		TargetKey: payload.TargetKey,
		Title:     payload.Title,
		Category:  entity.IssueCategory(payload.Category),
		Severity:  entity.IssueSeverity(payload.Severity),
		Notes:     payload.Notes,
		Status:    "open",
		CreatedAt: time.Now(),
	}

	if err := uow.IssueTicketRepository().Create(ctx, ticket); err != nil {
		cs.logger.Error("IssueConsumer", "Failed to persist issue ticket", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		_ = cs.eventPublisher.Publish(ctx, events.BaseEvent{
			Type: "ISSUE_RAISED",
			Data: map[string]interface{}{
				"ticket_id":  ticket.Id.String(),
				"session_id": payload.SessionId.String(),
				"station_id": payload.StationId.String(),
				"target_key": payload.TargetKey,
				"category":   payload.Category,
				"severity":   payload.Severity,
			},
			OccurredAt: time.Now(),
		})
	}

	if ticket.Severity == entity.SeverityHigh {
		cs.alertQuartermasters(ctx, uow, ticket)
	}

	cs.logger.Info("IssueConsumer", "Issue ticket created", map[string]interface{}{
		"ticket_id": ticket.Id.String(),
		"severity":  payload.Severity,
	})
	msg.Ack()
}

func (cs *issueConsumerService) alertQuartermasters(ctx context.Context, uow unitofwork.UnitOfWork, ticket *entity.IssueTicket) {
	if cs.emailService == nil {
		return
	}

	quartermasters, err := uow.UserRepository().FindAll(ctx,
		specification.ByStationID{StationID: ticket.StationId},
		specification.Filter("role", "quartermaster"),
	)
	if err != nil {
		cs.logger.Warn("IssueConsumer", "Failed to resolve quartermasters", map[string]interface{}{"error": err.Error()})
		return
	}

	for _, qm := range quartermasters {
		go func(email string) {
			if err := cs.emailService.SendIssueAlert(email, ticket.Title, string(ticket.Category), "", ticket.TargetKey); err != nil {
				cs.logger.Warn("IssueConsumer", "Failed to send issue alert email", map[string]interface{}{"error": err.Error()})
			}
		}(qm.Email)
	}
}
