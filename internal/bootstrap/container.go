package bootstrap

import (
	"context"
	"log"

	"firecheck-be/internal/config"
	"firecheck-be/internal/controller"
	"firecheck-be/internal/entity"
	"firecheck-be/internal/handler"
	"firecheck-be/internal/mapper"
	"firecheck-be/internal/pkg/logger"
	"firecheck-be/internal/pkg/mailer"
	"firecheck-be/internal/repository/memory"
	"firecheck-be/internal/repository/unitofwork"
	"firecheck-be/internal/service"
	"firecheck-be/internal/websocket"

	pktNats "firecheck-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	UnitController       controller.IUnitController
	AuditController      controller.IInspectionController
	ShiftCheckController controller.IInspectionController
	LockController       controller.ILockController

	// Background Services (Exposed for main.go to run)
	IssueConsumerService service.IIssueConsumerService
	SweeperService       service.ISweeperService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	auditPolicy := entity.FormalAuditPolicy(cfg.Inspection.AuditStaleAfter)
	shiftCheckPolicy := entity.ShiftCheckPolicy(cfg.Inspection.ShiftCheckStaleAfter, cfg.Inspection.ShiftCheckResumeWindow)

	sessionMapper := mapper.NewInspectionSessionMapper(auditPolicy, shiftCheckPolicy)
	uowFactory := unitofwork.NewRepositoryFactory(db, sessionMapper)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// In-memory coordination
	lockRegistry := memory.NewCompartmentLockRegistry()
	resumeRegistry := memory.NewResumeWindowRegistry(cfg.Inspection.ShiftCheckResumeWindow)

	// 3. Services
	issuePublisher := service.NewPublisherService(cfg.App.IssueTopic, pubSub)
	issueConsumer := service.NewIssueConsumerService(
		pubSub,
		cfg.App.IssueTopic,
		uowFactory,
		emailService,
		natsPub,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, natsPub)
	unitService := service.NewUnitService(uowFactory)

	auditService := service.NewAuditService(
		auditPolicy,
		uowFactory,
		lockRegistry,
		issuePublisher,
		natsPub,
		sysLogger,
	)
	shiftCheckService := service.NewShiftCheckService(
		shiftCheckPolicy,
		uowFactory,
		lockRegistry,
		resumeRegistry,
		issuePublisher,
		natsPub,
		sysLogger,
	)

	lockService := service.NewLockService(lockRegistry, uowFactory, wsHub, sysLogger)
	wsHub.SetDisconnectHandler(lockService.ReleaseAllForUser)

	sweeperService := service.NewSweeperService(
		[]entity.Policy{auditPolicy, shiftCheckPolicy},
		cfg.Inspection.SweepInterval,
		uowFactory,
		lockRegistry,
		resumeRegistry,
		natsPub,
		sysLogger,
	)

	// 3.5 Notification System
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler:  notifHandler,
		WebSocketHub:         wsHub,
		AuthController:       controller.NewAuthController(authService),
		UnitController:       controller.NewUnitController(unitService),
		AuditController:      controller.NewAuditController(auditService),
		ShiftCheckController: controller.NewShiftCheckController(shiftCheckService),
		LockController:       controller.NewLockController(lockService),

		IssueConsumerService: issueConsumer,
		SweeperService:       sweeperService,

		Logger: sysLogger,
	}
}
