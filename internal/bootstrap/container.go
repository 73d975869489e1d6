package bootstrap

import (
	"context"
	"log"
	"time"

	"project-intake-be/internal/config"
	"project-intake-be/internal/controller"
	"project-intake-be/internal/handler"
	"project-intake-be/internal/pkg/logger"
	"project-intake-be/internal/pkg/mailer"
	"project-intake-be/internal/repository/implementation"
	"project-intake-be/internal/repository/memory"
	"project-intake-be/internal/repository/unitofwork"
	"project-intake-be/internal/service"
	"project-intake-be/internal/websocket"
	"project-intake-be/pkg/intake/ratelimit"
	"project-intake-be/pkg/llm/factory"
	"project-intake-be/pkg/oracle"

	pktNats "project-intake-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	IntakeController controller.IIntakeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Dashboard
	DashboardHandler *handler.DashboardHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
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

	// 3. Model Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	credential := cfg.Keys.HuggingFace
	if cfg.Ai.LLMProvider == "ollama" {
		// Local models need no API key; the oracle still requires a
		// non-empty credential to refuse misconfigured deployments.
		credential = "local"
	}
	oracleClient, err := oracle.NewClient(
		llmProvider,
		credential,
		time.Duration(cfg.Intake.OracleMinIntervalMs)*time.Millisecond,
		nil,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize oracle client: %v", err)
	}

	// Live session storage + daily limiter
	sessionRepo := memory.NewSessionRepository()
	limiter := ratelimit.New(implementation.NewDailyUsageStore(db), cfg.Intake.DailySessionCap)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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
	wsLogger := logger.NewIsolatedLogger("logs/dashboard.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(pubSub, cfg.Keys.IntakeCompletedTopic)

	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IntakeCompletedTopic,
		uowFactory,
		emailService,
		cfg.SMTP.ReportRecipient,
		eventPublisher,
	)

	intakeService := service.NewIntakeService(
		sessionRepo,
		uowFactory,
		oracleClient,
		limiter,
		publisherService,
		eventPublisher,
		wsHub,
		sysLogger,
	)

	dashboardHandler := handler.NewDashboardHandler(wsHub, sysLogger)

	return &Container{
		IntakeController: controller.NewIntakeController(intakeService),
		ConsumerService:  consumerService,
		DashboardHandler: dashboardHandler,
		WebSocketHub:     wsHub,
	}
}
