package bootstrap

import (
	"context"

	"notestack-be/internal/config"
	"notestack-be/internal/controller"
	"notestack-be/internal/handler"
	"notestack-be/internal/pkg/logger"
	"notestack-be/internal/pkg/mailer"
	"notestack-be/internal/pkg/serverutils"
	"notestack-be/internal/repository/memory"
	"notestack-be/internal/repository/unitofwork"
	"notestack-be/internal/service"
	"notestack-be/internal/websocket"
	"notestack-be/pkg/access"
	"notestack-be/pkg/credential"
	pktNats "notestack-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const domainEventsTopic = "domain-events"

type Container struct {
	Logger logger.ILogger

	// Controllers
	AuthController     controller.IAuthController
	NotebookController controller.INotebookController
	NoteController     controller.INoteController
	JwtMiddleware      fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	if cfg.Auth.JwtSecret == "" {
		sysLogger.Warn("Bootstrap", "JWT_SECRET is empty, every token operation will fail", nil)
	}
	hasher := credential.NewPasswordHasher(cfg.Auth.BcryptCost)
	issuer := credential.NewTokenIssuer(cfg.Auth.JwtSecret, cfg.Auth.TokenTTL)
	verifier := access.NewVerifier()
	defaultNotebooks := memory.NewDefaultNotebookCache()

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure, all optional
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS publisher", map[string]interface{}{"error": err.Error()})
		} else {
			natsPub = pub
			c.closers = append(c.closers, pub.Close)
		}

		sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS subscriber", map[string]interface{}{"error": err.Error()})
		} else {
			natsSub = sub
			c.closers = append(c.closers, sub.Close)
		}
	}

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.SocketLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	// 4. Services
	c.NotificationService = service.NewNotificationService(natsSub, c.WebSocketHub, sysLogger)

	// A nil *Publisher must not end up inside the interface.
	var forwarder service.EventForwarder
	if natsPub != nil && natsSub != nil {
		forwarder = natsPub
	}
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		domainEventsTopic,
		forwarder,
		c.NotificationService.Handle,
		sysLogger,
	)
	publisherService := service.NewPublisherService(domainEventsTopic, pubSub, sysLogger)

	authService := service.NewAuthService(
		uowFactory,
		hasher,
		issuer,
		emailService,
		publisherService,
		defaultNotebooks,
		cfg.App.DefaultNotebookName,
		sysLogger,
	)
	notebookService := service.NewNotebookService(uowFactory, verifier, defaultNotebooks, publisherService)
	noteService := service.NewNoteService(uowFactory, verifier, defaultNotebooks, publisherService)
	shareService := service.NewShareService(uowFactory, verifier, defaultNotebooks, publisherService)

	// 5. Controllers
	c.JwtMiddleware = serverutils.NewJwtMiddleware(issuer)
	c.AuthController = controller.NewAuthController(authService, c.JwtMiddleware)
	c.NotebookController = controller.NewNotebookController(notebookService, c.JwtMiddleware)
	c.NoteController = controller.NewNoteController(noteService, shareService, c.JwtMiddleware)
	c.NotificationHandler = handler.NewNotificationHandler(issuer, c.WebSocketHub, wsLogger)

	return c
}

// Start launches the background workers. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}
	return c.NotificationService.Start(ctx)
}

// Close releases broker connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
