package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"github.com/muaishaq001/nacos-hub/config"
	"github.com/muaishaq001/nacos-hub/infra/queue"
	"github.com/muaishaq001/nacos-hub/internal/api/rest/handlers"
	"github.com/muaishaq001/nacos-hub/internal/api/rest/middleware"
	"github.com/muaishaq001/nacos-hub/internal/clients/hubapi"
	"github.com/muaishaq001/nacos-hub/internal/content"
	"github.com/muaishaq001/nacos-hub/internal/flow"
	"github.com/muaishaq001/nacos-hub/internal/helper"
	"github.com/muaishaq001/nacos-hub/internal/helper/utils"
	"github.com/muaishaq001/nacos-hub/internal/interfaces"
	"github.com/muaishaq001/nacos-hub/internal/repository"
	"github.com/muaishaq001/nacos-hub/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the collaborators of the HTTP app. StartServer builds them from
// config; tests pass fakes.
type Deps struct {
	Client   *hubapi.Client
	Store    repository.VerificationStore
	Producer interfaces.ProducerHandler
	Catalog  *content.Catalog
	Sessions helper.Sessions
	Registry *prometheus.Registry
	Secure   bool
	Origins  string
	Logger   *zap.Logger
}

// NewApp wires routes and returns the app with the session store backing it.
// The caller closes the store.
func NewApp(d Deps) (*fiber.App, *services.SessionStore) {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "nacoshub",
		DisableStartupMessage: true,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return utils.ResponseError(ctx, code, err.Error(), fiber.Map{"notices": []flow.Notice{}})
		},
	})

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     d.Origins,
		AllowHeaders:     "Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: d.Origins != "*",
	}))

	// ---------- Metrics ----------
	if d.Registry != nil {
		app.Use(newHTTPMetrics(d.Registry).middleware())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// ---------- Services ----------
	validate := helper.NewValidator()
	studentAPI := hubapi.NewStudentAPI(d.Client)
	collaboratorAPI := hubapi.NewCollaboratorAPI(d.Client)

	store := services.NewSessionStore(d.Sessions.TTL, time.Minute, func(notices flow.Notifier) (*flow.Registration, *flow.Collaboration) {
		return flow.NewRegistration(studentAPI, notices, validate, logger),
			flow.NewCollaboration(collaboratorAPI, notices, validate, logger)
	}, logger)

	hubSvc := services.NewHubService(flow.NewVerifier(d.Store), d.Catalog, validate, d.Producer, logger)

	// ---------- Handler ----------
	hubHandler := handlers.NewHubHandler(hubSvc, logger)
	hubHandler.SetupRoutes(app, middleware.SessionMiddleware(d.Sessions, store, d.Secure, logger))

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return app, store
}

// StartServer runs the hub until ctx is canceled.
func StartServer(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	logger.Info("starting hub",
		zap.String("env", cfg.Env),
		zap.String("api", cfg.APIBaseURL),
		zap.String("database_driver", cfg.DatabaseDriver),
		zap.String("kafka_broker", cfg.KafkaBroker),
		zap.String("kafka_topic", cfg.KafkaTopic))

	// ---------- Store ----------
	verificationStore, err := repository.NewVerificationStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// ---------- Infra ----------
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := hubapi.New(cfg.APIBaseURL,
		hubapi.WithTimeout(cfg.APITimeout),
		hubapi.WithLogger(logger),
		hubapi.WithMetrics(hubapi.NewMetrics(reg)),
	)

	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		logger,
	)
	defer func() { _ = kafkaProducer.Close() }()
	if kafkaProducer == nil {
		logger.Warn("KAFKA_BROKER not set, hub events will not be published")
	}

	catalog, err := content.Load()
	if err != nil {
		return err
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("SESSION_SECRET not set, using an ephemeral secret; sessions reset on restart")
	}

	var producer interfaces.ProducerHandler
	if kafkaProducer != nil {
		producer = kafkaProducer
	}

	app, sessions := NewApp(Deps{
		Client:   client,
		Store:    verificationStore,
		Producer: producer,
		Catalog:  catalog,
		Sessions: helper.SetupSessions(secret, cfg.SessionTTL),
		Registry: reg,
		Secure:   cfg.IsProd(),
		Origins:  cfg.AllowOrigins,
		Logger:   logger,
	})
	defer sessions.Close()

	// ---------- Listen ----------
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.ServerPort))
		errCh <- app.Listen(cfg.ServerPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return app.ShutdownWithContext(shutdownCtx)
}
