package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/utafrali/ProfileGo/internal/auth"
	"github.com/utafrali/ProfileGo/internal/config"
	"github.com/utafrali/ProfileGo/internal/email"
	"github.com/utafrali/ProfileGo/internal/event"
	handler "github.com/utafrali/ProfileGo/internal/handler/http"
	"github.com/utafrali/ProfileGo/internal/repository/postgres"
	"github.com/utafrali/ProfileGo/internal/repository/redis"
	"github.com/utafrali/ProfileGo/internal/security"
	"github.com/utafrali/ProfileGo/internal/service"
	"github.com/utafrali/ProfileGo/migrations"
	"github.com/utafrali/ProfileGo/pkg/database"
	"github.com/utafrali/ProfileGo/pkg/health"
	pkgkafka "github.com/utafrali/ProfileGo/pkg/kafka"
	"github.com/utafrali/ProfileGo/pkg/tracing"
)

// App wires together all dependencies and runs the profile service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redisClient    *goredis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "profile",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TraceSample,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DBName:   cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSL,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "profile")

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize Redis for the customer read cache.
	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort)))

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Parse durations carried as strings.
	accessExpiry, err := time.ParseDuration(cfg.JWTAccessExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse JWT access expiry %q: %w", cfg.JWTAccessExpiry, err)
	}
	cacheTTL, err := time.ParseDuration(cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("parse cache TTL %q: %w", cfg.CacheTTL, err)
	}

	// Outbound email.
	var sender email.Sender
	if cfg.SMTPHost != "" {
		sender, err = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			TLS:      cfg.SMTPTLS,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("init smtp sender: %w", err)
		}
	} else {
		logger.Warn("SMTP_HOST not set, emails will be logged instead of sent")
		sender = email.NewLogSender(logger)
	}

	// Build the dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, accessExpiry)
	encoder := security.NewBcryptEncoder(cfg.BcryptCost)
	generator := security.NewGenerator()

	customerRepo := postgres.NewCustomerRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)
	countryRepo := postgres.NewCountryRepository(pool)
	subdivisionRepo := postgres.NewSubdivisionRepository(pool)
	phoneRepo := postgres.NewPhoneRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	questionRepo := postgres.NewChallengeQuestionRepository(pool)

	customerCache := redis.NewCustomerCache(customerRepo, redisClient, cacheTTL, logger)
	eventProducer := event.NewProducer(producer, logger)

	customerService := service.NewCustomerService(
		customerRepo, tokenRepo, roleRepo,
		customerCache, encoder, generator, sender, eventProducer,
		service.CustomerServiceConfig{
			TokenExpiredMinutes: cfg.TokenExpiredMinutes,
			PasswordTokenLength: cfg.PasswordTokenLength,
			ForgotPasswordEmail: email.Info{
				FromAddress:  cfg.EmailFromAddress,
				Subject:      "Reset your password",
				BodyTemplate: email.ForgotPasswordTemplate,
			},
			ForgotUsernameEmail: email.Info{
				FromAddress:  cfg.EmailFromAddress,
				Subject:      "Your username",
				BodyTemplate: email.ForgotUsernameTemplate,
			},
			RegistrationEmail: email.Info{
				FromAddress:  cfg.EmailFromAddress,
				Subject:      "Welcome",
				BodyTemplate: email.RegistrationTemplate,
			},
			ChangePasswordEmail: email.Info{
				FromAddress:  cfg.EmailFromAddress,
				Subject:      "Your password was changed",
				BodyTemplate: email.ChangePasswordTemplate,
			},
		},
		logger,
	)
	customerService.AddPostRegisterObserver(event.NewRegistrationObserver(eventProducer))
	passwordEvents := event.NewPasswordEventHandler(eventProducer)
	customerService.AddPasswordChangedHandler(passwordEvents)
	customerService.AddPasswordResetHandler(passwordEvents)

	services := handler.Services{
		Customers:    customerService,
		Users:        service.NewUserDetailsService(customerService, roleRepo, logger),
		Roles:        service.NewRoleService(roleRepo),
		Addresses:    service.NewAddressService(addressRepo, subdivisionRepo, logger),
		Phones:       service.NewCustomerPhoneService(phoneRepo),
		Payments:     service.NewCustomerPaymentService(paymentRepo),
		Countries:    service.NewCountryService(countryRepo),
		Subdivisions: service.NewCountrySubdivisionService(subdivisionRepo),
		Questions:    service.NewChallengeQuestionService(questionRepo),
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(
		services,
		jwtManager,
		healthHandler,
		logger,
		handler.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Environment:    cfg.Environment,
		},
		cfg.ResetPasswordURL,
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redisClient:    redisClient,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka producer
// 4. Redis client
// 5. PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. Drain in-flight HTTP requests (5s budget).
	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 2. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 3. Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 4. Close Redis client.
	if err := a.redisClient.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 5. Close PostgreSQL pool.
	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
