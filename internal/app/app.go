package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tracknest/tracknest/config"
	"github.com/tracknest/tracknest/internal/database"
	"github.com/tracknest/tracknest/internal/domain"
	httpHandler "github.com/tracknest/tracknest/internal/http"
	"github.com/tracknest/tracknest/internal/http/middleware"
	"github.com/tracknest/tracknest/internal/repository"
	"github.com/tracknest/tracknest/internal/service"
	"github.com/tracknest/tracknest/pkg/logger"
	"github.com/tracknest/tracknest/pkg/mailer"
	"github.com/tracknest/tracknest/pkg/mentions"
	"github.com/tracknest/tracknest/pkg/smtpgw"
	"github.com/tracknest/tracknest/pkg/tracing"

	"contrib.go.opencensus.io/integrations/ocsql"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	GetComposer() *mailer.Composer

	// Repository getters for testing
	GetUserRepository() domain.UserRepository
	GetTrackerRepository() domain.TrackerRepository
	GetTicketRepository() domain.TicketRepository
	GetCommentRepository() domain.CommentRepository
	GetEventRepository() domain.EventRepository
	GetLabelRepository() domain.LabelRepository
	GetSubscriptionRepository() domain.SubscriptionRepository
	GetWebhookRepository() domain.WebhookRepository

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitDB() error
	InitComposer() error
	InitTracing() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config   *config.Config
	logger   logger.Logger
	db       *sql.DB
	composer *mailer.Composer

	// Repositories
	userRepo         domain.UserRepository
	trackerRepo      domain.TrackerRepository
	ticketRepo       domain.TicketRepository
	commentRepo      domain.CommentRepository
	eventRepo        domain.EventRepository
	labelRepo        domain.LabelRepository
	assignmentRepo   domain.AssignmentRepository
	accessRepo       domain.AccessRepository
	participantRepo  domain.ParticipantRepository
	subscriptionRepo domain.SubscriptionRepository
	webhookRepo      domain.WebhookRepository
	mailQueueRepo    domain.MailQueueRepository

	// Services
	userService         *service.UserService
	participantService  *service.ParticipantService
	accessService       *service.AccessService
	subscriptionService *service.SubscriptionService
	notificationService *service.NotificationService
	webhookService      *service.WebhookService
	labelService        *service.LabelService
	trackerService      *service.TrackerService
	ticketService       *service.TicketService
	searchService       *service.SearchService
	exportService       *service.ExportService
	importService       *service.ImportService
	inboundMailService  *service.InboundMailService

	// In-process webhook delivery, only when no external broker is
	// configured
	deliveryWorker *service.WebhookDeliveryWorker

	// Inbound mail gateway, only when enabled
	mailGateway *smtpgw.Server

	// Bearer token authentication applied around the mux
	authenticate func(http.Handler) http.Handler

	// HTTP handlers
	mux    *http.ServeMux
	server *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64          // atomic counter for active HTTP requests
	requestWg       sync.WaitGroup // wait group for active requests
	shutdownTimeout time.Duration  // configurable shutdown timeout
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithComposer configures the app to use a prebuilt mail composer
func WithComposer(c *mailer.Composer) AppOption {
	return func(a *App) {
		a.composer = c
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	// Create shutdown context
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 60 * time.Second,
	}

	// Apply options
	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing
func (a *App) InitTracing() error {
	tracingConfig := &a.config.Tracing

	if err := tracing.InitTracing(tracingConfig); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if tracingConfig.Enabled {
		a.logger.WithField("trace_exporter", tracingConfig.TraceExporter).
			WithField("metrics_exporter", tracingConfig.MetricsExporter).
			WithField("sampling_rate", tracingConfig.SamplingProbability).
			Info("Tracing initialized successfully")
	}

	return nil
}

// InitDB initializes the database connection
func (a *App) InitDB() error {
	// Skip if database already set (e.g., by mock)
	if a.db != nil {
		return nil
	}

	password := a.config.Database.Password
	maskedPassword := ""
	if len(password) > 0 {
		maskedPassword = fmt.Sprintf("%c...%c", password[0], password[len(password)-1])
	}
	a.logger.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, password: %s, dbname: %s",
		a.config.Database.Host, a.config.Database.Port, a.config.Database.User,
		a.config.Database.SSLMode, maskedPassword, a.config.Database.DBName))

	// Ensure the database exists
	if err := database.EnsureDatabaseExists(database.GetPostgresDSN(&a.config.Database), a.config.Database.DBName); err != nil {
		a.logger.Error(err.Error())
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}

	a.logger.Info("Database check completed")

	// If tracing is enabled, wrap the postgres driver
	driverName := "postgres"
	if a.config.Tracing.Enabled {
		var err error
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	db, err := sql.Open(driverName, a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test database connection
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Initialize database schema if needed
	if err := database.InitializeDatabase(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	// Set connection pool settings based on environment
	maxOpen, maxIdle, maxLifetime := database.GetConnectionPoolSettings()
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	a.db = db
	return nil
}

// InitComposer initializes the notification mail composer
func (a *App) InitComposer() error {
	// Skip if composer already set (e.g., by option)
	if a.composer != nil {
		return nil
	}

	a.composer = mailer.NewComposer(&mailer.Config{
		NotifyFrom:    a.config.Mail.NotifyFrom,
		SMTPUser:      a.config.Mail.SMTPUser,
		PostingDomain: a.config.Mail.PostingDomain,
	})

	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.userRepo = repository.NewUserRepository(a.db)
	a.trackerRepo = repository.NewTrackerRepository(a.db)
	a.ticketRepo = repository.NewTicketRepository(a.db)
	a.commentRepo = repository.NewCommentRepository(a.db)
	a.eventRepo = repository.NewEventRepository(a.db)
	a.labelRepo = repository.NewLabelRepository(a.db)
	a.assignmentRepo = repository.NewAssignmentRepository(a.db)
	a.accessRepo = repository.NewAccessRepository(a.db)
	a.participantRepo = repository.NewParticipantRepository(a.db)
	a.subscriptionRepo = repository.NewSubscriptionRepository(a.db)
	a.webhookRepo = repository.NewWebhookRepository(a.db)
	a.mailQueueRepo = repository.NewMailQueueRepository(a.db)

	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	a.userService = service.NewUserService(a.userRepo, a.logger)
	a.participantService = service.NewParticipantService(a.participantRepo, a.userRepo, a.logger)
	a.accessService = service.NewAccessService(a.accessRepo, a.participantRepo, a.userRepo, a.logger)
	a.subscriptionService = service.NewSubscriptionService(a.subscriptionRepo, a.participantService, a.logger)

	a.notificationService = service.NewNotificationService(
		a.composer,
		a.mailQueueRepo,
		a.userRepo,
		a.config.Origin,
		a.config.Mail.PostingDomain,
		a.logger,
	)

	// Queued webhook deliveries drain through an external broker when
	// one is configured, otherwise through the in-process worker.
	var broker domain.BrokerNotifier
	if a.config.WebhooksBroker != "" {
		broker = service.NewHTTPBrokerNotifier(a.config.WebhooksBroker, a.logger)
		a.logger.WithField("broker", a.config.WebhooksBroker).Info("Using external webhook delivery broker")
	} else {
		a.deliveryWorker = service.NewWebhookDeliveryWorker(a.webhookRepo, a.logger, tracing.WrapHTTPClient(&http.Client{
			Timeout: 30 * time.Second,
		}))
		broker = a.deliveryWorker
		a.logger.Info("Using in-process webhook delivery worker")
	}

	webhookService, err := service.NewWebhookService(
		a.webhookRepo,
		a.trackerRepo,
		a.ticketRepo,
		a.accessService,
		broker,
		a.config.Security.WebhookSecret,
		a.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize webhook service: %w", err)
	}
	a.webhookService = webhookService

	a.labelService = service.NewLabelService(a.labelRepo, a.trackerRepo, a.webhookService, a.logger)

	a.trackerService = service.NewTrackerService(
		a.trackerRepo,
		a.userRepo,
		a.accessService,
		a.participantService,
		a.subscriptionRepo,
		a.webhookService,
		a.logger,
		a.config.TrackerUpdatedOnAdminEdits,
	)

	a.ticketService = service.NewTicketService(service.TicketServiceConfig{
		Repository:       a.ticketRepo,
		TrackerRepo:      a.trackerRepo,
		CommentRepo:      a.commentRepo,
		EventRepo:        a.eventRepo,
		LabelRepo:        a.labelRepo,
		AssignmentRepo:   a.assignmentRepo,
		SubscriptionRepo: a.subscriptionRepo,
		ParticipantRepo:  a.participantRepo,
		Participants:     a.participantService,
		UserRepo:         a.userRepo,
		AccessService:    a.accessService,
		Notifications:    a.notificationService,
		WebhookService:   a.webhookService,
		Scanner:          mentions.NewScanner(a.config.Origin),
		Tracer:           tracing.GetTracer(),
		Logger:           a.logger,
	})

	a.searchService = service.NewSearchService(a.ticketRepo, a.accessService, a.logger)

	a.exportService = service.NewExportService(service.ExportServiceConfig{
		TicketRepo:      a.ticketRepo,
		EventRepo:       a.eventRepo,
		CommentRepo:     a.commentRepo,
		LabelRepo:       a.labelRepo,
		AssignmentRepo:  a.assignmentRepo,
		ParticipantRepo: a.participantRepo,
		SigningKey:      a.config.Security.SigningKey,
		Origin:          a.config.Origin,
		Logger:          a.logger,
	})

	a.importService = service.NewImportService(service.ImportServiceConfig{
		TrackerRepo:  a.trackerRepo,
		TicketRepo:   a.ticketRepo,
		CommentRepo:  a.commentRepo,
		EventRepo:    a.eventRepo,
		LabelRepo:    a.labelRepo,
		UserRepo:     a.userRepo,
		Participants: a.participantService,
		VerifyKey:    a.config.Security.VerifyKey,
		Origin:       a.config.Origin,
		Logger:       a.logger,
	})

	a.inboundMailService = service.NewInboundMailService(service.InboundMailServiceConfig{
		Trackers:      a.trackerService,
		Tickets:       a.ticketService,
		Subscriptions: a.subscriptionService,
		Participants:  a.participantService,
		UserRepo:      a.userRepo,
		PostingDomain: a.config.Mail.PostingDomain,
		Logger:        a.logger,
	})

	return nil
}

// InitHandlers initializes all HTTP handlers and registers routes
func (a *App) InitHandlers() error {
	authMiddleware := middleware.NewAuthMiddleware(func() ([]byte, error) {
		if a.config.Security.JWTSecret == "" {
			return nil, fmt.Errorf("JWT secret is not configured")
		}
		return []byte(a.config.Security.JWTSecret), nil
	})
	a.authenticate = authMiddleware.Authenticate(a.userService)

	rootHandler := httpHandler.NewRootHandler(a.logger, a.config.Version)

	trackerHandler := httpHandler.NewTrackerHandler(
		a.trackerService,
		a.accessService,
		a.exportService,
		a.importService,
		a.trackerRepo,
		a.logger,
	)

	ticketHandler := httpHandler.NewTicketHandler(httpHandler.TicketHandlerConfig{
		Service:            a.ticketService,
		TrackerService:     a.trackerService,
		SearchService:      a.searchService,
		ParticipantService: a.participantService,
		UserService:        a.userService,
		TrackerRepo:        a.trackerRepo,
		AccessService:      a.accessService,
		Logger:             a.logger,
	})

	labelHandler := httpHandler.NewLabelHandler(a.labelService, a.trackerService, a.logger)
	subscriptionHandler := httpHandler.NewSubscriptionHandler(a.subscriptionService, a.trackerService, a.ticketService, a.logger)
	webhookHandler := httpHandler.NewWebhookHandler(a.webhookService, a.ticketRepo, a.logger)
	userHandler := httpHandler.NewUserHandler(a.userService, a.logger)

	// Register routes
	trackerHandler.RegisterRoutes(a.mux)
	ticketHandler.RegisterRoutes(a.mux)
	labelHandler.RegisterRoutes(a.mux)
	subscriptionHandler.RegisterRoutes(a.mux)
	webhookHandler.RegisterRoutes(a.mux)
	userHandler.RegisterRoutes(a.mux)
	rootHandler.RegisterRoutes(a.mux)

	return nil
}

// startMailGateway starts the inbound SMTP gateway when configured
func (a *App) startMailGateway() error {
	gwConfig := a.config.MailGateway
	if !gwConfig.Enabled {
		return nil
	}

	backend := smtpgw.NewBackend(
		smtpgw.StaticCredentials(gwConfig.Username, gwConfig.Password),
		func(from string, to []string, data []byte) error {
			return a.inboundMailService.Process(a.shutdownCtx, from, to, data)
		},
		a.logger,
	)

	gateway, err := smtpgw.NewServer(smtpgw.ServerConfig{
		Host:   gwConfig.Host,
		Port:   gwConfig.Port,
		Domain: gwConfig.Domain,
		Logger: a.logger,
	}, backend)
	if err != nil {
		return fmt.Errorf("failed to create mail gateway: %w", err)
	}
	a.mailGateway = gateway

	go func() {
		a.logger.WithField("host", gwConfig.Host).
			WithField("port", gwConfig.Port).
			Info("Starting inbound mail gateway")
		if err := gateway.Start(); err != nil {
			a.logger.WithField("error", err).Error("Mail gateway stopped with error")
		}
	}()

	return nil
}

// Start starts the HTTP server
func (a *App) Start() error {
	// Create server with wrapped handler for auth, CORS and tracing
	var handler http.Handler = a.mux

	// Resolve bearer tokens before requests hit the handlers
	if a.authenticate != nil {
		handler = a.authenticate(handler)
	}

	// Apply graceful shutdown middleware (outermost after CORS)
	handler = a.gracefulShutdownMiddleware(handler)
	a.logger.Info("Graceful shutdown middleware enabled")

	// Apply tracing middleware if enabled
	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	// Apply CORS middleware
	handler = middleware.CORSMiddleware(handler)

	// Start the in-process webhook delivery worker when no external
	// broker drains the queue
	if a.deliveryWorker != nil {
		go a.deliveryWorker.Start(a.shutdownCtx)
	}

	if err := a.startMailGateway(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).
		WithField("origin", a.config.Origin).
		Info(fmt.Sprintf("Server starting on %s with origin: %s", addr, a.config.Origin))

	// Create a fresh notification channel and update the server
	a.serverMu.Lock()
	// Close the existing channel if it exists
	if a.serverStarted != nil {
		close(a.serverStarted)
	}
	a.serverStarted = make(chan struct{})

	// Create the server
	a.server = &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Get a reference to the channel before unlocking
	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	// Signal that the server has been created and is about to start
	close(serverStarted)

	// Start the server based on SSL configuration
	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return a.server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return a.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	// Signal shutdown to all components
	a.shutdownCancel()

	// Get server reference
	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources(ctx)
	}

	// Log current active requests
	activeCount := a.getActiveRequestCount()
	a.logger.WithField("active_requests", activeCount).Info("Active requests at shutdown start")

	// Create a timeout context for shutdown operations
	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		// Use the provided context deadline if it's sooner than our default timeout
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining - time.Second // Leave 1 second buffer
			if shutdownTimeout < 0 {
				shutdownTimeout = 0
			}
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// Start HTTP server shutdown in a goroutine
	serverShutdownDone := make(chan error, 1)
	go func() {
		a.logger.WithField("timeout", shutdownTimeout).Info("Starting HTTP server shutdown")
		serverShutdownDone <- server.Shutdown(shutdownCtx)
	}()

	// Wait for active requests to complete in another goroutine
	requestsDone := make(chan struct{}, 1)
	go func() {
		defer close(requestsDone)

		// Wait for all active requests to complete
		a.logger.Info("Waiting for active requests to complete...")
		done := make(chan struct{})

		go func() {
			a.requestWg.Wait()
			close(done)
		}()

		// Monitor progress
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				a.logger.Info("All requests completed")
				return
			case <-ticker.C:
				activeCount := a.getActiveRequestCount()
				a.logger.WithField("active_requests", activeCount).Info("Still waiting for requests to complete...")
			case <-shutdownCtx.Done():
				activeCount := a.getActiveRequestCount()
				a.logger.WithField("active_requests", activeCount).Warn("Shutdown timeout reached, forcing shutdown")
				return
			}
		}
	}()

	// Wait for both server shutdown and requests to complete
	var shutdownErr error

	select {
	case err := <-serverShutdownDone:
		shutdownErr = err
		a.logger.Info("HTTP server shutdown completed")
	case <-shutdownCtx.Done():
		a.logger.Warn("Shutdown timeout reached")
		shutdownErr = fmt.Errorf("shutdown timeout exceeded")
	}

	// Wait a bit more for requests to finish if server shutdown completed quickly
	if shutdownErr == nil {
		select {
		case <-requestsDone:
			// All requests completed
		case <-time.After(2 * time.Second):
			// Give up after 2 more seconds
			activeCount := a.getActiveRequestCount()
			if activeCount > 0 {
				a.logger.WithField("active_requests", activeCount).Warn("Some requests still active, proceeding with shutdown")
			}
		}
	}

	// Cleanup resources
	if cleanupErr := a.cleanupResources(ctx); cleanupErr != nil {
		a.logger.WithField("error", cleanupErr).Error("Error during resource cleanup")
		if shutdownErr == nil {
			shutdownErr = cleanupErr
		}
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}

	return shutdownErr
}

// cleanupResources handles cleanup of database and other resources
func (a *App) cleanupResources(ctx context.Context) error {
	a.logger.Info("Cleaning up resources...")

	// Stop the inbound mail gateway if it is running
	if a.mailGateway != nil {
		a.logger.Info("Shutting down mail gateway")
		if err := a.mailGateway.Shutdown(ctx); err != nil {
			a.logger.WithField("error", err).Error("Error shutting down mail gateway")
		}
	}

	// Close database connection if it exists
	if a.db != nil {
		// If tracing is enabled, record final stats
		if a.config.Tracing.Enabled {
			if err := ocsql.RecordStats(a.db, 5*time.Second); err != nil {
				a.logger.WithField("error", err).Error("Failed to record final database stats for tracing")
			}
		}

		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err).Error("Error closing database connection")
			return err
		}
	}

	a.logger.Info("Resource cleanup completed")
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created and initialized
// Returns true if the server started successfully, false if context expired
func (a *App) WaitForServerStart(ctx context.Context) bool {
	// Get the current channel under lock
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	// If the channel is nil, that's a logic error - just wait on the context
	if started == nil {
		a.logger.Error("serverStarted channel is nil - server initialization error")
		<-ctx.Done()
		return false
	}

	// Wait for signal or timeout
	select {
	case <-started:
		return a.IsServerCreated() // Double-check server was created
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting Tracknest application")

	if err := a.InitTracing(); err != nil {
		return err
	}

	if err := a.InitDB(); err != nil {
		return err
	}

	if err := a.InitComposer(); err != nil {
		return err
	}

	if err := a.InitRepositories(); err != nil {
		return err
	}

	if err := a.InitServices(); err != nil {
		return err
	}

	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")

	return nil
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the app's HTTP multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the app's database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}

// GetComposer returns the app's mail composer
func (a *App) GetComposer() *mailer.Composer {
	return a.composer
}

// Repository getters for testing
func (a *App) GetUserRepository() domain.UserRepository {
	return a.userRepo
}

func (a *App) GetTrackerRepository() domain.TrackerRepository {
	return a.trackerRepo
}

func (a *App) GetTicketRepository() domain.TicketRepository {
	return a.ticketRepo
}

func (a *App) GetCommentRepository() domain.CommentRepository {
	return a.commentRepo
}

func (a *App) GetEventRepository() domain.EventRepository {
	return a.eventRepo
}

func (a *App) GetLabelRepository() domain.LabelRepository {
	return a.labelRepo
}

func (a *App) GetSubscriptionRepository() domain.SubscriptionRepository {
	return a.subscriptionRepo
}

func (a *App) GetWebhookRepository() domain.WebhookRepository {
	return a.webhookRepo
}

// incrementActiveRequests atomically increments the active request counter
func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

// decrementActiveRequests atomically decrements the active request counter
func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

// getActiveRequestCount returns the current number of active requests
func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests (public interface method)
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
	a.logger.WithField("shutdown_timeout", timeout).Info("Shutdown timeout configured")
}

// GetShutdownContext returns the shutdown context for components that need to watch for shutdown
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

// isShuttingDown returns true if the application is in shutdown mode
func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware wraps HTTP handlers to track active requests
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if we're shutting down
		if a.isShuttingDown() {
			// Return 503 Service Unavailable if we're shutting down
			http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		// Track this request
		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		// Call the next handler
		next.ServeHTTP(w, r)
	})
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
