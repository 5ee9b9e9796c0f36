package app

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracknest/tracknest/config"
	"github.com/tracknest/tracknest/pkg/mailer"
	pkgmocks "github.com/tracknest/tracknest/pkg/mocks"
)

// Helper function to create a test configuration
func createTestConfig() *config.Config {
	_, signingKey, _ := ed25519.GenerateKey(rand.Reader)

	return &config.Config{
		Environment: "test",
		Origin:      "https://todo.example.org",
		Database: config.DatabaseConfig{
			User:     "postgres_test",
			Password: "postgres_test",
			Host:     "localhost",
			Port:     5432,
			DBName:   "tracknest_test",
		},
		Server: config.ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Mail: config.MailConfig{
			PostingDomain: "todo.example.org",
			NotifyFrom:    "Tracknest <notify@example.org>",
			SMTPUser:      "bounces",
		},
		Security: config.SecurityConfig{
			SigningKey:    signingKey,
			VerifyKey:     signingKey.Public().(ed25519.PublicKey),
			JWTSecret:     "test-jwt-secret-key-32-bytes-min",
			WebhookSecret: "dGVzdC13ZWJob29rLXNlY3JldC1rZXktbWF0ZXJpYWw=",
		},
	}
}

func newTestLogger(ctrl *gomock.Controller) *pkgmocks.MockLogger {
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().WithFields(gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	return mockLogger
}

func TestNewApp(t *testing.T) {
	cfg := createTestConfig()

	// Test creating a new app with default logger
	app := NewApp(cfg)
	assert.NotNil(t, app)
	assert.Equal(t, cfg, app.GetConfig())
	assert.NotNil(t, app.GetLogger())
	assert.NotNil(t, app.GetMux())

	// Test creating a new app with custom options
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := newTestLogger(ctrl)
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	composer := mailer.NewComposer(&mailer.Config{
		NotifyFrom:    "Test <notify@example.org>",
		SMTPUser:      "bounces",
		PostingDomain: "todo.example.org",
	})

	app = NewApp(cfg,
		WithLogger(mockLogger),
		WithMockDB(mockDB),
		WithComposer(composer),
	)

	assert.Equal(t, mockLogger, app.GetLogger())
	assert.Equal(t, mockDB, app.GetDB())
	assert.Equal(t, composer, app.GetComposer())
}

func TestAppInitComposer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := newTestLogger(ctrl)

	t.Run("builds composer from config", func(t *testing.T) {
		cfg := createTestConfig()

		app := NewApp(cfg, WithLogger(mockLogger))
		err := app.InitComposer()
		assert.NoError(t, err)
		assert.NotNil(t, app.GetComposer())
	})

	t.Run("keeps prebuilt composer", func(t *testing.T) {
		cfg := createTestConfig()
		composer := mailer.NewComposer(&mailer.Config{
			NotifyFrom:    "Test <notify@example.org>",
			PostingDomain: "todo.example.org",
		})

		app := NewApp(cfg, WithLogger(mockLogger), WithComposer(composer))
		err := app.InitComposer()
		assert.NoError(t, err)
		assert.Equal(t, composer, app.GetComposer())
	})
}

func TestAppShutdown(t *testing.T) {
	cfg := createTestConfig()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	// Expect Close to be called during shutdown
	mock.ExpectClose()

	mockLogger := newTestLogger(ctrl)

	// Create app with mock DB
	app := NewApp(cfg, WithLogger(mockLogger), WithMockDB(mockDB))

	// Test shutdown - no server but should close DB
	err = app.Shutdown(context.Background())
	assert.NoError(t, err)
}

// TestAppInitRepositories tests the InitRepositories method
func TestAppInitRepositories(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	cfg := createTestConfig()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := newTestLogger(ctrl)
	app := NewApp(cfg, WithLogger(mockLogger), WithMockDB(mockDB))

	// Test repository initialization
	err = app.InitRepositories()
	assert.NoError(t, err)

	// We need to cast to *App to access the internal fields for testing
	appImpl, ok := app.(*App)
	require.True(t, ok, "app should be *App")

	// Verify repositories were initialized
	assert.NotNil(t, appImpl.userRepo)
	assert.NotNil(t, appImpl.trackerRepo)
	assert.NotNil(t, appImpl.ticketRepo)
	assert.NotNil(t, appImpl.commentRepo)
	assert.NotNil(t, appImpl.eventRepo)
	assert.NotNil(t, appImpl.labelRepo)
	assert.NotNil(t, appImpl.assignmentRepo)
	assert.NotNil(t, appImpl.accessRepo)
	assert.NotNil(t, appImpl.participantRepo)
	assert.NotNil(t, appImpl.subscriptionRepo)
	assert.NotNil(t, appImpl.webhookRepo)
	assert.NotNil(t, appImpl.mailQueueRepo)
}

// TestAppInitRepositoriesWithoutDB verifies repositories require a database
func TestAppInitRepositoriesWithoutDB(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app := NewApp(createTestConfig(), WithLogger(newTestLogger(ctrl)))

	err := app.InitRepositories()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database must be initialized")
}

// TestAppInitServices tests the InitServices method
func TestAppInitServices(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	cfg := createTestConfig()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := newTestLogger(ctrl)
	app := NewApp(cfg, WithLogger(mockLogger), WithMockDB(mockDB))

	require.NoError(t, app.InitComposer())
	require.NoError(t, app.InitRepositories())

	// Test service initialization
	err = app.InitServices()
	assert.NoError(t, err)

	// Cast to *App to access service fields
	appImpl, ok := app.(*App)
	require.True(t, ok, "app should be *App")

	// Verify services were initialized
	assert.NotNil(t, appImpl.userService, "User service should be initialized")
	assert.NotNil(t, appImpl.participantService, "Participant service should be initialized")
	assert.NotNil(t, appImpl.accessService, "Access service should be initialized")
	assert.NotNil(t, appImpl.subscriptionService, "Subscription service should be initialized")
	assert.NotNil(t, appImpl.notificationService, "Notification service should be initialized")
	assert.NotNil(t, appImpl.webhookService, "Webhook service should be initialized")
	assert.NotNil(t, appImpl.labelService, "Label service should be initialized")
	assert.NotNil(t, appImpl.trackerService, "Tracker service should be initialized")
	assert.NotNil(t, appImpl.ticketService, "Ticket service should be initialized")
	assert.NotNil(t, appImpl.searchService, "Search service should be initialized")
	assert.NotNil(t, appImpl.exportService, "Export service should be initialized")
	assert.NotNil(t, appImpl.importService, "Import service should be initialized")
	assert.NotNil(t, appImpl.inboundMailService, "Inbound mail service should be initialized")

	// No external broker configured, so the in-process worker drains the queue
	assert.NotNil(t, appImpl.deliveryWorker, "Delivery worker should be initialized")
}

// TestAppInitServicesExternalBroker verifies the broker selection
func TestAppInitServicesExternalBroker(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	cfg := createTestConfig()
	cfg.WebhooksBroker = "http://localhost:8090/nudge"

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app := NewApp(cfg, WithLogger(newTestLogger(ctrl)), WithMockDB(mockDB))
	require.NoError(t, app.InitComposer())
	require.NoError(t, app.InitRepositories())
	require.NoError(t, app.InitServices())

	appImpl, ok := app.(*App)
	require.True(t, ok, "app should be *App")

	assert.Nil(t, appImpl.deliveryWorker, "No in-process worker with an external broker")
	assert.NotNil(t, appImpl.webhookService)
}

// TestAppInitHandlers tests the InitHandlers method
func TestAppInitHandlers(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	cfg := createTestConfig()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := newTestLogger(ctrl)
	app := NewApp(cfg, WithLogger(mockLogger), WithMockDB(mockDB))

	require.NoError(t, app.InitComposer())
	require.NoError(t, app.InitRepositories())
	require.NoError(t, app.InitServices())

	// Test handler initialization
	err = app.InitHandlers()
	assert.NoError(t, err)

	assert.NotNil(t, app.GetMux(), "HTTP mux should be initialized")

	// Verify core routes are registered
	mux := app.GetMux()
	testRoutes := []string{
		"/api/trackers.list",
		"/api/trackers.create",
		"/api/tickets.list",
		"/api/tickets.submit",
		"/api/labels.list",
		"/api/subscriptions.subscribe",
		"/api/webhooks.list",
		"/api/users.me",
		"/health",
	}

	for _, route := range testRoutes {
		req := httptest.NewRequest("GET", route, nil)
		handler, pattern := mux.Handler(req)
		assert.NotNil(t, handler, "Handler should be registered for route: %s", route)
		assert.Equal(t, route, pattern, "Pattern should match route %s", route)
	}
}

// TestAppStart tests the Start method
func TestAppStart(t *testing.T) {
	// Use a special config with high port number to avoid conflicts
	cfg := createTestConfig()
	cfg.Server.Port = 18080 + (time.Now().Nanosecond() % 1000)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := newTestLogger(ctrl)

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	// Only expect Close to be called during shutdown
	mock.ExpectClose()

	app := NewApp(cfg, WithLogger(mockLogger), WithMockDB(mockDB))

	// Set a shorter shutdown timeout for testing
	app.SetShutdownTimeout(2 * time.Second)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	// Wait for server to be initialized with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	started := app.WaitForServerStart(ctx)
	require.True(t, started, "Server should have started within timeout")

	// Verify server was created
	assert.True(t, app.IsServerCreated(), "Server should be created")

	// Shutdown the server with sufficient timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err = app.Shutdown(shutdownCtx)
	assert.NoError(t, err)

	// Check for any server errors
	select {
	case err := <-errCh:
		// We expect http.ErrServerClosed
		if err != nil && err != http.ErrServerClosed {
			t.Fatalf("Server error: %v", err)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Timed out waiting for server to stop")
	}
}

// generateSelfSignedCert creates a temporary self-signed certificate and key for TLS tests
func generateSelfSignedCert(t *testing.T) (certFile string, keyFile string) {
	t.Helper()

	// Generate a private key
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate private key: %v", err)
	}

	// Create a template for the certificate
	serialNumberLimit := new(big.Int).Lsh(big.NewInt(1), 128)
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		t.Fatalf("failed to generate serial number: %v", err)
	}

	tmpl := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{"Tracknest Test"},
		},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}

	// Self-sign the certificate
	derBytes, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}

	// Write cert to temp file
	certOut, err := os.CreateTemp("", "tracknest_test_cert_*.pem")
	if err != nil {
		t.Fatalf("failed to create temp cert file: %v", err)
	}
	if err := pem.Encode(certOut, &pem.Block{Type: "CERTIFICATE", Bytes: derBytes}); err != nil {
		t.Fatalf("failed to write cert file: %v", err)
	}
	_ = certOut.Close()

	// Write key to temp file
	keyOut, err := os.CreateTemp("", "tracknest_test_key_*.pem")
	if err != nil {
		t.Fatalf("failed to create temp key file: %v", err)
	}
	if err := pem.Encode(keyOut, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)}); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}
	_ = keyOut.Close()

	return certOut.Name(), keyOut.Name()
}

// TestAppStartTLS covers the TLS branch and tracing-enabled middleware path
func TestAppStartTLS(t *testing.T) {
	// Use a special config with high port number to avoid conflicts
	cfg := createTestConfig()
	cfg.Server.Port = 20000 + (time.Now().Nanosecond() % 1000)
	cfg.Server.SSL.Enabled = true

	// Enable tracing to hit tracing middleware branch (exporters disabled)
	cfg.Tracing.Enabled = true
	cfg.Tracing.TraceExporter = "none"
	cfg.Tracing.MetricsExporter = "none"

	// Generate self-signed certs
	certPath, keyPath := generateSelfSignedCert(t)
	defer func() { _ = os.Remove(certPath) }()
	defer func() { _ = os.Remove(keyPath) }()
	cfg.Server.SSL.CertFile = certPath
	cfg.Server.SSL.KeyFile = keyPath

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()
	mock.ExpectClose()

	app := NewApp(cfg, WithLogger(newTestLogger(ctrl)), WithMockDB(mockDB))

	// Set a shorter shutdown timeout for testing
	app.SetShutdownTimeout(2 * time.Second)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	// Wait for server to be initialized with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	started := app.WaitForServerStart(ctx)
	require.True(t, started, "Server should have started within timeout")

	// Shutdown the server with sufficient timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	err = app.Shutdown(shutdownCtx)
	assert.NoError(t, err)

	// Check for any server errors
	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			t.Fatalf("Server error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for server to stop")
	}
}

// TestWaitForServerStartNilChannel forces nil channel to cover error path
func TestWaitForServerStartNilChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appInterface := NewApp(createTestConfig(), WithLogger(newTestLogger(ctrl)))
	appImpl := appInterface.(*App)

	// Force nil channel under lock
	appImpl.serverMu.Lock()
	appImpl.serverStarted = nil
	appImpl.serverMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	ok := appImpl.WaitForServerStart(ctx)
	assert.False(t, ok)
}

// TestAppInitTracingEnabled ensures InitTracing covers enabled branch without exporters
func TestAppInitTracingEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := createTestConfig()
	cfg.Tracing.Enabled = true
	cfg.Tracing.TraceExporter = "none"
	cfg.Tracing.MetricsExporter = "none"

	app := NewApp(cfg, WithLogger(newTestLogger(ctrl)))
	err := app.InitTracing()
	assert.NoError(t, err)
}

// TestGracefulShutdownMethods tests the graceful shutdown methods
func TestGracefulShutdownMethods(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app := NewApp(createTestConfig(), WithLogger(newTestLogger(ctrl)))

	// Test SetShutdownTimeout
	newTimeout := 90 * time.Second
	app.SetShutdownTimeout(newTimeout)

	// Cast to *App to check internal field
	appImpl, ok := app.(*App)
	require.True(t, ok, "app should be *App")
	assert.Equal(t, newTimeout, appImpl.shutdownTimeout)

	// Test GetActiveRequestCount (should be 0 initially)
	activeCount := app.GetActiveRequestCount()
	assert.Equal(t, int64(0), activeCount)

	// Test GetShutdownContext (should not be cancelled initially)
	shutdownCtx := app.GetShutdownContext()
	assert.NotNil(t, shutdownCtx)
	select {
	case <-shutdownCtx.Done():
		t.Fatal("Shutdown context should not be cancelled initially")
	default:
		// Good, context is not cancelled
	}

	// Test that shutdown context gets cancelled on shutdown
	err := app.Shutdown(context.Background())
	assert.NoError(t, err)

	// Now the shutdown context should be cancelled
	select {
	case <-shutdownCtx.Done():
		// Good, context is cancelled
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Shutdown context should be cancelled after shutdown")
	}
}

// TestGracefulShutdownMiddleware tests the graceful shutdown middleware
func TestGracefulShutdownMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appInterface := NewApp(createTestConfig(), WithLogger(newTestLogger(ctrl)))
	app, ok := appInterface.(*App)
	require.True(t, ok, "app should be *App")

	// Create a test handler
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Simulate some work
		time.Sleep(10 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Wrap with graceful shutdown middleware
	wrappedHandler := app.gracefulShutdownMiddleware(testHandler)

	// Test normal request (not shutting down)
	req := httptest.NewRequest("GET", "/test", nil)
	rec := httptest.NewRecorder()

	// Should process normally
	wrappedHandler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	// Now trigger shutdown
	app.shutdownCancel()

	// Test request during shutdown
	req2 := httptest.NewRequest("GET", "/test", nil)
	rec2 := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusServiceUnavailable, rec2.Code)
	assert.Contains(t, rec2.Body.String(), "Server is shutting down")
}

// TestActiveRequestTracking tests the request tracking functionality
func TestActiveRequestTracking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appInterface := NewApp(createTestConfig(), WithLogger(newTestLogger(ctrl)))
	app, ok := appInterface.(*App)
	require.True(t, ok, "app should be *App")

	// Initially no active requests
	assert.Equal(t, int64(0), app.GetActiveRequestCount())

	// Simulate incrementing active requests
	app.incrementActiveRequests()
	assert.Equal(t, int64(1), app.GetActiveRequestCount())

	app.incrementActiveRequests()
	assert.Equal(t, int64(2), app.GetActiveRequestCount())

	// Simulate decrementing active requests
	app.decrementActiveRequests()
	assert.Equal(t, int64(1), app.GetActiveRequestCount())

	app.decrementActiveRequests()
	assert.Equal(t, int64(0), app.GetActiveRequestCount())
}

// TestIsShuttingDown tests the shutdown state detection
func TestIsShuttingDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appInterface := NewApp(createTestConfig(), WithLogger(newTestLogger(ctrl)))
	app, ok := appInterface.(*App)
	require.True(t, ok, "app should be *App")

	// Initially not shutting down
	assert.False(t, app.isShuttingDown())

	// Trigger shutdown
	app.shutdownCancel()

	// Now should be shutting down
	assert.True(t, app.isShuttingDown())
}

// TestApp_RepositoryGetters tests all repository getter methods
func TestApp_RepositoryGetters(t *testing.T) {
	cfg := createTestConfig()

	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appInterface := NewApp(cfg, WithLogger(newTestLogger(ctrl)), WithMockDB(mockDB))

	require.NoError(t, appInterface.InitRepositories())

	assert.NotNil(t, appInterface.GetUserRepository())
	assert.NotNil(t, appInterface.GetTrackerRepository())
	assert.NotNil(t, appInterface.GetTicketRepository())
	assert.NotNil(t, appInterface.GetCommentRepository())
	assert.NotNil(t, appInterface.GetEventRepository())
	assert.NotNil(t, appInterface.GetLabelRepository())
	assert.NotNil(t, appInterface.GetSubscriptionRepository())
	assert.NotNil(t, appInterface.GetWebhookRepository())
}

// TestApp_InitDB tests the InitDB method error path
func TestApp_InitDB(t *testing.T) {
	t.Run("fails with unreachable database", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.Database.Host = "invalid-host-that-does-not-exist"
		cfg.Database.Port = 9999
		cfg.Database.DBName = "invalid_db"

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app := NewApp(cfg, WithLogger(newTestLogger(ctrl)))

		err := app.InitDB()
		assert.Error(t, err, "InitDB should fail with invalid database config")
	})

	t.Run("skips when mock DB is set", func(t *testing.T) {
		mockDB, _, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = mockDB.Close() }()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app := NewApp(createTestConfig(), WithLogger(newTestLogger(ctrl)), WithMockDB(mockDB))

		err = app.InitDB()
		assert.NoError(t, err)
		assert.Equal(t, mockDB, app.GetDB())
	})
}

// TestApp_Initialize tests the full Initialize method error path
func TestApp_Initialize(t *testing.T) {
	cfg := createTestConfig()
	cfg.Database.Host = "invalid-host"
	cfg.Database.Port = 9999

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app := NewApp(cfg, WithLogger(newTestLogger(ctrl)))

	// Initialize should fail due to database error
	initErr := app.Initialize()
	assert.Error(t, initErr, "Initialize should fail with invalid database config")
}

// TestApp_InitializeWithMockDB runs the full initialization chain on a mock DB
func TestApp_InitializeWithMockDB(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = mockDB.Close() }()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app := NewApp(createTestConfig(), WithLogger(newTestLogger(ctrl)), WithMockDB(mockDB))

	err = app.Initialize()
	assert.NoError(t, err)
	assert.NotNil(t, app.GetComposer())
	assert.NotNil(t, app.GetMux())
}
