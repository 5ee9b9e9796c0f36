package smtpgw

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-smtp"

	"github.com/tracknest/tracknest/pkg/logger"
)

// Server receives ticket mail relayed by the MTA for the posting
// domain.
type Server struct {
	server  *smtp.Server
	backend *Backend
	logger  logger.Logger
	addr    string
}

// ServerConfig holds the configuration for the gateway server.
type ServerConfig struct {
	Host       string
	Port       int
	Domain     string
	TLSConfig  *tls.Config
	RequireTLS bool
	Logger     logger.Logger
}

// NewServer creates a new gateway server with the given configuration.
func NewServer(cfg ServerConfig, backend *Backend) (*Server, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s := smtp.NewServer(backend)
	s.Addr = addr
	s.Domain = cfg.Domain
	s.ReadTimeout = 30 * time.Second
	s.WriteTimeout = 30 * time.Second
	s.MaxMessageBytes = 10 * 1024 * 1024 // 10 MB max
	s.MaxRecipients = 50

	if cfg.TLSConfig != nil {
		s.TLSConfig = cfg.TLSConfig
		s.AllowInsecureAuth = false
	} else {
		if cfg.RequireTLS {
			return nil, fmt.Errorf("mail gateway: TLS is required in production environment")
		}
		s.AllowInsecureAuth = true
		cfg.Logger.Warn("Mail gateway: Running without TLS, authentication is insecure")
	}

	cfg.Logger.WithFields(map[string]interface{}{
		"addr":   addr,
		"domain": cfg.Domain,
		"tls":    cfg.TLSConfig != nil,
	}).Info("Mail gateway server initialized")

	return &Server{
		server:  s,
		backend: backend,
		logger:  cfg.Logger,
		addr:    addr,
	}, nil
}

// Start listens and serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.addr).Info("Starting mail gateway server")

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	if err := s.server.Serve(listener); err != nil {
		return fmt.Errorf("mail gateway server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the gateway server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down mail gateway server")

	done := make(chan error, 1)
	go func() {
		done <- s.server.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			s.logger.WithField("error", err.Error()).Error("Error during mail gateway shutdown")
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Warn("Mail gateway shutdown timeout exceeded")
		return ctx.Err()
	}
}
