package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService      driving.AuthService
	userService      driving.UserService
	oauthService     driving.OAuthService
	mailService      driving.MailService
	classroomService driving.ClassroomService
	analysisService  driving.AnalysisService
	taskService      driving.TaskService
	eventService     driving.EventService
	bookmarkService  driving.BookmarkService

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)

	allowedOrigins []string
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// Services bundles the driving ports the server exposes
type Services struct {
	Auth      driving.AuthService
	User      driving.UserService
	OAuth     driving.OAuthService
	Mail      driving.MailService
	Classroom driving.ClassroomService
	Analysis  driving.AnalysisService
	Task      driving.TaskService
	Event     driving.EventService
	Bookmark  driving.BookmarkService
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, svcs Services, db Pinger, redisClient Pinger) *Server {
	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		authService:      svcs.Auth,
		userService:      svcs.User,
		oauthService:     svcs.OAuth,
		mailService:      svcs.Mail,
		classroomService: svcs.Classroom,
		analysisService:  svcs.Analysis,
		taskService:      svcs.Task,
		eventService:     svcs.Event,
		bookmarkService:  svcs.Bookmark,
		db:               db,
		redisClient:      redisClient,
		allowedOrigins:   cfg.AllowedOrigins,
	}

	recovery := NewRecoveryMiddleware()
	logging := NewLoggingMiddleware()
	cors := NewCORSMiddleware(cfg.AllowedOrigins)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      recovery.Handler(logging.Handler(cors.Handler(s.router))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Setup endpoint (public, one-time use)
	s.router.HandleFunc("POST /api/v1/setup", s.handleSetup)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))

	// User endpoints
	s.router.Handle("GET /api/v1/me",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetMe)))

	// Connection endpoints
	s.router.Handle("POST /api/v1/connections/{provider}/start",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleConnectionStart)))
	s.router.Handle("GET /api/v1/connections",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListConnections)))
	s.router.Handle("DELETE /api/v1/connections/{provider}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDisconnect)))

	// Callback is public - receives redirects from the OAuth provider. The
	// acting user is resolved from the stored state, not from a session.
	s.router.HandleFunc("GET /api/v1/connections/callback", s.handleConnectionCallback)

	// Provider data endpoints (authenticated)
	s.router.Handle("GET /api/v1/mail/inbox",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleMailInbox)))
	s.router.Handle("GET /api/v1/classroom/announcements",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleClassroomAnnouncements)))

	// Analysis endpoint (authenticated)
	s.router.Handle("POST /api/v1/analyze",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleAnalyze)))

	// Task endpoints (authenticated)
	s.router.Handle("GET /api/v1/tasks",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListTasks)))
	s.router.Handle("POST /api/v1/tasks",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateTask)))
	s.router.Handle("PATCH /api/v1/tasks/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateTask)))
	s.router.Handle("DELETE /api/v1/tasks/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteTask)))

	// Event endpoints (authenticated)
	s.router.Handle("GET /api/v1/events",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListEvents)))
	s.router.Handle("POST /api/v1/events",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateEvent)))
	s.router.Handle("DELETE /api/v1/events/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteEvent)))

	// Bookmark endpoints (authenticated)
	s.router.Handle("GET /api/v1/bookmarks",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListBookmarks)))
	s.router.Handle("POST /api/v1/bookmarks",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateBookmark)))
	s.router.Handle("DELETE /api/v1/bookmarks/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteBookmark)))
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
