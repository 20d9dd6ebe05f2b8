package main

import (
	"context"
	"encoding/hex"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studydeck-labs/studydeck-core/internal/adapters/driven/ai"
	"github.com/studydeck-labs/studydeck-core/internal/adapters/driven/auth"
	"github.com/studydeck-labs/studydeck-core/internal/adapters/driven/google"
	"github.com/studydeck-labs/studydeck-core/internal/adapters/driven/postgres"
	redisadapter "github.com/studydeck-labs/studydeck-core/internal/adapters/driven/redis"
	"github.com/studydeck-labs/studydeck-core/internal/adapters/driving/http"
	"github.com/studydeck-labs/studydeck-core/internal/config"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
	"github.com/studydeck-labs/studydeck-core/internal/core/services"
	"github.com/studydeck-labs/studydeck-core/internal/janitor"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mode := cfg.RunMode
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	log.Printf("studydeck-core %s starting in %s mode", version, mode)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Initialize PostgreSQL =====
	log.Println("Connecting to PostgreSQL...")
	dbConfig := postgres.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetimeSec) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleSec) * time.Second,
	}
	db, err := postgres.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize schema (idempotent)
	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("PostgreSQL connected and schema initialized")

	// ===== Initialize Redis (optional) =====
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	// ===== Token cipher =====
	cipherKey, err := loadCipherKey(cfg.TokenCipherKey)
	if err != nil {
		log.Fatalf("Failed to load token cipher key: %v", err)
	}
	tokenCipher, err := postgres.NewTokenCipher(cipherKey)
	if err != nil {
		log.Fatalf("Failed to create token cipher: %v", err)
	}

	// ===== Driven adapters (infrastructure) =====
	authAdapter := auth.NewAdapter(cfg.JWTSecret)
	oauthClient := google.NewOAuthClient(google.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.RedirectURL(),
	})
	mailGateway := google.NewGmailGateway()
	classroomGateway := google.NewClassroomGateway()

	var extractor driven.TaskExtractor
	if cfg.AIAPIKey != "" {
		extractor, err = ai.NewOpenAIExtractor(cfg.AIAPIKey, cfg.AIModel, cfg.AIBaseURL)
		if err != nil {
			log.Fatalf("Failed to create task extractor: %v", err)
		}
	} else {
		log.Println("AI_API_KEY not set, analysis endpoint disabled")
	}

	// ===== PostgreSQL Stores =====
	userStore := postgres.NewUserStore(db)
	credentialStore := postgres.NewCredentialStore(db, tokenCipher)
	stateStore := postgres.NewOAuthStateStore(db)
	taskStore := postgres.NewTaskStore(db)
	eventStore := postgres.NewEventStore(db)
	bookmarkStore := postgres.NewBookmarkStore(db)

	// ===== Session Store (Redis if available, otherwise PostgreSQL) =====
	var sessionStore driven.SessionStore
	if redisClient != nil {
		sessionStore = redisadapter.NewSessionStore(redisClient)
		log.Println("Using Redis session store")
	} else {
		sessionStore = postgres.NewSessionStore(db)
		log.Println("Using PostgreSQL session store")
	}

	// ===== Distributed Lock (Redis if available, otherwise PostgreSQL advisory locks) =====
	var distributedLock driven.DistributedLock
	if redisClient != nil {
		distributedLock = redisadapter.NewLock(redisClient)
		log.Println("Using Redis distributed lock")
	} else {
		distributedLock = postgres.NewAdvisoryLock(db)
		log.Println("Using PostgreSQL advisory lock")
	}

	// Services (core business logic)
	authService := services.NewAuthService(userStore, sessionStore, authAdapter)
	userService := services.NewUserService(userStore, authAdapter)
	oauthService := services.NewOAuthService(services.OAuthServiceConfig{
		OAuthClient:     oauthClient,
		StateStore:      stateStore,
		CredentialStore: credentialStore,
	})
	tokenService := services.NewTokenService(services.TokenServiceConfig{
		CredentialStore: credentialStore,
		OAuthClient:     oauthClient,
		Lock:            distributedLock,
	})
	mailService := services.NewMailService(tokenService, mailGateway)
	classroomService := services.NewClassroomService(tokenService, classroomGateway)
	analysisService := services.NewAnalysisService(extractor)
	taskService := services.NewTaskService(taskStore)
	eventService := services.NewEventService(eventStore)
	bookmarkService := services.NewBookmarkService(bookmarkStore)

	svcs := http.Services{
		Auth:      authService,
		User:      userService,
		OAuth:     oauthService,
		Mail:      mailService,
		Classroom: classroomService,
		Analysis:  analysisService,
		Task:      taskService,
		Event:     eventService,
		Bookmark:  bookmarkService,
	}

	jan := janitor.New(janitor.Config{
		StateStore:   stateStore,
		SessionStore: sessionStore,
		Lock:         distributedLock,
		Interval:     time.Duration(cfg.JanitorIntervalSeconds) * time.Second,
	})

	var redisPinger http.Pinger
	if redisClient != nil {
		redisPinger = redisadapter.NewLock(redisClient)
	}

	switch mode {
	case "api":
		runAPI(cfg, svcs, db, redisPinger)

	case "janitor":
		jan.Start(ctx)
		<-ctx.Done()
		jan.Stop()

	case "all":
		jan.Start(ctx)
		defer jan.Stop()
		runAPI(cfg, svcs, db, redisPinger)

	default:
		log.Fatalf("Unknown mode: %s (use: api, janitor, or all)", mode)
	}
}

func runAPI(cfg *config.Config, svcs http.Services, db http.Pinger, redisClient http.Pinger) {
	serverCfg := http.Config{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        version,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	server := http.NewServer(serverCfg, svcs, db, redisClient)

	log.Printf("API server starting on :%d", cfg.Port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadCipherKey decodes the hex-encoded AES key. A missing key falls back
// to a fixed development key so local setups work out of the box.
func loadCipherKey(hexKey string) ([]byte, error) {
	if hexKey == "" {
		log.Println("TOKEN_CIPHER_KEY not set, using development key (do not use in production)")
		return []byte("development-key-0123456789abcdef"), nil
	}
	return hex.DecodeString(hexKey)
}
