package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gizindir-panel/internal/config"
	"gizindir-panel/internal/database"
	"gizindir-panel/internal/handlers"
	"gizindir-panel/internal/middleware"
	"gizindir-panel/internal/models"
	"gizindir-panel/internal/panel"
	"gizindir-panel/internal/repository"
	"gizindir-panel/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultConfigPath = "config.yaml"

// routes groups the HTTP handlers mounted by newRouter
type routes struct {
	users        *handlers.CRUDHandler[models.User, models.CreateUserInput, models.UpdateUserInput]
	matches      *handlers.CRUDHandler[models.Match, models.CreateMatchInput, models.NoUpdate]
	messages     *handlers.CRUDHandler[models.Message, models.CreateMessageInput, models.UpdateMessageInput]
	sessions     *handlers.CRUDHandler[models.Session, models.CreateSessionInput, models.NoUpdate]
	interactions *handlers.CRUDHandler[models.Interaction, models.CreateInteractionInput, models.UpdateInteractionInput]
	dashboard    *handlers.DashboardHandler
	websocket    *handlers.WebSocketHandler
	images       *handlers.ProfileImageHandler
	panel        *panel.Panel
}

func Run() {
	configPath := flag.String("config", configPathFromEnv(), "path to the YAML configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	ctx := context.Background()

	// Connect to database
	db, err := database.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)

	// Counts come straight from the repositories so the hub can be built
	// before the services that publish to it
	dashboardService := services.NewDashboardService(userRepo, matchRepo, messageRepo, sessionRepo, interactionRepo)
	wsHub := services.NewWSHub(dashboardService.Counts)

	// Initialize services
	tokens := services.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.SessionTTLHours)*time.Hour)
	distinct := cfg.Validation.EnforceDistinctUsers
	userService := services.NewUserService(userRepo, wsHub, cfg.Users.HashPasswords)
	matchService := services.NewMatchService(matchRepo, wsHub, distinct)
	messageService := services.NewMessageService(messageRepo, wsHub)
	sessionService := services.NewSessionService(sessionRepo, wsHub, tokens)
	interactionService := services.NewInteractionService(interactionRepo, wsHub, distinct)

	var presigner handlers.Presigner
	if cfg.AWS.MediaEnabled() {
		mediaService, err := services.NewMediaService(ctx, cfg.AWS)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create media service")
		}
		presigner = mediaService
	} else {
		log.Info().Msg("Profile image uploads disabled: no S3 bucket configured")
	}

	pages, err := panel.New(panel.Deps{
		Users:        userService,
		Matches:      matchService,
		Messages:     messageService,
		Sessions:     sessionService,
		Interactions: interactionService,
		Dashboard:    dashboardService,
		Tokens:       tokens,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load panel templates")
	}

	// Initialize handlers
	h := routes{
		users:        handlers.NewCRUDHandler[models.User, models.CreateUserInput, models.UpdateUserInput](handlers.UserEntity, userService),
		matches:      handlers.NewCRUDHandler[models.Match, models.CreateMatchInput, models.NoUpdate](handlers.MatchEntity, matchService),
		messages:     handlers.NewCRUDHandler[models.Message, models.CreateMessageInput, models.UpdateMessageInput](handlers.MessageEntity, messageService),
		sessions:     handlers.NewCRUDHandler[models.Session, models.CreateSessionInput, models.NoUpdate](handlers.SessionEntity, sessionService),
		interactions: handlers.NewCRUDHandler[models.Interaction, models.CreateInteractionInput, models.UpdateInteractionInput](handlers.InteractionEntity, interactionService),
		dashboard:    handlers.NewDashboardHandler(dashboardService),
		websocket:    handlers.NewWebSocketHandler(wsHub),
		images:       handlers.NewProfileImageHandler(userService, presigner),
		panel:        pages,
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      newRouter(cfg.Server.AllowedOrigins, h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newRouter mounts the JSON API under /api and the panel pages at the root
func newRouter(allowedOrigins []string, h routes) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			h.users.Routes(r)
			r.Post("/{id}/profile-image", h.images.Upload)
		})
		r.Route("/matches", h.matches.Routes)
		r.Route("/messages", h.messages.Routes)
		r.Route("/sessions", h.sessions.Routes)
		r.Route("/interactions", h.interactions.Routes)

		r.Get("/dashboard", h.dashboard.GetCounts)
		r.Get("/dashboard/ws", h.websocket.HandleWebSocket)
	})

	if h.panel != nil {
		h.panel.Routes(r)
	}

	return r
}

func configPathFromEnv() string {
	if path := os.Getenv("PANEL_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
