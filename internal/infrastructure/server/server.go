package server

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HobbyCoders/deck/internal/api/http"
	"github.com/HobbyCoders/deck/internal/api/middleware"
	"github.com/HobbyCoders/deck/internal/api/ws"
	"github.com/HobbyCoders/deck/internal/domain/card"
	"github.com/HobbyCoders/deck/internal/domain/gesture"
	"github.com/HobbyCoders/deck/internal/domain/registry"
	"github.com/HobbyCoders/deck/internal/domain/service"
	"github.com/HobbyCoders/deck/internal/domain/session"
	"github.com/HobbyCoders/deck/internal/domain/workspace"
	"github.com/HobbyCoders/deck/internal/infrastructure/config"
	"github.com/HobbyCoders/deck/internal/infrastructure/logging"
	"github.com/HobbyCoders/deck/internal/infrastructure/monitoring"
	"github.com/HobbyCoders/deck/internal/infrastructure/tracing"
	"github.com/HobbyCoders/deck/internal/providers/files"
	"github.com/HobbyCoders/deck/internal/providers/profile"
	"github.com/HobbyCoders/deck/internal/providers/settings"
	"github.com/HobbyCoders/deck/internal/providers/terminal"
	"github.com/HobbyCoders/deck/internal/shared/paths"
	"github.com/HobbyCoders/deck/internal/shared/types"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	cards    *card.Manager
	deck     *workspace.Manager
	services *service.Registry
	sessions *session.Manager
	terminal *terminal.Manager
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing deck server",
		zap.String("port", cfg.Server.Port),
		zap.String("data_dir", cfg.Data.Dir),
	)

	// Metrics first, other components hook into them
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("deckd", logger.Logger)

	// Prepare the on-disk layout
	root := paths.NewRoot(cfg.Data.Dir)
	for _, dir := range root.StandardDirectories() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("Failed to create data directory",
				zap.String("dir", dir), zap.Error(err))
		}
	}

	// Domain managers
	cards := card.NewManager().WithMetrics(metrics)
	deck := workspace.NewManager(cards, logger.Logger)
	if cfg.Workspace.Width > 0 && cfg.Workspace.Height > 0 {
		if err := deck.SetBounds(types.WorkspaceBounds{
			Width:  cfg.Workspace.Width,
			Height: cfg.Workspace.Height,
		}); err != nil {
			logger.Warn("Invalid initial workspace bounds", zap.Error(err))
		}
	}
	gestures := gesture.NewController(cards, deck, logger.Logger)

	// Service providers
	serviceRegistry := service.NewRegistry()
	terminalProvider := terminal.NewProvider(root.Workspace())
	registerProviders(serviceRegistry, root, terminalProvider, logger)

	// Template registry, seeded from YAML definitions
	templateRegistry := registry.NewManager(root.Templates())
	ctx := context.Background()
	if err := templateRegistry.LoadAll(ctx); err != nil {
		logger.Warn("Failed to load templates", zap.Error(err))
	}
	seeder := registry.NewSeeder(templateRegistry, cfg.Data.SeedDir, logger.Logger)
	if seeded, err := seeder.Seed(ctx); err != nil {
		logger.Warn("Failed to seed templates", zap.Error(err))
	} else if seeded > 0 {
		logger.Info("Seeded templates", zap.Int("count", seeded))
	}
	metrics.SetRegistryTemplates(templateRegistry.Stats().TotalTemplates)

	// Session manager
	sessionManager := session.NewManager(cards, deck, root.Sessions())
	if err := sessionManager.LoadAll(ctx); err != nil {
		logger.Warn("Failed to scan sessions", zap.Error(err))
	}

	// Router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Handlers
	handlers := http.NewHandlers(cards, deck, serviceRegistry, templateRegistry, sessionManager, metrics)
	hub := ws.NewHub()
	wsHandler := ws.NewHandler(cards, deck, gestures, hub, metrics, logger.Logger)

	// Closing a card tears down its terminal sessions
	closeHook := func(cardID string) {
		if killed := terminalProvider.Manager().KillByCard(cardID); killed > 0 {
			logger.Info("Killed terminal sessions for closed card",
				zap.String("card_id", cardID), zap.Int("count", killed))
		}
	}
	handlers.OnCardClose(closeHook)
	handlers.SetNotifier(hub)
	wsHandler.OnCardClose(closeHook)

	// Routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/stats", handlers.Stats)

	// Card management
	router.POST("/cards", handlers.OpenCard)
	router.GET("/cards", handlers.ListCards)
	router.GET("/cards/:id", handlers.GetCard)
	router.DELETE("/cards/:id", handlers.CloseCard)
	router.POST("/cards/:id/focus", handlers.FocusCard)
	router.PATCH("/cards/:id/window", handlers.UpdateWindow)
	router.POST("/cards/:id/minimize", handlers.MinimizeCard)
	router.POST("/cards/:id/restore", handlers.RestoreCard)
	router.POST("/cards/:id/maximize", handlers.MaximizeCard)
	router.POST("/cards/:id/unmaximize", handlers.UnmaximizeCard)
	router.POST("/cards/:id/pin", handlers.PinCard)
	router.POST("/cards/:id/rename", handlers.RenameCard)
	router.POST("/cards/:id/snap", handlers.SnapCard)
	router.PUT("/cards/:id/payload", handlers.UpdateCardPayload)

	// Workspace
	router.GET("/workspace", handlers.GetWorkspace)
	router.POST("/workspace/bounds", handlers.SetBounds)
	router.POST("/workspace/layout", handlers.SetLayout)
	router.POST("/workspace/swipe", handlers.Swipe)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// Template registry
	router.POST("/registry/templates", handlers.SaveCardTemplate)
	router.GET("/registry/templates", handlers.ListTemplates)
	router.GET("/registry/templates/:id", handlers.GetTemplate)
	router.POST("/registry/templates/:id/open", handlers.OpenFromTemplate)
	router.DELETE("/registry/templates/:id", handlers.DeleteTemplate)

	// Session endpoints
	router.POST("/sessions/save", handlers.SaveSession)
	router.POST("/sessions/save-default", handlers.SaveDefaultSession)
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/:id", handlers.GetSession)
	router.POST("/sessions/:id/restore", handlers.RestoreSession)
	router.DELETE("/sessions/:id", handlers.DeleteSession)

	// WebSocket deck stream
	router.GET("/stream", wsHandler.HandleConnection)

	// Prometheus exposition
	router.GET("/metrics", monitoring.Handler())

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		cards:    cards,
		deck:     deck,
		services: serviceRegistry,
		sessions: sessionManager,
		terminal: terminalProvider.Manager(),
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server, saving the deck so the next
// start can restore it.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if _, err := s.sessions.SaveDefault(context.Background()); err != nil {
		s.logger.Warn("Failed to save default session on shutdown", zap.Error(err))
	}

	for _, info := range s.terminal.ListSessions() {
		if err := s.terminal.Kill(info.ID); err != nil {
			s.logger.Warn("Failed to kill terminal session",
				zap.String("session_id", info.ID), zap.Error(err))
		}
	}

	s.logger.Sync()

	return nil
}

func registerProviders(registry *service.Registry, root paths.Root, terminalProvider *terminal.Provider, logger *logging.Logger) {
	providers := []service.Provider{
		files.NewProvider(root),
		terminalProvider,
		settings.NewProvider(filepath.Join(root.Base(), "settings")),
		profile.NewProvider(filepath.Join(root.Base(), "profiles")),
	}

	for _, p := range providers {
		if err := registry.Register(p); err != nil {
			logger.Warn("Failed to register provider",
				zap.String("service", p.Definition().ID), zap.Error(err))
		}
	}
}
