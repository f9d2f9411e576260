package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/config"
	"github.com/abdelelgendy/mealmind/backend/internal/api"
	"github.com/abdelelgendy/mealmind/backend/internal/catalog"
	"github.com/abdelelgendy/mealmind/backend/internal/database"
	"github.com/abdelelgendy/mealmind/backend/internal/fallback"
	"github.com/abdelelgendy/mealmind/backend/internal/middleware"
	"github.com/abdelelgendy/mealmind/backend/internal/service"
	"github.com/abdelelgendy/mealmind/backend/internal/store"
)

// Server assembles the HTTP stack and owns collaborator lifecycles.
type Server struct {
	http   *http.Server
	plans  *service.PlanManager
	feed   *store.PostgresFeed
	logger *zap.Logger
}

// newFallback derives the routing inputs from config. Catalog credentials are
// a deployment property, so the signal is set once at startup rather than
// tracked from request traffic.
func newFallback(cfg *config.Config, logger *zap.Logger) *fallback.Controller {
	fb := fallback.NewController(logger)
	fb.SetCredentials(cfg.CatalogAPIKey != "")
	if cfg.OfflineMode {
		fb.SetOnline(false)
	}
	return fb
}

// New wires the full application from config.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	fb := newFallback(cfg, logger)

	var recipeCache service.RecipeCache
	if redisClient, err := database.NewRedisClient(cfg, logger); err != nil {
		logger.Warn("redis unavailable, running without recipe cache", zap.Error(err))
	} else {
		recipeCache = catalog.NewCache(redisClient, logger)
	}

	var feed *store.PostgresFeed
	var st *store.GormStore
	if pgFeed, err := store.NewPostgresFeed(cfg.DSN(), db.SQL, logger); err != nil {
		logger.Warn("plan feed listener unavailable, events stay in-process", zap.Error(err))
		st = store.NewGormStore(db.Gorm, store.NewBroker())
	} else {
		feed = pgFeed
		st = store.NewGormStore(db.Gorm, pgFeed)
	}

	authService := service.NewAuthService(db.Gorm, cfg.JWTSecret)
	liveCatalog := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogAPIKey, logger)
	mockCatalog := catalog.NewMock()
	recipeService := service.NewRecipeService(db.Gorm, liveCatalog, mockCatalog, recipeCache, fb, st, logger)
	pantries := service.NewPantryManager(st, logger)
	plans := service.NewPlanManager(st, logger)

	var imageService *service.ImageService
	if s3Cfg, err := config.NewS3Config(context.Background()); err != nil {
		logger.Warn("S3 unavailable, picture uploads disabled", zap.Error(err))
	} else {
		imageService = service.NewImageService(s3Cfg, logger)
	}

	router := gin.Default()
	router.Use(middleware.CORS())
	router.GET("/health", func(c *gin.Context) {
		if err := db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.SetupAPI(router, api.Deps{
		Auth:     authService,
		Recipes:  recipeService,
		Pantries: pantries,
		Plans:    plans,
		Store:    st,
		Images:   imageService,
		Logger:   logger,
	})

	return &Server{
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
		plans:  plans,
		feed:   feed,
		logger: logger,
	}, nil
}

// Start serves until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains HTTP, stops plan controllers and closes the feed.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.plans.Close()
	if s.feed != nil {
		if cerr := s.feed.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
