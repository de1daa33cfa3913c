package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutricoach_backend/internal/config"
	"nutricoach_backend/internal/controller"
	"nutricoach_backend/internal/repository"
	"nutricoach_backend/internal/service"
	"nutricoach_backend/pkg/database"
	"nutricoach_backend/pkg/logger"
	"nutricoach_backend/pkg/monitoring"
	"nutricoach_backend/pkg/security"
	"nutricoach_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user *repository.UserRepository
	goal *repository.GoalRepository
}

type services struct {
	auth      *service.AuthService
	goal      *service.GoalService
	analytics *service.AnalyticsService
	mealPlan  *service.MealPlanService
}

type controllers struct {
	auth      *controller.AuthController
	goal      *controller.GoalController
	analytics *controller.AnalyticsController
	mealPlan  *controller.MealPlanController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user: repository.NewUserRepository(db),
		goal: repository.NewGoalRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.analytics = service.NewAnalyticsService(rdb)

	// The catalog and proxy tables are built once here and shared read-only
	// by the classifier and resolver.
	catalog := service.NewGoalCatalog()
	classifier := service.NewCatalogClassifier(catalog)
	resolver := service.NewProxyResolver(catalog, s.analytics)

	s.goal = service.NewGoalService(repos.user, repos.goal, catalog, classifier, resolver)
	s.mealPlan = service.NewMealPlanService(cfg.AI, s.goal)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		goal:      controller.NewGoalController(s.goal),
		analytics: controller.NewAnalyticsController(s.analytics),
		mealPlan:  controller.NewMealPlanController(s.mealPlan),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ReloadConfig applies hot-reloadable settings from a freshly parsed config.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.services.mealPlan.UpdateConfig(cfg.AI)
	logger.Log.Info("Config reloaded")
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("nutricoach", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
