package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"testhub_backend/internal/config"
	"testhub_backend/internal/controller"
	"testhub_backend/internal/repository"
	"testhub_backend/internal/service"
	"testhub_backend/pkg/database"
	"testhub_backend/pkg/logger"
	"testhub_backend/pkg/monitoring"
	"testhub_backend/pkg/payment"
	"testhub_backend/pkg/security"
	"testhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	test     *repository.TestRepository
	purchase *repository.PurchaseRepository
	result   *repository.ResultRepository
}

type services struct {
	auth    *service.AuthService
	session *service.SessionService
	access  *service.AccessService
	payment *service.PaymentService
	test    *service.TestService
	result  *service.ResultService
	storage *service.StorageService
	email   *service.EmailService
}

type controllers struct {
	auth     *controller.AuthController
	test     *controller.TestController
	purchase *controller.PurchaseController
	result   *controller.ResultController
	pdf      *controller.PDFController
	upload   *controller.UploadController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		test:     repository.NewTestRepository(db),
		purchase: repository.NewPurchaseRepository(db),
		result:   repository.NewResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.email = service.NewEmailService(&cfg.Email)
	s.storage = service.NewStorageService(cfg)
	s.session = service.NewSessionService(rdb, cfg.JWT.ExpireTime)
	s.auth = service.NewAuthService(repos.user, s.email, cfg)
	s.test = service.NewTestService(repos.test)
	s.access = service.NewAccessService(repos.test, repos.purchase)
	s.result = service.NewResultService(repos.test, repos.result)

	gateway, err := payment.NewRazorpayClient(cfg.Razorpay.BaseURL, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	if err != nil {
		// Orders cannot be opened without credentials; everything else,
		// including signature verification, still works.
		logger.Log.Warn("payment gateway disabled", zap.Error(err))
	}
	var gw payment.Gateway
	if gateway != nil {
		gw = gateway
	}
	s.payment = service.NewPaymentService(repos.test, repos.purchase, repos.user, gw, s.email, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, s.session, a.Config),
		test:     controller.NewTestController(s.test),
		purchase: controller.NewPurchaseController(s.payment, s.access),
		result:   controller.NewResultController(s.result, s.access),
		pdf:      controller.NewPDFController(s.test, s.access, s.storage, a.Config),
		upload:   controller.NewUploadController(s.storage),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// Release deployments migrate only when explicitly asked to.
	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := database.EnsureDefaultAdmin(db, &cfg.Admin); err != nil {
		logger.Log.Fatal("Failed to seed default admin", zap.Error(err))
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
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("testhub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services, cfg)

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
