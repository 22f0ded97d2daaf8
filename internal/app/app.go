package app

import (
	"aldudu_backend/internal/config"
	"aldudu_backend/internal/controller"
	"aldudu_backend/internal/middleware"
	"aldudu_backend/internal/repository"
	"aldudu_backend/internal/service"
	"aldudu_backend/internal/util"
	"aldudu_backend/pkg/configwatcher"
	"aldudu_backend/pkg/database"
	"aldudu_backend/pkg/logger"
	"aldudu_backend/pkg/monitoring"
	"aldudu_backend/pkg/security"
	"aldudu_backend/pkg/tracing"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Services        *Services
	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	course     *repository.CourseRepository
	quiz       *repository.QuizRepository
	submission *repository.SubmissionRepository
	material   *repository.MaterialRepository
	discussion *repository.DiscussionRepository
}

// Services 对外暴露，供命令行初始化数据与测试使用
type Services struct {
	Auth       *service.AuthService
	Storage    *service.StorageService
	Course     *service.CourseService
	Quiz       *service.QuizService
	Submission *service.SubmissionService
	Material   *service.MaterialService
	Discussion *service.DiscussionService
	Seed       *service.SeedService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	quiz       *controller.QuizController
	submission *controller.SubmissionController
	material   *controller.MaterialController
	discussion *controller.DiscussionController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		course:     repository.NewCourseRepository(db),
		quiz:       repository.NewQuizRepository(db),
		submission: repository.NewSubmissionRepository(db),
		material:   repository.NewMaterialRepository(db),
		discussion: repository.NewDiscussionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, blacklist service.TokenBlacklist) (*Services, error) {
	s := &Services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.Storage = storage

	access := service.NewAccess(repos.course)
	s.Auth = service.NewAuthService(repos.user, blacklist, cfg)
	s.Course = service.NewCourseService(repos.course, repos.quiz, repos.material, access, storage)
	s.Quiz = service.NewQuizService(repos.quiz, access, storage)
	s.Submission = service.NewSubmissionService(repos.quiz, repos.submission, access)
	s.Material = service.NewMaterialService(repos.material, access, storage)
	s.Discussion = service.NewDiscussionService(repos.discussion, access)
	s.Seed = service.NewSeedService(repos.user, repos.course, s.Course)

	return s, nil
}

func (a *App) initControllers(s *Services, db *gorm.DB, cfg *config.Config) *controllers {
	maxUpload := cfg.Upload.MaxSizeMB << 20
	return &controllers{
		auth:       controller.NewAuthController(s.Auth, cfg),
		course:     controller.NewCourseController(s.Course),
		quiz:       controller.NewQuizController(s.Quiz, maxUpload),
		submission: controller.NewSubmissionController(s.Submission),
		material:   controller.NewMaterialController(s.Material, maxUpload),
		discussion: controller.NewDiscussionController(s.Discussion),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.AccessLog())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func rateWindow(cfg *config.Config) time.Duration {
	if cfg.RateLimit.WindowMinutes <= 0 {
		return time.Minute
	}
	return time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
}

// New 基于已就绪的数据库与令牌黑名单组装应用，不连接外部服务
func New(cfg *config.Config, db *gorm.DB, blacklist service.TokenBlacklist) (*App, error) {
	if err := util.RegisterValidators(); err != nil {
		return nil, err
	}
	monitoring.Init()

	app := &App{
		Config:  cfg,
		DB:      db,
		limiter: security.NewRateLimiter(cfg.RateLimit.MaxRequests, rateWindow(cfg)),
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, blacklist)
	if err != nil {
		return nil, err
	}
	app.Services = services
	controllers := app.initControllers(services, db, cfg)

	router := gin.New()
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热加载：日志级别与限流参数
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(logger.LevelFor(newCfg))
		app.limiter.Update(newCfg.RateLimit.MaxRequests, rateWindow(newCfg))
	})

	return app, nil
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")
	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式下默认不自动迁移，需显式 -migrate
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migrated")
	}

	var rdb *redis.Client
	var blacklist service.TokenBlacklist
	if cfg.Redis.Host != "" {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		blacklist = service.NewRedisTokenBlacklist(rdb)
	} else {
		logger.Log.Warn("Redis host not configured, using in-memory token blacklist")
		blacklist = service.NewMemoryTokenBlacklist()
	}

	app, err := New(cfg, db, blacklist)
	if err != nil {
		logger.Log.Fatal("Failed to build application", zap.Error(err))
	}
	app.Redis = rdb

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	if cfg.Seed {
		if err := app.Services.Seed.Seed(context.Background()); err != nil {
			logger.Log.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	go a.limiter.Run(ctx.Done())

	if a.Config.File != "" {
		go func() {
			err := configwatcher.WatchConfig(ctx, a.Config.File, func(newCfg *config.Config) {
				for _, callback := range a.configCallbacks {
					callback(newCfg)
				}
			})
			if err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
