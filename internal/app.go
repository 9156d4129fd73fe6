package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"files-manager-api/config"
	"files-manager-api/internal/application/ports"
	"files-manager-api/internal/application/services"
	domainFile "files-manager-api/internal/domain/file"
	domainJob "files-manager-api/internal/domain/job"
	domainUser "files-manager-api/internal/domain/user"
	"files-manager-api/internal/infrastructure/cache"
	"files-manager-api/internal/infrastructure/db/postgres"
	"files-manager-api/internal/infrastructure/db/postgres/file"
	"files-manager-api/internal/infrastructure/db/postgres/job"
	"files-manager-api/internal/infrastructure/db/postgres/user"
	"files-manager-api/internal/infrastructure/imaging"
	"files-manager-api/internal/infrastructure/metrics"
	"files-manager-api/internal/infrastructure/mq"
	"files-manager-api/internal/infrastructure/redis"
	"files-manager-api/internal/infrastructure/storage"
	"files-manager-api/internal/interface/api/rest"
	"files-manager-api/internal/interface/api/rest/middleware"
	"files-manager-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	rdb        *goredis.Client
	storage    ports.BlobStorage
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer

	userRepo domainUser.Repository
	fileRepo domainFile.Repository
	jobRepo  domainJob.Repository
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config, the environment wins over .env
	if err = godotenv.Load(".env"); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Fatal("error loading .env file", zap.Error(err))
		}
		logger.Warn("no .env file, using the environment only")
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()
	jobCounter := metrics.NewJobCounter()
	cacheCounter := metrics.NewCacheCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err = postgres.Migrate(ctx, logger, dbPool); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// redis
	redisAddr, err := cfg.RedisAddr()
	if err != nil {
		logger.Fatal("redis config error", zap.Error(err))
	}
	rdb, err := redis.New(ctx, logger, redisAddr, cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	// blob storage
	var blobs ports.BlobStorage
	switch cfg.Storage.Backend {
	case config.StorageS3:
		blobs, err = storage.NewS3(ctx, logger, cfg.S3)
	case config.StorageLocal:
		blobs, err = storage.NewLocal(logger, cfg.Storage.FolderPath)
	default:
		err = fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		logger.Fatal("failed to init blob storage", zap.Error(err))
	}

	// repos
	userRepo := user.NewRepository(dbPool)
	fileRepo := cache.NewFileRepository(file.NewRepository(dbPool), cfg.Cache.Size, cfg.Cache.TTL, cacheCounter)
	jobRepo := job.NewRepository(dbPool)

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}

	// rmqConsumer
	thumbnails := services.NewThumbnailService(logger, fileRepo, jobRepo, blobs, imaging.NewResizer(), jobCounter)
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, thumbnails)
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		rdb:        rdb,
		storage:    blobs,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
		userRepo:   userRepo,
		fileRepo:   fileRepo,
		jobRepo:    jobRepo,
	}, nil
}

func (a *App) Close() {
	if a.mqConsumer != nil && a.mqConsumer.GetConn() != nil {
		a.mqConsumer.GetConn().Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	// a dead delivery channel stops the process, the orchestrator restarts it
	g.Go(func() error {
		return a.mqConsumer.Run(ctx)
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// services
	sessions := redis.NewSessionStore(a.rdb)
	authService := services.NewAuthService(sessions, a.userRepo)
	userService := services.NewUserService(a.userRepo, a.mCounter)
	fileService := services.NewFileService(a.logger, a.fileRepo, a.jobRepo, a.storage, a.mq, a.mCounter)
	servingService := services.NewServingService(a.fileRepo, a.storage)
	statusService := services.NewStatusService(
		func(ctx context.Context) error { return a.rdb.Ping(ctx).Err() },
		a.db.Ping,
		a.storage.Ping,
		a.userRepo,
		a.fileRepo,
	)

	// controllers
	rest.NewAppController(a.router, statusService, a.logger)
	rest.NewAuthController(a.router, a.logger, authService)
	rest.NewUserController(a.router, userService, authService, a.logger)
	rest.NewFileController(a.router, fileService, servingService, authService, a.logger)

	// ops
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
