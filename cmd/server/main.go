package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noticeboard/config"
	"noticeboard/internal/cache"
	"noticeboard/internal/database"
	"noticeboard/internal/handler"
	"noticeboard/internal/queue"
	"noticeboard/internal/repository"
	"noticeboard/internal/service"
	"noticeboard/internal/session"
	"noticeboard/internal/worker"
	"noticeboard/pkg/logger"
	"noticeboard/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L.Fatal("Failed to load config", zap.Error(err))
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		logger.L.Fatal("Failed to init logger", zap.Error(err))
	}
	defer logger.Sync()
	log := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer rdb.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewManager(reg)

	noticeQueue, err := newNoticeQueue(ctx, cfg, rdb)
	if err != nil {
		log.Fatal("Failed to initialize queue", zap.Error(err))
	}

	// repositories
	noticeRepo := repository.NewNoticeRepository(pool)
	topicRepo := repository.NewTopicRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// services
	topicService := service.NewTopicService(topicRepo, cache.NewRedisTopicCache(rdb, cfg.Topics.CacheTTL), m)
	noticeService := service.NewNoticeService(pool, noticeRepo, noticeQueue, m, time.Now)
	composerService := service.NewComposerService(session.NewStore(time.Now), noticeService, userRepo, topicService, m, time.Now)

	if err := worker.NewNoticeWorker(noticeService, noticeQueue).Start(ctx); err != nil {
		log.Fatal("Failed to start notice worker", zap.Error(err))
	}
	go sweepDrafts(ctx, composerService, cfg.Composer)

	router := gin.New()
	router.Use(gin.Recovery(), handler.RequestLogger(m))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	handler.NewTopicHandler(topicService).RegisterRoutes(router)
	handler.NewNoticeHandler(noticeService).RegisterRoutes(router)
	handler.NewDraftHandler(composerService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("queue", cfg.Queue.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

func newNoticeQueue(ctx context.Context, cfg *config.Config, rdb *redis.Client) (queue.NoticeQueue, error) {
	if cfg.Queue.Driver == "memory" {
		return queue.NewMemoryNoticeQueue(cfg.Queue.BufferSize, queue.MemoryQueueConfig{
			MaxRetryCount: cfg.Queue.MaxRetryCount,
			RetryDelay:    cfg.Queue.RetryDelay,
		}), nil
	}
	return queue.NewRedisStreamNoticeQueue(ctx, rdb, cfg.Queue.ConsumerID, queue.RedisStreamConfig{
		ClaimMinIdleTime:   cfg.Queue.ClaimMinIdleTime,
		MaxRetryCount:      cfg.Queue.MaxRetryCount,
		ReadGroupBlockTime: cfg.Queue.ReadGroupBlockTime,
	})
}

// sweepDrafts 定期清掉閒置草稿（使用者離開頁面後不會再回來）
func sweepDrafts(ctx context.Context, svc service.ComposerService, cfg config.ComposerConfig) {
	ticker := time.NewTicker(cfg.DraftSweepInterval)
	defer ticker.Stop()
	log := logger.WithComponent("sweeper")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := svc.EvictIdle(cfg.DraftIdleTimeout); n > 0 {
				log.Info("evicted idle drafts", zap.Int("count", n))
			}
		}
	}
}
