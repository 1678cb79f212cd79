package main

import (
	"context"
	"instashare-backend/config"
	"instashare-backend/internal/handler"
	"instashare-backend/internal/metrics"
	"instashare-backend/internal/ports"
	"instashare-backend/internal/repository"
	"instashare-backend/internal/scheduler"
	"instashare-backend/internal/security"
	"instashare-backend/internal/service"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(config.ConfigPath())
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(&cfg.DatabaseConfig)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	if cfg.DatabaseConfig.MigrateOnStart {
		if err := db.RunMigrations(ctx); err != nil {
			log.Fatalf("Ошибка миграции БД: %v", err)
		}
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)
	ttl := time.Duration(cfg.TTL.S3AndRedis) * time.Second

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	shareRepo := repository.NewShareRepository(db)
	logRepo := repository.NewLogRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, ttl)

	var lease ports.DocumentLease = repository.NewPostgresLease(db)
	if cfg.Pipeline.LeaseBackend == config.LeaseBackendRedis {
		lease = repository.NewRedisLease(redisClient)
	}

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	eventLog := service.NewEventLogService(logRepo, config.MustDuration(cfg.Pipeline.LogWriteTimeout, config.DefaultLogWriteTimeout))
	pipelineMetrics := metrics.NewPipelineMetrics(prometheus.DefaultRegisterer)
	compressionService := service.NewCompressionService(docRepo, s3Service, eventLog, lease, cacheRepo, pipelineMetrics, &cfg.Pipeline)
	docService := service.NewDocumentService(docRepo, cacheRepo, shareRepo, s3Service, userRepo, ttl)
	userService := service.NewUserService(userRepo, roleRepo)

	jwtService := security.NewJWTService(&cfg.JWT)
	auth := security.JWTMiddleware(jwtService, cfg.Admin.AdminToken)

	docHandler := handler.NewDocumentHandler(docService, &cfg.TTL)
	userHandler := handler.NewUserHandler(userService)
	logHandler := handler.NewLogHandler(eventLog)
	compressionHandler := handler.NewCompressionHandler(compressionService)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthCheck{
		"postgres": db.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.Client.Ping(ctx).Err()
		},
	})

	router.Get("/health", healthHandler.Health)
	router.Handle("/metrics", promhttp.Handler())

	setupDocumentRoutes(router, docHandler, auth)
	setupUserRoutes(router, userHandler, docHandler, logHandler, auth)
	setupLogRoutes(router, logHandler, auth)
	setupCompressionRoutes(router, compressionHandler, auth)

	sched, err := scheduler.New(&cfg.Scheduler, compressionService)
	if err != nil {
		log.Fatalf("Ошибка создания планировщика: %v", err)
	}
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Ошибка запуска планировщика: %v", err)
	}
	defer sched.Stop()

	runServer(ctx, srv)
}

func setupDocumentRoutes(r chi.Router, h *handler.DocumentHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/docs", func(r chi.Router) {
		r.Use(auth)
		r.Post("/", h.CreateDocument)

		r.Route("/{doc_id}", func(r chi.Router) {
			r.Get("/", h.GetDocument)
			r.Head("/", h.GetDocument)
			r.Patch("/", h.UpdateDocumentInfo)
			r.Delete("/", h.DeleteDocument)
			r.Put("/file", h.UploadDocumentFile)
			r.Post("/share", h.ShareDocument)
			r.Get("/shares", h.ListSharedUsers)
		})
	})
}

func setupUserRoutes(
	r chi.Router,
	h *handler.UserHandler,
	docs *handler.DocumentHandler,
	logs *handler.LogHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/api/users/{uuid}", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", h.GetUser)
		r.Get("/roles", h.ListUserRoles)
		r.With(security.AdminOnly).Post("/roles", h.AssignRole)
		r.Get("/documents", docs.ListUserDocuments)
		r.Get("/logs", logs.ListUserLogs)
	})
}

func setupLogRoutes(r chi.Router, h *handler.LogHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/logs", func(r chi.Router) {
		r.Use(auth, security.AdminOnly)
		r.Get("/{id}", h.GetLog)
	})
}

func setupCompressionRoutes(r chi.Router, h *handler.CompressionHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/compression", func(r chi.Router) {
		r.Use(auth, security.AdminOnly)
		r.Post("/run", h.RunCompression)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
