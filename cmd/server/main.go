// Package main runs the board meeting HTTP server with WebSocket and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/boardflow/backend/config"
	"github.com/boardflow/backend/internal/admin"
	"github.com/boardflow/backend/internal/agendas"
	"github.com/boardflow/backend/internal/archive"
	"github.com/boardflow/backend/internal/auth"
	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/meetings"
	"github.com/boardflow/backend/internal/middleware"
	"github.com/boardflow/backend/internal/realtime"
	"github.com/boardflow/backend/internal/wizard"
	"github.com/boardflow/backend/internal/workspace"
	"github.com/boardflow/backend/pkg/database"
	"github.com/boardflow/backend/pkg/queue"
	"github.com/boardflow/backend/pkg/redis"
	"github.com/boardflow/backend/pkg/response"
	"github.com/boardflow/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	deps := hookDeps{timeout: cfg.Notifications.HookTimeout, logger: logger}

	var pubsub *realtime.RedisPubSub
	if cfg.Redis.Enabled {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		deps.scheduler = queue.NewQueue(rdb.Client, logger)
		pubsub = realtime.NewRedisPubSub(rdb.Client, logger)
	} else {
		logger.Warn("redis disabled: reminders are not scheduled")
	}

	if cfg.Database.Enabled {
		pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), database.PoolOptions{
			MaxConns:        int32(cfg.Database.MaxConns),
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
		}, logger)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer pool.Close()
		applied, err := database.Migrate(ctx, pool)
		if err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
		logger.Info("migrations applied", zap.Strings("files", applied))
		deps.archive = archive.NewRepository(pool)
	}

	var docs wizard.DocumentStore
	if cfg.AWS.DocumentsBucket != "" {
		s3Client, err := storage.NewS3(ctx, storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			DocumentsBucket:      cfg.AWS.DocumentsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		} else {
			docs = s3Client
		}
	}

	var hub *realtime.Hub
	if pubsub != nil {
		hub = realtime.NewHub(logger, pubsub, pubsub)
	} else {
		hub = realtime.NewHub(logger, nil, nil)
	}
	deps.hub = hub

	store := workspace.NewStore(cfg.Workspace.TTL, deps.hooks(), logger)

	// Auth
	authenticator, err := auth.NewAuthenticator(fixtures.Credentials(), fixtures.Users(), cfg.Auth.LoginDelay, cfg.Auth.BcryptCost, logger)
	if err != nil {
		logger.Fatal("auth", zap.Error(err))
	}
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	authHandler := auth.NewHandler(authenticator, auth.NewMFA(cfg.Auth.MFAWindow), jwtService, cfg.Auth.RequireMFA,
		func(id auth.Identity) { store.Create(id.User, id.Tab) }, logger)

	sessionHandler := workspace.NewHandler(store)
	wizardHandler := wizard.NewHandler(store.Wizard, docs, logger)
	agendaHandler := agendas.NewHandler(store.Agendas)
	meetingHandler := meetings.NewHandler(store.Meetings)
	adminHandler := admin.NewHandler(store.Directory)

	origins := middleware.ParseOrigins(cfg.Server.CORSAllowedOrigins)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(origins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok", "workspaces": store.Count()})
	})

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/mfa/verify", authHandler.VerifyMFA)
		authGroup.POST("/mfa/resend", authHandler.ResendMFA)
	}

	// Read-only catalogs (public)
	fixtures.NewHandler().Register(router.Group("/fixtures"))

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		api.GET("/session", sessionHandler.Session)
		api.DELETE("/session", sessionHandler.Logout)

		// Meeting wizard
		api.POST("/wizard", wizardHandler.Open)
		api.GET("/wizard", wizardHandler.Get)
		api.DELETE("/wizard", wizardHandler.Close)
		api.PUT("/wizard/form", wizardHandler.UpdateForm)
		api.POST("/wizard/actions", wizardHandler.Dispatch)
		api.POST("/wizard/next", wizardHandler.Next)
		api.POST("/wizard/previous", wizardHandler.Previous)
		api.POST("/wizard/submit", wizardHandler.Submit)
		api.GET("/wizard/review", wizardHandler.Review)
		api.GET("/wizard/venue-options", wizardHandler.VenueOptions)
		api.POST("/wizard/documents", wizardHandler.Upload)
		api.POST("/wizard/documents/upload-url", wizardHandler.UploadURL)
		api.GET("/wizard/documents/:id/download-url", wizardHandler.DownloadURL)
		api.DELETE("/wizard/documents/:id", wizardHandler.DeleteDocument)

		// Agendas
		api.GET("/agendas", agendaHandler.List)
		api.GET("/agendas/view", agendaHandler.State)
		api.POST("/agendas/:id/open", agendaHandler.Open)
		api.POST("/agendas/view/back", agendaHandler.Back)
		api.POST("/agendas/new", agendaHandler.New)
		api.POST("/agendas/edit", agendaHandler.Edit)
		api.GET("/agendas/form", agendaHandler.Form)
		api.PATCH("/agendas/form", agendaHandler.SetHeader)
		api.POST("/agendas/form/template", agendaHandler.ApplyTemplate)
		api.POST("/agendas/form/items", agendaHandler.AddItem)
		api.GET("/agendas/form/items/:itemId", agendaHandler.GetItem)
		api.PUT("/agendas/form/items/:itemId", agendaHandler.UpdateItem)
		api.DELETE("/agendas/form/items/:itemId", agendaHandler.DeleteItem)
		api.POST("/agendas/form/items/:itemId/vote", agendaHandler.Vote)
		api.POST("/agendas/form/move", agendaHandler.MoveItem)
		api.POST("/agendas/form/submit", agendaHandler.Submit)

		// Meetings and calendar
		api.GET("/meetings", meetingHandler.List)
		api.GET("/meetings/board", meetingHandler.Board)
		api.GET("/meetings/:id", meetingHandler.Get)
		api.POST("/meetings", meetingHandler.Create)
		api.PUT("/meetings/:id", meetingHandler.Update)
		api.GET("/meetings/:id/occurrences", meetingHandler.Occurrences)
		api.GET("/calendar/month", meetingHandler.Month)
		api.GET("/calendar/week", meetingHandler.Week)
		api.GET("/calendar/day", meetingHandler.Day)

		// Roles and users (admin only)
		adminGroup := api.Group("", middleware.RequireRole("admin"))
		adminGroup.GET("/roles", adminHandler.ListRoles)
		adminGroup.POST("/roles", adminHandler.CreateRole)
		adminGroup.PUT("/roles/:id", adminHandler.UpdateRole)
		adminGroup.DELETE("/roles/:id", adminHandler.DeleteRole)
		adminGroup.GET("/users", adminHandler.ListUsers)
		adminGroup.GET("/users/stats", adminHandler.Stats)
		adminGroup.POST("/users", adminHandler.CreateUser)
		adminGroup.PUT("/users/:id", adminHandler.UpdateUser)
		adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)

		// WebSocket (token in query accepted by the JWT middleware)
		api.GET("/ws", realtime.ServeWs(hub, origins.Allowed, logger))
	}

	if cfg.Server.DevRoutes {
		router.GET("/debug/routes", func(c *gin.Context) {
			routes := router.Routes()
			out := make([]gin.H, 0, len(routes))
			for _, r := range routes {
				out = append(out, gin.H{"method": r.Method, "path": r.Path})
			}
			response.OK(c, out)
		})
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
