package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	utils.InitLogger()
	logger := utils.Logger

	utils.InitValidator()
	utils.InitJWT()
	if utils.MongoClient == nil {
		utils.InitMongoClient()
	}

	redisURL := utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379")
	blacklist, err := services.NewTokenBlacklist(redisURL)
	if err != nil {
		logger.Fatal("failed to connect token blacklist", zap.Error(err))
	}
	services.TokenBlacklist = blacklist
	defer blacklist.Close()

	shareCache, err := services.NewShareCache(redisURL)
	if err != nil {
		logger.Warn("share cache unavailable, share reads go straight to the store", zap.Error(err))
		shareCache = nil
	} else {
		defer shareCache.Close()
	}

	db := utils.MongoClient.Database(os.Getenv("MONGO_DB"))
	if err := repository.SetupIndexes(db); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}

	notesRepo := repository.GetNotesRepo(utils.MongoClient)
	usersRepo := repository.GetUserRepo(utils.MongoClient)
	guestNotesRepo := repository.GetGuestNotesRepo(utils.MongoClient)
	pendingUsersRepo := repository.GetPendingUsersRepo(utils.MongoClient)
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	announcementsRepo := repository.GetAnnouncementsRepo(utils.MongoClient)

	var mailer *services.Mailer
	if host := os.Getenv("SMTP_HOST"); host != "" {
		port, _ := strconv.Atoi(utils.GetEnvAsString("SMTP_PORT", "587"))
		mailer = services.NewMailer(
			host,
			port,
			os.Getenv("SMTP_USERNAME"),
			os.Getenv("SMTP_PASSWORD"),
			utils.GetEnvAsString("SMTP_SENDER", "no-reply@notesbin.app"),
			utils.GetEnvAsString("FRONTEND_URL", "http://localhost:3000"),
			logger,
		)
	} else {
		logger.Warn("SMTP_HOST not set, verification mail disabled")
	}

	notesService := &usecase.NotesService{
		NotesRepo:  notesRepo,
		ShareCache: shareCache,
	}
	collabService := &usecase.CollaborationService{
		NotesRepo: notesRepo,
		UsersRepo: usersRepo,
	}
	retentionService := &usecase.RetentionService{
		NotesRepo:        notesRepo,
		GuestNotesRepo:   guestNotesRepo,
		PendingUsersRepo: pendingUsersRepo,
		RetentionDays:    utils.GetEnvAsInt("RETENTION_DAYS", usecase.DefaultRetentionDays),
		GuestTTLDays:     utils.GetEnvAsInt("GUEST_NOTE_TTL_DAYS", usecase.DefaultRetentionDays),
		Logger:           logger,
	}
	if shareCache != nil {
		retentionService.ShareCache = shareCache
	}
	userService := &usecase.UserService{
		UsersRepo:        usersRepo,
		PendingUsersRepo: pendingUsersRepo,
		SessionRepo:      sessionRepo,
		Collaboration:    collabService,
		Mailer:           mailer,
		Logger:           logger,
	}

	if err := retentionService.StartSweeper(os.Getenv("RETENTION_SWEEP_CRON")); err != nil {
		logger.Fatal("failed to start retention sweeper", zap.Error(err))
	}
	defer retentionService.StopSweeper()

	if utils.GetEnvAsString("GIN_MODE", "") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(),
		middleware.CORSMiddleware(),
		middleware.RequestTracingMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.RequestSizeLimiter(1<<20), // 1 MiB request bodies
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/api/health", func(c *gin.Context) {
		handler.HealthCheckHandler(c, utils.MongoClient)
	})
	router.GET("/api/announcement", func(c *gin.Context) {
		handler.GetAnnouncementHandler(c, announcementsRepo)
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", middleware.ValidateRegistrationInput(), func(c *gin.Context) {
			handler.RegistrationHandler(c, userService)
		})
		auth.POST("/verify", func(c *gin.Context) {
			handler.VerifyHandler(c, userService)
		})
		auth.POST("/login", func(c *gin.Context) {
			handler.LoginHandler(c, userService, sessionRepo)
		})
		auth.POST("/refresh", handler.RefreshTokenHandler)
	}

	guest := router.Group("/api/guest")
	{
		guest.POST("/notes", func(c *gin.Context) {
			handler.CreateGuestNoteHandler(c, guestNotesRepo)
		})
		guest.GET("/notes/:shareId", middleware.CacheControlMiddleware("60"), func(c *gin.Context) {
			handler.GetGuestNoteHandler(c, guestNotesRepo)
		})
	}

	// Anonymous share-link reads. Cached briefly; edits invalidate.
	router.GET("/api/users/shared/:shareId", middleware.CacheControlMiddleware("60"), func(c *gin.Context) {
		handler.GetSharedNoteHandler(c, notesService)
	})

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/auth/logout", func(c *gin.Context) {
			handler.LogoutHandler(c, sessionRepo)
		})

		users := api.Group("/users")
		{
			users.GET("/profile", func(c *gin.Context) {
				handler.GetProfileHandler(c, userService)
			})
			users.GET("/sessions", func(c *gin.Context) {
				handler.GetSessionsHandler(c, sessionRepo)
			})
			users.POST("/categories", func(c *gin.Context) {
				handler.AddCategoryHandler(c, userService)
			})
			users.DELETE("/categories/:category", func(c *gin.Context) {
				handler.RemoveCategoryHandler(c, userService)
			})

			users.GET("/collaborations", func(c *gin.Context) {
				handler.GetCollaborationsHandler(c, notesService)
			})
			users.GET("/shared-by-me", func(c *gin.Context) {
				handler.GetSharedByMeHandler(c, notesService)
			})

			notes := users.Group("/notes")
			{
				notes.POST("", func(c *gin.Context) {
					handler.CreateNoteHandler(c, notesService)
				})
				notes.GET("", func(c *gin.Context) {
					handler.GetUserNotesHandler(c, notesService)
				})
				notes.GET("/bin", func(c *gin.Context) {
					handler.GetBinHandler(c, retentionService)
				})
				notes.DELETE("/bin", func(c *gin.Context) {
					handler.EmptyBinHandler(c, retentionService)
				})
				notes.GET("/:id", func(c *gin.Context) {
					handler.GetNoteHandler(c, notesService)
				})
				notes.PUT("/:id", func(c *gin.Context) {
					handler.UpdateNoteHandler(c, notesService)
				})
				notes.DELETE("/:id", func(c *gin.Context) {
					handler.DeleteNoteHandler(c, retentionService)
				})
				notes.POST("/:id/restore", func(c *gin.Context) {
					handler.RestoreNoteHandler(c, retentionService)
				})
				notes.DELETE("/:id/permanent", func(c *gin.Context) {
					handler.PermanentDeleteHandler(c, retentionService)
				})

				notes.PUT("/:id/privacy", func(c *gin.Context) {
					handler.SetPrivacyHandler(c, notesService)
				})
				notes.POST("/:id/unlock", func(c *gin.Context) {
					handler.UnlockNoteHandler(c, notesService)
				})

				notes.POST("/:id/share", func(c *gin.Context) {
					handler.ShareNoteHandler(c, notesService)
				})
				notes.DELETE("/:id/share", func(c *gin.Context) {
					handler.UnshareNoteHandler(c, notesService)
				})

				notes.POST("/:id/collaborators", func(c *gin.Context) {
					handler.AddCollaboratorHandler(c, collabService)
				})
				notes.DELETE("/:id/collaborators", func(c *gin.Context) {
					handler.RemoveCollaboratorHandler(c, collabService)
				})
			}
		}

		admin := api.Group("/admin")
		{
			admin.POST("/users/:userId/ban", func(c *gin.Context) {
				handler.BanUserHandler(c, userService)
			})
			admin.PUT("/announcement", func(c *gin.Context) {
				handler.SetAnnouncementHandler(c, userService, announcementsRepo)
			})
		}
	}

	port := utils.GetEnvAsString("PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := utils.MongoClient.Disconnect(context.Background()); err != nil {
		logger.Error("mongo disconnect failed", zap.Error(err))
	}
}
