package router

import (
	"time"

	"lokalhunt/config"
	"lokalhunt/internal/domain"
	"lokalhunt/internal/handler"
	"lokalhunt/internal/middleware"
	"lokalhunt/internal/repository"
	"lokalhunt/internal/service"
	"lokalhunt/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto a gin engine. The db
// handle and logger are constructed by the caller and injected here; nothing
// in the tree reaches for process-wide state.
func Setup(cfg *config.Config, db *gorm.DB, log *zap.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	trackerRepo := repository.NewTrackerRepository(db)
	jobRepo := repository.NewJobRepository(db)

	hub := ws.NewHub()

	// Services
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath, log)
	if fcmSvc != nil {
		log.Info("push notifications enabled")
	} else {
		log.Info("push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	renderer := service.NewTemplateRenderer(templateRepo)
	gate := service.NewPreferenceGate(preferenceRepo, log)
	limiter := service.NewRateLimiter(trackerRepo, log)
	var channel service.Channel
	if fcmSvc != nil {
		channel = fcmSvc
	}
	dispatcher := service.NewDispatchService(renderer, notificationRepo, userRepo, gate, limiter, channel, hub, log)
	authSvc := service.NewAuthService(cfg, userRepo, dispatcher, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	meHandler := handler.NewMeHandler(userRepo, dispatcher, log)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, preferenceRepo, dispatcher)
	jobHandler := handler.NewJobHandler(jobRepo, userRepo, dispatcher, log)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	authorized := v1.Group("")
	authorized.Use(middleware.AuthRequired(&cfg.JWT))
	{
		authorized.GET("/me", meHandler.Get)
		authorized.PUT("/me/device-token", meHandler.UpdateDeviceToken)
		authorized.PUT("/me/job-preferences", meHandler.UpdateJobPreferences)

		notifications := authorized.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.PATCH("/read-all", notificationHandler.MarkAllRead)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
			notifications.GET("/preferences", notificationHandler.GetPreferences)
			notifications.PUT("/preferences", notificationHandler.UpdatePreferences)
			notifications.POST("/push/test", notificationHandler.TestPush)

			admin := notifications.Group("/push")
			admin.Use(middleware.RequireRole(domain.RoleBranchAdmin))
			{
				admin.POST("/user/:user_id", notificationHandler.PushToUser)
				admin.POST("/users", notificationHandler.PushToUsers)
			}
		}

		jobs := authorized.Group("/jobs")
		{
			jobs.POST("", middleware.RequireRole(domain.RoleEmployer), jobHandler.Create)
			jobs.PATCH("/:id/approve", middleware.RequireRole(domain.RoleBranchAdmin), jobHandler.Approve)
			jobs.PATCH("/:id/reject", middleware.RequireRole(domain.RoleBranchAdmin), jobHandler.Reject)
			jobs.PATCH("/:id/close", middleware.RequireRole(domain.RoleEmployer), jobHandler.Close)
			jobs.POST("/:id/apply", middleware.RequireRole(domain.RoleCandidate), jobHandler.Apply)
		}

		authorized.PATCH("/applications/:id/status", middleware.RequireRole(domain.RoleEmployer), jobHandler.UpdateApplicationStatus)
	}

	v1.GET("/ws/notifications", ws.UpgradeNotificationsWS(&cfg.JWT, hub))

	return r
}
