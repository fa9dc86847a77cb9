package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/specialist-hub/internal/config"
	"github.com/ignatzorin/specialist-hub/internal/http/handlers"
	"github.com/ignatzorin/specialist-hub/internal/http/middleware"
	"github.com/ignatzorin/specialist-hub/internal/service"
)

// Handlers — все обработчики, которые монтирует роутер.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Profile      *handlers.ProfileHandler
	Search       *handlers.SearchHandler
	Engagement   *handlers.EngagementHandler
	Rating       *handlers.RatingHandler
	Notification *handlers.NotificationHandler
	Health       *handlers.HealthHandler
	WS           *handlers.WSHandler
}

// New собирает gin engine со всеми маршрутами и middleware.
func New(cfg *config.Config, tokens *service.TokenManager, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.CORS(cfg.AllowedOrigins))

	engine.GET("/health", h.Health.Liveness)
	engine.GET("/ready", h.Health.Readiness)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	{
		limited := auth.Group("")
		limited.Use(middleware.RateLimit(cfg))
		limited.POST("/register", h.Auth.Register)
		limited.POST("/login", h.Auth.Login)
		limited.POST("/refresh", h.Auth.Refresh)

		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", middleware.Auth(tokens), h.Auth.Me)
	}

	private := api.Group("")
	private.Use(middleware.Auth(tokens))
	{
		private.GET("/profile", h.Profile.GetOwnProfile)
		private.PUT("/profile", h.Profile.UpdateProfile)
		private.PATCH("/profile/name", h.Profile.UpdateName)
		private.GET("/specialists/:id", h.Profile.GetSpecialistCard)
		private.GET("/clients/:id", h.Profile.GetClientCard)

		private.GET("/skills", h.Search.Skills)
		private.POST("/skills/normalize", h.Search.NormalizeSkills)
		private.GET("/search/skill", h.Search.BySkill)
		private.GET("/search/skills", h.Search.BySkillsText)
		private.GET("/search/specialization", h.Search.BySpecialization)

		private.POST("/engagements", h.Engagement.Create)
		private.GET("/engagements", h.Engagement.List)
		private.GET("/engagements/open", h.Engagement.GetOpen)
		private.GET("/engagements/last-completed/:id", h.Engagement.GetLastCompletedWith)
		private.GET("/engagements/:id", h.Engagement.GetByID)
		private.POST("/engagements/:id/accept", h.Engagement.Accept)
		private.POST("/engagements/:id/decline", h.Engagement.Decline)
		private.POST("/engagements/:id/finish", h.Engagement.RequestFinish)
		private.POST("/engagements/:id/confirm", h.Engagement.ConfirmFinish)

		private.POST("/ratings", h.Rating.Submit)
		private.GET("/users/:id/rating", h.Rating.GetAggregate)
		private.GET("/users/:id/ratings", h.Rating.List)

		private.GET("/notifications", h.Notification.List)
		private.GET("/notifications/unread", h.Notification.UnreadCount)
		private.POST("/notifications/:id/read", h.Notification.MarkRead)
		private.POST("/notifications/read-all", h.Notification.MarkAllRead)

		private.GET("/ws", h.WS.Connect)
	}

	return engine
}
