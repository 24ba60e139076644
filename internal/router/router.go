package router

import (
	"net/http"
	"time"

	"Community_Portal/internal/handler"
	"Community_Portal/internal/middleware"
	"Community_Portal/internal/model"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Schools *handler.SchoolHandler
	FAQs    *handler.FAQHandler
	News    *handler.NewsHandler
	Events  *handler.EventHandler
	HOA     *handler.HOAHandler
	Links   *handler.LinkHandler
	Issues  *handler.IssueHandler
	Users   *handler.UserHandler
	Health  *handler.HealthHandler
}

type Options struct {
	Auth        middleware.Authenticator
	CORSOrigins []string
	RateRPS     float64
	RateBurst   int
}

type crudRoutes interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// mountCRUD 读接口公开，写接口挂上 guard
func mountCRUD(g *gin.RouterGroup, h crudRoutes, guard ...gin.HandlerFunc) {
	validID := middleware.ValidateID()
	with := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, guard...), handlers...)
	}

	g.GET("", h.List)
	g.POST("", with(h.Create)...)
	g.GET("/:id", validID, h.Get)
	g.PATCH("/:id", with(validID, h.Update)...)
	g.DELETE("/:id", with(validID, h.Delete)...)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func InitRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
		middleware.Recovery(),
		gzip.Gzip(gzip.DefaultCompression),
		cors.New(corsConfig(opts.CORSOrigins)),
	)
	r.NoRoute(middleware.NoRoute)

	protect := middleware.AuthMiddleware(opts.Auth)
	adminOnly := middleware.ProtectAdmin(opts.Auth)
	staff := middleware.Authorize(model.RoleAdmin, model.RoleModerator)
	limiter := middleware.RateLimit(opts.RateRPS, opts.RateBurst)

	api := r.Group("/api")
	api.GET("/health", h.Health.Check)

	mountCRUD(api.Group("/schools"), h.Schools, adminOnly...)
	mountCRUD(api.Group("/faqs"), h.FAQs, protect)
	mountCRUD(api.Group("/news"), h.News, protect, staff)
	mountCRUD(api.Group("/hoa"), h.HOA, protect)
	mountCRUD(api.Group("/links"), h.Links, adminOnly...)
	mountCRUD(api.Group("/issues"), h.Issues, protect)

	// 活动的额外查询需在 /:id 之外单独注册
	eventGroup := api.Group("/events")
	{
		eventGroup.GET("/history", h.Events.History)
		eventGroup.GET("/date/:date", h.Events.ByDate)
	}
	mountCRUD(eventGroup, h.Events, protect, staff)

	// 认证相关接口
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", limiter, h.Users.Register)
		authGroup.POST("/login", limiter, h.Users.Login)
		authGroup.POST("/forgot-password", limiter, h.Users.ForgotPassword)
		authGroup.POST("/reset-password/:token", limiter, h.Users.ResetPassword)
	}

	// 登录态接口
	sessionGroup := api.Group("/auth")
	sessionGroup.Use(protect)
	{
		sessionGroup.GET("/me", h.Users.Me)
		sessionGroup.POST("/change-password", h.Users.ChangePassword)
		sessionGroup.POST("/logout", h.Users.Logout)
	}

	// 用户管理接口
	userGroup := api.Group("/user")
	userGroup.Use(adminOnly...)
	{
		userGroup.GET("", h.Users.List)
		userGroup.PATCH("/:id", middleware.ValidateID(), h.Users.UpdateRole)
		userGroup.POST("/:id", middleware.ValidateID(), h.Users.UpdateRole)
	}

	return r
}
