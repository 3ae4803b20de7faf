package router

import (
	"time"

	"ai4local/internal/handlers"
	"ai4local/internal/middleware"
	"ai4local/internal/services"
	"ai4local/pkg/config"

	"github.com/gin-gonic/gin"
)

// Dependencies 路由所需的已装配组件
type Dependencies struct {
	AuthService         *services.AuthService
	OrganizationService *services.OrganizationService
	CustomerService     *services.CustomerService
	CampaignService     *services.CampaignService
	Tokens              middleware.TokenVerifier
	TokenDuration       time.Duration
	HealthChecks        map[string]handlers.Pinger
	CORS                *config.CORSConfig
}

// SetupRouter 设置路由
func SetupRouter(deps *Dependencies) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())
	if deps.CORS != nil {
		router.Use(middleware.SetupCORS(deps.CORS))
	}

	registerRoutes(router, deps)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine, deps *Dependencies) {
	auth := middleware.NewAuthMiddleware(deps.Tokens, deps.AuthService)

	systemHandler := handlers.NewSystemHandler(deps.HealthChecks)
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.TokenDuration)
	orgHandler := handlers.NewOrganizationHandler(deps.OrganizationService)
	customerHandler := handlers.NewCustomerHandler(deps.CustomerService, deps.OrganizationService)
	campaignHandler := handlers.NewCampaignHandler(deps.CampaignService, deps.OrganizationService)

	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", systemHandler.Health)
		api.GET("/ping", systemHandler.Ping)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// 以下路由全部需要登录
		protected := api.Group("", auth.RequireLogin())

		orgs := protected.Group("/organizations")
		{
			orgs.POST("", orgHandler.Create)
			orgs.GET("", orgHandler.List)
			orgs.GET("/:id", orgHandler.GetByID)
			orgs.PUT("/:id", orgHandler.Update)
			orgs.DELETE("/:id", orgHandler.Delete)

			orgs.GET("/:id/customers", customerHandler.ListByOrganization)
			orgs.POST("/:id/customers", customerHandler.Create)
			orgs.GET("/:id/campaigns", campaignHandler.ListByOrganization)
			orgs.POST("/:id/campaigns", campaignHandler.Create)
			orgs.GET("/:id/campaigns/templates", campaignHandler.Templates)
		}

		customers := protected.Group("/customers")
		{
			customers.GET("", customerHandler.List)
			customers.GET("/:id", customerHandler.GetByID)
			customers.PUT("/:id", customerHandler.Update)
			customers.DELETE("/:id", customerHandler.Delete)
		}

		campaigns := protected.Group("/campaigns")
		{
			campaigns.GET("", campaignHandler.List)
			campaigns.POST("/generate-content", campaignHandler.GenerateContent)
			campaigns.GET("/:id", campaignHandler.GetByID)
			campaigns.PUT("/:id", campaignHandler.Update)
			campaigns.DELETE("/:id", campaignHandler.Delete)
			campaigns.GET("/:id/preview", campaignHandler.Preview)
		}
	}
}
