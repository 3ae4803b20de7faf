package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai4local/internal/database"
	"ai4local/internal/handlers"
	"ai4local/internal/models"
	"ai4local/internal/repository"
	"ai4local/internal/router"
	"ai4local/internal/services"
	"ai4local/pkg/config"
	"ai4local/pkg/jwt"
	"ai4local/pkg/logger"
	"ai4local/pkg/textgen"

	"github.com/gin-gonic/gin"
)

type userLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger := logger.GetLogger()
	appLogger.Info("Starting AI4Local API...")

	// 初始化数据库
	if err := database.Initialize(cfg); err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			appLogger.Error("Failed to close database:", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		appLogger.Fatalf("Failed to migrate database: %v", err)
	}

	dispatchQueue := database.NewDispatchQueue(&cfg.Redis)
	defer func() {
		if err := dispatchQueue.Close(); err != nil {
			appLogger.Error("Failed to close dispatch queue:", err)
		}
	}()

	// 装配存储与服务
	db := database.GetDB()
	userRepo := repository.NewGormUserRepository(db)
	orgRepo := repository.NewGormOrganizationRepository(db)
	customerRepo := repository.NewGormCustomerRepository(db)
	campaignRepo := repository.NewGormCampaignRepository(db)

	jwtManager := jwt.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.TokenDuration)
	authService := services.NewAuthService(userRepo, jwtManager)
	orgService := services.NewOrganizationService(orgRepo)
	customerService := services.NewCustomerService(customerRepo, orgRepo)
	campaignService := services.NewCampaignService(
		campaignRepo, orgRepo, customerRepo,
		textgen.NewClient(cfg.AI.ServiceURL, cfg.AI.Timeout),
		services.CampaignOptions{
			StrictTransitions: cfg.Campaign.StrictTransitions,
			PromptTemplate:    cfg.AI.PromptTemplate,
			MaxTokens:         cfg.AI.MaxTokens,
			Templates:         cfg.Campaign.Templates,
		},
		logger.Component("campaign"),
	)
	if cfg.Campaign.StrictTransitions {
		appLogger.Warn("Strict campaign status transitions enabled")
	}

	// 执行种子数据初始化
	if err := seedData(context.Background(), &cfg.Seed, userRepo, authService, orgService, customerService, campaignService); err != nil {
		appLogger.Fatalf("Failed to initialize seed data: %v", err)
	}

	// 启动活动派发调度器
	if cfg.Campaign.DispatchEnabled && !cfg.DispatchActive() {
		appLogger.Warn("Campaign dispatch requires REDIS_ENABLED=true, dispatcher not started")
	}
	if cfg.DispatchActive() {
		dispatcher := services.NewCampaignDispatcher(campaignRepo, dispatchQueue, cfg.Campaign.DispatchSpec,
			logger.Component("dispatcher"))
		if err := dispatcher.Start(); err != nil {
			appLogger.Errorf("Failed to start campaign dispatcher: %v", err)
			// 不影响主服务启动
		}
		defer dispatcher.Stop()
	}

	// 设置Gin模式
	gin.SetMode(cfg.Server.Mode)

	r := router.SetupRouter(&router.Dependencies{
		AuthService:         authService,
		OrganizationService: orgService,
		CustomerService:     customerService,
		CampaignService:     campaignService,
		Tokens:              jwtManager,
		TokenDuration:       jwtManager.GetTokenDuration(),
		HealthChecks: map[string]handlers.Pinger{
			"database": handlers.PingerFunc(func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}),
			"queue": dispatchQueue,
		},
		CORS: &cfg.CORS,
	})

	// 启动服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 10*time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	appLogger.Infof("Server started on port %s", cfg.Server.Port)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown:", err)
	}
	appLogger.Info("Server exited")
}
