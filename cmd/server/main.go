package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rizaldinur/crowdfunding-api/internal/auth"
	"github.com/rizaldinur/crowdfunding-api/internal/config"
	"github.com/rizaldinur/crowdfunding-api/internal/database"
	"github.com/rizaldinur/crowdfunding-api/internal/logger"
	"github.com/rizaldinur/crowdfunding-api/internal/payment"
	"github.com/rizaldinur/crowdfunding-api/internal/router"
	"github.com/rizaldinur/crowdfunding-api/internal/scheduler"
	"github.com/rizaldinur/crowdfunding-api/internal/storage"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(fileLogger)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化支付网关客户端
	gateway := payment.NewMidtransGateway(cfg.Midtrans)

	// 初始化文件存储和token管理器
	store := storage.New(cfg.Storage)
	authMgr := auth.NewManager(cfg.Jwt)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, gateway, store, authMgr, cfg)

	// 启动定时任务
	manager := scheduler.Start(db, gateway, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
