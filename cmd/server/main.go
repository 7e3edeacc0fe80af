package main

import (
	"github.com/adilhusain01/CrowdFunding/internal/chain"
	"github.com/adilhusain01/CrowdFunding/internal/config"
	"github.com/adilhusain01/CrowdFunding/internal/database"
	"github.com/adilhusain01/CrowdFunding/internal/ledger"
	"github.com/adilhusain01/CrowdFunding/internal/logger"
	"github.com/adilhusain01/CrowdFunding/internal/router"
	"github.com/adilhusain01/CrowdFunding/internal/task"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 加载 .env（可选）
	_ = godotenv.Load()

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
	} else {
		stdLogger, err := logger.New(level)
		if err != nil {
			logger.Fatal("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(stdLogger)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化转账器
	var transferor ledger.Transferor
	if cfg.Chain.Enabled {
		transferor, err = chain.NewEthTransferor(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize chain transferor: %v", err)
		}
	} else {
		transferor = chain.NewNoopTransferor()
	}

	// 初始化账本并授予初始管理员角色
	l := ledger.New(db, transferor)
	if err := l.Access.Bootstrap(cfg.Ledger.AdminAddress); err != nil {
		logger.Fatal("Failed to bootstrap admin roles: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(l)

	// 启动定时任务
	manager := task.Start(l, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
