package router

import (
	"github.com/adilhusain01/CrowdFunding/internal/handler"
	"github.com/adilhusain01/CrowdFunding/internal/ledger"
	"github.com/gin-gonic/gin"
)

func Setup(l *ledger.Ledger) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "crowdfunding-ledger",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 项目相关路由
		projectHandler := handler.NewProjectHandler(l)
		contributionHandler := handler.NewContributionHandler(l)
		expenseHandler := handler.NewExpenseHandler(l)
		refundHandler := handler.NewRefundHandler(l)
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("/:id/complete", projectHandler.CompleteProject)
			projects.POST("/:id/cancel", projectHandler.CancelProject)
			projects.GET("/:id/stats", projectHandler.GetProjectStats)
			projects.GET("/:id/events", projectHandler.GetProjectEvents)

			projects.POST("/:id/contributions", contributionHandler.Contribute)
			projects.GET("/:id/contributions", contributionHandler.GetProjectContributions)

			projects.POST("/:id/expenses", expenseHandler.SubmitExpense)
			projects.GET("/:id/expenses", expenseHandler.GetProjectExpenses)
			projects.POST("/:id/expenses/:index/approve", expenseHandler.ApproveExpense)

			projects.POST("/:id/refunds", refundHandler.ClaimRefund)
			projects.GET("/:id/refunds", refundHandler.GetProjectRefunds)
		}

		// 管理相关路由
		adminHandler := handler.NewAdminHandler(l)
		system := v1.Group("/system")
		{
			system.POST("/pause", adminHandler.Pause)
			system.POST("/unpause", adminHandler.Unpause)
			system.GET("/status", adminHandler.GetSystemStatus)
		}
		roles := v1.Group("/roles")
		{
			roles.POST("/grant", adminHandler.GrantRole)
			roles.POST("/revoke", adminHandler.RevokeRole)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Caller-Address")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
