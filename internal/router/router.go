package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rizaldinur/crowdfunding-api/internal/auth"
	"github.com/rizaldinur/crowdfunding-api/internal/config"
	"github.com/rizaldinur/crowdfunding-api/internal/handler"
	"github.com/rizaldinur/crowdfunding-api/internal/payment"
	"github.com/rizaldinur/crowdfunding-api/internal/storage"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, gateway payment.Gateway, store *storage.Store, authMgr *auth.Manager, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(requestIdMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Cors.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	// 上传文件静态服务
	r.Static("/data", cfg.Storage.RootDir)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "crowdfunding-api",
		})
	})

	authRequired := authMgr.Middleware()

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 账户认证
		authHandler := handler.NewAuthHandler(db, authMgr)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/verify", authRequired, authHandler.Verify)
		}

		// 项目搭建
		buildHandler := handler.NewBuildHandler(db, store)
		v1.POST("/start-project", authRequired, buildHandler.StartProject)
		build := v1.Group("/build/:profileId/:projectId", authRequired)
		{
			build.GET("/overview", buildHandler.Overview)
			build.POST("/basic", buildHandler.UpdateBasic)
			build.POST("/story", buildHandler.UpdateStory)
			build.POST("/payment", buildHandler.UpdatePayment)
			build.POST("/profile", buildHandler.UpdateProfile)
			build.POST("/submit-review", buildHandler.SubmitReview)
			build.POST("/review", buildHandler.ReviewDecision)
			build.DELETE("", buildHandler.DeleteProject)
		}

		// 发现页与项目展示
		feedHandler := handler.NewFeedHandler(db)
		feed := v1.Group("/feed")
		{
			feed.GET("/featured-project", feedHandler.Featured)
			feed.GET("/recommended-projects", feedHandler.Recommended)
			feed.GET("/project/:profileId/:projectId/header", feedHandler.ProjectHeader)
			feed.GET("/project/:profileId/:projectId/details/:page", feedHandler.ProjectDetails)
		}

		// 支持(出资)
		supportHandler := handler.NewSupportHandler(db, gateway)
		support := v1.Group("/support")
		{
			support.GET("/overview/:profileId/:projectId", authRequired, supportHandler.Overview)
			support.POST("/checkout/:profileId/:projectId", authRequired, supportHandler.Checkout)
			support.GET("/status/:supportId", authRequired, supportHandler.Status)
			support.POST("/update-status", supportHandler.UpdateStatus) // 网关回调, 无需登录
			support.DELETE("/delete/:supportId", authRequired, supportHandler.Delete)
		}

		// 评论与项目动态
		commentHandler := handler.NewCommentHandler(db)
		project := v1.Group("/projects/:profileId/:projectId")
		{
			project.GET("/comments", commentHandler.GetComments)
			project.POST("/comments", authRequired, commentHandler.CreateComment)
			project.GET("/updates", commentHandler.GetUpdates)
			project.POST("/updates", authRequired, commentHandler.CreateUpdate)
		}
		comment := v1.Group("/comments/:commentId")
		{
			comment.GET("/replies", commentHandler.GetReplies)
			comment.POST("/replies", authRequired, commentHandler.CreateReply)
		}

		// 个人主页
		accountHandler := handler.NewAccountHandler(db, authMgr)
		v1.GET("/profile/:profileId/header", accountHandler.ProfileHeader)
	}

	return r
}

// requestIdMiddleware 为每个请求附加请求ID
func requestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader("X-Request-Id")
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Set("requestId", requestId)
		c.Header("X-Request-Id", requestId)
		c.Next()
	}
}
