package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/millerforce/CSCN73060-Project-1/config"
	"github.com/millerforce/CSCN73060-Project-1/internal/api/auth"
	"github.com/millerforce/CSCN73060-Project-1/internal/api/comment"
	"github.com/millerforce/CSCN73060-Project-1/internal/api/post"
	"github.com/millerforce/CSCN73060-Project-1/internal/common"
	"github.com/millerforce/CSCN73060-Project-1/internal/middleware"
	"github.com/millerforce/CSCN73060-Project-1/internal/repository/mysql"
	"github.com/millerforce/CSCN73060-Project-1/internal/service"
	"github.com/millerforce/CSCN73060-Project-1/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接，容器环境里数据库可能晚于应用就绪
	err = common.WithRetry(func() error {
		return db.Ping()
	}, 5)
	if err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(config.AppConfig.DBMaxConns)
	db.SetMaxIdleConns(config.AppConfig.DBMaxConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	util.Logger.Info("数据库连接池配置完成")

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("notblank", util.ValidateNotBlank)
	}

	// 初始化存储库、服务和处理器
	accountRepo := mysql.NewAccountRepository(db)
	sessionRepo := mysql.NewSessionRepository(db)
	postRepo := mysql.NewPostRepository(db)
	commentRepo := mysql.NewCommentRepository(db)
	postLikeRepo := mysql.NewPostLikeRepository(db)
	commentLikeRepo := mysql.NewCommentLikeRepository(db)

	authService := service.NewAuthService(accountRepo, sessionRepo)
	postService := service.NewPostService(authService, postRepo, commentRepo, postLikeRepo)
	commentService := service.NewCommentService(authService, commentRepo, postRepo, commentLikeRepo)

	authHandler := auth.NewAuthHandler(authService)
	postHandler := post.NewPostHandler(postService, commentService)
	commentHandler := comment.NewCommentHandler(commentService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.Default()

	// 添加中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS，会话基于Cookie，必须允许携带凭证
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Cookie",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length",
		"Content-Type",
		"Set-Cookie",
	}
	r.Use(cors.New(corsConfig))

	// 定义 API 路由
	account := r.Group("/account")
	{
		account.POST("", authHandler.Register)
		account.POST("/login", authHandler.Login)
		account.POST("/logout", authHandler.Logout)
	}

	posts := r.Group("/post")
	{
		posts.GET("/posts", postHandler.GetPosts)
		posts.POST("", postHandler.CreatePost)
		posts.PATCH("/:postId", postHandler.EditPost)
		posts.DELETE("/:postId", postHandler.DeletePost)
		posts.PUT("/:postId", postHandler.LikePost)
		posts.GET("/:postId/stats", postHandler.GetPostStats)
		posts.GET("/:postId/comments", postHandler.GetComments)
		posts.POST("/:postId/comments", postHandler.CreateComment)
	}

	comments := r.Group("/comment")
	{
		comments.PATCH("/:commentId", commentHandler.EditComment)
		comments.DELETE("/:commentId", commentHandler.DeleteComment)
		comments.PUT("/:commentId", commentHandler.LikeComment)
	}

	// 创建一个带有超时的 http.Server
	srv := &http.Server{
		Addr:    config.AppConfig.ServerAddr,
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("addr", config.AppConfig.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	if config.AppConfig.Debug {
		for _, route := range r.Routes() {
			util.Logger.Info("路由",
				zap.String("method", route.Method),
				zap.String("path", route.Path))
		}
	}

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}
