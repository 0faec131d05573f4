package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"blogapi/config"
	"blogapi/controllers"
	"blogapi/middleware"
	"blogapi/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	gl := utils.Logger
	if gl == nil {
		gl = zap.NewNop()
	}
	r.Use(middleware.RequestLogger(gl))
	r.Use(middleware.Recovery(gl))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)

	auth := r.Group("")
	auth.Use(middleware.RateLimit())
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)

	// blog reads are public, mutations sit behind the auth guard
	r.GET("/posts", postController.ListPosts)
	r.GET("/posts/:id", postController.GetPost)

	protected := r.Group("/posts")
	protected.Use(middleware.AuthRequired(db))
	protected.POST("", postController.CreatePost)
	protected.PATCH("/:id", postController.UpdatePost)
	protected.DELETE("/:id", postController.DeletePost)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Fail(ctx, http.StatusNotFound, "route not found")
	})

	return r
}
