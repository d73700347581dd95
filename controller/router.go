package controller

import (
	"time"

	"file-vault/controller/handler"
	"file-vault/controller/middleware"
	"file-vault/controller/respond"
	"file-vault/service/file_service"
	"file-vault/service/upload_service"
	"file-vault/service/user_service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter build the HTTP engine and bind all routes
func SetupRouter(
	uploads *upload_service.UploadService,
	files *file_service.FileQueryService,
	activity *file_service.FileActivityLogService,
	users *user_service.UserService,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(respond.TimingMiddleware())

	uploadHandler := handler.NewUploadHandler(uploads)
	fileHandler := handler.NewFileHandler(files, activity)
	authHandler := handler.NewAuthHandler(users)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)

		auth.GET("/me", middleware.Auth(), authHandler.Me)
		auth.POST("/logout", middleware.Auth(), authHandler.Logout)
		auth.POST("/change-password", middleware.Auth(), authHandler.ChangePassword)
	}

	filesGroup := v1.Group("/files", middleware.Auth())
	{
		filesGroup.POST("/upload", middleware.UploadIdempotency(uploads), uploadHandler.Upload)
		filesGroup.POST("/upload-chunk", uploadHandler.UploadChunk)
		filesGroup.POST("/complete-upload", middleware.UploadIdempotency(uploads), uploadHandler.CompleteUpload)

		filesGroup.GET("", fileHandler.List)
		filesGroup.GET("/my", fileHandler.MyFiles)
		filesGroup.GET("/:uuid", fileHandler.Get)
		filesGroup.GET("/:uuid/download", fileHandler.Download)
		filesGroup.DELETE("/:uuid", fileHandler.Delete)
		filesGroup.GET("/:uuid/activity", fileHandler.FileActivity)
	}

	activityGroup := v1.Group("/activity", middleware.Auth())
	{
		activityGroup.GET("/my", fileHandler.MyActivity)
	}

	return r
}
