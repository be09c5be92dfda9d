package app

import (
	"testhub_backend/docs"
	"testhub_backend/internal/config"
	"testhub_backend/internal/middleware"
	"testhub_backend/pkg/monitoring"
	"testhub_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Identity resolution runs everywhere; enforcement happens per group.
	router.Use(middleware.TryAuth(s.session, cfg.JWT.Secret))

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/verify-otp", c.auth.VerifyOTP)
			auth.POST("/resend-otp", c.auth.ResendOTP)
			auth.POST("/login", c.auth.Login)
			auth.POST("/logout", middleware.RequireAuth(), c.auth.Logout)
		}
	}

	authed := router.Group("/api")
	authed.Use(middleware.RequireAuth(), security.NoCache())
	{
		authed.GET("/tests", c.test.ListTests)
		authed.GET("/tests/:id", c.test.GetTest)
		authed.GET("/tests/category/:key", c.test.ListByCategory)

		authed.POST("/purchases/create-order/:testId", c.purchase.CreateOrder)
		authed.POST("/purchases/verify/:testId", c.purchase.VerifyPayment)
		authed.GET("/purchases", c.purchase.ListPurchases)
		authed.GET("/purchases/check/:testId", c.purchase.CheckPurchase)

		authed.POST("/results", c.result.SubmitResult)
		authed.GET("/results", c.result.ListResults)
	}

	admin := router.Group("/api")
	admin.Use(middleware.RequireAuth(), middleware.AdminOnly(), security.NoCache())
	{
		admin.POST("/tests", c.test.CreateTest)
		admin.PUT("/tests/:id", c.test.UpdateTest)
		admin.DELETE("/tests/:id", c.test.DeleteTest)
		admin.POST("/uploads/pdf", c.upload.UploadPDF)
	}

	// The PDF proxy authenticates via a scoped token or the session itself.
	router.GET("/pdf/view/:testId", c.pdf.ViewPDF)
}
