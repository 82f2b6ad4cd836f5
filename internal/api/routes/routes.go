package routes

import (
	"log"

	"gigflow/internal/api/docs"
	"gigflow/internal/api/handlers"
	"gigflow/internal/api/middleware"
	"gigflow/internal/app"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {
	apiV1 := router.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(app.Users, app.Validator)
	gigHandler := handlers.NewGigHandler(app.Gigs, app.Bids, app.Hiring)
	bidHandler := handlers.NewBidHandler(app.Bids, app.Hiring)
	notificationHandler := handlers.NewNotificationHandler(app.Subscriber, app.Config.CORS.AllowedOrigins)

	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)

	RegisterAuthRoutes(apiV1, authHandler, authMiddleware)
	RegisterGigRoutes(apiV1, gigHandler, authMiddleware)
	RegisterBidRoutes(apiV1, bidHandler, authMiddleware)
	RegisterNotificationRoutes(apiV1, notificationHandler, authMiddleware)

	checks := make(map[string]handlers.Check, len(app.HealthChecks))
	for name, check := range app.HealthChecks {
		checks[name] = check
	}
	router.GET("/health", handlers.HealthCheck)
	router.GET("/health/ready", handlers.ReadinessCheck(checks))

	log.Println("Configuring Swagger UI handler")
	docs.Register(app.Config.Server.Host, app.Config.Server.Port)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
