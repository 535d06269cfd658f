package main

import (
	"log"

	"github.com/dil-bolahlautner/automatic-poll-generator/internal/config"
	"github.com/dil-bolahlautner/automatic-poll-generator/internal/database"
	"github.com/dil-bolahlautner/automatic-poll-generator/internal/handlers"
	"github.com/dil-bolahlautner/automatic-poll-generator/internal/middleware"
	"github.com/dil-bolahlautner/automatic-poll-generator/internal/services"
	"github.com/dil-bolahlautner/automatic-poll-generator/internal/ws"

	_ "github.com/dil-bolahlautner/automatic-poll-generator/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Estimation Session API
// @version         1.0
// @description     Planning-poker estimation sessions with real-time updates over WebSocket
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	registry := ws.NewRegistry()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	userService := services.NewUserService(db)
	eventService := services.NewEventService()
	estimationService := services.NewEstimationService(eventService, registry)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWSHandler(estimationService, authService, userService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/estimation", wsHandler.HandleEstimation)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		users := api.Group("/users")
		users.Use(middleware.JWTAuth(authService), middleware.AdminOnly(userService))
		{
			users.GET("", userHandler.ListUsers)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.PUT("/:id/admin", userHandler.SetAdmin)
		}

		events := api.Group("/events")
		events.Use(middleware.JWTAuth(authService))
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
