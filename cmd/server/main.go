package main

import (
	"log"

	"cleanstride_backend/internal/config"
	"cleanstride_backend/internal/database"
	"cleanstride_backend/internal/router"
	"cleanstride_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	cfg := config.Load()

	// Initialize Database
	database.InitDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"host": cfg.DBHost, "name": cfg.DBName})

	// Install the JWT signing secret before any handler issues tokens.
	utils.InitJWT(cfg.JWTSecret)

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	// Setup all application routes
	router.Setup(engine, database.GetDB())

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port})

	if err := engine.Run(":" + cfg.Port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
