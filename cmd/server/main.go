package main

import (
	"context"                            // context package is needed for Redis operations
	"log"                                // log package is needed for logging
	"minhasfinancas/internal/api"        // Custom package for API handlers
	"minhasfinancas/internal/config"     // Custom package for configuration
	"minhasfinancas/internal/middleware" // Custom package for middleware
	"minhasfinancas/internal/repository" // Custom package for the store layer
	"minhasfinancas/internal/service"    // Custom package for the service layer

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Explicit store → service composition, no framework wiring
	usuarios := service.NewUsuarioService(repository.NewUsuarioRepository(db))
	lancamentos := service.NewLancamentoService(repository.NewLancamentoRepository(db))

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// User routes (open)
	usuarioGroup := r.Group("/api/usuarios")
	usuarioGroup.POST("", api.SalvarUsuarioHandler(usuarios))                          // Registration endpoint
	usuarioGroup.POST("/autenticar", api.AutenticarHandler(usuarios, cfg.JWTSecret))   // Authentication endpoint
	usuarioGroup.GET("/:id/saldo", api.ObterSaldoHandler(usuarios, lancamentos))       // Balance endpoint

	// Lançamento routes (protected by JWT)
	lancamentoGroup := r.Group("/api/lancamentos")
	lancamentoGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	lancamentoGroup.GET("", api.BuscarLancamentosHandler(lancamentos, usuarios, redisClient))        // Filtered search endpoint
	lancamentoGroup.POST("", api.SalvarLancamentoHandler(lancamentos, usuarios, redisClient))        // Create endpoint
	lancamentoGroup.PUT("/:id", api.AtualizarLancamentoHandler(lancamentos, usuarios, redisClient))  // Update endpoint
	lancamentoGroup.PUT("/:id/atualiza-status", api.AtualizaStatusHandler(lancamentos, redisClient)) // Status-only update endpoint
	lancamentoGroup.DELETE("/:id", api.DeletarLancamentoHandler(lancamentos, redisClient))           // Delete endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
