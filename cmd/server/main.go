package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelmaintpro/maintenance-backend/internal/config"
	"github.com/hotelmaintpro/maintenance-backend/internal/database"
	"github.com/hotelmaintpro/maintenance-backend/internal/handlers"
	"github.com/hotelmaintpro/maintenance-backend/internal/middleware"
	"github.com/hotelmaintpro/maintenance-backend/internal/models"
	"github.com/hotelmaintpro/maintenance-backend/internal/services"
	"github.com/hotelmaintpro/maintenance-backend/internal/store"
	"github.com/hotelmaintpro/maintenance-backend/pkg/jwt"
)

var version = "1.0.0"

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Hotel Maintenance Pro backend")
	logger.Infof("Version: %s", version)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.SessionExpiry)

	// Pick the backend: remote when fully configured, local otherwise
	var dataStore *store.Store
	var authService *services.AuthService
	var closeBackend func() error

	if cfg.RemoteEnabled() {
		logger.Info("Remote backend configured, connecting...")
		db, err := database.NewConnection(cfg.Remote)
		if err != nil {
			logger.Fatalf("Failed to connect to remote backend: %v", err)
		}
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping remote backend: %v", err)
		}
		closeBackend = db.Close

		remote := database.NewRemote(db)
		dataStore = store.NewRemote(remote, logger)
		authService = services.NewRemoteAuthService(
			dataStore,
			database.NewAuthRepository(db),
			remote,
			jwtService,
			logger,
			cfg.Security.BcryptCost,
			cfg.JWT.SessionExpiry,
		)
		logger.Info("Remote backend connection established")
	} else {
		logger.Warn("No remote backend configured, using local store")
		kv, err := database.OpenKV(cfg.Local.Path)
		if err != nil {
			logger.Fatalf("Failed to open local store: %v", err)
		}
		closeBackend = kv.Close

		dataStore = store.NewLocal(kv, logger)
		authService = services.NewLocalAuthService(
			dataStore,
			kv,
			jwtService,
			logger,
			cfg.Security.BcryptCost,
			cfg.JWT.SessionExpiry,
		)
	}
	defer closeBackend()

	if err := dataStore.InitializeData(); err != nil {
		logger.Fatalf("Failed to initialize data: %v", err)
	}

	exportService := services.NewExportService(dataStore)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, dataStore, cfg, logger)
	adminHandler := handlers.NewAdminHandler(dataStore, logger)
	maintenanceHandler := handlers.NewMaintenanceHandler(dataStore, logger)
	reportHandler := handlers.NewReportHandler(dataStore, exportService, logger)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"mode":      backendMode(dataStore),
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(jwtService, logger))
		{
			authed.POST("/auth/logout", authHandler.Logout)
			authed.GET("/auth/me", authHandler.Me)

			authed.GET("/hotels", adminHandler.ListHotels)
			authed.GET("/hotels/current", adminHandler.CurrentHotel)
			authed.GET("/hotels/:id", adminHandler.GetHotel)
			authed.POST("/hotels/:id/select", adminHandler.SelectHotel)

			authed.GET("/hotels/:id/damages", maintenanceHandler.ListDamages)
			authed.GET("/hotels/:id/rooms", maintenanceHandler.ListRooms)
			authed.PUT("/hotels/:id/rooms/:number", maintenanceHandler.UpdateRoom)
			authed.GET("/hotels/:id/preventive", maintenanceHandler.ListPreventive)

			authed.GET("/hotels/:id/stats", reportHandler.Stats)
			authed.GET("/hotels/:id/stats/categories", reportHandler.CategoryStats)
			authed.GET("/hotels/:id/stats/monthly", reportHandler.MonthlyStats)
			authed.GET("/hotels/:id/export", reportHandler.Export)
			authed.GET("/hotels/:id/export/csv", reportHandler.ExportCSV)

			authed.POST("/damages", maintenanceHandler.CreateDamage)
			authed.PUT("/damages/:id", maintenanceHandler.UpdateDamage)
			authed.DELETE("/damages/:id", maintenanceHandler.DeleteDamage)

			authed.POST("/preventive", maintenanceHandler.CreatePreventive)
			authed.PUT("/preventive/:id", maintenanceHandler.UpdatePreventive)
			authed.DELETE("/preventive/:id", maintenanceHandler.DeletePreventive)

			authed.GET("/users", adminHandler.ListUsers)

			admins := authed.Group("")
			admins.Use(middleware.RequireRole(models.RoleSuperadmin, models.RoleAdmin))
			{
				admins.POST("/hotels", adminHandler.CreateHotel)
				admins.PUT("/hotels/:id", adminHandler.UpdateHotel)
				admins.DELETE("/hotels/:id", adminHandler.DeleteHotel)

				admins.POST("/users/signup", authHandler.Signup)
				admins.PUT("/users/:id", adminHandler.UpdateUser)
				admins.DELETE("/users/:id", adminHandler.DeleteUser)
			}

			superadmins := authed.Group("")
			superadmins.Use(middleware.RequireRole(models.RoleSuperadmin))
			{
				superadmins.POST("/admin/reset", adminHandler.ResetData)
			}
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

func backendMode(s *store.Store) string {
	if s.RemoteEnabled() {
		return "remote"
	}
	return "local"
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)
		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}
