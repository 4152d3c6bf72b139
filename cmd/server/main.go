package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/worksys/workforce-api/internal/config"
	"github.com/worksys/workforce-api/internal/constants"
	"github.com/worksys/workforce-api/internal/database"
	"github.com/worksys/workforce-api/internal/handlers"
	"github.com/worksys/workforce-api/internal/middleware"
	"github.com/worksys/workforce-api/internal/models"
	"github.com/worksys/workforce-api/internal/repository"
	"github.com/worksys/workforce-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Seed the initial manager account
	if err := database.SeedManager(cfg); err != nil {
		log.Fatalf("Failed to seed manager: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	accountRepo := repository.NewAccountRepository(database.GetDB())
	claimRepo := repository.NewClaimRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(userRepo)
	employeeService := services.NewEmployeeService(userRepo)
	accountService := services.NewAccountService(accountRepo, userRepo)
	claimService := services.NewClaimService(claimRepo, userRepo)
	payrollService := services.NewPayrollService(accountRepo, userRepo)
	dashboardService := services.NewDashboardService(claimRepo, accountRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, claimService)
	accountHandler := handlers.NewAccountHandler(accountService)
	claimHandler := handlers.NewClaimHandler(claimService)
	payrollHandler := handlers.NewPayrollHandler(payrollService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Workforce API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PUT("/credentials", middleware.RequireAuth(), middleware.RequireRole(models.RoleManager), authHandler.UpdateCredentials)
		}

		// Employee management (manager only)
		employees := api.Group("/employees")
		employees.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleManager))
		{
			employees.POST("", employeeHandler.CreateEmployee)
			employees.GET("", employeeHandler.ListEmployees)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
			employees.GET("/:id/history", employeeHandler.GetHistory)
		}

		// Work accounts
		accounts := api.Group("/accounts")
		accounts.Use(middleware.RequireAuth())
		{
			accounts.GET("", accountHandler.ListAccounts)

			manage := accounts.Group("")
			manage.Use(middleware.RequireRole(models.RoleManager))
			{
				manage.POST("", accountHandler.CreateAccount)
				manage.PUT("/:id", accountHandler.UpdateAccount)
				manage.DELETE("/:id", accountHandler.DeleteAccount)
				manage.POST("/unassign-all", accountHandler.UnassignAllAccounts)
				manage.POST("/:id/assign", accountHandler.AssignAccount)
				manage.POST("/:id/reassign", accountHandler.ReassignAccount)
				manage.POST("/:id/unassign", accountHandler.UnassignAccount)
				manage.POST("/:id/dismiss-unpause", accountHandler.DismissUnpause)
			}

			work := accounts.Group("")
			work.Use(middleware.RequireRole(models.RoleEmployee))
			{
				work.POST("/:id/accept", accountHandler.AcceptAccount)
				work.POST("/:id/pause", accountHandler.PauseAccount)
				work.POST("/:id/leave", accountHandler.LeaveAccount)
			}
		}

		// Task claims
		claims := api.Group("/claims")
		claims.Use(middleware.RequireAuth())
		{
			claims.GET("", claimHandler.ListClaims)
			claims.POST("", middleware.RequireRole(models.RoleEmployee), claimHandler.SubmitClaim)
			claims.POST("/:id/approve", middleware.RequireRole(models.RoleManager), claimHandler.ApproveClaim)
			claims.POST("/:id/reject", middleware.RequireRole(models.RoleManager), claimHandler.RejectClaim)
		}

		// Payroll (manager only)
		payroll := api.Group("/payroll")
		payroll.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleManager))
		{
			payroll.GET("", payrollHandler.GetSummary)
			payroll.POST("/mark-paid", payrollHandler.MarkPaid)
		}

		// Dashboard (manager only)
		api.GET("/dashboard", middleware.RequireAuth(), middleware.RequireRole(models.RoleManager), dashboardHandler.GetOverview)
	}

	// Start server
	log.Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
