package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/driveshare/driveshare-backend/internal/database"
	"github.com/driveshare/driveshare-backend/internal/handlers"
	"github.com/driveshare/driveshare-backend/internal/middleware"
	"github.com/driveshare/driveshare-backend/internal/rental"
	"github.com/driveshare/driveshare-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	// Initialize database with better error handling
	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Initialize Redis
	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Wire the rental engine
	cfg := rental.Config{
		PlatformFeePercent: envFloat("PLATFORM_FEE_PERCENT", 10),
		TaxPercent:         envFloat("TAX_PERCENT", 16),
	}
	engine := rental.NewService(
		rental.NewRepo(db),
		services.NewHubNotifier(hub),
		services.RedisCalendarCache{},
		cfg,
	)

	// Initialize router
	r := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Serve static files
	r.Static("/uploads", "/app/uploads")

	// Routes
	api := r.Group("/api")
	{
		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Vehicle listing routes
			vehicles := protected.Group("/vehicles")
			{
				vehicles.POST("", handlers.CreateVehicle(db))
				vehicles.PATCH("/:id/price", handlers.UpdateVehiclePrice(db))
				vehicles.PATCH("/:id/status", handlers.ReviewVehicleListing(db))
				vehicles.POST("/:id/photo", handlers.UploadVehiclePhoto(db))
				vehicles.GET("/:id/add-ons", handlers.GetVehicleAddOns(db))
				vehicles.GET("/:id/blocked-dates", handlers.GetBlockedDates(engine))
			}

			// Add-on catalog routes
			addons := protected.Group("/add-ons")
			{
				addons.POST("", handlers.CreateAddOn(db))
			}

			// User presence
			users := protected.Group("/users")
			{
				users.GET("/:id/presence", handlers.GetUserPresence())
			}

			// Bid routes
			bids := protected.Group("/bids")
			{
				bids.POST("", handlers.PlaceBid(engine))
				bids.POST("/:id/approve", handlers.ApproveBid(engine))
				bids.POST("/:id/reject", handlers.RejectBid(engine))
				bids.GET("/:id/overlaps", handlers.GetOverlappingBids(engine))
				bids.GET("/owner", handlers.GetOwnerBids(engine))
				bids.GET("/renter", handlers.GetRenterBids(engine))
			}

			// Trip routes
			trips := protected.Group("/trips")
			{
				trips.POST("/:id/start", handlers.StartTrip(engine))
				trips.POST("/:id/end", handlers.EndTrip(engine))
				trips.POST("/:id/review", handlers.SubmitReview(engine))
			}

			// Pricing routes
			pricing := protected.Group("/pricing")
			{
				pricing.GET("/calculate", handlers.CalculatePrice())
				pricing.POST("/estimate", handlers.EstimateSettlement(cfg))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using %.2f", key, raw, fallback)
		return fallback
	}
	return v
}
