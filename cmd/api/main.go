package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rentflow-portal/internal/config"
	"rentflow-portal/internal/database"
	"rentflow-portal/internal/handlers"
	"rentflow-portal/internal/scheduler"
	"rentflow-portal/internal/search"
	"rentflow-portal/internal/seed"
)

func main() {
	// .env is optional; real deployments use the yaml config
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	configPath := getEnv("CONFIG_PATH", "config/rentflow.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		appConfig.Auth.JWTSecret = secret
	}

	db, err := database.New(&appConfig.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	if getEnv("SEED_DEMO_DATA", "true") == "true" {
		if err := seed.Run(db); err != nil {
			log.Printf("Warning: Failed to seed demo data: %v", err)
		}
	}

	var searchClient *search.Client
	if appConfig.Search.Enabled {
		searchClient = search.NewClient(appConfig.Search.Meilisearch.Host, appConfig.Search.Meilisearch.APIKey)
		if err := searchClient.InitIndexes(); err != nil {
			log.Printf("Warning: Failed to initialize search indexes: %v", err)
			searchClient = nil
		} else if err := reindexAll(db, searchClient); err != nil {
			log.Printf("Warning: Failed to index existing rows: %v", err)
		}
	}

	appScheduler := scheduler.NewScheduler(db, appConfig)
	if err := appScheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start billing scheduler: %v", err)
	}
	defer appScheduler.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.NewHandler(db, appConfig, searchClient, appScheduler)
	h.RegisterRoutes(r)

	port := getEnv("PORT", strconv.Itoa(appConfig.Server.Port))
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// reindexAll pushes the current units and tenants into the search engine so
// queries work immediately after startup.
func reindexAll(db *database.DB, sc *search.Client) error {
	units, err := db.GetUnits(database.UnitFilters{})
	if err != nil {
		return err
	}
	if err := sc.IndexUnits(units); err != nil {
		return err
	}

	tenants, err := db.GetTenants(database.TenantFilters{})
	if err != nil {
		return err
	}
	return sc.IndexTenants(tenants)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
