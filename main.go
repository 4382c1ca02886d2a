package main

import (
	"log"
	"os"

	"Tally/config"
	"Tally/middleware"
	"Tally/routes"
	"Tally/services/redis"
	"Tally/services/session"
	"Tally/services/socket_io"
	socketio_types "Tally/services/socket_io/types"
	"Tally/services/store"
	"Tally/sync"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title Tally API
// @version 1.0
// @description Gin-Gonic server for the "Tally" score session service
// @BasePath /
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := config.Connect_redis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	log.Println("Connection to Redis successful")
	defer redis.CloseRedis(redisClient)

	sessionStore := store.NewStore(redisClient)

	// Optional PostgreSQL mirror for reporting
	var syncManager *sync.SyncManager
	if os.Getenv("ARCHIVE_POSTGRES") == "true" {
		gormDB, err := config.ConnectGORM()
		if err != nil {
			log.Fatalf("Error connecting to PostgreSQL: %v", err)
		}
		log.Println("GORM Connected")

		if os.Getenv("MIGRATE_POSTGRES") == "true" {
			log.Println("Migrating PostgreSQL database...")
			if err := config.MigrateDatabase(gormDB); err != nil {
				log.Printf("Warning: Database migration failed: %v", err)
				// Continue execution even if migration fails
			} else {
				log.Println("Database migrated successfully")
			}
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
		}
		defer sqlDB.Close()

		syncManager = sync.NewSyncManager(gormDB)
		sessionStore.SetArchiver(syncManager)
	}

	// Rehydrate whatever survived the last run, then start persisting
	sessionStore.Load()
	sessionStore.StartWriter()

	sio := socketio_types.NewSocketServer()
	engine := session.NewEngine(sessionStore, sio)

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	routes.SetupRoutes(r, sessionStore, syncManager)

	(*socket_io.MySocketServer)(sio).Start(r, engine, sessionStore)

	// Configure port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
