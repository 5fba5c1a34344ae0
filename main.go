package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"denken-plus-api/catalog"
	"denken-plus-api/db"
	"denken-plus-api/handlers"
	"denken-plus-api/utils"
)

func main() {
	// Set up logging with timestamps
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	utils.LogStartup("Denken Plus study API starting...")

	if err := godotenv.Load(); err != nil {
		utils.LogStartup("No .env file found, using environment as is")
	}

	port := utils.GetEnvOrDefault("PORT", "8086")
	dbPath := utils.GetEnvOrDefault("DB_PATH", "./denken.db")
	catalogSource := utils.GetEnvOrDefault("CATALOG_SOURCE", "./data.json")

	utils.LogStartup("Config: port=%s db=%s catalog=%s", port, dbPath, catalogSource)

	// Initialize database
	database, err := db.InitDB(dbPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize database: %v", err)
	}

	// Load the content catalog. A failed load is not fatal: the server
	// comes up in a blocked state and refuses to start sessions until
	// the catalog problem is fixed and the process restarted.
	cat, catErr := catalog.Load(catalogSource)
	if catErr != nil {
		utils.LogError("Catalog load failed, no study mode can start: %v", catErr)
	}

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		utils.LogShutdown("Received shutdown signal, closing database...")
		if err := database.Close(); err != nil {
			utils.LogError("Error closing database: %v", err)
		} else {
			utils.LogShutdown("Database connection closed successfully")
		}
		os.Exit(0)
	}()

	// Setup API routes
	utils.LogStartup("Setting up API routes...")
	router := handlers.NewRouter(database, cat, catErr)

	// Create server with timeouts
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	utils.LogStartup("Server ready to accept connections at http://localhost:%s", port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[FATAL] Server failed to start: %v", err)
	}
}
