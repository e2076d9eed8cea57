package main

import (
	"fmt"
	"log"
	"os"

	"crop-asr-qa/backend/internal/apigateway"
	"crop-asr-qa/backend/internal/auth"
	"crop-asr-qa/backend/internal/datastore"
	"crop-asr-qa/backend/internal/objectstore"
	"crop-asr-qa/backend/internal/sessionmanagement"

	"github.com/joho/godotenv"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment.")
	}

	auth.LoadCredentials()

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_NAME", "crop_asr_qa"),
		envOr("DB_SSLMODE", "disable"),
	)
	if err := datastore.InitDB(dsn); err != nil {
		// Sessions run in memory and the mock provider needs no storage, so
		// the server stays up; finalized sessions will not be archived.
		log.Printf("WARNING: database unavailable, session archiving disabled: %v", err)
	} else {
		defer datastore.DB.Close()
	}

	if err := objectstore.InitMinioClient(); err != nil {
		log.Printf("WARNING: object store unavailable, audio clips and reports will not be stored: %v", err)
	}

	registry := sessionmanagement.NewSessionRegistry()
	sessions := sessionmanagement.NewSessionService(registry)

	janitor := sessionmanagement.NewJanitor(registry)
	janitor.Start()
	defer janitor.Stop()

	router := apigateway.SetupRouter(sessions)

	port := envOr("SERVER_PORT", "8080")
	log.Printf("Starting server on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
