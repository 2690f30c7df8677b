package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file if one is present. Real deployments set the
// environment directly, so a missing file is not an error.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// DatabaseURL returns the Postgres DSN. The service cannot run without it.
func DatabaseURL() string {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	return dsn
}

// Port returns the HTTP listen port, defaulting to 3000.
func Port() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return port
}

// GeminiAPIKey returns the API key for the insights endpoint. May be empty;
// the insights handler rejects requests when it is.
func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}
