package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"finance-tracker-go-be/config"
	"finance-tracker-go-be/models"
)

// DB instance
var DB *gorm.DB

// ConnectDB connects to the database
func ConnectDB() {
	dsn := config.DatabaseURL()
	if !strings.Contains(dsn, "sslmode") {
		dsn += "?sslmode=require" // Fixes Supabase connection refusal
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // surfaces gorm.ErrDuplicatedKey on unique violations
	})

	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}

	log.Println("Connected to database successfully")

	// Auto Migrate
	log.Println("Running migrations...")
	err = DB.AutoMigrate(&models.User{}, &models.Wallet{}, &models.Category{}, &models.Transaction{})
	if err != nil {
		log.Fatal("Failed to migrate database. \n", err)
	}
	log.Println("Database migrated successfully")
}
