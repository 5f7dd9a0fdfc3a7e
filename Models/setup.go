package Models

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDataBase() {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var err error

	DbHost := os.Getenv("DB_HOST")
	if DbHost != "" {
		DbUser := os.Getenv("DB_USER")
		DbPassword := os.Getenv("DB_PASSWORD")
		DbName := os.Getenv("DB_NAME")
		DbPort := os.Getenv("DB_PORT")

		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", DbHost, DbUser, DbPassword, DbName, DbPort)
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		DB, err = gorm.Open(sqlite.Open("caresync.db"), &gorm.Config{})
	}

	if err != nil {
		log.Fatal("connection error:", err)
	}

	Migrate(DB)
}

// Migrate runs AutoMigrate in dependency order so foreign keys resolve.
func Migrate(db *gorm.DB) {
	// Models with no dependencies first
	db.AutoMigrate(&User{})
	db.AutoMigrate(&Doctor{})
	db.AutoMigrate(&BloodBank{})

	// Then models that depend on the above
	db.AutoMigrate(&DeviceToken{})
	db.AutoMigrate(&Appointment{})
	db.AutoMigrate(&VideoCall{})
	db.AutoMigrate(&Notification{})
	db.AutoMigrate(&Conversation{})
	db.AutoMigrate(&PromptHistory{})

	// Finally models that depend on multiple other models
	db.AutoMigrate(&Message{})
	db.AutoMigrate(&Prescription{})
	db.AutoMigrate(&Medication{})
	db.AutoMigrate(&Reminder{})
}
