package config

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"hotelease/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the Postgres connection, runs migrations and seeds
// baseline rows.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	SeedDatabase(db)
	return db, nil
}

// Migrate runs AutoMigrate in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.HotelSetting{},
		&models.Employee{},
		&models.Hotel{},
		&models.Booking{},
		&models.Payment{},
		&models.Favorite{},
		&models.Review{},
		&models.Notification{},
	)
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// SeedDatabase inserts the default admin, hotel settings and a starter
// catalog when the tables are empty.
func SeedDatabase(db *gorm.DB) {
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				Email:     envOrDefault("ADMIN_EMAIL", "admin@hotelease.local"),
				Password:  string(hash),
				FirstName: "Admin",
				LastName:  "User",
				Role:      models.RoleAdmin,
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var settingCount int64
	db.Model(&models.HotelSetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.HotelSetting{
			Name:    "HotelEase",
			Address: "176 Paul Kruger Avenue, 0001 Hartbeespoort, South Africa",
			Email:   "info@hotelease.local",
		}
		if err := db.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed hotel settings: %v", err)
		}
	}

	var hotelCount int64
	db.Model(&models.Hotel{}).Count(&hotelCount)
	if hotelCount == 0 {
		hotels := []models.Hotel{
			{
				Name:          "HotelEase",
				Address:       "176 Paul Kruger Avenue",
				City:          "Hartbeespoort",
				Country:       "South Africa",
				PricePerNight: 1500,
				Rating:        5,
				TotalRooms:    10,
				Status:        models.HotelActive,
				Amenities:     mustJSON([]string{"wifi", "pool", "parking"}),
			},
			{
				Name:          "The Capital",
				Address:       "Main Street",
				City:          "Pretoria",
				Country:       "South Africa",
				PricePerNight: 2000,
				Rating:        5,
				TotalRooms:    10,
				Status:        models.HotelActive,
				Amenities:     mustJSON([]string{"wifi", "gym", "restaurant"}),
			},
			{
				Name:          "Max Hotel",
				Address:       "City Center",
				City:          "Johannesburg",
				Country:       "South Africa",
				PricePerNight: 1800,
				Rating:        5,
				TotalRooms:    10,
				Status:        models.HotelActive,
				Amenities:     mustJSON([]string{"wifi", "spa"}),
			},
		}
		if err := db.Create(&hotels).Error; err != nil {
			log.Printf("warning: failed to seed hotels: %v", err)
		} else {
			log.Println("Hotels seeded")
		}
	}
}
