package main

import (
	"log"
	"os"

	"backend/internal/app/ds"
	"backend/internal/app/dsn"
	"backend/internal/app/password"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Базовый каталог услуг. ID до ds.SystemServiceIDLimit зарезервированы
// за системными услугами, импорт бэкапа их не удаляет.
var systemServices = []ds.Service{
	{ID: 1, Name: "Мойка кузова", Price: decimal.NewFromInt(500)},
	{ID: 2, Name: "Комплексная мойка", Price: decimal.NewFromInt(1200)},
	{ID: 3, Name: "Химчистка салона", Price: decimal.NewFromInt(3500)},
	{ID: 4, Name: "Полировка кузова", Price: decimal.NewFromInt(4000)},
	{ID: 5, Name: "Мойка двигателя", Price: decimal.NewFromInt(800)},
}

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	// Получение DSN строки подключения
	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Миграция всех моделей
	err = db.AutoMigrate(
		&ds.User{},
		&ds.Customer{},
		&ds.Vehicle{},
		&ds.Service{},
		&ds.Job{},
		&ds.JobService{},
		&ds.Expense{},
		&ds.Setting{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migration completed successfully")

	if err := seedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seedSystemServices(db); err != nil {
		log.Fatalf("Failed to seed system services: %v", err)
	}

	log.Println("Database seeding completed successfully")
}

func seedAdmin(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	pass := os.Getenv("ADMIN_PASSWORD")
	if pass == "" {
		pass = "admin"
		log.Println("ADMIN_PASSWORD not set, using default password")
	}

	var count int64
	if err := db.Model(&ds.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Admin user %q already exists, skipping", username)
		return nil
	}

	hashed, err := password.Hash(pass)
	if err != nil {
		return err
	}

	admin := ds.User{
		Username: username,
		Password: hashed,
		FullName: "Администратор",
		IsAdmin:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user %q created", username)
	return nil
}

func seedSystemServices(db *gorm.DB) error {
	for _, svc := range systemServices {
		var count int64
		if err := db.Model(&ds.Service{}).Where("id = ?", svc.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&svc).Error; err != nil {
			return err
		}
		log.Printf("System service %q created", svc.Name)
	}
	return nil
}
