package main

import (
	"context"
	"log"

	"linkboard/internal/config"
	"linkboard/internal/db"
	"linkboard/internal/model"
	"linkboard/internal/repository"
	"linkboard/internal/service"
)

// Seeds the bootstrap admin account. Idempotent: a second run (or a
// concurrent run against the same database) is a no-op.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Article{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)

	created, err := service.EnsureAdmin(context.Background(), userRepo, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	if created {
		log.Printf("Admin user created (username: %s)", cfg.AdminUsername)
		log.Println("Change the default password before exposing this deployment")
	} else {
		log.Println("Admin user already exists, nothing to do")
	}
}
