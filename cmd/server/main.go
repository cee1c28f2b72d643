package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "linkboard/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"linkboard/internal/auth"
	"linkboard/internal/cache"
	"linkboard/internal/config"
	"linkboard/internal/db"
	"linkboard/internal/handler"
	"linkboard/internal/model"
	"linkboard/internal/repository"
	"linkboard/internal/router"
	"linkboard/internal/service"
)

// @title Linkboard API
// @version 1.0
// @description Link-sharing board with JWT authentication: register, login, post article URLs, delete own articles (admins delete any).
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Article{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Article{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	articleRepo := repository.NewArticleRepository(gormDB)

	// Seed the bootstrap admin account if missing
	created, err := service.EnsureAdmin(context.Background(), userRepo, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if created {
		log.Printf("Admin user created (username: %s); change the default password in production", cfg.AdminUsername)
	}

	// Initialize auth components and services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService, cacheClient)
	articleService := service.NewArticleService(articleRepo, userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	articleHandler := handler.NewArticleHandler(articleService)

	// Register routes
	router.Register(e, cfg, authHandler, articleHandler, authService)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
