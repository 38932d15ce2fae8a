package main

import (
	"log"
	"net/http"
	"os"

	_ "courseconnect/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"courseconnect/internal/auth"
	"courseconnect/internal/cache"
	"courseconnect/internal/config"
	"courseconnect/internal/db"
	"courseconnect/internal/handler"
	"courseconnect/internal/model"
	"courseconnect/internal/repository"
	"courseconnect/internal/router"
	"courseconnect/internal/service"
)

// @title CourseConnect API
// @version 1.0
// @description Student course-registration API: accounts, a fixed course catalog, and full-replacement enrollment lists.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the login session token.
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
		if err := gormDB.Migrator().DropTable(&model.Student{}); err != nil {
			log.Printf("Warning: Failed to drop table (may not exist): %v", err)
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(&model.Student{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	studentRepo := repository.NewStudentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	accountService := service.NewAccountService(studentRepo, jwtService, tokenStore)
	enrollmentService := service.NewEnrollmentService(studentRepo, cacheClient)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountService, tokenStore)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)

	// Register routes
	router.Register(e, cfg, accountHandler, enrollmentHandler)

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
