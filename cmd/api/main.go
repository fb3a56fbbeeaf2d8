package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/jfraser77/hrops-backend/internal/config"
	appHTTP "github.com/jfraser77/hrops-backend/internal/handler/http"
	"github.com/jfraser77/hrops-backend/internal/pkg/cron"
	"github.com/jfraser77/hrops-backend/internal/pkg/database"
	"github.com/jfraser77/hrops-backend/internal/pkg/email"
	"github.com/jfraser77/hrops-backend/internal/pkg/jwt"
	"github.com/jfraser77/hrops-backend/internal/repository/postgresql"
	inventoryService "github.com/jfraser77/hrops-backend/internal/service/inventory"
	terminationService "github.com/jfraser77/hrops-backend/internal/service/termination"
	userService "github.com/jfraser77/hrops-backend/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.RunMigrations(context.Background(), dsn); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	terminationRepo := postgresql.NewTerminationRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	inventoryRepo := postgresql.NewInventoryRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	terminationSvc := terminationService.NewTerminationService(
		txManager,
		terminationRepo,
		userRepo,
		inventoryRepo,
		emailService,
		cfg.Sweep.HREmails,
	)
	userSvc := userService.NewUserService(userRepo)
	inventorySvc := inventoryService.NewInventoryService(inventoryRepo)

	scheduler := cron.NewScheduler()
	cron.NewTerminationJobs(terminationSvc, cfg.Sweep.Interval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	terminationHandler := appHTTP.NewTerminationHandler(terminationSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	inventoryHandler := appHTTP.NewInventoryHandler(inventorySvc)

	router := appHTTP.NewRouter(cfg, jwtService, terminationHandler, userHandler, inventoryHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server starting on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
