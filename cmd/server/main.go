package main

import (
	"fmt"
	"log"

	"entregas/internal/config"
	"entregas/internal/handler"
	"entregas/internal/repository/postgres"
	"entregas/internal/router"
	"entregas/internal/service"
	s3storage "entregas/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	deliveryRepo := postgres.NewDeliveryRepo(db)
	operatorRepo := postgres.NewOperatorRepo(db)
	companyRepo := postgres.NewCompanyRepo(db)
	driverRepo := postgres.NewDriverRepo(db)

	// Archive retention is optional; nil store disables it.
	archiveStore, err := s3storage.NewArchiveStore(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize archive store: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(operatorRepo, cfg.JWT)
	importSvc := service.NewImportService(deliveryRepo, archiveStore, &cfg.Import)
	deliverySvc := service.NewDeliveryService(deliveryRepo)
	operatorSvc := service.NewOperatorService(operatorRepo)
	companySvc := service.NewCompanyService(companyRepo)
	driverSvc := service.NewDriverService(driverRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	importH := handler.NewImportHandler(importSvc, &cfg.Import)
	deliveryH := handler.NewDeliveryHandler(deliverySvc)
	operatorH := handler.NewOperatorHandler(operatorSvc)
	companyH := handler.NewCompanyHandler(companySvc)
	driverH := handler.NewDriverHandler(driverSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, importH, deliveryH, operatorH, companyH, driverH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
