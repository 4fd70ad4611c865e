package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/clockvault/timeclock-service/internal/client"
	"github.com/clockvault/timeclock-service/internal/config"
	httpdelivery "github.com/clockvault/timeclock-service/internal/delivery/http"
	"github.com/clockvault/timeclock-service/internal/delivery/http/handlers"
	"github.com/clockvault/timeclock-service/internal/infrastructure/kafka"
	"github.com/clockvault/timeclock-service/internal/infrastructure/metrics"
	"github.com/clockvault/timeclock-service/internal/infrastructure/migrate"
	"github.com/clockvault/timeclock-service/internal/infrastructure/postgres"
	"github.com/clockvault/timeclock-service/internal/infrastructure/postgres/repository"
	"github.com/clockvault/timeclock-service/internal/infrastructure/signature"
	"github.com/clockvault/timeclock-service/internal/usecase/adjustment"
	"github.com/clockvault/timeclock-service/internal/usecase/ledger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.TimeclockDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.TimeclockDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewKafkaPublisher(brokers, cfg.KafkaService.LedgerTopic, cfg.KafkaService.AdjustmentTopic)
	defer publisher.Close()

	// Init repositories
	recordRepo := repository.NewDefaultTimeRecordRepository(db)
	adjustmentRepo := repository.NewDefaultAdjustmentRepository(db)

	// Init user directory client
	directory, err := client.NewHTTPDirectoryClient(fmt.Sprintf("http://%s:%s", cfg.DirectoryService.Host, cfg.DirectoryService.Port))
	if err != nil {
		log.Fatalf("failed to init directory client: %v", err)
	}

	signer := signature.NewSHA256Generator()
	ledgerMetrics := metrics.NewLedgerMetrics()

	// Init ledger usecase
	ledgerUc := ledger.NewDefaultLedgerUsecase(recordRepo, signer, directory, publisher, ledgerMetrics, ledger.Config{
		MinInterval: cfg.Ledger.MinInterval,
		MaxPageSize: cfg.Ledger.MaxPageSize,
	})

	// Init adjustment usecase
	adjustmentUc, err := adjustment.NewDefaultAdjustmentUsecase(adjustmentRepo, recordRepo, signer, directory, publisher, ledgerMetrics, adjustment.Config{
		MinReasonLength: cfg.Ledger.MinReasonLength,
		MaxPageSize:     cfg.Ledger.MaxPageSize,
	})
	if err != nil {
		log.Fatalf("failed to init adjustment usecase: %v", err)
	}

	// Pending adjustments gauge refresh
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			<-ticker.C
			counts, err := adjustmentRepo.CountPendingByTenant(context.Background())
			if err != nil {
				slog.Error("pending adjustments refresh failed", "error", err.Error())
				continue
			}
			ledgerMetrics.PendingAdjustmentsGauge.Reset()
			for tenantID, total := range counts {
				ledgerMetrics.PendingAdjustmentsGauge.WithLabelValues(tenantID).Set(float64(total))
			}
		}
	}()

	router := httpdelivery.NewRouter(
		handlers.NewLedgerHandler(ledgerUc),
		handlers.NewAdjustmentHandler(adjustmentUc),
	)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
