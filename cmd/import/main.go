package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jwlee/aptgap-backend/config"
	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/internal/app/repository"
	"github.com/jwlee/aptgap-backend/internal/app/service"
	"github.com/jwlee/aptgap-backend/internal/db"
	"github.com/jwlee/aptgap-backend/pkg/logger"
)

// 수집기 내보내기 JSON을 수동으로 반영하는 CLI.
// 파일 하나 또는 naver_*.json이 들어 있는 디렉토리를 받는다.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/import/main.go <json_file_or_directory>")
	}

	target := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Initialize(logger.Config{
		Level:  cfg.Log.Level,
		Format: "console",
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	complexRepo := repository.NewComplexRepository(db.GetDB())
	listingRepo := repository.NewListingRepository(db.GetDB())
	summaryRepo := repository.NewSummaryRepository(db.GetDB())

	aggregateService := service.NewAggregateService(listingRepo, summaryRepo, cfg.Timezone)
	importService := service.NewImportService(
		complexRepo,
		listingRepo,
		aggregateService,
		service.DefaultFilterConfig(),
		cfg.Timezone,
	)

	info, err := os.Stat(target)
	if err != nil {
		log.Fatal("Failed to stat target:", err)
	}

	ctx := context.Background()

	var result *model.ImportResult
	if info.IsDir() {
		result, err = importService.ImportDirectory(ctx, target)
	} else {
		result, err = importService.ImportFile(ctx, target)
	}
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("  batch:        %s\n", result.BatchID)
	fmt.Printf("  complexes:    %d\n", result.Complexes)
	fmt.Printf("  imported:     %d\n", result.Imported)
	fmt.Printf("  skipped:      %d\n", result.Skipped)
	fmt.Printf("  summary rows: %d\n", result.SummaryRows)
	for rule, count := range result.RemovedByRule {
		fmt.Printf("  removed (%s): %d\n", rule, count)
	}
}
