package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rotaplan/roster-backend/internal/config"
	"github.com/rotaplan/roster-backend/internal/domain"
	"github.com/rotaplan/roster-backend/internal/repository"
	"github.com/rotaplan/roster-backend/internal/rostergen"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// tenantNameFor appends the 1-based counter when more than one tenant
// is generated, as the -name flag help promises.
func tenantNameFor(base string, index, count int) string {
	if count <= 1 {
		return base
	}
	return fmt.Sprintf("%s %d", base, index+1)
}

func main() {
	var name string
	var zoneID string
	var spotCount int
	var rotationLength int
	var today string
	var count int

	flag.StringVar(&name, "name", "Demo Hospital", "name of the demo tenant (a counter is appended when -count > 1)")
	flag.StringVar(&zoneID, "zone", "UTC", "IANA time zone of the demo tenant")
	flag.IntVar(&spotCount, "spots", 0, "number of spots (0 uses the default)")
	flag.IntVar(&rotationLength, "rotation", 0, "rotation length in days (0 uses the default)")
	flag.StringVar(&today, "today", "", "anchor date YYYY-MM-DD (empty uses today)")
	flag.IntVar(&count, "count", 1, "number of demo tenants to generate")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect; ping to verify the DSN works
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	generator := rostergen.New(cfg.Generator.Seed)

	var anchor domain.LocalDate
	if today != "" {
		anchor, err = domain.ParseLocalDate(today)
		if err != nil {
			logger.Error("invalid -today date", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	for i := 0; i < count; i++ {
		tenantName := tenantNameFor(name, i, count)

		generated, err := generator.Generate(rostergen.TenantSpec{
			Name:           tenantName,
			ZoneID:         zoneID,
			SpotCount:      spotCount,
			RotationLength: rotationLength,
			Today:          anchor,
		})
		if err != nil {
			logger.Error("unable to generate demo tenant", slog.String("name", tenantName), slog.String("error", err.Error()))
			os.Exit(1)
		}

		if err := repo.SaveGeneratedRoster(generated); err != nil {
			logger.Error("unable to persist demo tenant", slog.String("name", tenantName), slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("demo tenant created",
			"tenantId", generated.Tenant.ID,
			"name", tenantName,
			"spots", len(generated.Spots),
			"employees", len(generated.Employees),
			"shifts", len(generated.Shifts),
			"availabilities", len(generated.Availabilities),
		)
	}
}
