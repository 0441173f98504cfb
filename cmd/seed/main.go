package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cossmil/asistencia-backend/internal/config"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/cossmil/asistencia-backend/internal/pkg/password"
	"github.com/cossmil/asistencia-backend/internal/repository/postgresql"
	"github.com/cossmil/asistencia-backend/internal/seed"
)

func main() {
	path := flag.String("file", "seed.yaml", "path to the seed file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "cossmil-asistencia-seed"))
	slog.SetDefault(logger)

	if err := run(cfg, *path); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, path string) error {
	f, err := seed.Load(path)
	if err != nil {
		return err
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.Options{
		MaxConns:       cfg.Database.MaxConns,
		AcquireTimeout: cfg.Database.AcquireTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	sum, err := seed.Apply(ctx, db, seed.Repositories{
		Areas:       postgresql.NewAreaRepository(db),
		Roles:       postgresql.NewRoleRepository(db),
		Admins:      postgresql.NewAdminRepository(db),
		Supervisors: postgresql.NewSupervisorRepository(db),
	}, password.NewHasher(cfg.App.BcryptCost), f)
	if err != nil {
		return err
	}

	slog.Info("Seed applied",
		"areas", sum.Areas,
		"roles", sum.Roles,
		"admins", sum.Admins,
		"supervisors", sum.Supervisors,
	)
	return nil
}
