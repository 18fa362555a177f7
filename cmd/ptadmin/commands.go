package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/auth"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/logger"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/service"
)

// commands returns every admin subcommand, printing results to out.
func commands(out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&migrateCmd{out: out},
		&userAddCmd{out: out},
		&usersCmd{out: out},
		&checkPasswordCmd{out: out},
		&snapshotCmd{out: out},
	}
}

// app holds what a subcommand needs once the database is open.
type app struct {
	cfg *config.Config
	db  *sql.DB
	log zerolog.Logger
}

// openApp loads the configuration and opens the configured database.
// When migrate is set, pending migrations are applied first.
func openApp(ctx context.Context, migrate bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	if migrate {
		if _, err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &app{
		cfg: cfg,
		db:  db,
		log: logger.NewWithWriter(logger.Config{Level: cfg.Log.Level, Pretty: true}, os.Stderr),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) userService() *service.UserService {
	return service.NewUserService(a.db, repository.NewUserRepository(a.db), auth.NewHasher(auth.DefaultParams))
}

func (a *app) performanceService() *service.PerformanceService {
	return service.NewPerformanceService(
		a.db,
		repository.NewPerformanceRepository(a.db),
		repository.NewPortfolioRepository(a.db),
		a.cfg.Snapshot.Workers,
		a.log,
	)
}

// fail reports err on stderr and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
