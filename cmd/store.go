package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/database"
	"github.com/kozaktomas/face-attendance/internal/database/mariadb"
	"github.com/kozaktomas/face-attendance/internal/database/postgres"
)

// store is the combined persistence surface every command needs.
type store interface {
	database.EnrollmentStore
	database.AttendanceStore
	Migrate(ctx context.Context) error
	Close() error
}

// openStore connects to the configured database. The backend follows the
// DSN: postgres:// URLs go to PostgreSQL, everything else is treated as a
// MySQL/MariaDB DSN.
func openStore(cfg *config.Config) (store, error) {
	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}

	if strings.HasPrefix(cfg.Database.URL, "postgres://") || strings.HasPrefix(cfg.Database.URL, "postgresql://") {
		repo, err := postgres.Connect(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
		}
		return repo, nil
	}

	repo, err := mariadb.Connect(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to MariaDB: %w", err)
	}
	return repo, nil
}
