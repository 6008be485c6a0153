// Package mariadb implements the persistent store on MySQL/MariaDB.
package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/kozaktomas/face-attendance/internal/config"
)

// Repository manages a MariaDB connection pool and implements the
// enrollment and attendance store interfaces.
type Repository struct {
	db *sql.DB
}

// Connect opens a MariaDB connection pool and verifies it with a ping.
// The DSN must include parseTime=true so TIMESTAMP columns scan into time.Time.
func Connect(cfg *config.DatabaseConfig) (*Repository, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, errors.New("MariaDB DSN is required")
	}

	db, err := sql.Open("mysql", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open MariaDB: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MariaDB: %w", err)
	}

	return &Repository{db: db}, nil
}

// DB returns the underlying sql.DB for direct access.
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the connection pool.
func (r *Repository) Close() error {
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			return fmt.Errorf("closing database connection: %w", err)
		}
	}
	return nil
}
