package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"time"

	"orders/internal/adapters/out/postgres/migrations"
	"orders/internal/pkg/logger"

	// registers the "postgres" database/sql driver used by goose
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// PoolOptions tunes the connection pool of Open. Zero values keep the driver defaults.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects GORM to PostgreSQL. Errors are translated so duplicate keys
// surface as gorm.ErrDuplicatedKey.
func Open(ctx context.Context, dsn string, pool PoolOptions, logg *logger.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging db: %w", err)
	}

	logg.Info(ctx, "database connection established")
	return db, nil
}

// Migrate opens a short-lived lib/pq connection to url and runs a goose command.
func Migrate(ctx context.Context, url string, command string, args ...string) error {
	sqlDB, err := sql.Open("postgres", url)
	if err != nil {
		return fmt.Errorf("opening migration connection: %w", err)
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	return migrations.Run(ctx, sqlDB, command, args...)
}
