package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Open opens the sqlite file with the pure-Go driver (modernc name: "sqlite").
func Open(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return sqlDB, nil
}

// Migrate runs the embedded goose migrations.
func Migrate(sqlDB *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Gorm wraps an already-open connection for the snapshot store.
func Gorm(sqlDB *sql.DB) (*gorm.DB, error) {
	return gorm.Open(sqlitedriver.New(sqlitedriver.Config{
		Conn:       sqlDB,
		DriverName: "sqlite",
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}
