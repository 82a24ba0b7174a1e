package sqlite

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Config struct {
	// DSN is a file path or a full sqlite URI.
	DSN string
	// LogSQL routes gorm's statement log through slog at debug level.
	LogSQL bool
}

// Open connects to sqlite with foreign keys on and a single writer
// connection, which keeps sqlite from reporting "database is locked" under
// concurrent requests.
func Open(cfg Config) (*gorm.DB, error) {
	level := gormlogger.Silent
	if cfg.LogSQL {
		level = gormlogger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn(cfg.DSN)), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(slogWriter{}, gormlogger.Config{
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate runs AutoMigrate over the given table models in order.
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func dsn(path string) string {
	if path == "" {
		path = "storefront.db"
	}
	if len(path) >= 5 && path[:5] == "file:" {
		return path
	}
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}

type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}
