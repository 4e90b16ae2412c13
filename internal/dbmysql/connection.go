package dbmysql

import (
	"fmt"
	"log/slog"
	"time"

	"prestevent/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMySQL returns a GORM DB instance connected to MySQL
func NewMySQL(cnf *config.Config, lg *slog.Logger) (*gorm.DB, func(), error) {
	dsn := cnf.DSN()
	if cnf.Database.DatabaseName == "" {
		return nil, nil, fmt.Errorf("MYSQL_DATABASE is not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormLogger(cnf.Logging.Level, lg),
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cannot connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("sql.DB error: %w", err)
	}
	sqlDB.SetMaxOpenConns(cnf.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cnf.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cnf.Database.ConnMaxLifetime)

	lg.Info("✅ Connected to MySQL", "host", cnf.Database.Host, "database", cnf.Database.DatabaseName)

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			lg.Error("closing MySQL pool", "error", err)
		}
	}
	return db, cleanup, nil
}

// Migrate creates or updates every table owned by the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Profile{}, &Conversation{}, &Message{})
}

// gormLogger routes GORM output through the application logger at warn level.
func gormLogger(level string, lg *slog.Logger) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "debug":
		lvl = logger.Info
	case "error":
		lvl = logger.Error
	}
	return logger.New(slog.NewLogLogger(lg.Handler(), slog.LevelWarn), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}
