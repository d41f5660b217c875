package db

import (
	"fmt"
	"video-metadata-api/config"
	"video-metadata-api/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open abre la base de datos SQLite indicada en la configuración y crea la
// tabla de videos si no existe.
func Open(cfg config.Config, log *logrus.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.DatabasePath, err)
	}

	// SQLite solo admite un escritor a la vez
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if cfg.ResetDB && !cfg.Production {
		log.Warn("Development mode with RESET_DB, dropping video table")
		if err := deleteTables(conn); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	if err := createTables(conn); err != nil {
		sqlDB.Close()
		return nil, err
	}

	log.WithField("path", cfg.DatabasePath).Info("Database ready")
	return conn, nil
}

// Close libera la conexión subyacente
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func deleteTables(conn *gorm.DB) error {
	if err := conn.Migrator().DropTable(&models.Video{}); err != nil {
		return fmt.Errorf("dropping tables: %w", err)
	}
	return nil
}

func createTables(conn *gorm.DB) error {
	if conn.Migrator().HasTable(&models.Video{}) {
		return nil
	}
	if err := conn.Migrator().CreateTable(&models.Video{}); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}
