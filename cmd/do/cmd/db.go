package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/galeri/internal/config"
	"github.com/templui/galeri/internal/db"
	"github.com/templui/galeri/internal/logger"
)

// openDB connects to the configured database without touching the schema.
func openDB() (*config.Config, *sqlx.DB, error) {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "", cfg.AppEnv)

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, database, nil
}
