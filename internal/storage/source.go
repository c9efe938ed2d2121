package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"eatery_catalog/internal/domain"
	"eatery_catalog/internal/shared"
	"eatery_catalog/internal/storage/fs"
	mysqlsrc "eatery_catalog/internal/storage/mysql"
)

// Open returns the configured blob source and a func releasing what it holds.
func Open(ctx context.Context, cfg shared.Config) (domain.BlobSource, func() error, error) {
	switch cfg.CatalogSource {
	case shared.SourceDir:
		return fs.NewDirSource(cfg.CatalogDir), func() error { return nil }, nil
	case shared.SourceMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db.Ping: %w", err)
		}
		return mysqlsrc.New(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}
