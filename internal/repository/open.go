// Package repository selects the vendor store backend from configuration.
package repository

import (
	"fmt"
	"log"

	"upkeep/internal/config"
	"upkeep/internal/port"
	"upkeep/internal/repository/postgres"
	"upkeep/internal/repository/sqlite"
)

// OpenVendorStore opens the configured vendor store. The returned close
// function releases the underlying connection pool.
func OpenVendorStore(cfg *config.Config) (port.VendorRepository, func() error, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("repository.OpenVendorStore: using sqlite store %s", cfg.Store.SQLitePath)
		return sqlite.NewVendorRepo(db), db.Close, nil
	case "postgres", "":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("repository.OpenVendorStore: using postgres store %s:%d/%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
		return postgres.NewVendorRepo(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
