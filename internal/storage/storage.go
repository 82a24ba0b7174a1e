// Package storage opens the configured database and builds every context's
// store on top of it.
package storage

import (
	"context"
	"fmt"
	"time"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	accountpg "github.com/dwikikusuma/storefront/internal/account/infra/postgres"
	accountsqlite "github.com/dwikikusuma/storefront/internal/account/infra/sqlite"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"
	cartsqlite "github.com/dwikikusuma/storefront/internal/cart/infra/sqlite"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	catalogsqlite "github.com/dwikikusuma/storefront/internal/catalog/infra/sqlite"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutpg "github.com/dwikikusuma/storefront/internal/checkout/infra/postgres"
	checkoutsqlite "github.com/dwikikusuma/storefront/internal/checkout/infra/sqlite"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/sqlite"
)

type Repos struct {
	Items    catalogapp.ItemRepo
	Carts    cartapp.CartRepo
	Users    accountapp.UserRepo
	Checkout checkoutapp.Store

	close func() error
}

func (r *Repos) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Open connects to the database named by cfg.DBDriver and brings its schema
// up to date.
func Open(ctx context.Context, cfg config.Config) (*Repos, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	case config.DriverSQLite:
		return openSQLite(cfg)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (*Repos, error) {
	db, err := postgres.Open(ctx, postgres.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repos{
		Items:    catalogpg.NewItemRepo(db),
		Carts:    cartpg.NewCartRepo(db),
		Users:    accountpg.NewUserRepo(db),
		Checkout: checkoutpg.NewStore(db),
		close:    db.Close,
	}, nil
}

func openSQLite(cfg config.Config) (*Repos, error) {
	db, err := sqlite.Open(sqlite.Config{
		DSN:    cfg.SQLitePath,
		LogSQL: cfg.LogLevel == "debug",
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}

	for _, migrate := range []func() error{
		func() error { return catalogsqlite.Migrate(db) },
		func() error { return accountsqlite.Migrate(db) },
		func() error { return cartsqlite.Migrate(db) },
	} {
		if err := migrate(); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	return &Repos{
		Items:    catalogsqlite.NewItemRepo(db),
		Carts:    cartsqlite.NewCartRepo(db),
		Users:    accountsqlite.NewUserRepo(db),
		Checkout: checkoutsqlite.NewStore(db),
		close:    sqlDB.Close,
	}, nil
}
