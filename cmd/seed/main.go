package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/storage"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

var demoItems = []domain.Item{
	{Slug: "hiking-boots", Name: "Hiking Boots", Description: "Waterproof leather boots with a grippy sole.", Price: decimal.RequireFromString("79.90"), Stock: 12},
	{Slug: "rain-jacket", Name: "Rain Jacket", Description: "Packable shell that keeps the weather out.", Price: decimal.RequireFromString("54.50"), Stock: 8},
	{Slug: "wool-socks", Name: "Wool Socks", Description: "Merino blend, sold as a pair.", Price: decimal.RequireFromString("5.00"), Stock: 100},
	{Slug: "cotton-shirt", Name: "Cotton Shirt", Description: "Plain crew-neck tee.", Price: decimal.RequireFromString("19.99"), Stock: 40},
	{Slug: "trail-backpack", Name: "Trail Backpack", Description: "28 litre daypack with a hip belt.", Price: decimal.RequireFromString("64.00"), Stock: 5},
	{Slug: "water-bottle", Name: "Water Bottle", Description: "Insulated steel, 750 ml.", Price: decimal.RequireFromString("18.25"), Stock: 0},
}

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "seed", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Error("db open failed", slog.Any("err", err), slog.String("driver", cfg.DBDriver))
		os.Exit(1)
	}
	defer repos.Close()

	created, err := seed(ctx, catalogapp.NewService(repos.Items), log)
	if err != nil {
		log.Error("seed failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("seed done", slog.Int("created", created), slog.Int("total", len(demoItems)))
}

// seed inserts the demo items, skipping slugs that already exist.
func seed(ctx context.Context, catalog *catalogapp.Service, log *slog.Logger) (int, error) {
	created := 0
	for _, item := range demoItems {
		_, err := catalog.CreateItem(ctx, item)
		if errors.Is(err, catalogapp.ErrDuplicateSlug) {
			log.Debug("item exists", slog.String("slug", item.Slug))
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
