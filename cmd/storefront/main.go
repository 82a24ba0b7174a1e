package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartadapter "github.com/dwikikusuma/storefront/internal/cart/infra/adapter"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/storefront/internal/storage"
	"github.com/dwikikusuma/storefront/internal/web"
	"github.com/dwikikusuma/storefront/pkg/authtoken"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/metrics"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		if cfg.JWTSecret == "changeme" {
			log.Error("JWT_SECRET must be set in production")
			os.Exit(1)
		}
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	repos, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Error("db open failed", slog.Any("err", err), slog.String("driver", cfg.DBDriver))
		os.Exit(1)
	}
	defer repos.Close()

	// Catalog
	catalogSvc := catalogapp.NewService(repos.Items)

	// Accounts
	accountSvc := accountapp.NewService(repos.Users)

	// Cart
	cartSvc := cartapp.NewService(repos.Carts, cartadapter.NewCatalogServiceReader(catalogSvc))

	// Checkout (adapters)
	cartReader := checkoutadapter.NewCartServiceReader(cartSvc)
	profileReader := checkoutadapter.NewAccountServiceReader(accountSvc)
	checkoutSvc := checkoutapp.NewService(repos.Checkout, cartReader, profileReader)

	router := web.NewRouter(web.Services{
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Checkout: checkoutSvc,
		Accounts: accountSvc,
	}, web.Options{
		Tokens:       authtoken.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		CookieSecure: cfg.CookieSecure,
		Metrics:      metrics.NewServerMetrics("web"),
		Logger:       log,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr), slog.String("driver", cfg.DBDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("http server error", slog.Any("err", err))
	}
	log.Info("bye")
}
