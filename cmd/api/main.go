package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/brewlinehq/storefront-backend/api/routes"
	cartsvc "github.com/brewlinehq/storefront-backend/internal/cart"
	"github.com/brewlinehq/storefront-backend/internal/catalog"
	checkoutsvc "github.com/brewlinehq/storefront-backend/internal/checkout"
	ordersvc "github.com/brewlinehq/storefront-backend/internal/orders"
	"github.com/brewlinehq/storefront-backend/pkg/config"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
	"github.com/brewlinehq/storefront-backend/pkg/metrics"
	"github.com/brewlinehq/storefront-backend/pkg/redis"
	"github.com/brewlinehq/storefront-backend/pkg/sheets"
	"github.com/brewlinehq/storefront-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	sheetsClient, err := sheets.NewClient(ctx, cfg.Sheets, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap sheets", err)
		os.Exit(1)
	}

	stripeClient, err := stripe.NewClient(ctx, cfg.Stripe, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(sheetsClient, cfg.Catalog.Range, cfg.Catalog.CacheTTL, logg)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(redisClient, cfg.Cart.TTL, logg)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	draftRepo, err := ordersvc.NewDraftRepo(redisClient, cfg.Cart.TTL)
	if err != nil {
		logg.Error(ctx, "failed to create draft repository", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(sheetsClient, cfg.Sheets.OrdersRange, logg)
	if err != nil {
		logg.Error(ctx, "failed to create order service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartService, draftRepo, orderService, stripeClient, logg)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			Metrics:    httpMetrics,
			StorePing:  redisClient,
			LedgerPing: sheetsClient,
			Catalog:    catalogService,
			Cart:       cartService,
			Checkout:   checkoutService,
			Orders:     orderService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront api stopped unexpectedly", err)
		os.Exit(1)
	}
}
