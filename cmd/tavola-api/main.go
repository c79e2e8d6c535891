// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tavola/internal/config"
	httptransport "tavola/internal/http"
	"tavola/internal/infra"
	"tavola/internal/maps"
	"tavola/internal/modules/cart"
	"tavola/internal/modules/delivery"
	"tavola/internal/modules/order"
	"tavola/internal/modules/store"
	"tavola/internal/payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.IsProduction())
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Maps.APIKey == "" {
		logger.Fatal("TAVOLA_MAPS_API_KEY is required")
	}
	if cfg.Stripe.SecretKey == "" {
		logger.Fatal("TAVOLA_STRIPE_SECRET_KEY is required")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("postgres init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password)

	geocoder, err := maps.NewGeocodingService(cfg.Maps.APIKey, cfg.Maps.Region)
	if err != nil {
		logger.Fatal("maps init", zap.Error(err))
	}

	payments := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.Stripe.Currency)

	storeSvc := store.NewService(store.NewRepo(dbPool), redisClient)
	deliverySvc := delivery.NewService(geocoder, storeSvc)

	cartStore := cart.NewStore(redisClient, time.Duration(cfg.Cart.TTLHours)*time.Hour)
	cartSvc := cart.NewService(cartStore)

	orderStore := order.NewStore(dbPool)
	orderSvc := order.NewService(orderStore, cartSvc, deliverySvc, storeSvc, payments)

	router := httptransport.NewRouter(httptransport.ServerDeps{
		Stores:   storeSvc,
		Delivery: deliverySvc,
		Carts:    cartSvc,
		Orders:   orderSvc,
		Logger:   logger,
		AdminKey: cfg.Admin.APIKey,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server", zap.Error(err))
	}
}
