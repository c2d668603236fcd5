package main

import (
	"context"
	"log"

	"storefront-gateway/internal/core/config"
	"storefront-gateway/internal/core/httpclient"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/server"
	"storefront-gateway/internal/core/storage"
	addressadapter "storefront-gateway/internal/features/addresses/adapters"
	addresshandler "storefront-gateway/internal/features/addresses/handler"
	addressservice "storefront-gateway/internal/features/addresses/service"
	authadapter "storefront-gateway/internal/features/auth/adapters"
	authhandler "storefront-gateway/internal/features/auth/handler"
	authservice "storefront-gateway/internal/features/auth/service"
	cartadapter "storefront-gateway/internal/features/cart/adapters"
	carthandler "storefront-gateway/internal/features/cart/handler"
	cartservice "storefront-gateway/internal/features/cart/service"
	catalogadapter "storefront-gateway/internal/features/catalog/adapters"
	cataloghandler "storefront-gateway/internal/features/catalog/handler"
	catalogservice "storefront-gateway/internal/features/catalog/service"
	orderadapter "storefront-gateway/internal/features/orders/adapters"
	orderhandler "storefront-gateway/internal/features/orders/handler"
	orderservice "storefront-gateway/internal/features/orders/service"
	paymentadapter "storefront-gateway/internal/features/payments/adapters"
	paymenthandler "storefront-gateway/internal/features/payments/handler"
	schedulehandler "storefront-gateway/internal/features/schedule/handler"

	"go.uber.org/zap"
)

// @title Storefront Gateway API
// @version 1.0
// @description Gateway for the milk-subscription storefront: delivery scheduling, order lifecycle, catalog, cart, addresses and auth.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize storage and run Health Check
	store, err := storage.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer store.Close()
	if err := store.Ping(context.Background()); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Auth runs on a plain client: its endpoints must not go through the
	// bearer transport they feed.
	authProvider := authadapter.NewBackendAdapter(cfg.Storefront.BaseURL, httpclient.NewClient(cfg.Storefront.Timeout()))
	tokenStore := authadapter.NewStorageTokenStore(store)
	authSvc := authservice.NewAuthService(authProvider, tokenStore)
	authHdl := authhandler.NewAuthHandler(authSvc)

	// Every other backend call carries the per-user bearer token.
	client := httpclient.NewAuthedClient(cfg.Storefront.Timeout(), authSvc)

	// Catalog
	catalogProvider := catalogadapter.NewBackendAdapter(cfg.Storefront.BaseURL, client)
	historyRepo := catalogadapter.NewHistoryRepository(store)
	catalogSvc := catalogservice.NewCatalogService(catalogProvider, historyRepo)
	catalogHdl := cataloghandler.NewCatalogHandler(catalogSvc)

	// Orders & Payments
	orderProvider := orderadapter.NewBackendAdapter(cfg.Storefront.BaseURL, client)
	paymentProvider := paymentadapter.NewBackendAdapter(cfg.Storefront.BaseURL, client)
	paymentHdl := paymenthandler.NewPaymentHandler(paymentProvider)
	orderSvc := orderservice.NewOrderService(orderProvider, catalogSvc, paymentProvider)
	orderHdl := orderhandler.NewOrderHandler(orderSvc)

	// Cart
	cartSvc := cartservice.NewCartService(cartadapter.NewStorageRepository(store))
	cartHdl := carthandler.NewCartHandler(cartSvc)

	// Addresses
	addressSvc := addressservice.NewAddressService(addressadapter.NewStorageRepository(store))
	addressHdl := addresshandler.NewAddressHandler(addressSvc)

	// Delivery schedule
	scheduleHdl := schedulehandler.NewScheduleHandler()

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/delivery/next-date", scheduleHdl.NextDate)
	srv.App.Get("/delivery/validate", scheduleHdl.Validate)

	srv.App.Get("/orders", orderHdl.List)
	srv.App.Post("/orders", orderHdl.Checkout)
	srv.App.Get("/orders/:id", orderHdl.Get)
	srv.App.Post("/orders/:id/cancel", orderHdl.Cancel)
	srv.App.Post("/orders/:id/repurchase", orderHdl.Repurchase)
	srv.App.Post("/orders/:id/tracking/:trackingId/reschedule", orderHdl.Reschedule)
	srv.App.Get("/orders/:id/progress", orderHdl.Progress)

	srv.App.Get("/payments/vnpay_return", paymentHdl.VNPayReturn)

	srv.App.Get("/packages", catalogHdl.ListPackages)
	srv.App.Get("/packages/:id", catalogHdl.GetPackage)
	srv.App.Get("/brands/:id/packages", catalogHdl.ListBrandPackages)
	srv.App.Get("/products/search", catalogHdl.Search)
	srv.App.Get("/search/history", catalogHdl.History)
	srv.App.Delete("/search/history", catalogHdl.ClearHistory)

	srv.App.Get("/cart", cartHdl.Get)
	srv.App.Delete("/cart", cartHdl.Clear)
	srv.App.Post("/cart/items", cartHdl.AddItem)
	srv.App.Put("/cart/items/:id", cartHdl.UpdateQuantity)
	srv.App.Delete("/cart/items/:id", cartHdl.RemoveItem)

	// The static "selected" route must register before the ":index" routes.
	srv.App.Get("/addresses/selected", addressHdl.Selected)
	srv.App.Get("/addresses", addressHdl.List)
	srv.App.Post("/addresses", addressHdl.Add)
	srv.App.Delete("/addresses/:index", addressHdl.Delete)
	srv.App.Put("/addresses/:index/select", addressHdl.Select)

	srv.App.Post("/auth/login", authHdl.Login)
	srv.App.Post("/auth/logout", authHdl.Logout)
	srv.App.Get("/auth/me", authHdl.Me)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
