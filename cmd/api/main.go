package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/db"
	"storefront/internal/infra/payments"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logger"
	"storefront/internal/middleware"
	"storefront/internal/server"
	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	//.envは無くてもOK（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg.PostgresDSN())
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	productRepo := infraRepo.NewProductGormRepository(gormDB)
	if cfg.SeedCatalog {
		n, err := db.SeedCatalog(ctx, productRepo)
		if err != nil {
			return err
		}
		log.Info("catalog seeded", zap.Int("products", n))
	}

	//Redis（カートのスナップショット）
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		//メモリ上のカートだけで動ける
		log.Warn("redis unavailable, carts will not survive restarts", zap.Error(err))
	}
	snapshots := cache.NewRedisCartRepository(rdb, cfg.SessionTTL)

	//セッションごとのカート
	policy := cart.Policy{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		FlatShippingFee:       cfg.ShippingFlatFee,
		TaxRate:               cfg.TaxRate,
	}
	sessions := session.NewManager(snapshots, policy, log)
	go sessions.RunSweeper(ctx, cfg.CartIdle/2, cfg.CartIdle, cfg.SessionTTL)

	issuer := session.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)
	cookieOpts := middleware.CookieOptions{
		Secure: cfg.CookieSecure,
		Domain: cfg.APIDomain,
	}
	sessionMW := middleware.SessionJWT(issuer, cookieOpts)

	//決済
	gateway := payments.NewClient(payments.Config{
		BaseURL: cfg.PaymentsBaseURL,
		APIKey:  cfg.PaymentsAPIKey,
		Timeout: cfg.PaymentsTimeout,
	}, nil)
	appURL := strings.TrimRight(cfg.AppURL, "/")

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(sessions, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(sessions, productRepo, gateway, usecase.CheckoutURLs{
		SuccessURL: appURL + "/payments/success",
		CancelURL:  appURL + "/cart",
	}, log)

	//Handler生成
	e := server.New(log)
	server.RegisterRoutes(e, server.Handlers{
		Product:  handler.NewProductHandler(productUC),
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
		Session:  handler.NewSessionHandler(cartUC, cookieOpts),
	}, sessionMW)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}
	return server.Start(ctx, e, addr, log)
}
