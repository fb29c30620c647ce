package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	cartapp "github.com/dwikikusuma/phone-shop/internal/cart/app"
	cartadapter "github.com/dwikikusuma/phone-shop/internal/cart/infra/adapter"
	cartrest "github.com/dwikikusuma/phone-shop/internal/cart/rest"

	catalogapp "github.com/dwikikusuma/phone-shop/internal/catalog/app"
	catalogstore "github.com/dwikikusuma/phone-shop/internal/catalog/infra/sqlstore"
	catalogrest "github.com/dwikikusuma/phone-shop/internal/catalog/rest"

	chatapp "github.com/dwikikusuma/phone-shop/internal/chatbot/app"
	checkoutapp "github.com/dwikikusuma/phone-shop/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/phone-shop/internal/checkout/infra/adapter"
	checkoutrest "github.com/dwikikusuma/phone-shop/internal/checkout/rest"
	chatdomain "github.com/dwikikusuma/phone-shop/internal/chatbot/domain"
	chatrest "github.com/dwikikusuma/phone-shop/internal/chatbot/rest"

	orderapp "github.com/dwikikusuma/phone-shop/internal/order/app"
	orderadapter "github.com/dwikikusuma/phone-shop/internal/order/infra/adapter"
	orderstore "github.com/dwikikusuma/phone-shop/internal/order/infra/sqlstore"
	orderrest "github.com/dwikikusuma/phone-shop/internal/order/rest"

	userapp "github.com/dwikikusuma/phone-shop/internal/user/app"
	userstore "github.com/dwikikusuma/phone-shop/internal/user/infra/sqlstore"
	userrest "github.com/dwikikusuma/phone-shop/internal/user/rest"

	"github.com/dwikikusuma/phone-shop/internal/httpapi"
	"github.com/dwikikusuma/phone-shop/internal/platform/grpcserver"
	"github.com/dwikikusuma/phone-shop/internal/seed"
	"github.com/dwikikusuma/phone-shop/internal/session"
	"github.com/dwikikusuma/phone-shop/pkg/config"
	"github.com/dwikikusuma/phone-shop/pkg/logger"
	"github.com/dwikikusuma/phone-shop/pkg/shutdown"
	"github.com/dwikikusuma/phone-shop/pkg/sqldb"
	"github.com/dwikikusuma/phone-shop/pkg/telemetry"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName     = "phone-shop"
	shutdownTimeout = 10 * time.Second
	sweepEvery      = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{Service: "api"}).Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	log := logger.New(logger.Options{Service: "api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("api stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	otelShutdown, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := otelShutdown(flushCtx); err != nil {
			log.Warn("telemetry shutdown", slog.Any("err", err))
		}
	}()

	db, err := sqldb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer db.Close()
	log.Info("database ready", slog.String("dialect", db.Dialect().String()))

	// Catalog
	catalogSvc := catalogapp.NewService(catalogstore.NewProductRepo(db))

	// Users
	userSvc := userapp.NewService(userstore.NewUserRepo(db), userapp.BcryptHasher{})

	// Orders (adapters)
	catalogReader := orderadapter.NewCatalogServiceReader(catalogSvc)
	userReader := orderadapter.NewUserServiceReader(userSvc)
	orderSvc := orderapp.NewService(orderstore.NewOrderRepo(db), catalogReader, userReader, 10)

	// Cart
	cartSvc := cartapp.NewService(cartadapter.NewCatalogPricer(catalogSvc), cfg.SessionTTL)

	// Checkout (adapters)
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceReader(cartSvc),
		checkoutadapter.NewCatalogServiceReader(catalogSvc),
		checkoutadapter.NewOrderServicePlacer(orderSvc),
		10,
	)

	// Chatbot
	responder, err := chatdomain.DefaultResponder()
	if err != nil {
		return err
	}
	chatSvc := chatapp.NewService(responder, cfg.AIModel, cfg.SessionTTL)
	chatLimiter := chatrest.NewLimiter(cfg.ChatRatePerSec, cfg.ChatBurst)

	if cfg.SeedOnStart {
		res, err := seed.New(db, catalogSvc, userSvc, log).Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info("seed finished", slog.Int("products", res.Products), slog.Int("users", res.Users))
	}

	sessions, err := session.NewManager(session.Options{
		Secret: cfg.SecretKey,
		TTL:    cfg.SessionTTL,
		Secure: cfg.AppEnv != "dev",
		Log:    log,
	})
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(httpapi.Options{
		ServiceName: serviceName,
		Log:         log,
		Sessions:    sessions,
		Resources: []httpapi.Registrar{
			catalogrest.NewHandler(catalogSvc, log),
			userrest.NewHandler(userSvc, log),
			orderrest.NewHandler(orderSvc, log),
		},
		SessionScoped: []httpapi.Registrar{
			cartrest.NewHandler(cartSvc, log),
			checkoutrest.NewHandler(checkoutSvc, log),
			chatrest.NewHandler(chatSvc, chatLimiter, log),
		},
	})

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcSrv, err := grpcserver.New(fmt.Sprintf(":%d", cfg.GRPCPort), log)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error { return grpcSrv.Serve(gctx) })
	g.Go(func() error { return cartSvc.Run(gctx, sweepEvery) })
	g.Go(func() error { return chatSvc.Run(gctx, sweepEvery) })
	g.Go(func() error { return chatLimiter.Run(gctx, sweepEvery, 10*time.Minute) })

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		grpcSrv.MarkNotServing()
		graceful := shutdown.Graceful(shutdownTimeout,
			func(ctx context.Context) {
				if err := server.Shutdown(ctx); err != nil {
					log.Error("http shutdown error", slog.Any("err", err))
				}
			},
			func() {
				log.Warn("graceful stop timeout, forcing stop")
				_ = server.Close()
				grpcSrv.Stop()
			},
		)
		if !graceful {
			return errors.New("shutdown timed out")
		}
		return nil
	})

	grpcSrv.MarkServing()
	return g.Wait()
}
