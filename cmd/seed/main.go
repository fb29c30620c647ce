package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	catalogapp "github.com/dwikikusuma/phone-shop/internal/catalog/app"
	catalogstore "github.com/dwikikusuma/phone-shop/internal/catalog/infra/sqlstore"
	"github.com/dwikikusuma/phone-shop/internal/seed"
	userapp "github.com/dwikikusuma/phone-shop/internal/user/app"
	userstore "github.com/dwikikusuma/phone-shop/internal/user/infra/sqlstore"
	"github.com/dwikikusuma/phone-shop/pkg/config"
	"github.com/dwikikusuma/phone-shop/pkg/logger"
	"github.com/dwikikusuma/phone-shop/pkg/shutdown"
	"github.com/dwikikusuma/phone-shop/pkg/sqldb"
)

func main() {
	clearFirst := flag.Bool("clear", false, "clear products and users before seeding")
	listOnly := flag.Bool("list", false, "only list current products")
	flag.Parse()

	cfg, err := config.LoadSeed()
	if err != nil {
		logger.New(logger.Options{Service: "seed"}).Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	log := logger.New(logger.Options{Service: "seed", Env: cfg.AppEnv, Level: cfg.LogLevel, Writer: os.Stderr})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := run(ctx, cfg, log, *clearFirst, *listOnly); err != nil {
		log.Error("seeding failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.SeedConfig, log *slog.Logger, clearFirst, listOnly bool) error {
	db, err := sqldb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	catalogSvc := catalogapp.NewService(catalogstore.NewProductRepo(db))
	userSvc := userapp.NewService(userstore.NewUserRepo(db), userapp.BcryptHasher{})
	seeder := seed.New(db, catalogSvc, userSvc, log)

	if listOnly {
		return seeder.ListProducts(ctx, os.Stdout)
	}

	banner := strings.Repeat("=", 50)
	fmt.Println(banner)
	fmt.Println("Phone E-commerce Database Seeder")
	fmt.Println(banner)

	if clearFirst {
		if err := seeder.Clear(ctx); err != nil {
			return err
		}
	}

	res, err := seeder.Seed(ctx)
	if err != nil {
		return err
	}
	log.Info("seed finished", slog.Int("products", res.Products), slog.Int("users", res.Users))

	if err := seeder.ListProducts(ctx, os.Stdout); err != nil {
		return err
	}
	fmt.Println(banner)
	fmt.Println("Database seeding completed successfully!")
	fmt.Println(banner)
	return nil
}
