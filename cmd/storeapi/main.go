// Command storeapi runs the store API: account registration and login with
// signed bearer tokens, and the product catalog.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/storeapi/account"
	"github.com/skillsenselab/storeapi/api"
	"github.com/skillsenselab/storeapi/auth/password"
	"github.com/skillsenselab/storeapi/auth/throttle"
	"github.com/skillsenselab/storeapi/auth/token"
	"github.com/skillsenselab/storeapi/config"
	"github.com/skillsenselab/storeapi/logger"
	"github.com/skillsenselab/storeapi/observability"
	"github.com/skillsenselab/storeapi/product"
	"github.com/skillsenselab/storeapi/server"
	"github.com/skillsenselab/storeapi/store"
	"github.com/skillsenselab/storeapi/version"
)

const serviceName = "storeapi"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		logger.Fatal("Configuration error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, serviceName)
	logger.SetGlobalLogger(log)

	log.Info("Starting service", map[string]interface{}{
		"version":     version.GetShortVersion(),
		"environment": cfg.Base.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Service failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	obs, err := observability.Init(ctx, cfg.Observability, serviceName, version.GetShortVersion(), cfg.Base.Environment)
	if err != nil {
		return err
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			log.Warn("Observability shutdown error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	var metrics *observability.AuthMetrics
	if cfg.Observability.Enabled {
		if metrics, err = observability.NewAuthMetrics(); err != nil {
			return err
		}
	}

	db, err := store.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := db.MigrateUp(); err != nil {
			return err
		}
	}

	hasher, err := password.NewFromConfig(cfg.Auth.Password)
	if err != nil {
		return err
	}
	tokens, err := token.NewService(cfg.Auth.Token)
	if err != nil {
		return err
	}
	limiter := throttle.NewLimiter(cfg.Throttle)
	defer limiter.Close()

	accounts := account.NewService(store.NewAccountStore(db), hasher, tokens, log)
	products := product.NewService(store.NewProductStore(db), log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(serviceName, db.Ping)
	srv.ServeStatic()

	api.RegisterRoutes(srv.GinEngine(), api.RouterDeps{
		Accounts: api.NewAccountHandler(accounts, metrics),
		Products: api.NewProductHandler(products),
		Verifier: tokens,
		Limiter:  limiter,
		Metrics:  metrics,
	})

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")
	return srv.Stop(context.Background())
}
