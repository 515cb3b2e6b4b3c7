package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/borealis-store/borealis-backend/api/routes"
	"github.com/borealis-store/borealis-backend/internal/auth"
	"github.com/borealis-store/borealis-backend/internal/cart"
	"github.com/borealis-store/borealis-backend/internal/checkout"
	"github.com/borealis-store/borealis-backend/internal/events"
	"github.com/borealis-store/borealis-backend/internal/notifications"
	"github.com/borealis-store/borealis-backend/internal/orders"
	"github.com/borealis-store/borealis-backend/internal/payments"
	product "github.com/borealis-store/borealis-backend/internal/products"
	"github.com/borealis-store/borealis-backend/internal/users"
	"github.com/borealis-store/borealis-backend/pkg/config"
	"github.com/borealis-store/borealis-backend/pkg/db"
	"github.com/borealis-store/borealis-backend/pkg/instance"
	"github.com/borealis-store/borealis-backend/pkg/logger"
	"github.com/borealis-store/borealis-backend/pkg/mailer"
	"github.com/borealis-store/borealis-backend/pkg/metrics"
	"github.com/borealis-store/borealis-backend/pkg/migrate"
	"github.com/borealis-store/borealis-backend/pkg/pubsub"
	"github.com/borealis-store/borealis-backend/pkg/redis"
	"github.com/borealis-store/borealis-backend/pkg/stripe"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i]())
		}
	}()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	closers = append(closers, dbClient.Close)

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := routes.Dependencies{
		Config:      cfg,
		Logger:      logg,
		DBPinger:    dbClient,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Gatherer:    registry,
	}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		closers = append(closers, redisClient.Close)
		deps.RedisPinger = redisClient
		deps.RateLimiter = redisClient
		deps.Idempotency = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, auth rate limits and idempotency disabled")
	}

	var mail mailer.Mailer = mailer.NewLogMailer(logg)
	if cfg.Sendgrid.APIKey != "" {
		sg, err := mailer.NewSendGrid(cfg.Sendgrid)
		if err != nil {
			return err
		}
		mail = sg
	} else {
		logg.Warn(ctx, "sendgrid not configured, emails will be logged only")
	}
	notifier, err := notifications.NewService(mail)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.PubSub.Enabled() {
		psClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			return err
		}
		closers = append(closers, psClient.Close)
		pub, err := events.NewPubSubPublisher(psClient, logg)
		if err != nil {
			return err
		}
		publisher = pub
	}

	conn := dbClient.DB()
	userRepo := users.NewRepository(conn)
	productRepo := product.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)

	if deps.AuthService, err = auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		Notifier:       notifier,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Frontend:       cfg.Frontend,
		Logger:         logg,
	}); err != nil {
		return err
	}
	if deps.UserService, err = users.NewService(userRepo); err != nil {
		return err
	}
	if deps.ProductService, err = product.NewService(productRepo); err != nil {
		return err
	}
	if deps.CartService, err = cart.NewService(cart.ServiceParams{Items: cartRepo, Products: productRepo, Logger: logg}); err != nil {
		return err
	}
	if deps.OrderService, err = orders.NewService(orders.NewRepository(conn), logg); err != nil {
		return err
	}
	if deps.CheckoutService, err = checkout.NewService(checkout.ServiceParams{
		DB:        dbClient,
		Users:     userRepo,
		Notifier:  notifier,
		Publisher: publisher,
		Metrics:   metrics.NewCheckoutMetrics(registry),
		Logger:    logg,
	}); err != nil {
		return err
	}

	if cfg.Stripe.APIKey != "" {
		stripeClient, err := stripe.NewClient(ctx, cfg.Stripe, logg)
		if err != nil {
			return err
		}
		if deps.PaymentService, err = payments.NewService(payments.ServiceParams{Cart: cartRepo, Stripe: stripeClient, Logger: logg}); err != nil {
			return err
		}
	} else {
		logg.Warn(ctx, "stripe not configured, payment intents disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(serverCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info(serverCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
