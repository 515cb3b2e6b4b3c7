package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/borealis-store/borealis-backend/api/controllers"
	"github.com/borealis-store/borealis-backend/api/middleware"
	"github.com/borealis-store/borealis-backend/internal/auth"
	"github.com/borealis-store/borealis-backend/internal/cart"
	"github.com/borealis-store/borealis-backend/internal/checkout"
	"github.com/borealis-store/borealis-backend/internal/orders"
	"github.com/borealis-store/borealis-backend/internal/payments"
	product "github.com/borealis-store/borealis-backend/internal/products"
	"github.com/borealis-store/borealis-backend/internal/users"
	"github.com/borealis-store/borealis-backend/pkg/config"
	"github.com/borealis-store/borealis-backend/pkg/logger"
	"github.com/borealis-store/borealis-backend/pkg/metrics"
	pkgredis "github.com/borealis-store/borealis-backend/pkg/redis"
)

// Dependencies carries everything the HTTP surface needs. Nil optional
// clients disable the features built on them.
type Dependencies struct {
	Config *config.Config
	Logger *logger.Logger

	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger
	RateLimiter pkgredis.RateLimiter
	Idempotency pkgredis.IdempotencyStore

	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	AuthService     auth.Service
	UserService     users.Service
	ProductService  product.Service
	CartService     cart.Service
	OrderService    orders.Service
	CheckoutService checkout.Service
	PaymentService  payments.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	forgotPolicy := middleware.NewAuthRateLimitPolicy(
		"forgot_password",
		cfg.AuthRateLimit.ForgotWindow,
		cfg.AuthRateLimit.ForgotIPLimit,
		cfg.AuthRateLimit.ForgotEmailLimit,
	)

	pingers := map[string]controllers.Pinger{"database": deps.DBPinger}
	if deps.RedisPinger != nil {
		pingers["redis"] = deps.RedisPinger
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RateLimiter, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimiter, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(forgotPolicy, deps.RateLimiter, logg)).Post("/forgot-password", controllers.AuthForgotPassword(deps.AuthService, logg))
		r.Post("/reset-password/{token}", controllers.AuthResetPassword(deps.AuthService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ProductsList(deps.ProductService, logg))
		r.Get("/products/search", controllers.ProductsSearch(deps.ProductService, logg))
		r.Get("/products/{id}", controllers.ProductGet(deps.ProductService, logg))
		r.Get("/categories", controllers.ProductCategories(deps.ProductService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/profile", controllers.Profile(deps.UserService, logg))

			r.Get("/orders", controllers.OrdersList(deps.OrderService, logg))
			r.With(middleware.Idempotency(deps.Idempotency, middleware.DefaultIdempotencyTTL, logg)).
				Post("/orders", controllers.OrderPlace(deps.CheckoutService, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartList(deps.CartService, logg))
				r.Post("/", controllers.CartAdd(deps.CartService, logg))
				r.Delete("/", controllers.CartClear(deps.CartService, logg))
				r.Post("/merge", controllers.CartMerge(deps.CartService, logg))
				r.Delete("/{id}", controllers.CartDecrement(deps.CartService, logg))
				r.Put("/{id}/increment", controllers.CartIncrement(deps.CartService, logg))
			})

			r.Post("/create-payment-intent", controllers.CreatePaymentIntent(deps.PaymentService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))

				r.Post("/products", controllers.AdminCreateProduct(deps.ProductService, logg))
				r.Put("/products/{id}", controllers.AdminUpdateProduct(deps.ProductService, logg))
				r.Delete("/products/{id}", controllers.AdminDeleteProduct(deps.ProductService, logg))

				r.Get("/admin/orders", controllers.AdminOrdersList(deps.OrderService, logg))
				r.Get("/admin/users", controllers.AdminUsersList(deps.UserService, logg))
				r.Put("/admin/orders/{id}", controllers.AdminUpdateOrder(deps.OrderService, logg))
			})
		})
	})

	return r
}
