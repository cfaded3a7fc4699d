package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusmart/storefront/api/controllers"
	cartcontrollers "github.com/campusmart/storefront/api/controllers/cart"
	ordercontrollers "github.com/campusmart/storefront/api/controllers/orders"
	"github.com/campusmart/storefront/api/middleware"
	"github.com/campusmart/storefront/internal/auth"
	"github.com/campusmart/storefront/internal/cart"
	"github.com/campusmart/storefront/internal/notifications"
	"github.com/campusmart/storefront/internal/orders"
	"github.com/campusmart/storefront/internal/products"
	"github.com/campusmart/storefront/internal/settings"
	"github.com/campusmart/storefront/internal/uploads"
	"github.com/campusmart/storefront/pkg/auth/session"
	"github.com/campusmart/storefront/pkg/config"
	"github.com/campusmart/storefront/pkg/enums"
	"github.com/campusmart/storefront/pkg/logger"
	"github.com/campusmart/storefront/pkg/metrics"
	pkgredis "github.com/campusmart/storefront/pkg/redis"
)

// redisStore is the Redis surface the HTTP layer needs directly.
type redisStore interface {
	pkgredis.IdempotencyStore
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
	Ping(ctx context.Context) error
}

type cartTokens interface {
	Mint(now time.Time) (token string, cartID string, err error)
	CartID(token string) (string, bool)
	Renew(token string, now time.Time) (renewed string, cartID string, ok bool)
}

// Dependencies carries everything the router wires into handlers.
// Optional pingers (DB, GCS) are skipped by readiness when nil.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    redisStore
	GCS      controllers.Pinger
	Sessions session.Checker

	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics

	Auth          auth.Service
	Register      auth.RegisterService
	Cart          cart.Service
	CartTokens    cartTokens
	Orders        orders.Service
	Products      products.Service
	Settings      settings.Service
	Notifications notifications.Service
	Uploads       uploads.Service
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
		middleware.CORS(cfg.App.AllowedOrigins()),
	)

	var limiter interface {
		FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
	}
	var idempotencyStore pkgredis.IdempotencyStore
	readiness := map[string]controllers.Pinger{}
	if deps.DB != nil {
		readiness["db"] = deps.DB
	}
	if deps.Redis != nil {
		limiter = deps.Redis
		idempotencyStore = deps.Redis
		readiness["redis"] = deps.Redis
	}
	if deps.GCS != nil {
		readiness["gcs"] = deps.GCS
	}

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

	authenticate := middleware.Auth(cfg.JWT, deps.Sessions, logg)
	idempotent := middleware.Idempotency(idempotencyStore, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg), idempotent).Post("/register", controllers.AuthRegister(deps.Register, deps.Auth, logg))
		r.With(authenticate).Post("/logout", controllers.AuthLogout(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.Products, logg))
		r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
	})

	r.Route("/api/v1/settings", func(r chi.Router) {
		r.Get("/", controllers.GetSettings(deps.Settings, logg))
		r.Get("/whatsapp", controllers.GetWhatsapp(deps.Settings, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.CartToken(deps.CartTokens, logg))
		r.Get("/", cartcontrollers.Fetch(deps.Cart, logg))
		r.Delete("/", cartcontrollers.Clear(deps.Cart, logg))
		r.Post("/items", cartcontrollers.AddItem(deps.Cart, logg))
		r.Post("/items/{productId}/increase", cartcontrollers.Increase(deps.Cart, logg))
		r.Post("/items/{productId}/decrease", cartcontrollers.Decrease(deps.Cart, logg))
		r.Delete("/items/{productId}", cartcontrollers.Remove(deps.Cart, logg))
		r.Put("/checkout-reference", cartcontrollers.SetCheckoutReference(deps.Cart, logg))
		r.Delete("/checkout-reference", cartcontrollers.ClearCheckoutReference(deps.Cart, logg))
	})

	var cartIDs func(token string) (string, bool)
	if deps.CartTokens != nil {
		cartIDs = deps.CartTokens.CartID
	}

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(authenticate, idempotent)
		r.Post("/", ordercontrollers.Create(deps.Orders, deps.Cart, cartIDs, logg))
		r.Get("/", ordercontrollers.List(deps.Orders, logg))
		r.Get("/{orderId}", ordercontrollers.Detail(deps.Orders, logg))
		r.Post("/{orderId}/payment-claim", ordercontrollers.ClaimPayment(deps.Orders, logg))
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(authenticate, middleware.RequireRole(enums.RoleAdmin, logg), idempotent)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordercontrollers.AdminList(deps.Orders, logg))
			r.Post("/batch/dispatch", ordercontrollers.BatchDispatch(deps.Orders, logg))
			r.Post("/batch/deliver", ordercontrollers.BatchDeliver(deps.Orders, logg))
			r.Put("/{orderId}", ordercontrollers.AdminUpdate(deps.Orders, logg))
			r.Delete("/{orderId}", ordercontrollers.Delete(deps.Orders, logg))
			r.Post("/{orderId}/confirm-payment", ordercontrollers.ConfirmPayment(deps.Orders, logg))
			r.Post("/{orderId}/dispatch", ordercontrollers.Dispatch(deps.Orders, logg))
			r.Post("/{orderId}/deliver", ordercontrollers.Deliver(deps.Orders, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(deps.Products, logg))
			r.Patch("/{productId}", controllers.AdminPatchProduct(deps.Products, logg))
			r.Put("/{productId}/stock", controllers.AdminRestockProduct(deps.Products, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(deps.Products, logg))
		})

		r.Put("/settings", controllers.AdminUpdateSettings(deps.Settings, logg))

		r.Route("/uploads", func(r chi.Router) {
			r.Post("/", controllers.AdminUpload(deps.Uploads, cfg.Media.MaxUploadBytes(), logg))
			r.Delete("/", controllers.AdminDeleteUpload(deps.Uploads, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.Notifications, logg))
			r.Get("/unread-count", controllers.UnreadNotificationCount(deps.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(deps.Notifications, logg))
		})
	})

	return r
}
