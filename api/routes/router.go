package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/universe-backend/api/controllers"
	"github.com/angelmondragon/universe-backend/api/middleware"
	"github.com/angelmondragon/universe-backend/api/responses"
	"github.com/angelmondragon/universe-backend/internal/auth"
	"github.com/angelmondragon/universe-backend/internal/content"
	"github.com/angelmondragon/universe-backend/pkg/config"
	"github.com/angelmondragon/universe-backend/pkg/docstore"
	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
	"github.com/angelmondragon/universe-backend/pkg/logger"
	"github.com/angelmondragon/universe-backend/pkg/metrics"
	"github.com/angelmondragon/universe-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers. Store and Redis
// may be nil.
type Deps struct {
	Store          docstore.Client
	Redis          *redis.Client
	AuthService    auth.Service
	ContentService content.Service
	Registry       *prometheus.Registry
	HTTPMetrics    *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Timeout(cfg.App.RequestTimeout),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Not Found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Not Found"))
	})

	// Typed nils must not leak into the interfaces below.
	var (
		limiter    middleware.RateLimiter
		redisPing  controllers.Pinger
		storePing  controllers.Pinger
		collection controllers.CollectionLister
	)
	if deps.Redis != nil {
		limiter = deps.Redis
		redisPing = deps.Redis
	}
	if deps.Store != nil {
		storePing = deps.Store
		collection = deps.Store
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginIdentifierLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupIdentifierLimit,
	)

	r.Get("/", controllers.Root(cfg))
	r.Get("/test", controllers.StoreDiagnostics(cfg, collection, logg))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storePing, redisPing))
	})

	if cfg.Metrics.Enabled && deps.Registry != nil {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.With(middleware.AuthRateLimit(signupPolicy, limiter, logg)).Post("/signup", controllers.AuthSignup(deps.AuthService, logg))
	r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))

	for _, kind := range content.Kinds() {
		endpoint := kind.Endpoint()
		r.Route("/"+endpoint, func(r chi.Router) {
			r.Get("/", controllers.ContentList(deps.ContentService, endpoint, logg))
			r.Post("/", controllers.ContentCreate(deps.ContentService, endpoint, logg))
			r.Delete("/{"+controllers.IDParam+"}", controllers.ContentDelete(deps.ContentService, endpoint, logg))
		})
	}

	// Unknown collection names answer with the dispatcher's 404.
	r.Get("/{"+controllers.EndpointParam+"}", controllers.ContentList(deps.ContentService, "", logg))
	r.Post("/{"+controllers.EndpointParam+"}", controllers.ContentCreate(deps.ContentService, "", logg))
	r.Delete("/{"+controllers.EndpointParam+"}/{"+controllers.IDParam+"}", controllers.ContentDelete(deps.ContentService, "", logg))

	return r
}
