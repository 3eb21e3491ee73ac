package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/craftel-io/backend-craftel/internal/auth"
	"github.com/craftel-io/backend-craftel/internal/cart"
	"github.com/craftel-io/backend-craftel/internal/catalog"
	"github.com/craftel-io/backend-craftel/internal/common"
	"github.com/craftel-io/backend-craftel/internal/config"
	"github.com/craftel-io/backend-craftel/internal/costing"
	"github.com/craftel-io/backend-craftel/internal/coupon"
	"github.com/craftel-io/backend-craftel/internal/db"
	"github.com/craftel-io/backend-craftel/internal/earnings"
	"github.com/craftel-io/backend-craftel/internal/health"
	"github.com/craftel-io/backend-craftel/internal/obs"
	"github.com/craftel-io/backend-craftel/internal/payout"
	"github.com/craftel-io/backend-craftel/internal/pricing"
	"github.com/craftel-io/backend-craftel/internal/queue"
	"github.com/craftel-io/backend-craftel/internal/ratelimit"
	"github.com/craftel-io/backend-craftel/internal/resilience"
	"github.com/craftel-io/backend-craftel/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "craftel")
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := cfg.TracingEnabled
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "craftel-api",
			Endpoint:      cfg.TracingEndpoint,
			Exporter:      "otlp",
			SamplingRatio: cfg.TracingSampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "craftel-api"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis metrics")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	verifier, err := auth.NewVerifier([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTClockSkew)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise token verifier")
	}
	authMiddleware := auth.Middleware{Verifier: verifier}

	catalogSvc := &catalog.Service{
		Repo:  catalog.Repo{Pool: pool},
		Cache: catalog.NewCache(redisClient, cfg.CatalogRefTTL),
	}
	catalogHandler := &catalog.Handler{Svc: catalogSvc}

	couponBreaker := resilience.NewBreaker(10, 0.5, cfg.CouponBreakerWindow).
		WithTarget("coupon-service").
		WithLogger(logger)
	couponClient := &coupon.Client{
		BaseURL: cfg.CouponServiceURL,
		HTTP: &resilience.HTTPClient{
			Client:      &http.Client{},
			Breaker:     couponBreaker,
			MaxAttempts: cfg.CouponMaxAttempts,
			Timeout:     cfg.CouponTimeout,
		},
	}

	cartSvc := &cart.Service{
		Store:   cart.Store{R: redisClient, TTL: cfg.CartTTL},
		Catalog: catalogSvc,
		Coupons: couponClient,
		Pricing: pricing.Config{
			BundleSize:        cfg.BundleSize,
			BundleUnitPrice:   cfg.BundleUnitPrice,
			PlusSizeSurcharge: cfg.PlusSizeSurcharge,
		},
	}
	cartHandler := &cart.Handler{Svc: cartSvc}

	earningsSvc := &earnings.Service{
		Store:             earnings.NewStore(pool),
		ProcessorFeeRate:  cfg.ProcessorFeeRate,
		FounderPercentage: cfg.FounderSharePct,
	}
	earningsHandler := &earnings.Handler{Svc: earningsSvc}

	enqueuer := queue.Enqueuer{R: redisClient, DedupTTL: cfg.IdempotencyTTL}
	payoutHandler := payout.Handler{Trigger: payout.Trigger{Queue: enqueuer}}

	costingHandler := costing.Handler{Rates: costing.Rates{
		PricePerGram:    cfg.CostPricePerGram,
		EnergyRateHour:  cfg.CostEnergyRateHour,
		LaborRateHour:   cfg.CostLaborRateHour,
		PackagingFlat:   cfg.CostPackagingFlat,
		OverheadPercent: cfg.CostOverheadPercent,
	}}

	queueAdmin := &queue.AdminHandler{
		Store:  queue.NewStore(pool),
		Queue:  enqueuer,
		Logger: logger,
	}

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}
	couponLimit := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "ratelimit:"},
		Config: ratelimit.Config{
			Key:    func(r *http.Request) string { return "coupon:" + common.ClientIP(r) },
			Window: cfg.RateLimitWindow,
			Max:    cfg.RateLimitMax,
		},
		OnError: func(err error) {
			logger.Error().Err(err).Msg("rate limiter unavailable")
		},
	}

	buckets := obs.ParseBucketsCSV(cfg.MetricsBucketsCSV)
	httpMetrics := obs.NewHTTPMetrics(metricsNamespace, buckets, nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(security.Headers{Enable: cfg.AppEnv != "development", EnableHSTS: true}.Middleware)
	r.Use(security.BodyLimit{Max: 1 << 20}.Middleware)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	if envBool("OBS_ENABLE_PPROF", false) {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	healthHandler := health.Handler{
		Checker: readinessChecker{db: pool, redis: redisClient},
	}
	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)

	r.Route("/v1", func(v chi.Router) {
		v.Get("/products", catalogHandler.List)
		v.Get("/products/{id}", catalogHandler.Get)

		v.Route("/carts", func(c chi.Router) {
			c.Use(authMiddleware.Authenticate)
			c.Get("/{id}", cartHandler.Get)
			c.Group(func(g chi.Router) {
				g.Use(idem.Middleware)
				g.Post("/", cartHandler.Create)
				g.Post("/{id}/items", cartHandler.AddLine)
				g.Patch("/{id}/items/{itemId}", cartHandler.SetQuantity)
				g.Delete("/{id}/items/{itemId}", cartHandler.RemoveLine)
				g.Delete("/{id}", cartHandler.Clear)
				g.With(couponLimit.Middleware).Post("/{id}/coupon", cartHandler.ApplyCoupon)
				g.Delete("/{id}/coupon", cartHandler.RemoveCoupon)
			})
		})

		v.Post("/costing/estimate", costingHandler.Estimate)

		v.Route("/earnings", func(e chi.Router) {
			e.Use(authMiddleware.RequireAdmin)
			e.Get("/", earningsHandler.List)
			e.Get("/summary", earningsHandler.Summary)
			e.With(idem.Middleware).Post("/attribute", earningsHandler.Attribute)
			e.Post("/payout", payoutHandler.Run)
		})

		v.Route("/admin/queue", func(q chi.Router) {
			q.Use(authMiddleware.RequireAdmin)
			q.Get("/dlq", queueAdmin.ListDLQ)
			q.Post("/dlq/{id}/replay", queueAdmin.ReplayDLQ)
			q.Get("/stats", queueAdmin.Stats)
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		health.SetReady(false)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown server")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type readinessChecker struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func (c readinessChecker) PingDB(ctx context.Context, timeout time.Duration) error {
	if c.db == nil {
		return errors.New("db not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.Ping(ctx)
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	mux.Handle("/mutex", pprof.Handler("mutex"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
