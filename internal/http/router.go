package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/swiftride/portal/internal/auth"
	"github.com/swiftride/portal/internal/cache"
	"github.com/swiftride/portal/internal/config"
	"github.com/swiftride/portal/internal/domain/identity"
	"github.com/swiftride/portal/internal/guard"
	"github.com/swiftride/portal/internal/http/handlers"
	"github.com/swiftride/portal/internal/http/middlewares"
	"github.com/swiftride/portal/internal/observability"
	"github.com/swiftride/portal/internal/presence"
	"github.com/swiftride/portal/internal/repo/postgres"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, monitor *presence.Monitor, cfg config.Config) *gin.Engine {
	// a dashboard map gap is a deploy-stopper, not something to discover
	// on the first wrong-role redirect
	if err := guard.ValidateDashboards(); err != nil {
		panic(err)
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(otelgin.Middleware("portal"))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	paymentsRepo := postgres.NewPaymentsRepo(pool, prom)

	// session provider: token -> snapshot, with a short user cache so a
	// burst of renders from one viewer costs one DB lookup
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL())
	resolver := auth.NewResolver(jwtManager, usersRepo, cache.New(30*time.Second), log)

	session := middlewares.NewSessionMiddleware(resolver)
	r.Use(session.ResolveSnapshot())

	guardMw := middlewares.NewGuardMiddleware(prom)

	// health
	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				return err
			}
		}

		if monitor != nil {
			return monitor.Ping(ctx)
		}

		return nil
	}

	// Wire up handlers
	healthHandler := handlers.NewHealthHandler(ping)
	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager, monitor, cfg)
	routeHandler := handlers.NewRouteHandler(prom)
	shellHandler := handlers.NewShellHandler(monitor)
	paymentsHandler := handlers.NewPaymentsHandler(paymentsRepo)
	driverHandler := handlers.NewDriverHandler(usersRepo, resolver)
	adminHandler := handlers.NewAdminHandler(usersRepo)
	presenceHandler := handlers.NewPresenceHandler(monitor, prom)

	loginLimiter := middlewares.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	// Routes
	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/readyz", healthHandler.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	r.POST("/auth/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)
	r.GET("/session", authHandler.Session)

	r.GET("/route/resolve", routeHandler.Resolve)
	r.GET("/shell", shellHandler.Shell)

	// any authenticated viewer
	authed := r.Group("", guardMw.Protect(""))
	authed.GET("/payments/history", paymentsHandler.History)
	authed.POST("/presence/heartbeat", presenceHandler.Heartbeat)

	// role-gated areas; wrong-role viewers bounce to their own dashboard
	driverArea := r.Group("/driver", guardMw.Protect(identity.RoleDriver))
	driverArea.PUT("/availability", driverHandler.SetAvailability)

	adminArea := r.Group("/admin", guardMw.Protect(identity.RoleAdmin))
	adminArea.GET("/users", adminHandler.Users)

	return r
}
