package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FarahAbdullah11/NU-CLUBS/config"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/api/handler"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/api/middleware"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/jwt"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/metrics"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/redis"
)

const healthTimeout = 2 * time.Second

// Deps everything the route table needs
type Deps struct {
	Config  *config.Config
	Handler *handler.Handler
	JWT     *jwt.Manager
	Redis   *redis.Client // optional
	DB      *gorm.DB
	Metrics *metrics.Metrics // optional
	Logger  *zap.Logger
}

// Setup builds the gin engine
func Setup(d Deps) *gin.Engine {
	r := gin.New()

	// ── global middleware ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(d.Config.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(d.Config.Server.BodyLimit))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}

	// ── probes ──
	r.GET("/health", healthHandler(d))
	if d.Metrics != nil && d.Config.Feature.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	h := d.Handler
	api := r.Group("/api")
	{
		// public
		api.POST("/auth/login",
			middleware.RateLimit(d.Redis, d.Config.Auth.LoginRateLimit, d.Config.Auth.LoginRateWindow, d.Logger),
			h.Auth.Login,
		)

		authorized := api.Group("")
		authorized.Use(middleware.SessionAuth(d.JWT, d.Redis, d.Logger))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// club scope is enforced by the policy in the service layer
			clubs := authorized.Group("/clubs")
			{
				clubs.GET("", middleware.AdminOnly(), h.Club.List)
				clubs.GET("/:id", h.Club.Get)
				clubs.GET("/:id/metrics", h.Club.Metrics)
				clubs.GET("/:id/requests", h.Club.Requests)
				clubs.GET("/:id/calendar.ics", h.Club.Calendar)
			}
			authorized.GET("/rooms", h.Club.Rooms)

			requests := authorized.Group("/requests")
			{
				requests.POST("", h.Request.Create)
				requests.GET("/:id", h.Request.Get)
			}

			admin := authorized.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/requests", h.Admin.ListRequests)
				admin.GET("/requests/export", h.Admin.Export)
				admin.PUT("/requests/:id/status", h.Admin.UpdateStatus)
				admin.GET("/metrics", h.Admin.Metrics)
				admin.GET("/calendar.ics", h.Admin.Calendar)
			}

			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.PATCH("/:id/read", h.Notification.MarkRead)
			}
		}
	}

	return r
}

// healthHandler reports 503 when the database is unreachable.
// Redis is optional; its state is reported but never fails the probe.
func healthHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		body := gin.H{"status": "ok", "database": "up", "redis": "disabled"}

		if err := pingDB(ctx, d.DB); err != nil {
			d.Logger.Warn("health: database unreachable", zap.Error(err))
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = "down"
		}

		if d.Redis != nil {
			body["redis"] = "up"
			if err := d.Redis.Ping(ctx); err != nil {
				body["redis"] = "down"
			}
		}

		c.JSON(status, body)
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
