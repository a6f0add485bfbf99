// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, idempotency, and rate limiting.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-publications-backend/docs"
	"github.com/tbourn/go-publications-backend/internal/config"
	"github.com/tbourn/go-publications-backend/internal/http/handlers"
	"github.com/tbourn/go-publications-backend/internal/http/middleware"
	"github.com/tbourn/go-publications-backend/internal/services"
)

// Services bundles the application services shared by the HTTP layer and
// the background jobs.
type Services struct {
	Medias       *services.MediaService
	Posts        *services.PostService
	Publications *services.PublicationService
	Idempotency  *services.IdempotencyService
}

// NewServices wires every service to db. The scheduler validates references
// through the media and post registries.
func NewServices(db *gorm.DB, cfg config.Config) Services {
	medias := services.NewMediaService(db)
	posts := services.NewPostService(db)
	return Services{
		Medias:       medias,
		Posts:        posts,
		Publications: services.NewPublicationService(db, medias, posts),
		Idempotency:  services.NewIdempotencyService(db, cfg.IdempotencyTTL),
	}
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured, scrubbed access logs; request-scoped logger
//  4. Recovery: capture panics after logger
//  5. Body size limit and gzip
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per client IP, bypass on replay)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, svc Services, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/swagger/"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		svc.Idempotency.Exists,
	))

	if cfg.RateRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
		r.Use(rl.Handler())
	}

	r.Use(cors.New(corsConfig(cfg.CORS)))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(svc.Medias, svc.Posts, svc.Publications, svc.Idempotency)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.POST("/medias", h.CreateMedia)
		api.GET("/medias", h.ListMedias)
		api.GET("/medias/:id", h.GetMedia)
		api.PATCH("/medias/:id", h.UpdateMedia)
		api.DELETE("/medias/:id", h.DeleteMedia)

		api.POST("/posts", h.CreatePost)
		api.GET("/posts", h.ListPosts)
		api.GET("/posts/:id", h.GetPost)
		api.PATCH("/posts/:id", h.UpdatePost)
		api.DELETE("/posts/:id", h.DeletePost)

		api.POST("/publications", h.CreatePublication)
		api.GET("/publications", h.ListPublications)
		api.GET("/publications/:id", h.GetPublication)
		api.PATCH("/publications/:id", h.UpdatePublication)
		api.PUT("/publications/:id", h.UpdatePublication)
		api.DELETE("/publications/:id", h.DeletePublication)
	}
}

// corsConfig allows every origin when none are configured; credentials stay
// off either way.
func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "If-None-Match", middleware.HeaderIdempotencyKey},
		ExposeHeaders: []string{
			"X-Request-ID", "Content-Length", "ETag", "Idempotency-Replayed", "Retry-After",
		},
		MaxAge: 12 * time.Hour,
	}
	if len(c.AllowedOrigins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = c.AllowedOrigins
	}
	return cc
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
