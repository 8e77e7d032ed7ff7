package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/bookmarks/config"
	"github.com/d60-Lab/bookmarks/internal/api/handler"
	"github.com/d60-Lab/bookmarks/internal/middleware"
	"github.com/d60-Lab/bookmarks/internal/service"
)

// New assembles the gin engine: middleware chain, binding validators and
// the versioned route groups.
func New(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
			return service.ValidImageURL(fl.Field().String())
		})
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.AccessLog())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware("bookmarks"))
	}
	r.Use(middleware.RateLimit(rate.Limit(50), 100))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
		}

		authed := v1.Group("")
		authed.Use(middleware.Auth(cfg.Auth))
		{
			authed.GET("/dashboard", h.Dashboard)

			authed.GET("/users", h.ListUsers)
			authed.PUT("/users/me", h.UpdateMe)
			authed.POST("/users/follow", h.FollowUser)
			authed.GET("/users/:username", h.GetUser)
			authed.GET("/users/:username/following", h.ListFollowing)
			authed.GET("/users/:username/followers", h.ListFollowers)

			authed.POST("/images", h.CreateImage)
			authed.GET("/images", h.ListImages)
			authed.GET("/images/ranking", h.ImageRanking)
			authed.GET("/images/:id", h.GetImage)
			authed.POST("/images/like", h.LikeImage)
		}
	}
	return r
}
