package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"cat-resume-api/internal/media"
	"cat-resume-api/internal/resumes"
	"cat-resume-api/internal/services/health"
	"cat-resume-api/internal/shared/config"
	"cat-resume-api/internal/shared/metrics"
	"cat-resume-api/internal/shared/server/middleware"
	"cat-resume-api/internal/shared/server/respond"
)

const rateGroupGeneration = "GENERATION"

// RouterDeps carries the handlers and settings the router mounts.
type RouterDeps struct {
	Config        config.Config
	ResumeHandler *resumes.Handler
	// Audio serves generated narration at /audio from the configured object store.
	Audio *media.AudioHandler
	// Ping reports database health; nil means history is kept in memory.
	Ping        func(ctx context.Context) error
	RateLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: generationGroup,
			Limiter:  deps.RateLimiter,
			Rules: map[string]middleware.RateLimitRule{
				rateGroupGeneration: middleware.PerMinute(deps.Config.RateLimitPerMinute),
			},
		}),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{"status": "ok", "message": "Cat resume API is running. Meow!"})
	})
	r.GET("/metrics", metrics.Handler())
	if deps.Audio != nil {
		r.GET("/audio/*file", deps.Audio.Serve)
	}

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler(health.NewService(deps.Ping)))

	if deps.ResumeHandler != nil {
		r.POST("/api/resume", deps.ResumeHandler.Upload)
		deps.ResumeHandler.RegisterRoutes(api)
	}

	return r
}

func generationGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	switch c.FullPath() {
	case "/api/resume", "/api/v1/resumes":
		return rateGroupGeneration
	default:
		return ""
	}
}

func healthHandler(svc *health.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := svc.Status(c.Request.Context())
		if err != nil {
			respond.Error(c, http.StatusServiceUnavailable, "unhealthy", "database unavailable", err.Error())
			return
		}
		respond.OK(c, status)
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
