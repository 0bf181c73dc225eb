package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/pipeline"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/shared/config"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/shared/metrics"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/shared/server/middleware"
	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/shared/server/respond"
)

// RouterDeps holds the handlers the router wires up.
type RouterDeps struct {
	Config   config.Config
	Pipeline *pipeline.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	limiter := middleware.NewRateLimiter(nil)
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(limiter, middleware.RateLimitRule{Rate: 2, Burst: 10}),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.POST("/process", deps.Pipeline.Process)
	api.GET("/records", deps.Pipeline.ListRecords)
	api.GET("/records/:id", deps.Pipeline.GetRecord)
	api.GET("/credits", deps.Pipeline.GetCredits)

	return r
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
