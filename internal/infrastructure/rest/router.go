// Package rest serves the catalog's HTTP API with gin.
package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterOptions configures NewRouter
type RouterOptions struct {
	MaxUploadBytes int64
	MetricsPath    string
	Gatherer       prometheus.Gatherer
	Observer       HTTPObserver
}

// NewRouter builds the gin engine with every catalog route
func NewRouter(videos VideoService, relations RelationService, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	router := gin.New()
	router.Use(requestLogging(logger.Named("http"), opts.Observer), recovery())
	if opts.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = 32 << 20
		router.Use(limitBody(opts.MaxUploadBytes))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil && opts.MetricsPath != "" {
		router.GET(opts.MetricsPath, gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	vh := &videoHandler{service: videos}
	v := router.Group("/videos")
	{
		v.POST("", vh.create)
		v.GET("/:id", vh.get)
		v.PUT("/:id", vh.update)
		v.DELETE("/:id", vh.delete)
		v.POST("/:id/medias/:type", vh.uploadMedia)
	}

	rh := &relationHandler{service: relations}
	router.POST("/categories", rh.createCategory)
	router.GET("/categories/:id", rh.getCategory)
	router.POST("/genres", rh.createGenre)
	router.GET("/genres/:id", rh.getGenre)
	router.POST("/cast_members", rh.createCastMember)
	router.GET("/cast_members/:id", rh.getCastMember)

	router.NoRoute(func(c *gin.Context) {
		abortWithProblem(c, http.StatusNotFound, "route not found")
	})

	return router
}

func limitBody(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}

type nopObserver struct{}

func (nopObserver) ObserveHTTP(string, string, int, time.Duration) {}
