package dashboard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/salestrack-api/internal/handler"
	"github.com/jwalitptl/salestrack-api/internal/store"
)

const metricsCacheKey = "dashboard_metrics"

// Handler serves the aggregate dashboard snapshot. The snapshot is
// memoized briefly so a dashboard polling several widgets doesn't
// recompute the same aggregates on every request.
type Handler struct {
	root  *store.Root
	cache *gocache.Cache
}

func NewHandler(root *store.Root, ttl time.Duration) *Handler {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &Handler{
		root:  root,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dash := r.Group("/dashboard")
	{
		dash.GET("/metrics", h.Metrics)
	}
}

func (h *Handler) Metrics(c *gin.Context) {
	if cached, found := h.cache.Get(metricsCacheKey); found {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(cached))
		return
	}

	m := h.root.DashboardMetrics()
	h.cache.SetDefault(metricsCacheKey, m)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(m))
}
