package calllog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/salestrack-api/internal/filter"
	"github.com/jwalitptl/salestrack-api/internal/handler"
	"github.com/jwalitptl/salestrack-api/internal/model"
	"github.com/jwalitptl/salestrack-api/internal/store"
)

type Handler struct {
	store *store.CallLogStore
}

func NewHandler(s *store.CallLogStore) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	logs := r.Group("/call-logs")
	{
		logs.POST("", h.CreateCallLog)
		logs.GET("", h.ListCallLogs)
		logs.GET("/:id", h.GetCallLog)
		logs.PUT("/:id", h.UpdateCallLog)
		logs.DELETE("/:id", h.DeleteCallLog)

		logs.GET("/filter-config", h.FilterConfig)

		logs.GET("/filters", h.ListFilters)
		logs.POST("/filters", h.AddFilter)
		logs.PUT("/filters/:filterId", h.UpdateFilter)
		logs.DELETE("/filters/:filterId", h.RemoveFilter)
		logs.DELETE("/filters", h.ClearFilters)
	}

	// The per-lead thread view lives under the lead resource.
	r.GET("/leads/:id/call-logs", h.ListForLead)
}

// CreateCallLog inserts a log and, through the store's event emitter,
// updates the owning lead's last-contacted date and status before
// responding.
func (h *Handler) CreateCallLog(c *gin.Context) {
	var req model.CreateCallLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.BindingError(err))
		return
	}

	callLog, err := h.store.AddCallLog(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(callLog))
}

// ListCallLogs applies view-state query params (type, outcome, sort_by,
// sort_order) and returns the derived view.
func (h *Handler) ListCallLogs(c *gin.Context) {
	if t, ok := c.GetQuery("type"); ok {
		h.store.SetTypeFilter(t)
	}
	if outcome, ok := c.GetQuery("outcome"); ok {
		h.store.SetOutcomeFilter(outcome)
	}
	if sortBy, ok := c.GetQuery("sort_by"); ok {
		order := model.SortOrder(c.DefaultQuery("sort_order", string(model.SortDesc)))
		h.store.SetSorting(sortBy, order)
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"call_logs": h.store.FilteredAndSorted(),
		"total":     h.store.TotalCallLogs(),
	}))
}

func (h *Handler) GetCallLog(c *gin.Context) {
	callLog, found := h.store.GetCallLogByID(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("call log not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(callLog))
}

func (h *Handler) UpdateCallLog(c *gin.Context) {
	var req model.UpdateCallLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.BindingError(err))
		return
	}

	if !h.store.UpdateCallLog(c.Param("id"), &req) {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("call log not found"))
		return
	}

	callLog, _ := h.store.GetCallLogByID(c.Param("id"))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(callLog))
}

func (h *Handler) DeleteCallLog(c *gin.Context) {
	if !h.store.DeleteCallLog(c.Param("id")) {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("call log not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}

func (h *Handler) ListForLead(c *gin.Context) {
	logs := h.store.LogsForLead(c.Param("id"))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"call_logs": logs,
		"total":     len(logs),
	}))
}

func (h *Handler) FilterConfig(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(filter.CallLogFieldConfigs()))
}

func (h *Handler) ListFilters(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.store.Filters()))
}

func (h *Handler) AddFilter(c *gin.Context) {
	var cond model.FilterCondition
	if err := c.ShouldBindJSON(&cond); err != nil {
		c.JSON(http.StatusBadRequest, handler.BindingError(err))
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(h.store.AddFilter(&cond)))
}

func (h *Handler) UpdateFilter(c *gin.Context) {
	var req model.UpdateFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.BindingError(err))
		return
	}
	if !h.store.UpdateFilter(c.Param("filterId"), &req) {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("filter not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"updated": true}))
}

func (h *Handler) RemoveFilter(c *gin.Context) {
	if !h.store.RemoveFilter(c.Param("filterId")) {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("filter not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"removed": true}))
}

func (h *Handler) ClearFilters(c *gin.Context) {
	h.store.ClearFilters()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"cleared": true}))
}
