package lead

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/salestrack-api/internal/filter"
	"github.com/jwalitptl/salestrack-api/internal/handler"
	"github.com/jwalitptl/salestrack-api/internal/model"
	"github.com/jwalitptl/salestrack-api/internal/store"
	"github.com/jwalitptl/salestrack-api/pkg/errors"
)

type Handler struct {
	store *store.LeadStore
}

func NewHandler(s *store.LeadStore) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	leads := r.Group("/leads")
	{
		leads.POST("", h.CreateLead)
		leads.GET("", h.ListLeads)
		leads.GET("/:id", h.GetLead)
		leads.PUT("/:id", h.UpdateLead)
		leads.DELETE("/:id", h.DeleteLead)
		leads.POST("/bulk-delete", h.BulkDelete)

		leads.GET("/check-email", h.CheckEmail)
		leads.GET("/check-phone", h.CheckPhone)
		leads.GET("/filter-config", h.FilterConfig)

		leads.GET("/filters", h.ListFilters)
		leads.POST("/filters", h.AddFilter)
		leads.PUT("/filters/:filterId", h.UpdateFilter)
		leads.DELETE("/filters/:filterId", h.RemoveFilter)
		leads.DELETE("/filters", h.ClearFilters)
	}
}

func (h *Handler) CreateLead(c *gin.Context) {
	var req model.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.BindingError(err))
		return
	}

	lead, err := h.store.AddLead(&req)
	if err != nil {
		if errors.IsDuplicate(err) {
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(lead))
}

// ListLeads returns the filtered and sorted view. Query params update the
// store's view state before the read: search, status, sort_by, sort_order.
func (h *Handler) ListLeads(c *gin.Context) {
	if search, ok := c.GetQuery("search"); ok {
		h.store.SetSearchQuery(search)
	}
	if status, ok := c.GetQuery("status"); ok {
		h.store.SetStatusFilter(status)
	}
	if sortBy, ok := c.GetQuery("sort_by"); ok {
		order := model.SortOrder(c.DefaultQuery("sort_order", string(model.SortDesc)))
		h.store.SetSorting(sortBy, order)
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"leads": h.store.FilteredAndSorted(),
		"total": h.store.TotalLeads(),
	}))
}

func (h *Handler) GetLead(c *gin.Context) {
	lead, found := h.store.GetLeadByID(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("lead not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(lead))
}

func (h *Handler) UpdateLead(c *gin.Context) {
	var req model.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.BindingError(err))
		return
	}

	updated, err := h.store.UpdateLead(c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("lead not found"))
		return
	}

	lead, _ := h.store.GetLeadByID(c.Param("id"))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(lead))
}

func (h *Handler) DeleteLead(c *gin.Context) {
	if !h.store.DeleteLead(c.Param("id")) {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("lead not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": true}))
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func (h *Handler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.BindingError(err))
		return
	}
	deleted := h.store.DeleteLeads(req.IDs)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": deleted}))
}

func (h *Handler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("email is required"))
		return
	}
	exists := h.store.CheckEmailExists(email, c.Query("exclude_id"))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"exists": exists}))
}

func (h *Handler) CheckPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("phone is required"))
		return
	}
	match := h.store.CheckSimilarPhone(phone, c.Query("exclude_id"))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"match": match}))
}

func (h *Handler) FilterConfig(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(filter.LeadFieldConfigs()))
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
