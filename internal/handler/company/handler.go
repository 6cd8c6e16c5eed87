package company

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
	store *store.CompanyStore
}

func NewHandler(s *store.CompanyStore) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	companies := r.Group("/companies")
	{
		companies.POST("", h.CreateCompany)
		companies.GET("", h.ListCompanies)
		companies.GET("/:id", h.GetCompany)
		companies.PUT("/:id", h.UpdateCompany)
		companies.DELETE("/:id", h.DeleteCompany)
		companies.POST("/bulk-delete", h.BulkDelete)

		companies.GET("/check-name", h.CheckName)
		companies.GET("/filter-config", h.FilterConfig)

		companies.GET("/filters", h.ListFilters)
		companies.POST("/filters", h.AddFilter)
		companies.PUT("/filters/:filterId", h.UpdateFilter)
		companies.DELETE("/filters/:filterId", h.RemoveFilter)
		companies.DELETE("/filters", h.ClearFilters)
	}
}

func (h *Handler) CreateCompany(c *gin.Context) {
	var req model.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.BindingError(err))
		return
	}

	company, err := h.store.AddCompany(&req)
	if err != nil {
		if errors.IsDuplicate(err) {
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(company))
}

// ListCompanies applies view-state query params (search, industry, size,
// sort_by, sort_order) and returns the derived view.
func (h *Handler) ListCompanies(c *gin.Context) {
	if search, ok := c.GetQuery("search"); ok {
		h.store.SetSearchQuery(search)
	}
	if industry, ok := c.GetQuery("industry"); ok {
		h.store.SetIndustryFilter(industry)
	}
	if size, ok := c.GetQuery("size"); ok {
		h.store.SetSizeFilter(size)
	}
	if sortBy, ok := c.GetQuery("sort_by"); ok {
		order := model.SortOrder(c.DefaultQuery("sort_order", string(model.SortDesc)))
		h.store.SetSorting(sortBy, order)
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"companies": h.store.FilteredAndSorted(),
		"total":     h.store.TotalCompanies(),
	}))
}

func (h *Handler) GetCompany(c *gin.Context) {
	company, found := h.store.GetCompanyByID(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("company not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(company))
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	var req model.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.BindingError(err))
		return
	}

	updated, err := h.store.UpdateCompany(c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("company not found"))
		return
	}

	company, _ := h.store.GetCompanyByID(c.Param("id"))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(company))
}

func (h *Handler) DeleteCompany(c *gin.Context) {
	if !h.store.DeleteCompany(c.Param("id")) {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("company not found"))
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
	deleted := h.store.DeleteCompanies(req.IDs)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": deleted}))
}

func (h *Handler) CheckName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("name is required"))
		return
	}
	exists := h.store.CheckNameExists(name, c.Query("exclude_id"))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"exists": exists}))
}

func (h *Handler) FilterConfig(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(filter.CompanyFieldConfigs()))
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
