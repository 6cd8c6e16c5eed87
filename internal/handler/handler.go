package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler carries the endpoints that don't belong to a collection.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"status": "healthy",
		},
	})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"status": "ready",
		},
	})
}
