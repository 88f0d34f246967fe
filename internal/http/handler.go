package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oceandrift/drift-api/internal/domain"
	"github.com/oceandrift/drift-api/internal/usecase"
)

// Handler handles HTTP requests for drift predictions.
type Handler struct {
	predictionUC *usecase.PredictionUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(predictionUC *usecase.PredictionUseCase) *Handler {
	return &Handler{
		predictionUC: predictionUC,
	}
}

// PostPrediction handles POST /v1/drift/predictions.
func (h *Handler) PostPrediction(c *gin.Context) {
	var req usecase.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	response, err := h.predictionUC.Execute(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetObjects handles GET /v1/objects.
func (h *Handler) GetObjects(c *gin.Context) {
	objects := h.predictionUC.ListObjects()
	c.JSON(http.StatusOK, gin.H{
		"objects": objects,
		"count":   len(objects),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
