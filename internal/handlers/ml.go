package handlers

import (
	"errors"
	"net/http"

	"hydraulic_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Train ML model
// @Description  Fits the detector on live history, or synthetic data when history is short
// @Tags         ml
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "message, data_points"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/ml/train [post]
// @Security     BearerAuth
func (h *Handler) trainModel(c *gin.Context) {
	n, err := h.services.Prediction.Train(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "ML model training failed", "ml_train_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "ML model trained successfully",
		"data_points": n,
	})
}

// @Summary      Latest failure prediction
// @Tags         ml
// @Produce      json
// @Success      200  {object}  models.MLPrediction
// @Failure      404  {object}  map[string]string
// @Router       /ml/prediction [get]
func (h *Handler) getPrediction(c *gin.Context) {
	p, err := h.services.Prediction.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoPrediction) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load prediction", "ml_prediction_failed", err)
		return
	}
	c.JSON(http.StatusOK, p)
}
