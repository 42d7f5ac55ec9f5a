package planning

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cropwise/estimation-backend/internal/catalog"
	"cropwise/estimation-backend/internal/estimation"
)

// Handler handles HTTP requests for crop planning
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new planning handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers planning routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recommendations", h.recommend)
	router.POST("/predictions", h.predict)
	router.POST("/predictions/compare", h.compare)
	router.POST("/batch", h.batch)

	crops := router.Group("/crops")
	{
		crops.GET("", h.listCrops)
		crops.GET("/:name", h.getCrop)
	}
}

// recommend handles POST /api/v1/recommendations
func (h *Handler) recommend(c *gin.Context) {
	profile := NewProfile()
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Recommend(c.Request.Context(), profile)
	if err != nil {
		h.writeError(c, "Failed to score crops", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// predict handles POST /api/v1/predictions
func (h *Handler) predict(c *gin.Context) {
	req := PredictionRequest{FarmProfile: NewProfile()}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CropName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "crop_name is required", "field": "crop_name"})
		return
	}

	resp, err := h.service.Predict(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, "Failed to predict yield", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// compare handles POST /api/v1/predictions/compare
func (h *Handler) compare(c *gin.Context) {
	req := CompareRequest{FarmProfile: NewProfile()}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Compare(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, "Failed to compare crops", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// batch handles POST /api/v1/batch
func (h *Handler) batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Batch(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, "Failed to process batch", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listCrops handles GET /api/v1/crops?season=&water_need=&profitability=&search=
func (h *Handler) listCrops(c *gin.Context) {
	filter, err := catalog.ParseFilter(
		c.Query("season"),
		c.Query("water_need"),
		c.Query("profitability"),
		c.Query("search"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crops := h.service.ListCrops(filter)
	c.JSON(http.StatusOK, gin.H{
		"crops": crops,
		"total": len(crops),
	})
}

// getCrop handles GET /api/v1/crops/:name
func (h *Handler) getCrop(c *gin.Context) {
	crop, err := h.service.GetCrop(c.Param("name"))
	if err != nil {
		h.writeError(c, "Failed to get crop", err)
		return
	}

	c.JSON(http.StatusOK, crop)
}

func (h *Handler) writeError(c *gin.Context, msg string, err error) {
	var verr *estimation.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": verr.Field})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
