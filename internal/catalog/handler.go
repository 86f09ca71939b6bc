package catalog

import (
	"net/http"

	"ceylonmart-be/internal/logger"
	"ceylonmart-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Brands handles GET /api/brands.
func (h *Handler) Brands(c *gin.Context) {
	brands, err := h.svc.GetBrands(c.Request.Context())
	if err != nil {
		logger.FromCtx(c.Request.Context()).Error("Failed to load brands", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "failed to load brands")
		return
	}
	utils.RespondData(c, http.StatusOK, brands)
}

// Categories handles GET /api/categories.
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.svc.GetCategories(c.Request.Context())
	if err != nil {
		logger.FromCtx(c.Request.Context()).Error("Failed to load categories", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "failed to load categories")
		return
	}
	utils.RespondData(c, http.StatusOK, categories)
}

// FiltersMeta handles GET /api/products/filters-meta.
func (h *Handler) FiltersMeta(c *gin.Context) {
	meta, err := h.svc.GetFiltersMeta(c.Request.Context())
	if err != nil {
		logger.FromCtx(c.Request.Context()).Error("Failed to load filters meta", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "failed to load filters")
		return
	}
	utils.RespondData(c, http.StatusOK, meta)
}
