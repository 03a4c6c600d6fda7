package handler

import (
	"github.com/gin-gonic/gin"

	"billbook/internal/service"
)

// HSNHandler serves HSN/SAC master lookups.
type HSNHandler struct {
	hsnService service.HSNService
}

// NewHSNHandler creates a new HSNHandler.
func NewHSNHandler(hsnService service.HSNService) *HSNHandler {
	return &HSNHandler{hsnService: hsnService}
}

// Lookup handles GET /api/v1/hsn/:code
func (h *HSNHandler) Lookup(c *gin.Context) {
	entries, err := h.hsnService.Lookup(c.Param("code"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}
