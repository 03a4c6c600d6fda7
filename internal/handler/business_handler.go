package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billbook/internal/domain"
	"billbook/internal/service"
)

// BusinessHandler handles business registration and profile endpoints.
type BusinessHandler struct {
	businessService service.BusinessService
	authService     service.AuthService
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(businessService service.BusinessService, authService service.AuthService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService, authService: authService}
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Business *domain.Business    `json:"business"`
	Token    *service.AccessToken `json:"token"`
}

// Register handles POST /api/v1/businesses
func (h *BusinessHandler) Register(c *gin.Context) {
	var input service.RegisterBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name and state are required")
		return
	}

	business, err := h.businessService.Register(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	token, err := h.authService.IssueToken(business.ID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, RegisterResponse{Business: business, Token: token})
}

// Get handles GET /api/v1/business
func (h *BusinessHandler) Get(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}

	business, err := h.businessService.Get(c.Request.Context(), businessID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, business)
}

// Update handles PUT /api/v1/business
func (h *BusinessHandler) Update(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}

	var input service.UpdateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	business, err := h.businessService.Update(c.Request.Context(), businessID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, business)
}
