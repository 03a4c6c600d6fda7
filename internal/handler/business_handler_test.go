package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"billbook/internal/domain"
	"billbook/internal/handler"
	"billbook/internal/service"
	"billbook/mocks"
)

func newBusinessHandler() (*handler.BusinessHandler, *mocks.MockBusinessService, *mocks.MockAuthService) {
	svc := new(mocks.MockBusinessService)
	auth := new(mocks.MockAuthService)
	return handler.NewBusinessHandler(svc, auth), svc, auth
}

func TestBusinessHandler_Register_Success(t *testing.T) {
	h, svc, auth := newBusinessHandler()
	b := &domain.Business{ID: uuid.New(), Name: "Sharma Traders", State: "Delhi"}

	svc.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterBusinessInput")).Return(b, nil)
	auth.On("IssueToken", b.ID).Return(&service.AccessToken{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/businesses", map[string]string{"name": "Sharma Traders", "state": "Delhi"})
	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"tok"`)
	svc.AssertExpectations(t)
	auth.AssertExpectations(t)
}

func TestBusinessHandler_Register_MissingFields(t *testing.T) {
	h, svc, _ := newBusinessHandler()

	c, w := newContext(http.MethodPost, "/api/v1/businesses", map[string]string{"name": "No State"})
	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestBusinessHandler_Register_Duplicate(t *testing.T) {
	h, svc, _ := newBusinessHandler()
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateBusiness)

	c, w := newContext(http.MethodPost, "/api/v1/businesses", map[string]string{"name": "A", "state": "Delhi"})
	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBusinessHandler_Get(t *testing.T) {
	h, svc, _ := newBusinessHandler()
	businessID := uuid.New()
	svc.On("Get", mock.Anything, businessID).Return(&domain.Business{ID: businessID, Name: "A"}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/business", nil)
	setAuthContext(c, businessID)
	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
}

func TestBusinessHandler_Get_NoAuthContext(t *testing.T) {
	h, _, _ := newBusinessHandler()

	c, w := newContext(http.MethodGet, "/api/v1/business", nil)
	h.Get(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBusinessHandler_Update_Validation(t *testing.T) {
	h, svc, _ := newBusinessHandler()
	businessID := uuid.New()
	svc.On("Update", mock.Anything, businessID, mock.AnythingOfType("service.UpdateBusinessInput")).
		Return(nil, domain.ValidationErrors{{Field: "invoice_prefix", Message: "invalid invoice prefix"}})

	c, w := newContext(http.MethodPut, "/api/v1/business", map[string]string{"invoice_prefix": "bad prefix"})
	setAuthContext(c, businessID)
	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"invoice_prefix"`)
}
