package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billbook/internal/domain"
	"billbook/internal/handler"
	"billbook/mocks"
)

func TestCustomerHandler_Create(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)
	businessID := uuid.New()

	svc.On("Create", mock.Anything, businessID, mock.AnythingOfType("service.CreateCustomerInput")).
		Return(&domain.Customer{ID: uuid.New(), BusinessID: businessID, Name: "Acme"}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/customers", map[string]string{"name": "Acme", "state": "Delhi"})
	setAuthContext(c, businessID)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestCustomerHandler_List_Pagination(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)
	businessID := uuid.New()

	svc.On("List", mock.Anything, businessID, 10, 20).Return([]domain.Customer{{Name: "A"}}, 11, nil)

	c, w := newContext(http.MethodGet, "/api/v1/customers?offset=10&limit=500", nil)
	setAuthContext(c, businessID)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 11, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Limit)
}

func TestCustomerHandler_GetByID_InvalidID(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)

	c, w := newContext(http.MethodGet, "/api/v1/customers/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	setAuthContext(c, uuid.New())
	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}

func TestCustomerHandler_GetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)
	businessID, customerID := uuid.New(), uuid.New()

	svc.On("GetByID", mock.Anything, businessID, customerID).Return(nil, domain.ErrCustomerNotFound)

	c, w := newContext(http.MethodGet, "/api/v1/customers/"+customerID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: customerID.String()}}
	setAuthContext(c, businessID)
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerHandler_Delete(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)
	businessID, customerID := uuid.New(), uuid.New()

	svc.On("Delete", mock.Anything, businessID, customerID).Return(nil)

	c, w := newContext(http.MethodDelete, "/api/v1/customers/"+customerID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: customerID.String()}}
	setAuthContext(c, businessID)
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
