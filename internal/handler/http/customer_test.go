package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/service"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
	"github.com/utafrali/ProfileGo/pkg/middleware"
)

// fakeTokenValidator returns a middleware.TokenValidator that always succeeds
// and injects the given identity into the request context.
func fakeTokenValidator(customerID, username string, authorities ...string) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		return &middleware.Claims{
			CustomerID:  customerID,
			Username:    username,
			Authorities: authorities,
		}, nil
	}
}

func setupCustomerRouter(f *authFixture, validator middleware.TokenValidator) *chi.Mux {
	handler := NewCustomerHandler(f.svc, service.NewRoleService(f.roles))
	r := chi.NewRouter()
	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Use(middleware.Auth(validator))
		r.Get("/me", handler.GetProfile)
		r.Put("/me", handler.UpdateProfile)
		r.Delete("/me", handler.DeleteProfile)
		r.Get("/me/roles", handler.ListRoles)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuthority("ROLE_ADMIN"))
			r.Get("/", handler.ListCustomers)
		})
	})
	return r
}

func TestGetProfile_Success(t *testing.T) {
	f := newAuthFixture(t)
	router := setupCustomerRouter(f, fakeTokenValidator(testCustomerID, testUsername, domain.RoleUser))

	f.customers.On("ReadByID", mock.Anything, testCustomerID).Return(f.storedCustomer(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/me", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestGetProfile_WithoutToken(t *testing.T) {
	f := newAuthFixture(t)
	router := setupCustomerRouter(f, fakeTokenValidator(testCustomerID, testUsername))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/me", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetProfile_NotFound(t *testing.T) {
	f := newAuthFixture(t)
	router := setupCustomerRouter(f, fakeTokenValidator(testCustomerID, testUsername, domain.RoleUser))

	f.customers.On("ReadByID", mock.Anything, testCustomerID).Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/me", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProfile_ChangesOnlyProvidedFields(t *testing.T) {
	f := newAuthFixture(t)
	router := setupCustomerRouter(f, fakeTokenValidator(testCustomerID, testUsername, domain.RoleUser))

	stored := f.storedCustomer(t)
	stored.FirstName = "Alice"
	stored.LastName = "Smith"
	f.customers.On("ReadByID", mock.Anything, testCustomerID).Return(stored, nil)

	var saved *domain.Customer
	f.customers.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Customer)
		}).
		Return(nil)

	rec := postJSONMethod(t, router, http.MethodPut, "/api/v1/customers/me", UpdateProfileRequest{
		FirstName: strPtr("Alicia"),
	}, map[string]string{"Authorization": "Bearer test-token"})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, saved)
	assert.Equal(t, "Alicia", saved.FirstName)
	assert.Equal(t, "Smith", saved.LastName)
}

func TestDeleteProfile_Success(t *testing.T) {
	f := newAuthFixture(t)
	router := setupCustomerRouter(f, fakeTokenValidator(testCustomerID, testUsername, domain.RoleUser))

	f.customers.On("ReadByID", mock.Anything, testCustomerID).Return(f.storedCustomer(t), nil)
	f.roles.On("RemoveCustomerRolesByCustomerID", mock.Anything, testCustomerID).Return(nil)
	f.customers.On("Delete", mock.Anything, testCustomerID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/customers/me", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	f.customers.AssertCalled(t, "Delete", mock.Anything, testCustomerID)
}

func TestListRoles_ReturnsGrantedRoles(t *testing.T) {
	f := newAuthFixture(t)
	router := setupCustomerRouter(f, fakeTokenValidator(testCustomerID, testUsername, domain.RoleUser))

	f.roles.On("FindCustomerRolesByCustomerID", mock.Anything, testCustomerID).
		Return([]domain.CustomerRole{{CustomerID: testCustomerID, RoleName: domain.RoleUser}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/me/roles", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []domain.CustomerRole `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, domain.RoleUser, resp.Data[0].RoleName)
}

func TestListCustomers_RequiresAdminAuthority(t *testing.T) {
	f := newAuthFixture(t)
	router := setupCustomerRouter(f, fakeTokenValidator(testCustomerID, testUsername, domain.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListCustomers_AdminSeesPage(t *testing.T) {
	f := newAuthFixture(t)
	router := setupCustomerRouter(f, fakeTokenValidator(testCustomerID, testUsername, "ROLE_ADMIN"))

	f.customers.On("ReadBatch", mock.Anything, 0, 50).
		Return([]domain.Customer{*f.storedCustomer(t)}, nil)
	f.customers.On("Count", mock.Anything).Return(int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data struct {
			Customers []domain.Customer `json:"customers"`
			Total     int64             `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data.Customers, 1)
	assert.Equal(t, int64(1), resp.Data.Total)
}

func strPtr(s string) *string { return &s }

func postJSONMethod(t *testing.T, router http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
