package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/ProfileGo/internal/auth"
	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/email"
	"github.com/utafrali/ProfileGo/internal/security"
	"github.com/utafrali/ProfileGo/internal/service"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
	"github.com/utafrali/ProfileGo/pkg/middleware"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) Save(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepo) ReadByID(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) ReadByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) ReadByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) ReadByExternalID(ctx context.Context, externalID string) (*domain.Customer, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) ReadBatch(ctx context.Context, offset, limit int) ([]domain.Customer, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockTokenRepo struct {
	mock.Mock
}

func (m *mockTokenRepo) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepo) ReadUnusedByCustomerID(ctx context.Context, customerID string) ([]domain.PasswordResetToken, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PasswordResetToken), args.Error(1)
}

func (m *mockTokenRepo) MarkUsed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRoleRepo struct {
	mock.Mock
}

func (m *mockRoleRepo) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *mockRoleRepo) AddRoleToCustomer(ctx context.Context, customerID, roleID string) error {
	args := m.Called(ctx, customerID, roleID)
	return args.Error(0)
}

func (m *mockRoleRepo) FindCustomerRolesByCustomerID(ctx context.Context, customerID string) ([]domain.CustomerRole, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerRole), args.Error(1)
}

func (m *mockRoleRepo) RemoveCustomerRolesByCustomerID(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type stubSender struct {
	mock.Mock
}

func (m *stubSender) Send(ctx context.Context, to string, info email.Info, vars map[string]string) error {
	args := m.Called(ctx, to, info, vars)
	return args.Error(0)
}

// ============================================================================
// Test Helpers
// ============================================================================

const (
	testCustomerID = "550e8400-e29b-41d4-a716-446655440001"
	testUsername   = "alice"
	testPassword   = "password1234"
)

type authFixture struct {
	customers *mockCustomerRepo
	tokens    *mockTokenRepo
	roles     *mockRoleRepo
	sender    *stubSender
	encoder   *security.BcryptEncoder
	svc       *service.CustomerService
	users     *service.UserDetailsService
	jwt       *auth.JWTManager
	handler   *AuthHandler
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	customers := new(mockCustomerRepo)
	tokens := new(mockTokenRepo)
	roles := new(mockRoleRepo)
	sender := new(stubSender)
	encoder := security.NewBcryptEncoder(4)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := service.NewCustomerService(
		customers, tokens, roles,
		nil,
		encoder, security.NewGenerator(), sender, nil,
		service.CustomerServiceConfig{},
		logger,
	)
	users := service.NewUserDetailsService(svc, roles, logger)
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute)

	return &authFixture{
		customers: customers,
		tokens:    tokens,
		roles:     roles,
		sender:    sender,
		encoder:   encoder,
		svc:       svc,
		users:     users,
		jwt:       jwtManager,
		handler:   NewAuthHandler(svc, users, jwtManager, "https://shop.example.com/reset-password", logger),
	}
}

func (f *authFixture) router() *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/v1/auth/register", f.handler.Register)
	r.Post("/api/v1/auth/login", f.handler.Login)
	r.Post("/api/v1/auth/forgot-password", f.handler.ForgotPassword)
	r.Post("/api/v1/auth/forgot-username", f.handler.ForgotUsername)
	r.Post("/api/v1/auth/reset-password", f.handler.ResetPassword)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(f.tokenValidator()))
		r.Post("/api/v1/auth/change-password", f.handler.ChangePassword)
	})
	return r
}

func (f *authFixture) tokenValidator() middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		claims, err := f.jwt.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			CustomerID:  claims.CustomerID,
			Username:    claims.Username,
			Authorities: claims.Authorities,
		}, nil
	}
}

func (f *authFixture) storedCustomer(t *testing.T) *domain.Customer {
	t.Helper()
	hash, err := f.encoder.Encode(testPassword)
	require.NoError(t, err)
	return &domain.Customer{
		ID:           testCustomerID,
		Username:     testUsername,
		EmailAddress: "alice@example.com",
		Password:     hash,
		Registered:   true,
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

// ============================================================================
// Register Tests
// ============================================================================

func TestRegister_Success(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()

	f.customers.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.roles.On("FindRoleByName", mock.Anything, domain.RoleUser).
		Return(&domain.Role{ID: "r-1", Name: domain.RoleUser}, nil)
	f.roles.On("AddRoleToCustomer", mock.Anything, mock.Anything, "r-1").Return(nil)

	rec := postJSON(t, router, "/api/v1/auth/register", RegisterRequest{
		Username:        testUsername,
		EmailAddress:    "alice@example.com",
		Password:        testPassword,
		PasswordConfirm: testPassword,
		FirstName:       "Alice",
	}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
	f.customers.AssertExpectations(t)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()

	rec := postJSON(t, router, "/api/v1/auth/register", RegisterRequest{
		Username:        testUsername,
		EmailAddress:    "alice@example.com",
		Password:        testPassword,
		PasswordConfirm: "different-password",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "LIFECYCLE_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Codes, service.CodePasswordMismatch)
	f.customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegister_MissingEmail(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()

	rec := postJSON(t, router, "/api/v1/auth/register", RegisterRequest{
		Username:        testUsername,
		Password:        testPassword,
		PasswordConfirm: testPassword,
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

// ============================================================================
// Login Tests
// ============================================================================

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()
	c := f.storedCustomer(t)

	f.customers.On("ReadByUsername", mock.Anything, testUsername).Return(c, nil)
	f.roles.On("FindCustomerRolesByCustomerID", mock.Anything, testCustomerID).
		Return([]domain.CustomerRole{}, nil)

	rec := postJSON(t, router, "/api/v1/auth/login", LoginRequest{
		Username: testUsername,
		Password: testPassword,
	}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data TokenResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.Equal(t, "Bearer", resp.Data.TokenType)
	assert.Equal(t, []string{domain.RoleUser}, resp.Data.Authorities)

	claims, err := f.jwt.ValidateAccessToken(resp.Data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, testCustomerID, claims.CustomerID)
	assert.Equal(t, testUsername, claims.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()
	c := f.storedCustomer(t)

	f.customers.On("ReadByUsername", mock.Anything, testUsername).Return(c, nil)
	f.roles.On("FindCustomerRolesByCustomerID", mock.Anything, testCustomerID).
		Return([]domain.CustomerRole{}, nil)

	rec := postJSON(t, router, "/api/v1/auth/login", LoginRequest{
		Username: testUsername,
		Password: "wrong-password",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()

	f.customers.On("ReadByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)

	rec := postJSON(t, router, "/api/v1/auth/login", LoginRequest{
		Username: "ghost",
		Password: testPassword,
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()
	c := f.storedCustomer(t)
	c.Deactivated = true

	f.customers.On("ReadByUsername", mock.Anything, testUsername).Return(c, nil)
	f.roles.On("FindCustomerRolesByCustomerID", mock.Anything, testCustomerID).
		Return([]domain.CustomerRole{}, nil)

	rec := postJSON(t, router, "/api/v1/auth/login", LoginRequest{
		Username: testUsername,
		Password: testPassword,
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ACCOUNT_DISABLED", resp.Error.Code)
}

func TestLogin_PasswordChangeRequired(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()
	c := f.storedCustomer(t)
	c.PasswordChangeRequired = true

	f.customers.On("ReadByUsername", mock.Anything, testUsername).Return(c, nil)
	f.roles.On("FindCustomerRolesByCustomerID", mock.Anything, testCustomerID).
		Return([]domain.CustomerRole{}, nil)

	rec := postJSON(t, router, "/api/v1/auth/login", LoginRequest{
		Username: testUsername,
		Password: testPassword,
	}, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PASSWORD_CHANGE_REQUIRED", resp.Error.Code)
}

// ============================================================================
// ChangePassword Tests
// ============================================================================

func TestChangePassword_Success(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()
	c := f.storedCustomer(t)

	f.customers.On("ReadByUsername", mock.Anything, testUsername).Return(c, nil)
	f.customers.On("Save", mock.Anything, mock.Anything).Return(nil)

	token, err := f.jwt.GenerateAccessToken(testCustomerID, testUsername, []string{domain.RoleUser})
	require.NoError(t, err)

	rec := postJSON(t, router, "/api/v1/auth/change-password", ChangePasswordRequest{
		CurrentPassword:    testPassword,
		NewPassword:        "new-password-99",
		NewPasswordConfirm: "new-password-99",
	}, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusOK, rec.Code)
	f.customers.AssertCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestChangePassword_WithoutToken(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()

	rec := postJSON(t, router, "/api/v1/auth/change-password", ChangePasswordRequest{
		CurrentPassword:    testPassword,
		NewPassword:        "new-password-99",
		NewPasswordConfirm: "new-password-99",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()
	c := f.storedCustomer(t)

	f.customers.On("ReadByUsername", mock.Anything, testUsername).Return(c, nil)

	token, err := f.jwt.GenerateAccessToken(testCustomerID, testUsername, []string{domain.RoleUser})
	require.NoError(t, err)

	rec := postJSON(t, router, "/api/v1/auth/change-password", ChangePasswordRequest{
		CurrentPassword:    "wrong-password",
		NewPassword:        "new-password-99",
		NewPasswordConfirm: "new-password-99",
	}, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Codes, service.CodeInvalidPassword)
	f.customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// ============================================================================
// Forgot Password / Forgot Username Tests
// ============================================================================

func TestForgotPassword_SendsEmail(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()
	c := f.storedCustomer(t)

	f.customers.On("ReadByUsername", mock.Anything, testUsername).Return(c, nil)
	f.tokens.On("ReadUnusedByCustomerID", mock.Anything, testCustomerID).
		Return([]domain.PasswordResetToken{}, nil)
	f.tokens.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.sender.On("Send", mock.Anything, c.EmailAddress, mock.Anything, mock.Anything).Return(nil)

	rec := postJSON(t, router, "/api/v1/auth/forgot-password", ForgotPasswordRequest{
		Username: testUsername,
	}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	f.sender.AssertCalled(t, "Send", mock.Anything, c.EmailAddress, mock.Anything, mock.Anything)
}

func TestForgotPassword_UnknownUser_StillGenericOK(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()

	f.customers.On("ReadByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)

	rec := postJSON(t, router, "/api/v1/auth/forgot-password", ForgotPasswordRequest{
		Username: "ghost",
	}, nil)

	// The response must not reveal whether the account exists.
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestForgotUsername_UnknownEmail_StillGenericOK(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()

	f.customers.On("ReadByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	rec := postJSON(t, router, "/api/v1/auth/forgot-username", ForgotUsernameRequest{
		EmailAddress: "ghost@example.com",
	}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
}

// ============================================================================
// ResetPassword Tests
// ============================================================================

func TestResetPassword_InvalidToken(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()
	c := f.storedCustomer(t)

	f.customers.On("ReadByUsername", mock.Anything, testUsername).Return(c, nil)
	f.tokens.On("ReadUnusedByCustomerID", mock.Anything, testCustomerID).
		Return([]domain.PasswordResetToken{}, nil)

	rec := postJSON(t, router, "/api/v1/auth/reset-password", ResetPasswordRequest{
		Username:           testUsername,
		Token:              "not-a-valid-token-at-all",
		NewPassword:        "new-password-99",
		NewPasswordConfirm: "new-password-99",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Codes, service.CodeInvalidToken)
}

func TestResetPassword_Success(t *testing.T) {
	f := newAuthFixture(t)
	router := f.router()
	c := f.storedCustomer(t)

	rawToken := "abcdefghijklmnopqrstuv"
	encoded, err := f.encoder.Encode(rawToken)
	require.NoError(t, err)

	f.customers.On("ReadByUsername", mock.Anything, testUsername).Return(c, nil)
	f.customers.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.tokens.On("ReadUnusedByCustomerID", mock.Anything, testCustomerID).
		Return([]domain.PasswordResetToken{
			{ID: "t-1", CustomerID: testCustomerID, TokenHash: encoded, CreatedAt: time.Now().UTC()},
		}, nil)
	f.tokens.On("MarkUsed", mock.Anything, "t-1").Return(nil)

	rec := postJSON(t, router, "/api/v1/auth/reset-password", ResetPasswordRequest{
		Username:           testUsername,
		Token:              rawToken,
		NewPassword:        "new-password-99",
		NewPasswordConfirm: "new-password-99",
	}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	f.tokens.AssertCalled(t, "MarkUsed", mock.Anything, "t-1")
}
