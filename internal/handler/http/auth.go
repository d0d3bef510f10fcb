package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/utafrali/ProfileGo/internal/auth"
	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/service"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
	"github.com/utafrali/ProfileGo/pkg/middleware"
	"github.com/utafrali/ProfileGo/pkg/validator"
)

// AuthHandler handles HTTP requests for registration, login, and the
// password lifecycle endpoints.
type AuthHandler struct {
	customers        *service.CustomerService
	users            *service.UserDetailsService
	jwtManager       *auth.JWTManager
	resetPasswordURL string
	logger           *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(
	customers *service.CustomerService,
	users *service.UserDetailsService,
	jwtManager *auth.JWTManager,
	resetPasswordURL string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		customers:        customers,
		users:            users,
		jwtManager:       jwtManager,
		resetPasswordURL: resetPasswordURL,
		logger:           logger,
	}
}

// --- Request DTOs ---

// RegisterRequest is the JSON request body for customer registration.
type RegisterRequest struct {
	Username            string `json:"username" validate:"required,min=3,max=255"`
	EmailAddress        string `json:"email_address" validate:"required,email"`
	Password            string `json:"password" validate:"required,min=8"`
	PasswordConfirm     string `json:"password_confirm" validate:"required"`
	FirstName           string `json:"first_name" validate:"omitempty,max=100"`
	LastName            string `json:"last_name" validate:"omitempty,max=100"`
	ChallengeQuestionID string `json:"challenge_question_id" validate:"omitempty,uuid"`
	ChallengeAnswer     string `json:"challenge_answer" validate:"omitempty,max=255"`
}

// LoginRequest is the JSON request body for customer login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the JSON request body for an authenticated
// password change.
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"current_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

// ForgotPasswordRequest is the JSON request body for forgot password.
type ForgotPasswordRequest struct {
	Username string `json:"username" validate:"required"`
}

// ForgotUsernameRequest is the JSON request body for forgot username.
type ForgotUsernameRequest struct {
	EmailAddress string `json:"email_address" validate:"required,email"`
}

// ResetPasswordRequest is the JSON request body for a token-based password
// reset.
type ResetPasswordRequest struct {
	Username           string `json:"username" validate:"required"`
	Token              string `json:"token" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

// --- Response types ---

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	Authorities []string `json:"authorities"`
}

// AuthResponse wraps customer data with an issued token.
type AuthResponse struct {
	Customer any           `json:"customer"`
	Token    TokenResponse `json:"token"`
}

// --- Handlers ---

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	customer := &domain.Customer{
		Username:            req.Username,
		EmailAddress:        req.EmailAddress,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		ChallengeQuestionID: req.ChallengeQuestionID,
		UnencodedChallenge:  req.ChallengeAnswer,
	}

	registered, resp, err := h.customers.RegisterCustomer(r.Context(), customer, req.Password, req.PasswordConfirm)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if resp.HasErrors() {
		writeLifecycleErrors(w, resp)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(registered.ID, registered.Username, []string{domain.RoleUser})
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{
		Data: AuthResponse{
			Customer: registered,
			Token: TokenResponse{
				AccessToken: token,
				TokenType:   "Bearer",
				Authorities: []string{domain.RoleUser},
			},
		},
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	details, err := h.users.LoadUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			writeJSON(w, http.StatusUnauthorized, response{
				Error: &errorResponse{Code: "INVALID_CREDENTIALS", Message: "invalid username or password"},
			})
			return
		}
		writeAppError(w, r, err)
		return
	}

	if !h.customers.IsPasswordValid(req.Password, details.Password) {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "INVALID_CREDENTIALS", Message: "invalid username or password"},
		})
		return
	}

	if !details.Enabled || !details.AccountNonExpired || !details.AccountNonLocked {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "ACCOUNT_DISABLED", Message: "account is disabled"},
		})
		return
	}

	if !details.CredentialsNonExpired {
		writeJSON(w, http.StatusForbidden, response{
			Error: &errorResponse{Code: "PASSWORD_CHANGE_REQUIRED", Message: "password change required before login"},
		})
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(details.CustomerID, details.Username, details.Authorities)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Data: TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			Authorities: details.Authorities,
		},
	})
}

// ChangePassword handles POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	username := middleware.UsernameFromContext(r.Context())
	if username == "" {
		writeUnauthenticated(w)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	// The lifecycle only validates the new pair; proving knowledge of the
	// current password is this endpoint's policy.
	customer, err := h.customers.ReadCustomerByUsername(r.Context(), username)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if customer != nil && !h.customers.IsPasswordValid(req.CurrentPassword, customer.Password) {
		resp := service.NewResponse()
		resp.AddErrorCode(service.CodeInvalidPassword)
		writeLifecycleErrors(w, resp)
		return
	}

	change := domain.PasswordChange{
		PasswordReset:      domain.PasswordReset{Username: username},
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		NewPasswordConfirm: req.NewPasswordConfirm,
	}

	_, resp, err := h.customers.ChangePassword(r.Context(), change)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if resp.HasErrors() {
		writeLifecycleErrors(w, resp)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Data: map[string]string{"message": "password has been changed"},
	})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
//
// The response never reveals whether the account exists; lookup failures are
// logged and answered with the same message as a successful send.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	resp, err := h.customers.SendForgotPasswordNotification(r.Context(), req.Username, h.resetPasswordURL)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if resp.HasErrors() {
		h.logger.Info("forgot password request rejected",
			slog.String("username", req.Username),
			slog.Any("codes", resp.ErrorCodes()),
		)
	}

	writeJSON(w, http.StatusOK, response{
		Data: map[string]string{"message": "if the account exists, a password reset link has been sent"},
	})
}

// ForgotUsername handles POST /api/v1/auth/forgot-username
func (h *AuthHandler) ForgotUsername(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req ForgotUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	resp, err := h.customers.SendForgotUsernameNotification(r.Context(), req.EmailAddress)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if resp.HasErrors() {
		h.logger.Info("forgot username request rejected",
			slog.Any("codes", resp.ErrorCodes()),
		)
	}

	writeJSON(w, http.StatusOK, response{
		Data: map[string]string{"message": "if the account exists, an email with the username has been sent"},
	})
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	resp, err := h.customers.ResetPasswordUsingToken(r.Context(), req.Username, req.Token, req.NewPassword, req.NewPasswordConfirm)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if resp.HasErrors() {
		writeLifecycleErrors(w, resp)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Data: map[string]string{"message": "password has been reset successfully"},
	})
}
