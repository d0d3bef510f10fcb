package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/email"
	"github.com/utafrali/ProfileGo/internal/repository"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// securePasswordLength is the length of passwords produced by
// GenerateSecurePassword.
const securePasswordLength = 16

// Default lifecycle settings, overridable through CustomerServiceConfig.
const (
	DefaultTokenExpiredMinutes = 30
	DefaultPasswordTokenLength = 22
)

// PostRegistrationObserver is notified after a customer completes
// registration. Observers run synchronously in registration order.
type PostRegistrationObserver interface {
	OnRegistered(ctx context.Context, customer *domain.Customer) error
}

// PasswordUpdatedHandler is notified after a customer's password is changed
// or reset. The new plaintext is passed so handlers can notify the customer;
// it is never persisted.
type PasswordUpdatedHandler interface {
	PasswordUpdated(ctx context.Context, customer *domain.Customer, newPassword string) error
}

// SecretGenerator produces random secrets of a given length.
type SecretGenerator interface {
	Generate(n int) (string, error)
}

// PasswordEncoder hashes and verifies stored secrets.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

// CustomerCache is the read-through cache used by the cacheable username
// lookup. Writes invalidate it.
type CustomerCache interface {
	ReadByUsername(ctx context.Context, username string) (*domain.Customer, error)
	Invalidate(ctx context.Context, username string)
}

// EventSink receives customer mutation events. The Kafka producer satisfies
// it; publish failures are logged and never block the write path.
type EventSink interface {
	PublishCustomerUpdated(ctx context.Context, customer *domain.Customer) error
	PublishCustomerDeleted(ctx context.Context, customerID, username string) error
}

// CustomerServiceConfig carries the tunable parts of the password lifecycle.
type CustomerServiceConfig struct {
	// TokenExpiredMinutes is how long a reset token stays valid.
	TokenExpiredMinutes int

	// PasswordTokenLength is the length of generated reset tokens and of
	// passwords assigned by ResetPassword.
	PasswordTokenLength int

	ForgotPasswordEmail email.Info
	ForgotUsernameEmail email.Info

	// RegistrationEmail and ChangePasswordEmail are courtesy notifications.
	// An empty body template disables them.
	RegistrationEmail   email.Info
	ChangePasswordEmail email.Info
}

func (c *CustomerServiceConfig) applyDefaults() {
	if c.TokenExpiredMinutes <= 0 {
		c.TokenExpiredMinutes = DefaultTokenExpiredMinutes
	}
	if c.PasswordTokenLength <= 0 {
		c.PasswordTokenLength = DefaultPasswordTokenLength
	}
}

// CustomerService implements the customer password lifecycle: registration,
// password change, reset, and the forgot-password/forgot-username flows.
// Expected validation failures accumulate on a Response; unexpected
// collaborator failures surface as errors.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	tokenRepo    repository.TokenRepository
	roleRepo     repository.RoleRepository
	cache        CustomerCache
	encoder      PasswordEncoder
	generator    SecretGenerator
	sender       email.Sender
	events       EventSink
	logger       *slog.Logger
	cfg          CustomerServiceConfig

	postRegisterObservers   []PostRegistrationObserver
	passwordChangedHandlers []PasswordUpdatedHandler
	passwordResetHandlers   []PasswordUpdatedHandler
}

// NewCustomerService creates a new customer service. The cache and events
// sink may be nil; the service then reads straight from the repository and
// publishes nothing.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	tokenRepo repository.TokenRepository,
	roleRepo repository.RoleRepository,
	cache CustomerCache,
	encoder PasswordEncoder,
	generator SecretGenerator,
	sender email.Sender,
	events EventSink,
	cfg CustomerServiceConfig,
	logger *slog.Logger,
) *CustomerService {
	cfg.applyDefaults()
	return &CustomerService{
		customerRepo: customerRepo,
		tokenRepo:    tokenRepo,
		roleRepo:     roleRepo,
		cache:        cache,
		encoder:      encoder,
		generator:    generator,
		sender:       sender,
		events:       events,
		logger:       logger,
		cfg:          cfg,
	}
}

// --- Observer and handler registries ---

// AddPostRegisterObserver appends an observer. It takes effect on the next
// registration.
func (s *CustomerService) AddPostRegisterObserver(o PostRegistrationObserver) {
	s.postRegisterObservers = append(s.postRegisterObservers, o)
}

// RemovePostRegisterObserver removes a previously added observer.
func (s *CustomerService) RemovePostRegisterObserver(o PostRegistrationObserver) {
	for i, existing := range s.postRegisterObservers {
		if existing == o {
			s.postRegisterObservers = append(s.postRegisterObservers[:i], s.postRegisterObservers[i+1:]...)
			return
		}
	}
}

// AddPasswordChangedHandler appends a handler invoked after ChangePassword.
func (s *CustomerService) AddPasswordChangedHandler(h PasswordUpdatedHandler) {
	s.passwordChangedHandlers = append(s.passwordChangedHandlers, h)
}

// RemovePasswordChangedHandler removes a previously added handler.
func (s *CustomerService) RemovePasswordChangedHandler(h PasswordUpdatedHandler) {
	for i, existing := range s.passwordChangedHandlers {
		if existing == h {
			s.passwordChangedHandlers = append(s.passwordChangedHandlers[:i], s.passwordChangedHandlers[i+1:]...)
			return
		}
	}
}

// AddPasswordResetHandler appends a handler invoked after a password reset.
func (s *CustomerService) AddPasswordResetHandler(h PasswordUpdatedHandler) {
	s.passwordResetHandlers = append(s.passwordResetHandlers, h)
}

// RemovePasswordResetHandler removes a previously added handler.
func (s *CustomerService) RemovePasswordResetHandler(h PasswordUpdatedHandler) {
	for i, existing := range s.passwordResetHandlers {
		if existing == h {
			s.passwordResetHandlers = append(s.passwordResetHandlers[:i], s.passwordResetHandlers[i+1:]...)
			return
		}
	}
}

// --- Validation primitives ---

// CheckCustomer records at most one error code per call: invalidCustomer when
// the customer is missing, emailNotFound when it has no email address, or
// inactiveUser when it is deactivated.
func (s *CustomerService) CheckCustomer(customer *domain.Customer, response *Response) {
	if customer == nil {
		response.AddErrorCode(CodeInvalidCustomer)
	} else if customer.EmailAddress == "" {
		response.AddErrorCode(CodeEmailNotFound)
	} else if customer.Deactivated {
		response.AddErrorCode(CodeInactiveUser)
	}
}

// CheckPassword validates a password and its confirmation. Each empty side
// records its own invalidPassword; passwordMismatch is recorded only when
// both are present and differ.
func (s *CustomerService) CheckPassword(password, confirmation string, response *Response) {
	if password == "" {
		response.AddErrorCode(CodeInvalidPassword)
	}
	if confirmation == "" {
		response.AddErrorCode(CodeInvalidPassword)
	}
	if password != "" && confirmation != "" && password != confirmation {
		response.AddErrorCode(CodePasswordMismatch)
	}
}

// IsPasswordValid reports whether the raw password corresponds to the stored
// hash.
func (s *CustomerService) IsPasswordValid(raw, encoded string) bool {
	return s.encoder.Matches(raw, encoded)
}

// GenerateSecurePassword returns a random 16 character password.
func (s *CustomerService) GenerateSecurePassword() (string, error) {
	return s.generator.Generate(securePasswordLength)
}

// --- Registration and persistence ---

// RegisterCustomer validates the password pair, marks the customer
// registered, persists it with an encoded password, grants the user role,
// and notifies post-registration observers in order.
func (s *CustomerService) RegisterCustomer(ctx context.Context, customer *domain.Customer, password, passwordConfirm string) (*domain.Customer, *Response, error) {
	response := NewResponse()

	s.CheckCustomer(customer, response)
	s.CheckPassword(password, passwordConfirm, response)

	if response.HasErrors() {
		return customer, response, nil
	}

	customer.UnencodedPassword = password

	saved, err := s.SaveCustomer(ctx, customer)
	if err != nil {
		return nil, nil, fmt.Errorf("register customer: %w", err)
	}

	if err := s.grantUserRole(ctx, saved); err != nil {
		return nil, nil, fmt.Errorf("register customer: %w", err)
	}

	for _, observer := range s.postRegisterObservers {
		if err := observer.OnRegistered(ctx, saved); err != nil {
			s.logger.ErrorContext(ctx, "post-registration observer failed",
				slog.String("customer_id", saved.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.sendCourtesyEmail(ctx, s.cfg.RegistrationEmail, saved.EmailAddress, map[string]string{"username": saved.Username})

	s.logger.InfoContext(ctx, "customer registered",
		slog.String("customer_id", saved.ID),
		slog.String("username", saved.Username),
	)

	return saved, response, nil
}

// SaveCustomer persists the customer. A missing ID gets assigned; pending
// plaintext password and challenge answer are encoded and cleared before the
// write, and the first password encode marks the customer registered. The
// cached username entry is invalidated.
func (s *CustomerService) SaveCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}

	if customer.UnencodedPassword != "" {
		encoded, err := s.encoder.Encode(customer.UnencodedPassword)
		if err != nil {
			return nil, fmt.Errorf("encode password: %w", err)
		}
		customer.Password = encoded
		customer.UnencodedPassword = ""
		customer.Registered = true
	}

	if customer.UnencodedChallenge != "" {
		encoded, err := s.encoder.Encode(customer.UnencodedChallenge)
		if err != nil {
			return nil, fmt.Errorf("encode challenge answer: %w", err)
		}
		customer.ChallengeAnswer = encoded
		customer.UnencodedChallenge = ""
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, customer.Username)
	}

	if s.events != nil {
		if err := s.events.PublishCustomerUpdated(ctx, customer); err != nil {
			s.logger.WarnContext(ctx, "customer updated event not published",
				slog.String("customer_id", customer.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return customer, nil
}

// CreateCustomer returns a new unsaved customer with a generated ID.
func (s *CustomerService) CreateCustomer() *domain.Customer {
	return &domain.Customer{ID: uuid.New().String(), ReceiveEmail: true}
}

// CreateCustomerFromID returns the stored customer with the given ID, or a
// new unsaved customer carrying that ID when none exists.
func (s *CustomerService) CreateCustomerFromID(ctx context.Context, customerID string) (*domain.Customer, error) {
	if customerID != "" {
		existing, err := s.ReadCustomerByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	} else {
		customerID = uuid.New().String()
	}

	return &domain.Customer{ID: customerID, ReceiveEmail: true}, nil
}

// --- Reads ---

// ReadCustomerByID retrieves a customer by ID, returning nil when absent.
func (s *CustomerService) ReadCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	return readMiss(s.customerRepo.ReadByID(ctx, id))
}

// ReadCustomerByUsername retrieves a customer by username, returning nil when
// absent.
func (s *CustomerService) ReadCustomerByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	return readMiss(s.customerRepo.ReadByUsername(ctx, username))
}

// ReadCustomerByUsernameCacheable retrieves a customer by username through
// the read-through cache when one is configured.
func (s *CustomerService) ReadCustomerByUsernameCacheable(ctx context.Context, username string) (*domain.Customer, error) {
	if s.cache != nil {
		return readMiss(s.cache.ReadByUsername(ctx, username))
	}
	return s.ReadCustomerByUsername(ctx, username)
}

// ReadCustomerByEmail retrieves a customer by email address, returning nil
// when absent.
func (s *CustomerService) ReadCustomerByEmail(ctx context.Context, emailAddress string) (*domain.Customer, error) {
	return readMiss(s.customerRepo.ReadByEmail(ctx, emailAddress))
}

// ReadCustomerByExternalID retrieves a customer by external system ID,
// returning nil when absent.
func (s *CustomerService) ReadCustomerByExternalID(ctx context.Context, externalID string) (*domain.Customer, error) {
	return readMiss(s.customerRepo.ReadByExternalID(ctx, externalID))
}

// ReadBatchCustomers returns a page of customers ordered by ID.
func (s *CustomerService) ReadBatchCustomers(ctx context.Context, offset, limit int) ([]domain.Customer, error) {
	return s.customerRepo.ReadBatch(ctx, offset, limit)
}

// ReadNumberOfCustomers returns the total customer count.
func (s *CustomerService) ReadNumberOfCustomers(ctx context.Context) (int64, error) {
	return s.customerRepo.Count(ctx)
}

// DeleteCustomer removes the customer's roles, then the customer itself.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	customer, err := s.ReadCustomerByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperrors.NotFound("customer", customerID)
	}

	if err := s.roleRepo.RemoveCustomerRolesByCustomerID(ctx, customerID); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, customer.Username)
	}

	if s.events != nil {
		if err := s.events.PublishCustomerDeleted(ctx, customerID, customer.Username); err != nil {
			s.logger.WarnContext(ctx, "customer deleted event not published",
				slog.String("customer_id", customerID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "customer deleted", slog.String("customer_id", customerID))
	return nil
}

// --- Password lifecycle ---

// ChangePassword applies the new password after validating the pair. Whether
// the caller proved knowledge of the current password is a transport concern;
// the carried CurrentPassword is not checked here. The change-required flag
// is set from the request, and password-changed handlers run in order with
// the new plaintext.
func (s *CustomerService) ChangePassword(ctx context.Context, change domain.PasswordChange) (*domain.Customer, *Response, error) {
	response := NewResponse()

	customer, err := s.ReadCustomerByUsername(ctx, change.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("change password: %w", err)
	}

	s.CheckCustomer(customer, response)
	s.CheckPassword(change.NewPassword, change.NewPasswordConfirm, response)

	if response.HasErrors() {
		return nil, response, nil
	}

	customer.UnencodedPassword = change.NewPassword
	customer.PasswordChangeRequired = change.PasswordChangeRequired

	saved, err := s.SaveCustomer(ctx, customer)
	if err != nil {
		return nil, nil, fmt.Errorf("change password: %w", err)
	}

	s.notifyPasswordHandlers(ctx, s.passwordChangedHandlers, saved, change.NewPassword)
	s.sendCourtesyEmail(ctx, s.cfg.ChangePasswordEmail, saved.EmailAddress, map[string]string{"username": saved.Username})

	s.logger.InfoContext(ctx, "password changed", slog.String("customer_id", saved.ID))
	return saved, response, nil
}

// ResetPassword assigns a freshly generated password at the configured token
// length and notifies password-reset handlers with the new plaintext.
func (s *CustomerService) ResetPassword(ctx context.Context, reset domain.PasswordReset) (*domain.Customer, *Response, error) {
	response := NewResponse()

	customer, err := s.ReadCustomerByUsername(ctx, reset.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("reset password: %w", err)
	}

	s.CheckCustomer(customer, response)
	if response.HasErrors() {
		return nil, response, nil
	}

	newPassword, err := s.generator.Generate(s.cfg.PasswordTokenLength)
	if err != nil {
		return nil, nil, fmt.Errorf("reset password: %w", err)
	}

	customer.UnencodedPassword = newPassword
	customer.PasswordChangeRequired = reset.PasswordChangeRequired

	saved, err := s.SaveCustomer(ctx, customer)
	if err != nil {
		return nil, nil, fmt.Errorf("reset password: %w", err)
	}

	s.notifyPasswordHandlers(ctx, s.passwordResetHandlers, saved, newPassword)

	s.logger.InfoContext(ctx, "password reset", slog.String("customer_id", saved.ID))
	return saved, response, nil
}

// SendForgotPasswordNotification creates a single-use reset token and emails
// the customer a link carrying the raw token. Only the encoded form is
// stored. Previously issued tokens are invalidated first.
func (s *CustomerService) SendForgotPasswordNotification(ctx context.Context, username, resetURL string) (*Response, error) {
	response := NewResponse()

	customer, err := s.ReadCustomerByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("forgot password: %w", err)
	}

	s.CheckCustomer(customer, response)
	if response.HasErrors() {
		return response, nil
	}

	if err := s.InvalidateAllTokensForCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("forgot password: %w", err)
	}

	rawToken, err := s.generator.Generate(s.cfg.PasswordTokenLength)
	if err != nil {
		return nil, fmt.Errorf("forgot password: %w", err)
	}
	rawToken = strings.ToLower(rawToken)

	encodedToken, err := s.encoder.Encode(rawToken)
	if err != nil {
		return nil, fmt.Errorf("forgot password: %w", err)
	}

	token := &domain.PasswordResetToken{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		TokenHash:  encodedToken,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("forgot password: %w", err)
	}

	fullResetURL := appendTokenToURL(resetURL, rawToken)

	err = s.sender.Send(ctx, customer.EmailAddress, s.cfg.ForgotPasswordEmail, map[string]string{
		"token":            rawToken,
		"resetPasswordUrl": fullResetURL,
	})
	if err != nil {
		return nil, fmt.Errorf("forgot password: %w", err)
	}

	s.logger.InfoContext(ctx, "forgot password notification sent",
		slog.String("customer_id", customer.ID),
	)

	return response, nil
}

// SendForgotUsernameNotification emails the username belonging to the given
// address. A missing account records emailNotFound; a deactivated account
// records inactiveUser.
func (s *CustomerService) SendForgotUsernameNotification(ctx context.Context, emailAddress string) (*Response, error) {
	response := NewResponse()

	customer, err := s.ReadCustomerByEmail(ctx, emailAddress)
	if err != nil {
		return nil, fmt.Errorf("forgot username: %w", err)
	}

	if customer == nil {
		response.AddErrorCode(CodeEmailNotFound)
		return response, nil
	}
	if customer.Deactivated {
		response.AddErrorCode(CodeInactiveUser)
		return response, nil
	}

	err = s.sender.Send(ctx, customer.EmailAddress, s.cfg.ForgotUsernameEmail, map[string]string{
		"username": customer.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("forgot username: %w", err)
	}

	s.logger.InfoContext(ctx, "forgot username notification sent",
		slog.String("customer_id", customer.ID),
	)

	return response, nil
}

// ResetPasswordUsingToken verifies a raw token from a forgot-password email
// and applies the new password. The matched token is consumed and any other
// outstanding tokens are invalidated.
func (s *CustomerService) ResetPasswordUsingToken(ctx context.Context, username, rawToken, password, passwordConfirm string) (*Response, error) {
	response := NewResponse()

	customer, err := s.ReadCustomerByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("reset password using token: %w", err)
	}

	s.CheckCustomer(customer, response)

	var match *domain.PasswordResetToken
	if !response.HasErrors() {
		match, err = s.matchToken(ctx, customer, rawToken, response)
		if err != nil {
			return nil, fmt.Errorf("reset password using token: %w", err)
		}
	}

	s.CheckPassword(password, passwordConfirm, response)

	if response.HasErrors() {
		return response, nil
	}

	customer.UnencodedPassword = password
	customer.PasswordChangeRequired = false

	saved, err := s.SaveCustomer(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("reset password using token: %w", err)
	}

	if err := s.tokenRepo.MarkUsed(ctx, match.ID); err != nil {
		return nil, fmt.Errorf("reset password using token: %w", err)
	}
	if err := s.InvalidateAllTokensForCustomer(ctx, saved); err != nil {
		return nil, fmt.Errorf("reset password using token: %w", err)
	}

	s.notifyPasswordHandlers(ctx, s.passwordResetHandlers, saved, password)

	s.logger.InfoContext(ctx, "password reset via token", slog.String("customer_id", saved.ID))
	return response, nil
}

// InvalidateAllTokensForCustomer consumes every outstanding reset token for
// the customer.
func (s *CustomerService) InvalidateAllTokensForCustomer(ctx context.Context, customer *domain.Customer) error {
	tokens, err := s.tokenRepo.ReadUnusedByCustomerID(ctx, customer.ID)
	if err != nil {
		return fmt.Errorf("invalidate tokens: %w", err)
	}

	for _, token := range tokens {
		if err := s.tokenRepo.MarkUsed(ctx, token.ID); err != nil {
			return fmt.Errorf("invalidate tokens: %w", err)
		}
	}

	return nil
}

// --- Internals ---

// matchToken finds the outstanding token matching the raw value. It records
// invalidToken when none matches and tokenExpired when the match is stale.
func (s *CustomerService) matchToken(ctx context.Context, customer *domain.Customer, rawToken string, response *Response) (*domain.PasswordResetToken, error) {
	if rawToken == "" {
		response.AddErrorCode(CodeInvalidToken)
		return nil, nil
	}
	rawToken = strings.ToLower(rawToken)

	tokens, err := s.tokenRepo.ReadUnusedByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	for i := range tokens {
		if s.encoder.Matches(rawToken, tokens[i].TokenHash) {
			ttl := time.Duration(s.cfg.TokenExpiredMinutes) * time.Minute
			if tokens[i].Expired(ttl, time.Now().UTC()) {
				response.AddErrorCode(CodeTokenExpired)
				return nil, nil
			}
			return &tokens[i], nil
		}
	}

	response.AddErrorCode(CodeInvalidToken)
	return nil, nil
}

func (s *CustomerService) grantUserRole(ctx context.Context, customer *domain.Customer) error {
	role, err := s.roleRepo.FindRoleByName(ctx, domain.RoleUser)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "user role missing, registration proceeds without grant",
				slog.String("role", domain.RoleUser),
			)
			return nil
		}
		return err
	}
	return s.roleRepo.AddRoleToCustomer(ctx, customer.ID, role.ID)
}

func (s *CustomerService) notifyPasswordHandlers(ctx context.Context, handlers []PasswordUpdatedHandler, customer *domain.Customer, newPassword string) {
	for _, handler := range handlers {
		if err := handler.PasswordUpdated(ctx, customer, newPassword); err != nil {
			s.logger.ErrorContext(ctx, "password updated handler failed",
				slog.String("customer_id", customer.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// sendCourtesyEmail delivers an optional notification. An empty body template
// disables the notification, and a delivery failure never fails the operation
// that triggered it.
func (s *CustomerService) sendCourtesyEmail(ctx context.Context, info email.Info, to string, vars map[string]string) {
	if info.BodyTemplate == "" || to == "" {
		return
	}
	if err := s.sender.Send(ctx, to, info, vars); err != nil {
		s.logger.WarnContext(ctx, "courtesy email not sent",
			slog.String("to", to),
			slog.String("error", err.Error()),
		)
	}
}

// appendTokenToURL attaches the raw token as a query parameter, using & when
// the URL already carries a query string.
func appendTokenToURL(resetURL, token string) string {
	if strings.Contains(resetURL, "?") {
		return resetURL + "&token=" + token
	}
	return resetURL + "?token=" + token
}

// readMiss translates a repository not-found into a nil customer so callers
// can accumulate validation codes instead of branching on errors.
func readMiss(customer *domain.Customer, err error) (*domain.Customer, error) {
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return customer, nil
}
