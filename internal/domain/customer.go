package domain

import (
	"time"
)

// Customer represents a customer account, registered or anonymous.
type Customer struct {
	ID                     string    `json:"id"`
	Username               string    `json:"username"`
	EmailAddress           string    `json:"email_address"`
	Password               string    `json:"-"`
	UnencodedPassword      string    `json:"-"`
	FirstName              string    `json:"first_name,omitempty"`
	LastName               string    `json:"last_name,omitempty"`
	ExternalID             string    `json:"external_id,omitempty"`
	ChallengeQuestionID    string    `json:"challenge_question_id,omitempty"`
	ChallengeAnswer        string    `json:"-"`
	UnencodedChallenge     string    `json:"-"`
	PasswordChangeRequired bool      `json:"password_change_required"`
	ReceiveEmail           bool      `json:"receive_email"`
	Registered             bool      `json:"registered"`
	Deactivated            bool      `json:"deactivated"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// PasswordResetToken is a stored, encoded single-use token for the
// forgot-password flow. TokenHash holds the encoded form; the raw token is
// only ever sent to the customer.
type PasswordResetToken struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	TokenHash  string    `json:"-"`
	Used       bool      `json:"used"`
	CreatedAt  time.Time `json:"created_at"`
}

// Expired reports whether the token was created more than ttl before now.
func (t *PasswordResetToken) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(t.CreatedAt) > ttl
}

// PasswordReset carries the inputs of a reset-password request.
type PasswordReset struct {
	Username               string
	Email                  string
	PasswordChangeRequired bool
	SendResetEmail         bool
}

// PasswordChange carries the inputs of a change-password request.
// CurrentPassword is carried for callers that verify it before applying the
// change; the lifecycle itself only validates the new pair.
type PasswordChange struct {
	PasswordReset
	CurrentPassword    string
	NewPassword        string
	NewPasswordConfirm string
}
