package domain

// ChallengeQuestion is a security question a customer may answer during
// registration and later use to recover an account.
type ChallengeQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}
