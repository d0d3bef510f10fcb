package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/repository"
)

const usernameKeyPrefix = "profile:customer:username:"

// CustomerCache is a read-through cache over a CustomerRepository. Only
// username lookups are cached; every write path invalidates the cached entry
// so callers that need a current view can keep using the repository directly.
type CustomerCache struct {
	repo   repository.CustomerRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCustomerCache wraps the repository with a Redis cache.
func NewCustomerCache(repo repository.CustomerRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CustomerCache {
	return &CustomerCache{
		repo:   repo,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// cachedCustomer is the serialized form of a cache entry. domain.Customer
// hides its credential hashes from JSON, so entries use their own shape that
// keeps them; authentication reads through this cache and needs the hash.
type cachedCustomer struct {
	ID                     string    `json:"id"`
	Username               string    `json:"username"`
	EmailAddress           string    `json:"email_address"`
	PasswordHash           string    `json:"password_hash"`
	FirstName              string    `json:"first_name,omitempty"`
	LastName               string    `json:"last_name,omitempty"`
	ExternalID             string    `json:"external_id,omitempty"`
	ChallengeQuestionID    string    `json:"challenge_question_id,omitempty"`
	ChallengeAnswerHash    string    `json:"challenge_answer_hash,omitempty"`
	PasswordChangeRequired bool      `json:"password_change_required"`
	ReceiveEmail           bool      `json:"receive_email"`
	Registered             bool      `json:"registered"`
	Deactivated            bool      `json:"deactivated"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func marshalCustomer(customer *domain.Customer) ([]byte, error) {
	return json.Marshal(cachedCustomer{
		ID:                     customer.ID,
		Username:               customer.Username,
		EmailAddress:           customer.EmailAddress,
		PasswordHash:           customer.Password,
		FirstName:              customer.FirstName,
		LastName:               customer.LastName,
		ExternalID:             customer.ExternalID,
		ChallengeQuestionID:    customer.ChallengeQuestionID,
		ChallengeAnswerHash:    customer.ChallengeAnswer,
		PasswordChangeRequired: customer.PasswordChangeRequired,
		ReceiveEmail:           customer.ReceiveEmail,
		Registered:             customer.Registered,
		Deactivated:            customer.Deactivated,
		CreatedAt:              customer.CreatedAt,
		UpdatedAt:              customer.UpdatedAt,
	})
}

func unmarshalCustomer(data []byte) (*domain.Customer, error) {
	var entry cachedCustomer
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &domain.Customer{
		ID:                     entry.ID,
		Username:               entry.Username,
		EmailAddress:           entry.EmailAddress,
		Password:               entry.PasswordHash,
		FirstName:              entry.FirstName,
		LastName:               entry.LastName,
		ExternalID:             entry.ExternalID,
		ChallengeQuestionID:    entry.ChallengeQuestionID,
		ChallengeAnswer:        entry.ChallengeAnswerHash,
		PasswordChangeRequired: entry.PasswordChangeRequired,
		ReceiveEmail:           entry.ReceiveEmail,
		Registered:             entry.Registered,
		Deactivated:            entry.Deactivated,
		CreatedAt:              entry.CreatedAt,
		UpdatedAt:              entry.UpdatedAt,
	}, nil
}

// ReadByUsername returns the cached customer when present, falling back to
// the underlying repository on a miss. Cache failures degrade to a plain
// repository read.
func (c *CustomerCache) ReadByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	key := usernameKeyPrefix + username

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if cached, err := unmarshalCustomer(data); err == nil {
			return cached, nil
		}
		// Corrupt entry; drop it and fall through to the repository.
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "customer cache read failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
	}

	customer, err := c.repo.ReadByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if data, err := marshalCustomer(customer); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "customer cache write failed",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
		}
	}

	return customer, nil
}

// Invalidate drops the cached entry for the given username.
func (c *CustomerCache) Invalidate(ctx context.Context, username string) {
	if username == "" {
		return
	}
	if err := c.client.Del(ctx, usernameKeyPrefix+username).Err(); err != nil {
		c.logger.WarnContext(ctx, "customer cache invalidation failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
	}
}
