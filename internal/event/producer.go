package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/ProfileGo/internal/domain"
	pkgkafka "github.com/utafrali/ProfileGo/pkg/kafka"
)

// Kafka topic constants for customer domain events.
const (
	TopicCustomerRegistered      = "profile.customer.registered"
	TopicCustomerUpdated         = "profile.customer.updated"
	TopicCustomerPasswordChanged = "profile.customer.password_changed"
	TopicCustomerDeleted         = "profile.customer.deleted"
)

// Aggregate type constant.
const AggregateTypeCustomer = "customer"

// Source identifier for events originating from the profile service.
const SourceProfileService = "profile-service"

// CustomerRegisteredData is the payload for a customer.registered event.
type CustomerRegisteredData struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	EmailAddress string `json:"email_address"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
}

// CustomerUpdatedData is the payload for a customer.updated event.
type CustomerUpdatedData struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	EmailAddress string `json:"email_address"`
	Deactivated  bool   `json:"deactivated"`
}

// CustomerPasswordChangedData is the payload for a customer.password_changed
// event. It carries no secret material.
type CustomerPasswordChangedData struct {
	CustomerID             string `json:"customer_id"`
	Username               string `json:"username"`
	PasswordChangeRequired bool   `json:"password_change_required"`
}

// CustomerDeletedData is the payload for a customer.deleted event.
type CustomerDeletedData struct {
	CustomerID string `json:"customer_id"`
	Username   string `json:"username"`
}

// Producer publishes customer domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the profile service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCustomerRegistered publishes a customer.registered event.
func (p *Producer) PublishCustomerRegistered(ctx context.Context, customer *domain.Customer) error {
	data := CustomerRegisteredData{
		ID:           customer.ID,
		Username:     customer.Username,
		EmailAddress: customer.EmailAddress,
		FirstName:    customer.FirstName,
		LastName:     customer.LastName,
	}

	return p.publish(ctx, TopicCustomerRegistered, customer.ID, data)
}

// PublishCustomerUpdated publishes a customer.updated event.
func (p *Producer) PublishCustomerUpdated(ctx context.Context, customer *domain.Customer) error {
	data := CustomerUpdatedData{
		ID:           customer.ID,
		Username:     customer.Username,
		EmailAddress: customer.EmailAddress,
		Deactivated:  customer.Deactivated,
	}

	return p.publish(ctx, TopicCustomerUpdated, customer.ID, data)
}

// PublishPasswordChanged publishes a customer.password_changed event.
func (p *Producer) PublishPasswordChanged(ctx context.Context, customer *domain.Customer) error {
	data := CustomerPasswordChangedData{
		CustomerID:             customer.ID,
		Username:               customer.Username,
		PasswordChangeRequired: customer.PasswordChangeRequired,
	}

	return p.publish(ctx, TopicCustomerPasswordChanged, customer.ID, data)
}

// PublishCustomerDeleted publishes a customer.deleted event.
func (p *Producer) PublishCustomerDeleted(ctx context.Context, customerID, username string) error {
	data := CustomerDeletedData{
		CustomerID: customerID,
		Username:   username,
	}

	return p.publish(ctx, TopicCustomerDeleted, customerID, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, AggregateTypeCustomer, SourceProfileService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published customer event",
		slog.String("topic", topic),
		slog.String("customer_id", aggregateID),
	)

	return nil
}
