package event

import (
	"context"

	"github.com/utafrali/ProfileGo/internal/domain"
)

// RegistrationObserver publishes a customer.registered event after a
// customer completes registration. It plugs into the customer service's
// post-registration observer list.
type RegistrationObserver struct {
	producer *Producer
}

// NewRegistrationObserver creates a Kafka-backed registration observer.
func NewRegistrationObserver(producer *Producer) *RegistrationObserver {
	return &RegistrationObserver{producer: producer}
}

// OnRegistered publishes the registration event.
func (o *RegistrationObserver) OnRegistered(ctx context.Context, customer *domain.Customer) error {
	return o.producer.PublishCustomerRegistered(ctx, customer)
}

// PasswordEventHandler publishes a customer.password_changed event after a
// password change or reset. The new plaintext never enters the event payload.
type PasswordEventHandler struct {
	producer *Producer
}

// NewPasswordEventHandler creates a Kafka-backed password update handler.
func NewPasswordEventHandler(producer *Producer) *PasswordEventHandler {
	return &PasswordEventHandler{producer: producer}
}

// PasswordUpdated publishes the password changed event.
func (h *PasswordEventHandler) PasswordUpdated(ctx context.Context, customer *domain.Customer, _ string) error {
	return h.producer.PublishPasswordChanged(ctx, customer)
}
