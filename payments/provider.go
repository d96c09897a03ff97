// Package payments wraps the card processor behind a small provider
// interface so services and tests never touch the Stripe SDK directly.
package payments

import "context"

type IntentStatus string

const (
	// StatusPending covers intents still waiting for a payment method.
	StatusPending IntentStatus = "pending"
	// StatusProcessing means the processor accepted the confirmation but
	// has not reached a terminal state yet.
	StatusProcessing IntentStatus = "processing"
	// StatusRequiresAction means confirmation is asynchronous (3-D Secure
	// or similar); the caller must not treat it as a result.
	StatusRequiresAction IntentStatus = "requires_action"
	StatusSucceeded      IntentStatus = "succeeded"
	StatusFailed         IntentStatus = "failed"
)

// Intent is the provider-neutral view of a payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
	AmountMinor  int64
	Currency     string

	// FailureMessage carries the processor's decline text verbatim when
	// Status is failed.
	FailureMessage string
}

// Provider is the processor collaborator. CreateIntent must honor the
// idempotency key: retrying with the same key may not create a second
// charge.
type Provider interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, idempotencyKey string) (*Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)
	// Refund reverses a paid intent. amountMinor <= 0 refunds in full.
	// Returns the processor's refund identifier.
	Refund(ctx context.Context, intentID string, amountMinor int64) (string, error)
}
