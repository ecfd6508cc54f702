package ports

import "context"

// CreateMessageInput carries the data needed to post a message.
type CreateMessageInput struct {
	Author  string
	Content string
	// IdempotencyKey is optional; repeated keys replay the first result.
	IdempotencyKey string
}

// MessageResult is returned by the service after creating a message.
type MessageResult struct {
	ID string
	// AlreadyExisted is true when the Idempotency-Key matched an earlier message.
	AlreadyExisted bool
}

// MessageService defines use-case operations for messages.
type MessageService interface {
	CreateMessage(ctx context.Context, input CreateMessageInput) (*MessageResult, error)
}
