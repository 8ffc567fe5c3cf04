package domain

import "context"

// EventPublisher announces completed inventory mutations
type EventPublisher interface {
	PublishItemAdded(ctx context.Context, sessionID string, item Item) error
	PublishItemDeleted(ctx context.Context, sessionID string, itemID int) error
}
