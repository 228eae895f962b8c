package interfaces

import "context"

// Notifier defines operations against the destination messaging API. Both
// calls are single-attempt with their own timeouts; callers decide fallback
// behavior on error.
type Notifier interface {
	// SendText posts a text message to the configured chat
	SendText(ctx context.Context, text string) error

	// SendDocument uploads a named binary blob with an optional caption
	SendDocument(ctx context.Context, filename string, data []byte, caption string) error
}
