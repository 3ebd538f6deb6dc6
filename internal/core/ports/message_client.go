package ports

import "context"

// SendReceipt is the channel's acknowledgement of one delivered message.
type SendReceipt struct {
	// ProviderMessageID is the channel-side id of the accepted message.
	ProviderMessageID string
}

// MessageClient sends rendered text messages to customers over an external
// channel (WhatsApp via an Evolution API instance in production). Errors are
// transient from the worker's point of view: it retries with backoff until
// the attempt budget runs out.
type MessageClient interface {
	SendText(ctx context.Context, phone string, message string) (SendReceipt, error)
}
