package ports

import "context"

// PushMessage is a single push notification addressed to one device token.
type PushMessage struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// PushSender delivers push messages. Implementations must be safe for concurrent use.
type PushSender interface {
	// Send returns nil only when the provider confirmed acceptance of the message.
	Send(ctx context.Context, msg PushMessage) error
}
