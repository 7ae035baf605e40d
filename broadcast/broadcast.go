package broadcast

import "context"

// CredentialChanged signals that the persisted credential was written or
// removed by some running client. Subscribers re-read storage and reconcile.
const CredentialChanged = "credential_changed"

// Handler receives the event name of a broadcast published by another
// execution context. A broadcaster never delivers a context's own publishes
// back to it.
type Handler = func(event string)

// Broadcaster is the cross-context publish/subscribe channel shared by all
// running clients of one storefront installation.
type Broadcaster interface {
	Publish(ctx context.Context, event string) error
	Subscribe(handler Handler) (unsubscribe func())
}

// Message is the wire form of a broadcast. Origin identifies the publishing
// context so subscribers can drop their own messages.
type Message struct {
	Origin string `json:"origin"`
	Event  string `json:"event"`
}
