package mail

import "context"

// Message is a rendered email ready for dispatch.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer is the provider-agnostic interface every mail adapter must implement.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}
