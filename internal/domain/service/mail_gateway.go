package service

import "context"

// MailGateway is the contract the checkout workflow requires from the
// external notification collaborator: a message either yields an opaque
// message reference or a definite failure.
type MailGateway interface {
	// Send delivers an email and returns the gateway's message reference.
	Send(ctx context.Context, to, subject, body string) (messageID string, err error)
}
