// Package messaging defines the outbound notification port. The engine only
// produces text or small template payloads; delivery retries and webhook
// handling belong to the transport.
package messaging

import "context"

// TemplateAction is one tappable choice of a template message.
type TemplateAction struct {
	Label string
	Text  string
}

// Template is a transport-neutral confirm/buttons payload.
type Template struct {
	Text    string
	Actions []TemplateAction
}

// Messenger delivers notifications to the household. A non-nil error means
// the message may not have reached anyone; callers must not advance
// reconciliation state past a failed send.
type Messenger interface {
	SendToAll(ctx context.Context, text string) error
	SendTemplate(ctx context.Context, replyToken, altText string, tmpl Template) error
}
