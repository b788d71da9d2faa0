// Package memory records sent messages in process. It backs tests,
// including forced delivery failures for the reconciliation-ordering rules.
package memory

import (
	"context"
	"sync"

	"kakeibo/internal/messaging"
)

type SentTemplate struct {
	ReplyToken string
	AltText    string
	Template   messaging.Template
}

type Messenger struct {
	mu        sync.Mutex
	broadcast []string
	templates []SentTemplate

	// FailWith, when set, makes every send return that error without
	// recording anything.
	FailWith error
}

var _ messaging.Messenger = (*Messenger)(nil)

func New() *Messenger {
	return &Messenger{}
}

func (m *Messenger) SendToAll(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.broadcast = append(m.broadcast, text)
	return nil
}

func (m *Messenger) SendTemplate(_ context.Context, replyToken, altText string, tmpl messaging.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.templates = append(m.templates, SentTemplate{ReplyToken: replyToken, AltText: altText, Template: tmpl})
	return nil
}

// Broadcasts returns every text sent so far.
func (m *Messenger) Broadcasts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.broadcast...)
}

// Templates returns every template sent so far.
func (m *Messenger) Templates() []SentTemplate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentTemplate(nil), m.templates...)
}
