package amqp

import (
	"encoding/json"
	"time"

	"kakeibo/internal/messaging"
)

const (
	KindBroadcast = "broadcast"
	KindTemplate  = "template"
)

// NotificationMessage is the queued form of one outbound notification.
type NotificationMessage struct {
	Kind       string             `json:"kind"`
	Text       string             `json:"text"`
	ReplyToken string             `json:"reply_token,omitempty"`
	AltText    string             `json:"alt_text,omitempty"`
	Template   messaging.Template `json:"template,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
}

func NewBroadcastMessage(text string) *NotificationMessage {
	return &NotificationMessage{Kind: KindBroadcast, Text: text, Timestamp: time.Now()}
}

func NewTemplateMessage(replyToken, altText string, tmpl messaging.Template) *NotificationMessage {
	return &NotificationMessage{
		Kind:       KindTemplate,
		ReplyToken: replyToken,
		AltText:    altText,
		Template:   tmpl,
		Timestamp:  time.Now(),
	}
}

func (m *NotificationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func NotificationMessageFromJSON(data []byte) (*NotificationMessage, error) {
	var msg NotificationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
