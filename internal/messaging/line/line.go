// Package line delivers notifications over the LINE Messaging API.
// Batch notifications are broadcast to everyone who friended the bot; the
// household is the only audience.
package line

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"kakeibo/internal/messaging"
)

type Client struct {
	bot *linebot.Client
}

var _ messaging.Messenger = (*Client)(nil)

// NewFromEnv creates a LINE client from LINE_CHANNEL_SECRET and
// LINE_CHANNEL_TOKEN.
func NewFromEnv() (*Client, error) {
	secret := strings.TrimSpace(os.Getenv("LINE_CHANNEL_SECRET"))
	token := strings.TrimSpace(os.Getenv("LINE_CHANNEL_TOKEN"))
	if secret == "" || token == "" {
		return nil, errors.New("missing LINE_CHANNEL_SECRET or LINE_CHANNEL_TOKEN")
	}
	bot, err := linebot.New(secret, token)
	if err != nil {
		return nil, fmt.Errorf("line client: %w", err)
	}
	return &Client{bot: bot}, nil
}

// Bot exposes the underlying SDK client for webhook request parsing.
func (c *Client) Bot() *linebot.Client {
	return c.bot
}

func (c *Client) SendToAll(ctx context.Context, text string) error {
	if _, err := c.bot.BroadcastMessage(linebot.NewTextMessage(text)).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("broadcast: %w", err)
	}
	return nil
}

func (c *Client) SendTemplate(ctx context.Context, replyToken, altText string, tmpl messaging.Template) error {
	actions := make([]linebot.TemplateAction, 0, len(tmpl.Actions))
	for _, a := range tmpl.Actions {
		actions = append(actions, linebot.NewMessageAction(a.Label, a.Text))
	}
	msg := linebot.NewTemplateMessage(altText, linebot.NewButtonsTemplate("", "", tmpl.Text, actions...))
	if _, err := c.bot.ReplyMessage(replyToken, msg).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("reply template: %w", err)
	}
	return nil
}

// ReplyText answers a webhook event with a plain text message.
func (c *Client) ReplyText(ctx context.Context, replyToken, text string) error {
	if _, err := c.bot.ReplyMessage(replyToken, linebot.NewTextMessage(text)).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("reply: %w", err)
	}
	return nil
}
