package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/multierr"
)

// maxParallelSends bounds the fan-out when a reply spans several messages.
const maxParallelSends = 5

type Telegram struct {
	http    *resty.Client
	chatIDs []int64
}

// NewTelegram returns nil when no token is configured; a nil *Telegram is
// a disabled notifier.
func NewTelegram(token string, chatIDs []int64) *Telegram {
	return newTelegramWithBase(token, "https://api.telegram.org", chatIDs)
}

func newTelegramWithBase(token, base string, chatIDs []int64) *Telegram {
	if token == "" {
		return nil
	}
	client := resty.New().
		SetBaseURL(base + "/bot" + token).
		SetTimeout(10 * time.Second)
	return &Telegram{http: client, chatIDs: chatIDs}
}

type sendMessagePayload struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// SendTo delivers one HTML message to one chat.
func (t *Telegram) SendTo(ctx context.Context, chatID int64, html string) error {
	if t == nil {
		return errors.New("telegram disabled")
	}
	resp, err := t.http.R().
		SetContext(ctx).
		SetBody(sendMessagePayload{
			ChatID:                chatID,
			Text:                  html,
			ParseMode:             "HTML",
			DisableWebPagePreview: true,
		}).
		Post("/sendMessage")
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("telegram send: status %d", resp.StatusCode())
	}
	return nil
}

// SendBlocks delivers a multi-message reply with bounded parallelism.
func (t *Telegram) SendBlocks(ctx context.Context, chatID int64, blocks []string) error {
	if t == nil {
		return errors.New("telegram disabled")
	}
	sem := make(chan struct{}, maxParallelSends)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for _, b := range blocks {
		block := b
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()
			if err := t.SendTo(ctx, chatID, block); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errs
}

// Send broadcasts an alert to the configured ops chats.
func (t *Telegram) Send(ctx context.Context, title, text string) error {
	if t == nil || len(t.chatIDs) == 0 {
		return errors.New("telegram disabled")
	}
	var err error
	for _, chatID := range t.chatIDs {
		err = multierr.Append(err, t.SendTo(ctx, chatID, "<b>"+title+"</b>\n"+text))
	}
	return err
}
