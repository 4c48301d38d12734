// Package notification implements outbound digest delivery channels.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"creatorkit/config"
	"creatorkit/internal/domain/service"
	"creatorkit/internal/errors"
)

const defaultTelegramAPIURL = "https://api.telegram.org"

// telegramSender delivers digests through the Telegram Bot API sendMessage
// method. The chat id must have been captured from the bot's /start; a bare
// public handle cannot receive proactive messages.
type telegramSender struct {
	apiURL     string
	botToken   string
	httpClient *http.Client
}

// NewTelegramSender is the constructor for the Telegram digest sender.
func NewTelegramSender(cfg *config.Config) (service.DigestSender, error) {
	if cfg.Telegram == nil || cfg.Telegram.BotToken == "" {
		return nil, errors.New("telegram bot token is not configured")
	}

	timeout := 10 * time.Second
	if cfg.Sync != nil && cfg.Sync.RequestTimeout > 0 {
		timeout = cfg.Sync.RequestTimeout
	}

	return &telegramSender{
		apiURL:     defaultTelegramAPIURL,
		botToken:   cfg.Telegram.BotToken,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers one message to a chat.
func (s *telegramSender) Send(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return errors.Wrap(err, "failed to encode sendMessage payload")
	}

	endpoint := s.apiURL + "/bot" + s.botToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build sendMessage request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "telegram request failed")
	}
	defer resp.Body.Close()

	var answer sendMessageResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&answer); err != nil {
		return errors.Wrap(err, "failed to decode telegram answer")
	}
	if !answer.OK {
		return errors.Errorf("telegram rejected sendMessage (status %s): %s",
			strconv.Itoa(resp.StatusCode), answer.Description)
	}

	return nil
}
