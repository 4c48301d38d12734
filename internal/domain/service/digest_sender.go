package service

import "context"

// DigestSender delivers a formatted digest message to a creator's chat.
// The chat id is the bot-captured identifier, not the public handle.
type DigestSender interface {
	Send(ctx context.Context, chatID int64, text string) error
}
