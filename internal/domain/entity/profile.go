package entity

import (
	"time"

	"github.com/google/uuid"
)

// CreatorProfile is the slice of the creator profile the digest job needs.
type CreatorProfile struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	FullName         string    `json:"full_name"`
	TelegramUsername string    `json:"telegram_username,omitempty"`
	TelegramChatID   int64     `json:"telegram_chat_id,omitempty"` // Zero until captured from the bot's /start.
	CreatedAt        time.Time `json:"created_at"`
}

// DisplayName prefers the full name and falls back to the username.
func (p *CreatorProfile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}

	return p.Username
}
