package repository

import (
	"context"

	"creatorkit/internal/domain/entity"
	"creatorkit/internal/errors"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a creator profile is not found.
var ErrProfileNotFound = errors.New("creator profile not found")

// ProfileRepository defines the read interface over creator profiles the
// digest job needs. Profile CRUD itself lives outside this service.
type ProfileRepository interface {
	// FindByID retrieves one creator profile.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CreatorProfile, error)

	// FindDigestSubscribers retrieves profiles that opted into the daily
	// digest by registering a Telegram handle.
	FindDigestSubscribers(ctx context.Context) ([]*entity.CreatorProfile, error)
}
