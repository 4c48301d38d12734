package postgres

import (
	"context"

	"creatorkit/internal/domain/entity"
	"creatorkit/internal/domain/repository"
	"creatorkit/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// profileRepository implements the read-only domain.ProfileRepository interface using GORM.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// FindByID retrieves one creator profile.
func (repo *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CreatorProfile, error) {
	var profileM model.CreatorProfileModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find creator profile")
	}

	return toProfileDomain(&profileM), nil
}

// FindDigestSubscribers retrieves profiles that registered a Telegram handle.
func (repo *profileRepository) FindDigestSubscribers(ctx context.Context) ([]*entity.CreatorProfile, error) {
	var profileModels []model.CreatorProfileModel
	err := repo.db.WithContext(ctx).
		Where("telegram_username <> ''").
		Order("created_at ASC").
		Find(&profileModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list digest subscribers")
	}

	profiles := make([]*entity.CreatorProfile, 0, len(profileModels))
	for i := range profileModels {
		profiles = append(profiles, toProfileDomain(&profileModels[i]))
	}

	return profiles, nil
}

// toProfileDomain converts a GORM CreatorProfileModel to a domain CreatorProfile entity.
func toProfileDomain(data *model.CreatorProfileModel) *entity.CreatorProfile {
	if data == nil {
		return nil
	}

	return &entity.CreatorProfile{
		ID:               data.ID,
		Username:         data.Username,
		FullName:         data.FullName,
		TelegramUsername: data.TelegramUsername,
		TelegramChatID:   data.TelegramChatID,
		CreatedAt:        data.CreatedAt,
	}
}
