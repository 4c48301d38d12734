package postgres

import (
	"context"
	"time"

	"creatorkit/internal/domain/entity"
	domainerrors "creatorkit/internal/domain/errors"
	"creatorkit/internal/domain/repository"
	"creatorkit/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// socialAccountRepository implements the domain.SocialAccountRepository interface using GORM.
type socialAccountRepository struct {
	db *gorm.DB
}

// NewSocialAccountRepository is the constructor for socialAccountRepository.
func NewSocialAccountRepository(db *gorm.DB) repository.SocialAccountRepository {
	return &socialAccountRepository{db: db}
}

// FindByOwnerAndPlatform retrieves the account linked by an owner for one platform.
func (repo *socialAccountRepository) FindByOwnerAndPlatform(ctx context.Context, ownerID uuid.UUID, platform entity.Platform) (*entity.SocialAccount, error) {
	var accountM model.SocialAccountModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ? AND platform = ?", ownerID, platform.String()).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSocialAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find social account")
	}

	return toSocialAccountDomain(&accountM), nil
}

// FindByOwner retrieves all accounts linked by an owner.
func (repo *socialAccountRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.SocialAccount, error) {
	var accountModels []model.SocialAccountModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&accountModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list social accounts by owner")
	}

	return toSocialAccountDomainSlice(accountModels), nil
}

// FindConnected retrieves every connected account, across all platforms.
func (repo *socialAccountRepository) FindConnected(ctx context.Context) ([]*entity.SocialAccount, error) {
	var accountModels []model.SocialAccountModel
	err := repo.db.WithContext(ctx).
		Where("is_connected = ?", true).
		Order("created_at ASC").
		Find(&accountModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list connected accounts")
	}

	return toSocialAccountDomainSlice(accountModels), nil
}

// FindConnectedByOwner retrieves an owner's connected accounts.
func (repo *socialAccountRepository) FindConnectedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.SocialAccount, error) {
	var accountModels []model.SocialAccountModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ? AND is_connected = ?", ownerID, true).
		Order("created_at ASC").
		Find(&accountModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list connected accounts by owner")
	}

	return toSocialAccountDomainSlice(accountModels), nil
}

// FindExpiringBefore retrieves connected accounts whose credential expires
// before the deadline. Rows with a NULL expiry are excluded by the comparison.
func (repo *socialAccountRepository) FindExpiringBefore(ctx context.Context, deadline time.Time) ([]*entity.SocialAccount, error) {
	var accountModels []model.SocialAccountModel
	err := repo.db.WithContext(ctx).
		Where("is_connected = ? AND token_expires_at < ?", true, deadline).
		Order("token_expires_at ASC").
		Find(&accountModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list expiring accounts")
	}

	return toSocialAccountDomainSlice(accountModels), nil
}

// Upsert inserts the account, or overwrites the credential and identity fields
// of the existing (owner_id, platform) row, re-enabling is_connected. The
// conflict target makes relinking race-free without an explicit lock.
func (repo *socialAccountRepository) Upsert(ctx context.Context, account *entity.SocialAccount) error {
	accountM := fromSocialAccountDomain(account)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}, {Name: "platform"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"platform_user_id",
				"platform_username",
				"access_token",
				"refresh_token",
				"token_expires_at",
				"is_connected",
				"updated_at",
			}),
		}).
		Create(accountM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountNotFound.WrapMessage("owner profile does not exist")
		}

		return errors.Wrap(err, "failed to upsert social account")
	}

	// On conflict the generated ID belongs to the pre-existing row; read the
	// stored row back so the entity carries the real key.
	var stored model.SocialAccountModel
	err = repo.db.WithContext(ctx).
		Where("owner_id = ? AND platform = ?", accountM.OwnerID, accountM.Platform).
		First(&stored).Error
	if err != nil {
		return errors.Wrap(err, "failed to reload upserted social account")
	}

	account.ID = stored.ID
	account.CreatedAt = stored.CreatedAt
	account.UpdatedAt = stored.UpdatedAt

	return nil
}

// UpdateCredential persists a freshly refreshed token ciphertext and expiry.
func (repo *socialAccountRepository) UpdateCredential(ctx context.Context, id uuid.UUID, accessToken string, expiresAt *time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SocialAccountModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"access_token":     accessToken,
			"token_expires_at": expiresAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update credential")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSocialAccountNotFound
	}

	return nil
}

// UpdateSyncCache updates the denormalized follower count and sync timestamp.
func (repo *socialAccountRepository) UpdateSyncCache(ctx context.Context, id uuid.UUID, followersCount int, syncedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SocialAccountModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"followers_count": followersCount,
			"last_synced_at":  syncedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update sync cache")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSocialAccountNotFound
	}

	return nil
}

// MarkDisconnected soft-disables the account, keeping the row for audit.
func (repo *socialAccountRepository) MarkDisconnected(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SocialAccountModel{}).
		Where("id = ?", id).
		Update("is_connected", false)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark account disconnected")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSocialAccountNotFound
	}

	return nil
}

// Delete hard-deletes the account. Snapshots cascade at the database level.
func (repo *socialAccountRepository) Delete(ctx context.Context, ownerID uuid.UUID, platform entity.Platform) error {
	result := repo.db.WithContext(ctx).
		Where("owner_id = ? AND platform = ?", ownerID, platform.String()).
		Delete(&model.SocialAccountModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete social account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSocialAccountNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toSocialAccountDomain converts a GORM SocialAccountModel to a domain SocialAccount entity.
func toSocialAccountDomain(data *model.SocialAccountModel) *entity.SocialAccount {
	if data == nil {
		return nil
	}

	return &entity.SocialAccount{
		ID:               data.ID,
		OwnerID:          data.OwnerID,
		Platform:         entity.Platform(data.Platform),
		PlatformUserID:   data.PlatformUserID,
		PlatformUsername: data.PlatformUsername,
		AccessToken:      data.AccessToken,
		RefreshToken:     data.RefreshToken,
		TokenExpiresAt:   data.TokenExpiresAt,
		FollowersCount:   data.FollowersCount,
		IsConnected:      data.IsConnected,
		LastSyncedAt:     data.LastSyncedAt,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromSocialAccountDomain converts a domain SocialAccount entity to a GORM SocialAccountModel.
func fromSocialAccountDomain(data *entity.SocialAccount) *model.SocialAccountModel {
	if data == nil {
		return nil
	}

	return &model.SocialAccountModel{
		ID:               data.ID,
		OwnerID:          data.OwnerID,
		Platform:         data.Platform.String(),
		PlatformUserID:   data.PlatformUserID,
		PlatformUsername: data.PlatformUsername,
		AccessToken:      data.AccessToken,
		RefreshToken:     data.RefreshToken,
		TokenExpiresAt:   data.TokenExpiresAt,
		FollowersCount:   data.FollowersCount,
		IsConnected:      data.IsConnected,
		LastSyncedAt:     data.LastSyncedAt,
	}
}

func toSocialAccountDomainSlice(models []model.SocialAccountModel) []*entity.SocialAccount {
	accounts := make([]*entity.SocialAccount, 0, len(models))
	for i := range models {
		accounts = append(accounts, toSocialAccountDomain(&models[i]))
	}

	return accounts
}
