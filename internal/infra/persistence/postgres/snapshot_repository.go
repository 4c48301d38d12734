package postgres

import (
	"context"
	"encoding/json"

	"creatorkit/internal/domain/entity"
	"creatorkit/internal/domain/repository"
	"creatorkit/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// snapshotRepository implements the domain.SnapshotRepository interface using GORM.
type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository is the constructor for snapshotRepository.
func NewSnapshotRepository(db *gorm.DB) repository.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Upsert inserts the snapshot, or overwrites all metric fields of the existing
// (social_account_id, snapshot_date) row. Concurrent syncs of the same day
// converge on one row; last write wins.
func (repo *snapshotRepository) Upsert(ctx context.Context, snapshot *entity.AnalyticsSnapshot) error {
	snapshotM, err := fromSnapshotDomain(snapshot)
	if err != nil {
		return err
	}

	err = repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "social_account_id"}, {Name: "snapshot_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"followers_count",
				"following_count",
				"posts_count",
				"avg_likes",
				"avg_comments",
				"avg_views",
				"engagement_rate",
				"top_posts",
				"demographics",
			}),
		}).
		Create(snapshotM).Error
	if err != nil {
		return errors.Wrap(err, "failed to upsert analytics snapshot")
	}

	snapshot.ID = snapshotM.ID
	snapshot.CreatedAt = snapshotM.CreatedAt

	return nil
}

// FindLatestByAccount retrieves the most recent snapshot for an account.
func (repo *snapshotRepository) FindLatestByAccount(ctx context.Context, accountID uuid.UUID) (*entity.AnalyticsSnapshot, error) {
	var snapshotM model.AnalyticsSnapshotModel
	err := repo.db.WithContext(ctx).
		Where("social_account_id = ?", accountID).
		Order("snapshot_date DESC").
		First(&snapshotM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSnapshotNotFound
		}

		return nil, errors.Wrap(err, "failed to find latest snapshot")
	}

	return toSnapshotDomain(&snapshotM)
}

// FindByAccountAndDate retrieves one snapshot row by its composite key.
func (repo *snapshotRepository) FindByAccountAndDate(ctx context.Context, accountID uuid.UUID, date string) (*entity.AnalyticsSnapshot, error) {
	var snapshotM model.AnalyticsSnapshotModel
	err := repo.db.WithContext(ctx).
		Where("social_account_id = ? AND snapshot_date = ?", accountID, date).
		First(&snapshotM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSnapshotNotFound
		}

		return nil, errors.Wrap(err, "failed to find snapshot by date")
	}

	return toSnapshotDomain(&snapshotM)
}

// --- Mapper Functions ---

// toSnapshotDomain converts a GORM AnalyticsSnapshotModel to a domain AnalyticsSnapshot entity.
func toSnapshotDomain(data *model.AnalyticsSnapshotModel) (*entity.AnalyticsSnapshot, error) {
	if data == nil {
		return nil, nil
	}

	snapshot := &entity.AnalyticsSnapshot{
		ID:              data.ID,
		SocialAccountID: data.SocialAccountID,
		SnapshotDate:    data.SnapshotDate,
		FollowersCount:  data.FollowersCount,
		FollowingCount:  data.FollowingCount,
		PostsCount:      data.PostsCount,
		AvgLikes:        data.AvgLikes,
		AvgComments:     data.AvgComments,
		AvgViews:        data.AvgViews,
		EngagementRate:  data.EngagementRate,
		CreatedAt:       data.CreatedAt,
	}

	if len(data.TopPosts) > 0 {
		if err := json.Unmarshal(data.TopPosts, &snapshot.TopPosts); err != nil {
			return nil, errors.Wrap(err, "failed to decode top posts column")
		}
	}
	if len(data.Demographics) > 0 {
		if err := json.Unmarshal(data.Demographics, &snapshot.Demographics); err != nil {
			return nil, errors.Wrap(err, "failed to decode demographics column")
		}
	}

	return snapshot, nil
}

// fromSnapshotDomain converts a domain AnalyticsSnapshot entity to a GORM AnalyticsSnapshotModel.
func fromSnapshotDomain(data *entity.AnalyticsSnapshot) (*model.AnalyticsSnapshotModel, error) {
	if data == nil {
		return nil, nil
	}

	snapshotM := &model.AnalyticsSnapshotModel{
		ID:              data.ID,
		SocialAccountID: data.SocialAccountID,
		SnapshotDate:    data.SnapshotDate,
		FollowersCount:  data.FollowersCount,
		FollowingCount:  data.FollowingCount,
		PostsCount:      data.PostsCount,
		AvgLikes:        data.AvgLikes,
		AvgComments:     data.AvgComments,
		AvgViews:        data.AvgViews,
		EngagementRate:  data.EngagementRate,
	}

	if data.TopPosts != nil {
		raw, err := json.Marshal(data.TopPosts)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode top posts column")
		}
		snapshotM.TopPosts = datatypes.JSON(raw)
	}
	if data.Demographics != nil {
		raw, err := json.Marshal(data.Demographics)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode demographics column")
		}
		snapshotM.Demographics = datatypes.JSON(raw)
	}

	return snapshotM, nil
}
