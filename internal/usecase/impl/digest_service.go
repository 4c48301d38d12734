package impl

import (
	"context"
	"log/slog"

	"creatorkit/config"
	"creatorkit/internal/domain/entity"
	"creatorkit/internal/domain/repository"
	"creatorkit/internal/domain/service"
	"creatorkit/internal/usecase"
	"creatorkit/internal/usecase/digest"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ErrNoChatID marks subscribers whose Telegram chat id was never captured.
// The bot can only message a chat it has seen a /start from; a bare handle is
// not enough to deliver proactively.
var ErrNoChatID = errors.New("no chat id captured for this profile")

type digestService struct {
	profileRepo repository.ProfileRepository
	accountRepo repository.SocialAccountRepository
	sender      service.DigestSender
	config      *config.Config
	logger      *slog.Logger
}

// DigestServiceParams holds dependencies for DigestService, injected by Fx.
type DigestServiceParams struct {
	fx.In

	ProfileRepo repository.ProfileRepository
	AccountRepo repository.SocialAccountRepository
	Sender      service.DigestSender
	Config      *config.Config
	Logger      *slog.Logger
}

// NewDigestService creates a new daily digest service instance
func NewDigestService(params DigestServiceParams) usecase.DigestUsecase {
	return &digestService{
		profileRepo: params.ProfileRepo,
		accountRepo: params.AccountRepo,
		sender:      params.Sender,
		config:      params.Config,
		logger:      params.Logger,
	}
}

// SendDailyDigests formats and delivers a digest to every subscribed profile.
func (s *digestService) SendDailyDigests(ctx context.Context) (*usecase.BatchResult, error) {
	subscribers, err := s.profileRepo.FindDigestSubscribers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select digest subscribers")
	}

	result := runBatch(ctx, subscribers, s.config.Sync.Concurrency, s.config.Sync.ItemTimeout,
		func(itemCtx context.Context, profile *entity.CreatorProfile) usecase.BatchItem {
			item := usecase.BatchItem{AccountID: profile.ID}

			if err := s.sendDigest(itemCtx, profile); err != nil {
				item.Error = err.Error()
				s.logger.WarnContext(itemCtx, "digest delivery failed",
					slog.String("profileID", profile.ID.String()),
					slog.String("telegramUsername", profile.TelegramUsername),
					slog.Any("error", err))

				return item
			}

			item.Success = true

			return item
		})

	s.logger.InfoContext(ctx, "daily digest batch finished",
		slog.Int("total", result.Total),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed))

	return result, nil
}

func (s *digestService) sendDigest(ctx context.Context, profile *entity.CreatorProfile) error {
	if profile.TelegramChatID == 0 {
		return ErrNoChatID
	}

	accounts, err := s.accountRepo.FindConnectedByOwner(ctx, profile.ID)
	if err != nil {
		return errors.Wrap(err, "failed to load connected accounts")
	}

	text := digest.FormatDailyDigest(profile.DisplayName(), accounts)

	return s.sender.Send(ctx, profile.TelegramChatID, text)
}
