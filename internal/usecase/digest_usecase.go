package usecase

import "context"

// DigestUsecase defines the interface for the daily digest job.
type DigestUsecase interface {
	// SendDailyDigests formats and delivers a digest to every subscribed
	// creator profile. Profiles with a Telegram handle but no captured chat
	// id are reported as per-item failures.
	SendDailyDigests(ctx context.Context) (*BatchResult, error)
}
