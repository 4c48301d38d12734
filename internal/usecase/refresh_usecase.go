package usecase

import "context"

// RefreshUsecase defines the interface for the token refresh worker.
type RefreshUsecase interface {
	// RefreshExpiring refreshes the credential of every connected account
	// whose token expires within the configured window. Items fail
	// independently; the aggregate result always comes back.
	RefreshExpiring(ctx context.Context) (*BatchResult, error)
}
