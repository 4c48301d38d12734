// Package usecase defines the interfaces of the application layer.
package usecase

import (
	"creatorkit/internal/domain/entity"

	"github.com/google/uuid"
)

// BatchItem is the outcome of one item in a scheduled batch run. AccountID
// carries the social account for refresh and sync runs, and the creator
// profile for digest runs.
type BatchItem struct {
	AccountID uuid.UUID       `json:"account_id"`
	Platform  entity.Platform `json:"platform,omitempty"`
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
}

// BatchResult aggregates a whole batch run. Item failures never fail the run;
// the caller reports the result with HTTP 200 and lets the next scheduled run
// retry whatever is retryable.
type BatchResult struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Results   []BatchItem `json:"results"`
}
