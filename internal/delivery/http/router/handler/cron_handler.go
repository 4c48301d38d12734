package handler

import (
	"log/slog"
	"net/http"

	"creatorkit/internal/delivery/http/response"
	"creatorkit/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CronHandler exposes the externally triggered batch jobs. Item failures are
// reported inside the result envelope, never as HTTP failures; only a failure
// to run the batch at all produces an error status.
type CronHandler struct {
	refresh usecase.RefreshUsecase
	sync    usecase.SyncUsecase
	digest  usecase.DigestUsecase
	logger  *slog.Logger
}

// NewCronHandler is the constructor for CronHandler, injected by Fx.
func NewCronHandler(refresh usecase.RefreshUsecase, sync usecase.SyncUsecase, digest usecase.DigestUsecase, logger *slog.Logger) *CronHandler {
	return &CronHandler{
		refresh: refresh,
		sync:    sync,
		digest:  digest,
		logger:  logger,
	}
}

// RefreshTokens triggers the credential refresh batch.
func (h *CronHandler) RefreshTokens(c echo.Context) error {
	result, err := h.refresh.RefreshExpiring(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Token refresh batch finished")
}

// SyncAnalytics triggers the analytics sync batch.
func (h *CronHandler) SyncAnalytics(c echo.Context) error {
	result, err := h.sync.SyncAll(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Analytics sync batch finished")
}

// DailyDigest triggers the digest delivery batch.
func (h *CronHandler) DailyDigest(c echo.Context) error {
	result, err := h.digest.SendDailyDigests(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Daily digest batch finished")
}
