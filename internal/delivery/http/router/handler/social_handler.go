package handler

import (
	"log/slog"
	"net/http"

	"creatorkit/config"
	"creatorkit/internal/delivery/http/middleware"
	"creatorkit/internal/delivery/http/response"
	"creatorkit/internal/domain/entity"
	domainerrors "creatorkit/internal/domain/errors"
	"creatorkit/internal/errors"
	"creatorkit/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	stateCookiePrefix = "oauth_state_"
	stateCookieMaxAge = 600 // Seconds; the handshake must complete within this.

	defaultRedirectTarget = "/dashboard/socials"
)

// SocialHandler holds dependencies for the account linking handlers.
type SocialHandler struct {
	linker usecase.LinkerUsecase
	sync   usecase.SyncUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewSocialHandler is the constructor for SocialHandler, injected by Fx.
func NewSocialHandler(linker usecase.LinkerUsecase, sync usecase.SyncUsecase, cfg *config.Config, logger *slog.Logger) *SocialHandler {
	return &SocialHandler{
		linker: linker,
		sync:   sync,
		cfg:    cfg,
		logger: logger,
	}
}

// Connect starts the OAuth handshake: issues the state cookie and redirects
// the browser to the provider consent screen.
func (h *SocialHandler) Connect(c echo.Context) error {
	platform, err := platformParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	ownerID, err := currentUserID(c)
	if err != nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	redirectURL, state, err := h.linker.Initiate(c.Request().Context(), ownerID, platform)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName(platform),
		Value:    state,
		Path:     "/",
		MaxAge:   stateCookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, redirectURL)
}

// Callback finishes the handshake. Whatever happens, the browser ends up back
// on the dashboard; tokens never reach it. The state cookie is cleared before
// completion so it cannot be replayed.
func (h *SocialHandler) Callback(c echo.Context) error {
	platform, err := platformParam(c)
	if err != nil {
		return h.redirectError(c, "oauth_failed")
	}

	input := usecase.CompleteLinkInput{
		Platform:      platform,
		Code:          c.QueryParam("code"),
		ProviderError: c.QueryParam("error"),
		State:         c.QueryParam("state"),
	}
	if cookie, cookieErr := c.Cookie(stateCookieName(platform)); cookieErr == nil {
		input.CookieState = cookie.Value
	}
	h.clearStateCookie(c, platform)

	account, err := h.linker.Complete(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrAuthorizationDenied):
			return h.redirectError(c, "access_denied")
		case errors.Is(err, domainerrors.ErrInvalidOAuthState):
			return h.redirectError(c, "invalid_state")
		default:
			h.logger.ErrorContext(c.Request().Context(), "oauth completion failed",
				slog.String("platform", platform.String()),
				slog.Any("error", err))

			return h.redirectError(c, "oauth_failed")
		}
	}

	return c.Redirect(http.StatusFound, h.successURL()+"?connected="+account.Platform.String())
}

// Disconnect unlinks the caller's account for a platform.
func (h *SocialHandler) Disconnect(c echo.Context) error {
	platform, err := platformParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	ownerID, err := currentUserID(c)
	if err != nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	if err := h.linker.Disconnect(c.Request().Context(), ownerID, platform); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Account disconnected")
}

// Sync runs an on-demand analytics sync for the caller's account and returns
// the fresh snapshot.
func (h *SocialHandler) Sync(c echo.Context) error {
	platform, err := platformParam(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	ownerID, err := currentUserID(c)
	if err != nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	snapshot, err := h.sync.SyncOwn(c.Request().Context(), ownerID, platform)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Analytics synchronized")
}

// List returns the caller's linked accounts. Token ciphertexts are excluded
// by the entity's JSON shape.
func (h *SocialHandler) List(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	accounts, err := h.linker.ListAccounts(c.Request().Context(), ownerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, accounts, "Linked accounts")
}

func (h *SocialHandler) successURL() string {
	if h.cfg.OAuthRedirect != nil && h.cfg.OAuthRedirect.SuccessURL != "" {
		return h.cfg.OAuthRedirect.SuccessURL
	}

	return defaultRedirectTarget
}

func (h *SocialHandler) redirectError(c echo.Context, code string) error {
	target := defaultRedirectTarget
	if h.cfg.OAuthRedirect != nil && h.cfg.OAuthRedirect.ErrorURL != "" {
		target = h.cfg.OAuthRedirect.ErrorURL
	}

	return c.Redirect(http.StatusFound, target+"?error="+code)
}

func (h *SocialHandler) clearStateCookie(c echo.Context, platform entity.Platform) {
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName(platform),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func stateCookieName(platform entity.Platform) string {
	return stateCookiePrefix + platform.String()
}

func platformParam(c echo.Context) (entity.Platform, error) {
	platform, ok := entity.ParsePlatform(c.Param("platform"))
	if !ok {
		return "", domainerrors.ErrUnsupportedPlatform
	}

	return platform, nil
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(middleware.ContextUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("no authenticated user on context")
	}

	return userID, nil
}
