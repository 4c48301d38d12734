package middleware

import (
	"crypto/subtle"

	"creatorkit/config"
	"creatorkit/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// CronSecretHeader is the shared-secret header guarding the batch triggers.
const CronSecretHeader = "X-Cron-Secret"

// CronMiddleware guards the externally triggered batch endpoints. The
// scheduler authenticates with a shared secret, not a user session.
type CronMiddleware struct {
	secret string
}

// NewCronMiddleware is the constructor for CronMiddleware.
func NewCronMiddleware(cfg *config.Config) *CronMiddleware {
	secret := ""
	if cfg.Cron != nil {
		secret = cfg.Cron.Secret
	}

	return &CronMiddleware{secret: secret}
}

// RequireSecret rejects requests without the correct shared secret. An empty
// configured secret disables the trigger endpoints entirely rather than
// leaving them open.
func (m *CronMiddleware) RequireSecret(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		provided := c.Request().Header.Get(CronSecretHeader)
		if m.secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(m.secret)) != 1 {
			return response.Forbidden(c, "FORBIDDEN", "Invalid cron secret")
		}

		return next(c)
	}
}
