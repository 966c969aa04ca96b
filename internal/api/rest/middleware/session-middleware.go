package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/muaishaq001/nacos-hub/internal/helper"
	"github.com/muaishaq001/nacos-hub/internal/services"
	"go.uber.org/zap"
)

const (
	SessionCookie = "nacos_flow"
	sessionLocal  = "session"
)

// SessionMiddleware resolves the flow session from the signed cookie and
// mints a new one when the cookie is missing, expired or forged. The cookie
// is re-issued on every request so idle expiry slides.
func SessionMiddleware(sessions helper.Sessions, store *services.SessionStore, secure bool, logger *zap.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := sessions.VerifyToken(strings.TrimSpace(ctx.Cookies(SessionCookie)))
		if err != nil {
			id = uuid.NewString()
		}

		token, err := sessions.IssueToken(id)
		if err != nil {
			logger.Error("issue session token", zap.Error(err))
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "could not start session",
			})
		}
		ctx.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(sessions.TTL),
			HTTPOnly: true,
			Secure:   secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		ctx.Locals(sessionLocal, store.Get(id))
		return ctx.Next()
	}
}

func SessionFrom(ctx *fiber.Ctx) (*services.Session, bool) {
	s, ok := ctx.Locals(sessionLocal).(*services.Session)
	return s, ok && s != nil
}
