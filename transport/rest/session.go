package rest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/buzkaaclicker/profiles"
	"github.com/gofiber/fiber/v2"
)

const (
	sessionLocalsKey = "session"
	userLocalsKey    = "user"
)

// RequestAuthorizer resolves the bearer token into a session and its user and
// stores both in the request locals.
func RequestAuthorizer(sessionStore profiles.SessionStore, userStore profiles.UserStore) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		auth := ctx.Get(fiber.HeaderAuthorization)
		if auth == "" {
			return fiber.ErrUnauthorized
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			return fiber.NewError(fiber.StatusBadRequest, "invalid auth type")
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		session, err := sessionStore.AcquireAndRefresh(ctx.Context(), token, ctx.IP(),
			string(ctx.Request().Header.UserAgent()))
		if err != nil {
			if errors.Is(err, profiles.ErrSessionNotFound) {
				return fiber.ErrUnauthorized
			}
			return fmt.Errorf("acquire and refresh session: %w", err)
		}
		user, err := userStore.ById(ctx.Context(), session.UserId)
		if err != nil {
			if errors.Is(err, profiles.ErrUserNotFound) {
				return fiber.ErrUnauthorized
			}
			return fmt.Errorf("retrieve user by id: %w", err)
		}

		requestLog(ctx).
			WithField("user_id", user.Id).
			Infoln("Authorized access.")

		ctx.Locals(sessionLocalsKey, session)
		ctx.Locals(userLocalsKey, user)
		return nil
	}
}

func localUser(ctx *fiber.Ctx) (profiles.User, error) {
	user, ok := ctx.Locals(userLocalsKey).(profiles.User)
	if !ok {
		return profiles.User{}, fiber.ErrUnauthorized
	}
	return user, nil
}

func localSession(ctx *fiber.Ctx) (profiles.Session, error) {
	session, ok := ctx.Locals(sessionLocalsKey).(profiles.Session)
	if !ok {
		return profiles.Session{}, fiber.ErrUnauthorized
	}
	return session, nil
}
