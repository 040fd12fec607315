package rest

import (
	"errors"
	"fmt"

	"github.com/buzkaaclicker/profiles"
	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	SessionStore profiles.SessionStore
	UserStore    profiles.UserStore
}

func (c *AuthController) InstallTo(requestAuthorizer fiber.Handler, app fiber.Router) {
	app.Post("/auth/register", c.serveRegister)
	app.Post("/auth/login", c.serveLogin)
	app.Post("/auth/logout", combineHandlers(requestAuthorizer, c.serveLogout))
	app.Delete("/auth/account", combineHandlers(requestAuthorizer, c.serveDeleteAccount))
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"omitempty,max=254,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func (c *AuthController) serveRegister(ctx *fiber.Ctx) error {
	var body registerRequest
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	errs := profiles.ValidationErrors{}
	if err := validateStruct(errs, &body); err != nil {
		return err
	}
	if err := errs.OrNil(); err != nil {
		return err
	}

	user, err := c.UserStore.Register(ctx.Context(), profiles.NewUser{
		Username: body.Username,
		Email:    profiles.Email(body.Email),
		Password: body.Password,
	})
	if err != nil {
		if errors.Is(err, profiles.ErrUsernameTaken) {
			errs.Add("username", "A user with that username already exists.")
			return errs
		}
		return fmt.Errorf("user register: %w", err)
	}
	requestLog(ctx).WithField("user_id", user.Id).Infoln("Account registered.")

	return c.startSession(ctx, user)
}

func (c *AuthController) serveLogin(ctx *fiber.Ctx) error {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.Username == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing credentials")
	}

	user, err := c.UserStore.ByUsername(ctx.Context(), body.Username)
	if err != nil {
		if errors.Is(err, profiles.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return fmt.Errorf("user by username: %w", err)
	}
	if err := profiles.CheckPassword(user.PasswordHash, body.Password); err != nil {
		if errors.Is(err, profiles.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}
	return c.startSession(ctx, user)
}

func (c *AuthController) startSession(ctx *fiber.Ctx, user profiles.User) error {
	session, err := c.SessionStore.RegisterNew(ctx.Context(), user.Id, ctx.IP(),
		string(ctx.Request().Header.UserAgent()))
	if err != nil {
		return fmt.Errorf("session register new: %w", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(map[string]interface{}{
		"id":          session.Id,
		"userId":      session.UserId,
		"accessToken": session.Token,
		"expiresAt":   session.ExpiresAt.Unix(),
	})
}

func (c *AuthController) serveLogout(ctx *fiber.Ctx) error {
	session, err := localSession(ctx)
	if err != nil {
		return err
	}
	err = c.SessionStore.InvalidateByAuthToken(session.Token)
	if err != nil && !errors.Is(err, profiles.ErrSessionNotFound) {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

// serveDeleteAccount removes the caller's account. The profile goes with it.
func (c *AuthController) serveDeleteAccount(ctx *fiber.Ctx) error {
	user, err := localUser(ctx)
	if err != nil {
		return err
	}
	if err := c.UserStore.Delete(ctx.Context(), user.Id); err != nil {
		if errors.Is(err, profiles.ErrUserNotFound) {
			return fiber.ErrUnauthorized
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if err := c.SessionStore.InvalidateByUserId(user.Id); err != nil {
		return fmt.Errorf("invalidate user sessions: %w", err)
	}
	requestLog(ctx).WithField("user_id", user.Id).Infoln("Account deleted.")
	return ctx.SendStatus(fiber.StatusNoContent)
}
