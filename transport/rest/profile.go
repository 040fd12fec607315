package rest

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/buzkaaclicker/profiles"
	"github.com/gofiber/fiber/v2"
)

type ProfileController struct {
	Store         profiles.ProfileStore
	ActivityStore profiles.ActivityStore
	Serializer    ProfileSerializer
}

// InstallTo registers the list and detail endpoints. Profiles are created by
// account registration only, so there is no create or delete route.
func (c *ProfileController) InstallTo(requestAuthorizer fiber.Handler, app fiber.Router) {
	app.Get("/profiles", c.serveList)
	app.Get("/profiles/:id", c.serveDetail)
	app.Put("/profiles/:id", combineHandlers(requestAuthorizer, c.serveUpdate))
}

func (c *ProfileController) serveList(ctx *fiber.Ctx) error {
	all, err := c.Store.All(ctx.Context())
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}
	return ctx.JSON(c.Serializer.SerializeAll(all))
}

func (c *ProfileController) serveDetail(ctx *fiber.Ctx) error {
	profile, err := c.lookup(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(c.Serializer.Serialize(profile))
}

func (c *ProfileController) serveUpdate(ctx *fiber.Ctx) error {
	user, err := localUser(ctx)
	if err != nil {
		return err
	}
	profile, err := c.lookup(ctx)
	if err != nil {
		return err
	}
	if !user.CanEditProfile(profile) {
		return fiber.NewError(fiber.StatusForbidden, "not the profile owner")
	}

	update, err := c.Serializer.Deserialize(ctx.Body())
	if err != nil {
		return err
	}

	updated, err := c.Store.Update(ctx.Context(), profile.Id, update)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return fiber.ErrNotFound
		}
		return fmt.Errorf("update profile: %w", err)
	}

	err = c.ActivityStore.AddLog(ctx.Context(), user.Id, profiles.Activity{
		Name: profiles.ActivityProfileUpdated,
		Data: map[string]interface{}{"profile_id": int64(updated.Id)},
	})
	if err != nil {
		requestLog(ctx).WithError(err).Warnln("Could not log profile update.")
	}
	return ctx.JSON(c.Serializer.Serialize(updated))
}

// lookup resolves the :id path parameter. Ids that are not integers cannot exist.
func (c *ProfileController) lookup(ctx *fiber.Ctx) (profiles.Profile, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return profiles.Profile{}, fiber.ErrNotFound
	}

	profile, err := c.Store.ById(ctx.Context(), profiles.ProfileId(id))
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return profiles.Profile{}, fiber.ErrNotFound
		}
		return profiles.Profile{}, fmt.Errorf("get profile by id: %w", err)
	}
	return profile, nil
}
