package rest

import (
	"fmt"

	"github.com/buzkaaclicker/profiles"
	"github.com/gofiber/fiber/v2"
)

type ActivityController struct {
	Store profiles.ActivityStore
}

func (c *ActivityController) InstallTo(requestAuthorizer fiber.Handler, app fiber.Router) {
	app.Get("/activities", combineHandlers(requestAuthorizer, c.serveActivities))
}

func (c *ActivityController) serveActivities(ctx *fiber.Ctx) error {
	user, err := localUser(ctx)
	if err != nil {
		return err
	}
	logs, err := c.Store.ByUserId(ctx.Context(), user.Id)
	if err != nil {
		return fmt.Errorf("get logs by user id: %w", err)
	}

	type Log struct {
		Id        int64                  `json:"id"`
		CreatedAt int64                  `json:"createdAt"`
		Name      string                 `json:"name"`
		Data      map[string]interface{} `json:"data,omitempty"`
	}
	mapped := make([]Log, len(logs))
	for i, log := range logs {
		mapped[i] = Log{Id: log.Id, CreatedAt: log.CreatedAt.Unix(), Name: log.Name, Data: log.Data}
	}
	return ctx.JSON(mapped)
}
