package rest

import (
	"errors"
	"testing"

	"github.com/buzkaaclicker/profiles"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	assert := assert.New(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
	})
	app.Get("/home", func(ctx *fiber.Ctx) error {
		return ctx.SendString(`{"im":"working"}`)
	})
	app.Get("/invalid", func(ctx *fiber.Ctx) error {
		errs := profiles.ValidationErrors{}
		errs.Add("name", "Ensure this field has no more than 255 characters.")
		return errs
	})
	app.Get("/broken", func(ctx *fiber.Ctx) error {
		return errors.New("database on fire")
	})
	app.Use(NotFoundHandler)

	cases := []struct {
		path       string
		returnCode int
		returnBody string
	}{
		{path: "/unknown_path", returnCode: fiber.StatusNotFound,
			returnBody: JsonErrorMessageResponse("Not Found")},
		{path: "/home", returnCode: fiber.StatusOK,
			returnBody: `{"im":"working"}`},
		{path: "/invalid", returnCode: fiber.StatusBadRequest,
			returnBody: `{"name":["Ensure this field has no more than 255 characters."]}`},
		{path: "/broken", returnCode: fiber.StatusInternalServerError,
			returnBody: JsonErrorMessageResponse("Internal Server Error")},
	}

	for _, useCase := range cases {
		resp := doRequest(t, app, "GET", useCase.path, "", "")
		assert.Equal(useCase.returnCode, resp.StatusCode, useCase.path)
		assert.Equal(useCase.returnBody, resp.Body, useCase.path)
	}
}
