package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core/settings"
)

type settingsApi struct {
	svc      settings.ServiceInterface
	validate *validator.Validate
}

func registerSettingsAPI(g *echo.Group, svc settings.ServiceInterface, validate *validator.Validate) {
	api := settingsApi{svc: svc, validate: validate}

	g.GET("", api.retrieve)
	g.PUT("", api.update)
}

func (api *settingsApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Get())
}

func (api *settingsApi) update(ctx echo.Context) error {
	var data settings.UpdateSettings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSettings")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Update(data))
}
