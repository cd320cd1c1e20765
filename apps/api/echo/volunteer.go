package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/volunteer"
)

var errVolNotFoundInCtx = errors.New("volunteer object not found in echo.Context")

type volunteerApi struct {
	svc      volunteer.ServiceInterface
	validate *validator.Validate
}

func registerVolunteerAPI(g *echo.Group, svc volunteer.ServiceInterface, validate *validator.Validate) {
	api := volunteerApi{svc: svc, validate: validate}

	g.GET("", api.query)
	g.POST("", api.create)
	g.DELETE("", api.destroyMultiple)

	// detail endpoints
	dg := g.Group("/:id", volunteerObjectMiddleware(svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *volunteerApi) query(ctx echo.Context) error {
	var filter volunteer.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []volunteer.Volunteer{})
	}
	filter.Clean()

	volunteers, err := api.svc.Filter(filter, bindOrdering(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying volunteers")
	}
	if volunteers == nil {
		volunteers = []volunteer.Volunteer{}
	}
	return ctx.JSON(http.StatusOK, volunteers)
}

func (api *volunteerApi) create(ctx echo.Context) error {
	var data volunteer.NewVolunteer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewVolunteer")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	v, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating volunteer")
	}
	return ctx.JSON(http.StatusCreated, v)
}

func (api *volunteerApi) retrieve(ctx echo.Context) error {
	v, ok := ctx.Get("object").(volunteer.Volunteer)
	if !ok {
		return errors.Wrap(errVolNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, v)
}

func (api *volunteerApi) update(ctx echo.Context) error {
	v, ok := ctx.Get("object").(volunteer.Volunteer)
	if !ok {
		return errors.Wrap(errVolNotFoundInCtx, "retrieving object from context")
	}

	var data volunteer.UpdateVolunteer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateVolunteer")
	}
	if err := data.Validate(api.validate, v, api.svc); err != nil {
		return err
	}

	v, err := api.svc.Update(v, data)
	if err != nil {
		return errors.Wrap(err, "updating volunteer")
	}
	return ctx.JSON(http.StatusOK, v)
}

func (api *volunteerApi) destroy(ctx echo.Context) error {
	v, ok := ctx.Get("object").(volunteer.Volunteer)
	if !ok {
		return errors.Wrap(errVolNotFoundInCtx, "retrieving object from context")
	}
	if err := api.svc.Delete(v.ID); err != nil {
		return errors.Wrap(err, "deleting volunteer")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *volunteerApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting volunteers")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func volunteerObjectMiddleware(svc volunteer.ServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			v, err := svc.GetByID(ctx.Param("id"))
			if err != nil {
				if core.IsNotFound(err) {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding volunteer by ID")
			}
			ctx.Set("object", v)
			return next(ctx)
		}
	}
}
