package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core/lead"
)

type leadApi struct {
	svc      lead.ServiceInterface
	validate *validator.Validate
	policy   *bluemonday.Policy
	metrics  *Metrics
}

// registerLeadAPI mounts the public sign-up form behind limit, and its listing behind guarded.
func registerLeadAPI(
	g *echo.Group,
	svc lead.ServiceInterface,
	validate *validator.Validate,
	policy *bluemonday.Policy,
	metrics *Metrics,
	limit echo.MiddlewareFunc,
	guarded echo.MiddlewareFunc,
) {
	api := leadApi{
		svc:      svc,
		validate: validate,
		policy:   policy,
		metrics:  metrics,
	}

	g.POST("", api.submit, limit)
	g.GET("", api.query, guarded)
}

type LeadResponse struct {
	Success string `json:"success"`
}

func (api *leadApi) submit(ctx echo.Context) error {
	var data lead.NewLead
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLead")
	}
	if err := data.Validate(api.validate, api.policy); err != nil {
		return err
	}

	if _, err := api.svc.Submit(data); err != nil {
		return errors.Wrap(err, "submitting lead")
	}
	api.metrics.RecordLead()
	return ctx.JSON(http.StatusCreated, LeadResponse{
		Success: "Thank you for your interest! Our team will contact you soon.",
	})
}

func (api *leadApi) query(ctx echo.Context) error {
	leads, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying leads")
	}
	if leads == nil {
		leads = []lead.Lead{}
	}
	return ctx.JSON(http.StatusOK, leads)
}
