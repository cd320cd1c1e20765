package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/access"
	"github.com/umeedfoundation/console/core/guard"
	"github.com/umeedfoundation/console/core/navigation"
	"github.com/umeedfoundation/console/core/session"
	"github.com/umeedfoundation/console/core/user"
)

type authApi struct {
	verifier access.Verifier
	validate *validator.Validate
	metrics  *Metrics
}

func registerAuthAPI(
	g *echo.Group,
	verifier access.Verifier,
	validate *validator.Validate,
	metrics *Metrics,
	guarded func(path string) echo.MiddlewareFunc,
) {
	api := authApi{
		verifier: verifier,
		validate: validate,
		metrics:  metrics,
	}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout)
	ag.GET("/session", api.session)

	g.GET("/navigation", api.navigation, guarded(guard.DashboardPath))
	g.GET("/routes/resolve", api.resolve)
}

type (
	SessionResponse struct {
		User       *user.Identity     `json:"user"`
		State      guard.State        `json:"state"`
		Navigation []navigation.Entry `json:"navigation"`
	}

	ResolveResponse struct {
		Path     string        `json:"path"`
		Outcome  guard.Outcome `json:"outcome"`
		Location string        `json:"location,omitempty"`
		State    guard.State   `json:"state"`
	}
)

func newSessionResponse(s session.Session) SessionResponse {
	resp := SessionResponse{
		User:       s.Identity,
		State:      guard.StateOf(s),
		Navigation: []navigation.Entry{},
	}
	if s.IsAuthenticated() {
		resp.Navigation = navigation.VisibleEntries(s.Role())
	}
	return resp
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data user.LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	data.Email = core.CleanString(data.Email, true /* lower */)
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	ac, err := getContextAccess(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context access")
	}
	if err = ac.Login(data.Email, data.Password); err != nil {
		if errors.Cause(err) == user.ErrInvalidCredentials {
			api.metrics.RecordLogin("invalid")
			return err
		}
		api.metrics.RecordLogin("error")
		return errors.Wrap(err, "logging in")
	}
	api.metrics.RecordLogin("success")

	return ctx.JSON(http.StatusOK, newSessionResponse(ac.Current()))
}

func (api *authApi) logout(ctx echo.Context) error {
	ac, err := getContextAccess(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context access")
	}
	if err = ac.Logout(); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.JSON(http.StatusOK, newSessionResponse(ac.Current()))
}

func (api *authApi) session(ctx echo.Context) error {
	ac, err := getContextAccess(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context access")
	}
	return ctx.JSON(http.StatusOK, newSessionResponse(ac.Current()))
}

func (api *authApi) navigation(ctx echo.Context) error {
	usr, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, navigation.VisibleEntries(usr.Role))
}

// resolve tells the client what navigating to ?path= would do for the current session.
func (api *authApi) resolve(ctx echo.Context) error {
	path := ctx.QueryParam("path")
	if path == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "path", Error: "this field is required"})
	}

	ac, err := getContextAccess(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context access")
	}
	cur := ac.Current()
	dec := guard.Decide(cur, path)
	return ctx.JSON(http.StatusOK, ResolveResponse{
		Path:     guard.NormalizePath(path),
		Outcome:  dec.Outcome,
		Location: dec.Location,
		State:    guard.StateOf(cur),
	})
}
