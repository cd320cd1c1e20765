package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core/guard"
)

// guardMiddleware admits a request when the guard renders the console page at path.
// A redirect to the login page is a 401, any other redirect (role mismatch) a 403.
func (s *Server) guardMiddleware(path string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ac, err := getContextAccess(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context access")
			}

			dec := guard.Decide(ac.Current(), path)
			s.metrics.RecordGuardDecision(path, dec)

			switch dec.Outcome {
			case guard.Render:
				return next(ctx)
			case guard.ShowLoading:
				return errUnauthorized
			case guard.Redirect:
				if dec.Location == guard.LoginPath {
					return errUnauthorized
				}
				return errHttpForbidden
			}
			return errHttpNotFound
		}
	}
}
