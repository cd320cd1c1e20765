package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/umeedfoundation/console/core"
)

const orderingParam = "ordering"

func bindOrdering(ctx echo.Context) []core.Ordering {
	return core.ParseOrderings(ctx.QueryParam(orderingParam))
}

// bindDate parses the yyyy-mm-dd query param name, falling back to def when absent.
func bindDate(ctx echo.Context, name string, def core.Date) (core.Date, error) {
	val := ctx.QueryParam(name)
	if val == "" {
		return def, nil
	}
	d, err := core.ParseDate(val)
	if err != nil {
		return core.Date{}, core.NewValidationError(nil, core.FieldError{Field: name, Error: "enter a valid date (yyyy-mm-dd)"})
	}
	return d, nil
}

// bindInt parses the query param name within [min, max], falling back to def when absent.
func bindInt(ctx echo.Context, name string, def, min, max int) (int, error) {
	val := ctx.QueryParam(name)
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < min || n > max {
		return 0, core.NewValidationError(nil, core.FieldError{
			Field: name,
			Error: "enter a whole number between " + strconv.Itoa(min) + " and " + strconv.Itoa(max),
		})
	}
	return n, nil
}

type DestroyMultipleRequest struct {
	IDs []string `query:"id"`
}
