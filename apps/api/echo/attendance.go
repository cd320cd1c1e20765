package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/attendance"
)

const defaultUpcomingSessions = 4

type attendanceApi struct {
	svc      attendance.ServiceInterface
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, svc attendance.ServiceInterface, validate *validator.Validate) {
	api := attendanceApi{svc: svc, validate: validate}

	g.GET("", api.forDate)
	g.POST("", api.mark)
	g.POST("/all", api.markAll)
	g.GET("/sessions", api.sessions)
	g.GET("/upcoming", api.upcoming)
}

type DayResponse struct {
	Date    core.Date           `json:"date"`
	Records []attendance.Record `json:"records"`
	Summary attendance.Summary  `json:"summary"`
	Rate    int                 `json:"rate"`
}

func newDayResponse(date core.Date, records []attendance.Record) DayResponse {
	if records == nil {
		records = []attendance.Record{}
	}
	sum := attendance.Summarize(records)
	return DayResponse{Date: date, Records: records, Summary: sum, Rate: sum.Rate()}
}

// Handlers

func (api *attendanceApi) forDate(ctx echo.Context) error {
	date, err := bindDate(ctx, "date", core.Today())
	if err != nil {
		return err
	}
	records, err := api.svc.ForDate(date)
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	return ctx.JSON(http.StatusOK, newDayResponse(date, records))
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	usr, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	var data attendance.MarkAttendance
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendance")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if _, err = api.svc.Mark(usr, data); err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return api.respondDay(ctx, data.Date)
}

func (api *attendanceApi) markAll(ctx echo.Context) error {
	usr, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	var data attendance.MarkAll
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAll")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if _, err = api.svc.MarkAll(usr, data); err != nil {
		return errors.Wrap(err, "marking attendance of all students")
	}
	return api.respondDay(ctx, data.Date)
}

// respondDay answers a marking with the whole day, untouched records included.
func (api *attendanceApi) respondDay(ctx echo.Context, date core.Date) error {
	records, err := api.svc.ForDate(date)
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	return ctx.JSON(http.StatusOK, newDayResponse(date, records))
}

func (api *attendanceApi) sessions(ctx echo.Context) error {
	sessions, err := api.svc.Sessions()
	if err != nil {
		return errors.Wrap(err, "querying sessions")
	}
	if sessions == nil {
		sessions = []attendance.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *attendanceApi) upcoming(ctx echo.Context) error {
	n, err := bindInt(ctx, "n", defaultUpcomingSessions, 1, 52)
	if err != nil {
		return err
	}
	dates, err := api.svc.UpcomingSessions(n)
	if err != nil {
		return errors.Wrap(err, "computing upcoming sessions")
	}
	if dates == nil {
		dates = []core.Date{}
	}
	return ctx.JSON(http.StatusOK, dates)
}
