package echoapi

import (
	"bytes"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/guard"
	"github.com/umeedfoundation/console/core/report"
)

const (
	csvContentType             = "text/csv; charset=utf-8"
	defaultAttendanceRangeDays = 30
)

type reportApi struct {
	svc     report.ServiceInterface
	metrics *Metrics
}

func registerReportAPI(
	g *echo.Group,
	svc report.ServiceInterface,
	metrics *Metrics,
	guarded func(path string) echo.MiddlewareFunc,
) {
	api := reportApi{svc: svc, metrics: metrics}

	g.GET("/dashboard", api.summary, guarded(guard.DashboardPath))

	rg := g.Group("/reports", guarded(guard.ReportsPath))
	rg.GET("/summary", api.summary)
	rg.GET("/students", api.export(report.KindStudents))
	rg.GET("/volunteers", api.export(report.KindVolunteers))
	rg.GET("/attendance", api.export(report.KindAttendance))
}

// Handlers

func (api *reportApi) summary(ctx echo.Context) error {
	sum, err := api.svc.Summary()
	if err != nil {
		return errors.Wrap(err, "building summary")
	}
	return ctx.JSON(http.StatusOK, sum)
}

// export downloads a report; the attendance report covers ?from= to ?to=, the last 30 days by default.
func (api *reportApi) export(kind report.Kind) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		today := core.Today()
		from, err := bindDate(ctx, "from", today.AddDays(-defaultAttendanceRangeDays))
		if err != nil {
			return err
		}
		to, err := bindDate(ctx, "to", today)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		filename, err := api.svc.Export(&buf, kind, from, to)
		if err != nil {
			return errors.Wrapf(err, "exporting %s", kind)
		}
		api.metrics.RecordExport(kind)
		return sendCSV(ctx, filename, buf.Bytes())
	}
}

func sendCSV(ctx echo.Context, filename string, data []byte) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	return ctx.Blob(http.StatusOK, csvContentType, data)
}
