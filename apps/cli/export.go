package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/guard"
	"github.com/umeedfoundation/console/core/report"
)

const defaultReportDays = 30

type exportView struct {
	Report string `json:"report" yaml:"report"`
	File   string `json:"file" yaml:"file"`
	Rows   int    `json:"rows" yaml:"rows"`
}

func (cli *commandLine) exportCmd() *cobra.Command {
	var from, to, out string
	cmd := &cobra.Command{
		Use:   "export students|volunteers|attendance",
		Short: "Export a CSV report",
		Long: `Exports one of the reports of the Reports page as CSV. Only accounts that
may open the Reports page can export. --from and --to bound the attendance
report (yyyy-mm-dd, default: the last 30 days). Use --out - to write to stdout.`,
		ValidArgs: []string{string(report.KindStudents), string(report.KindVolunteers), string(report.KindAttendance)},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.canExport(); err != nil {
				return err
			}

			fromDate, toDate, err := exportRange(from, to)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			kind := report.Kind(args[0])
			filename, err := cli.reports.Export(&buf, kind, fromDate, toDate)
			if err != nil {
				return err
			}
			rows, err := countRows(buf.Bytes())
			if err != nil {
				return err
			}

			if out == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if out == "" {
				out = filename
			}
			if err = os.WriteFile(out, buf.Bytes(), 0644); err != nil {
				return errors.Wrapf(err, "writing %s", out)
			}
			cli.logger.Info(fmt.Sprintf("exported %s report to %s", kind, out), *cli.access.Current().Identity)

			w := cmd.OutOrStdout()
			view := exportView{Report: string(kind), File: out, Rows: rows}
			return cli.render(w, view, func() error {
				pterm.Success.WithWriter(w).Printfln("Exported %d %s rows to %s", rows, kind, out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "First day of the attendance report (yyyy-mm-dd)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of the attendance report (yyyy-mm-dd)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: the report's file name)")
	return cmd
}

// canExport applies the Reports page guard to the current session.
func (cli *commandLine) canExport() error {
	dec := guard.Decide(cli.access.Current(), guard.ReportsPath)
	switch {
	case dec.Outcome == guard.Render:
		return nil
	case dec.Outcome == guard.Redirect && dec.Location == guard.LoginPath:
		return errNotLoggedIn
	}
	return errPermissionDenied
}

func exportRange(from, to string) (core.Date, core.Date, error) {
	fromDate, toDate := core.DaysAgo(defaultReportDays), core.Today()
	var err error
	if from != "" {
		if fromDate, err = core.ParseDate(from); err != nil {
			return core.Date{}, core.Date{}, fmt.Errorf("--from: enter a valid date (yyyy-mm-dd)")
		}
	}
	if to != "" {
		if toDate, err = core.ParseDate(to); err != nil {
			return core.Date{}, core.Date{}, fmt.Errorf("--to: enter a valid date (yyyy-mm-dd)")
		}
	}
	if fromDate.After(toDate) {
		return core.Date{}, core.Date{}, fmt.Errorf("--from must not be after --to")
	}
	return fromDate, toDate, nil
}

// countRows is the number of CSV records after the header; quoted fields may span lines.
func countRows(data []byte) (int, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return 0, errors.Wrap(err, "reading exported report")
	}
	if len(records) == 0 {
		return 0, nil
	}
	return len(records) - 1, nil
}
