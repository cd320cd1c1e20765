package main

import (
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/umeedfoundation/console/core/guard"
	"github.com/umeedfoundation/console/core/navigation"
)

type entryView struct {
	Label string `json:"label" yaml:"label"`
	Path  string `json:"path" yaml:"path"`
}

type decisionView struct {
	Path     string `json:"path" yaml:"path"`
	Outcome  string `json:"outcome" yaml:"outcome"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	State    string `json:"state" yaml:"state"`
}

func (cli *commandLine) navCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "List the console pages of the signed-in account's menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cur := cli.access.Current()
			if !cur.IsAuthenticated() {
				return errNotLoggedIn
			}

			entries := navigation.VisibleEntries(cur.Role())
			views := make([]entryView, 0, len(entries))
			for _, e := range entries {
				views = append(views, entryView{Label: e.Label, Path: e.Path})
			}

			w := cmd.OutOrStdout()
			return cli.render(w, views, func() error {
				data := pterm.TableData{{"LABEL", "PATH"}}
				for _, v := range views {
					data = append(data, []string{v.Label, v.Path})
				}
				return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
			})
		},
	}
}

func (cli *commandLine) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open PATH",
		Short: "Show what the console does when the signed-in account opens PATH",
		Example: `  umeedctl open /reports
  umeedctl open /settings -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur := cli.access.Current()
			dec := guard.Decide(cur, args[0])
			view := decisionView{
				Path:     guard.NormalizePath(args[0]),
				Outcome:  dec.Outcome.String(),
				Location: dec.Location,
				State:    guard.StateOf(cur).String(),
			}

			w := cmd.OutOrStdout()
			return cli.render(w, view, func() error {
				printDecision(w, view, dec)
				return nil
			})
		},
	}
}

func printDecision(w io.Writer, view decisionView, dec guard.Decision) {
	switch dec.Outcome {
	case guard.Render:
		pterm.Success.WithWriter(w).Printfln("%s: render", view.Path)
	case guard.Redirect:
		pterm.Warning.WithWriter(w).Printfln("%s: redirect to %s", view.Path, dec.Location)
	case guard.NotFound:
		pterm.Error.WithWriter(w).Printfln("%s: not found", view.Path)
	default:
		pterm.Info.WithWriter(w).Printfln("%s: %s", view.Path, view.Outcome)
	}
}
