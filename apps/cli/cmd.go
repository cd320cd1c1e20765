package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/access"
	"github.com/umeedfoundation/console/core/report"
	"github.com/umeedfoundation/console/core/session"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errNotLoggedIn      = errors.New("not logged in: run `umeedctl login` first")
	errPermissionDenied = errors.New("permission denied")
)

// commandLine is umeedctl: one access context restored from the session directory.
type commandLine struct {
	conf    *core.Config
	logger  core.Logger
	access  *access.Context
	reports report.ServiceInterface
	output  string
}

func newCommandLine(conf *core.Config, logger core.Logger, verifier access.Verifier, reports report.ServiceInterface) (*commandLine, error) {
	storage, err := session.NewFileStorage(conf.CLI.SessionDir)
	if err != nil {
		return nil, err
	}
	return &commandLine{
		conf:    conf,
		logger:  logger,
		access:  access.Open(verifier, session.NewStore(storage, logger), logger),
		reports: reports,
	}, nil
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "umeedctl",
		Short: "Umeed console CLI - sign in, check access and export reports",
		Long: `umeedctl is the command-line client of the Umeed console.
It keeps one session in the session directory, answers which console pages
the signed-in account may open and exports the CSV reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cli.output {
			case outputText, outputJSON, outputYAML:
				return nil
			}
			return fmt.Errorf("unknown output format %q (text, json or yaml)", cli.output)
		},
	}
	root.PersistentFlags().StringVarP(&cli.output, "output", "o", outputText, "Output format: text, json or yaml")

	root.AddCommand(
		cli.loginCmd(),
		cli.logoutCmd(),
		cli.whoamiCmd(),
		cli.navCmd(),
		cli.openCmd(),
		cli.exportCmd(),
	)
	return root
}

// render encodes v in the selected format; text output is left to printText.
func (cli *commandLine) render(w io.Writer, v interface{}, printText func() error) error {
	switch cli.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return printText()
}
