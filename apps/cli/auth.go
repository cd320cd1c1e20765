package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/umeedfoundation/console/core/guard"
	"github.com/umeedfoundation/console/core/session"
)

type identityView struct {
	ID          string `json:"id" yaml:"id"`
	Email       string `json:"email" yaml:"email"`
	FullName    string `json:"full_name" yaml:"full_name"`
	Role        string `json:"role" yaml:"role"`
	VolunteerID string `json:"volunteer_id,omitempty" yaml:"volunteer_id,omitempty"`
}

type sessionView struct {
	State string        `json:"state" yaml:"state"`
	User  *identityView `json:"user" yaml:"user"`
}

func newSessionView(s session.Session) sessionView {
	view := sessionView{State: guard.StateOf(s).String()}
	if s.IsAuthenticated() {
		view.User = &identityView{
			ID:          s.Identity.ID,
			Email:       s.Identity.Email,
			FullName:    s.Identity.FullName,
			Role:        s.Identity.Role.String(),
			VolunteerID: s.Identity.VolunteerID,
		}
	}
	return view
}

func (cli *commandLine) loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a console account",
		Long: `Signs in with the account's email; the password is prompted next.
The session is kept in the session directory until logout. Signing in again
replaces the previous account.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" {
				return errors.New("--email must not be blank")
			}

			fmt.Fprint(cmd.ErrOrStderr(), "Enter password:")
			pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return errors.Wrap(err, "reading password")
			}
			if len(pwd) == 0 {
				return errors.New("password must not be blank")
			}

			if err = cli.access.Login(email, string(pwd)); err != nil {
				return err
			}
			return cli.printSession(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "The account's email. The password will be prompted next.")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (cli *commandLine) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.access.Logout(); err != nil {
				return err
			}
			return cli.printSession(cmd.OutOrStdout())
		},
	}
}

func (cli *commandLine) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Display the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.printSession(cmd.OutOrStdout())
		},
	}
}

func (cli *commandLine) printSession(w io.Writer) error {
	cur := cli.access.Current()
	return cli.render(w, newSessionView(cur), func() error {
		if !cur.IsAuthenticated() {
			pterm.Info.WithWriter(w).Println("Not logged in")
			return nil
		}
		id := cur.Identity
		pterm.Success.WithWriter(w).Printfln("Logged in as %s (%s)", id.FullName, id.Email)
		pterm.Info.WithWriter(w).Printfln("Role: %s", id.Role.Label())
		return nil
	})
}
