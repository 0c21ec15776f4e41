package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notesnap/notesnap/internal/output"
	"github.com/notesnap/notesnap/pkg/sdk"
)

func NewSignupCmd(deps *Dependencies) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "signup <email>",
		Short: "Register a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			pw, err := resolveSignupPassword(password, cmd.InOrStdin())
			if err != nil {
				return err
			}

			msg, err := deps.Client.SignUp(cmd.Context(), args[0], pw)
			if err != nil {
				return err
			}

			formatter.Success(msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted if omitted)")

	return cmd
}

func NewConfirmCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <token>",
		Short: "Confirm an account with the emailed token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if err := deps.Client.Confirm(cmd.Context(), args[0]); err != nil {
				return err
			}

			formatter.Success("Account confirmed. You can log in now.")
			return nil
		},
	}
}

func NewLoginCmd(deps *Dependencies) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			pw, err := resolvePassword(password, cmd.InOrStdin())
			if err != nil {
				return err
			}

			session, err := deps.Client.SignIn(cmd.Context(), args[0], pw)
			if err != nil {
				return err
			}

			deps.Config.Token = session.Token
			if err := deps.Config.Save(); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			formatter.Success(fmt.Sprintf("Logged in as %s", session.User.Email))
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted if omitted)")

	return cmd
}

func NewLogoutCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if deps.Config.Token == "" {
				formatter.Info("Not logged in")
				return nil
			}

			// Best effort server-side, the local token is dropped regardless
			if err := deps.Client.SignOut(cmd.Context()); err != nil {
				formatter.Warning(fmt.Sprintf("could not revoke session: %v", err))
			}

			deps.Config.Token = ""
			if err := deps.Config.Save(); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}

			formatter.Success("Logged out")
			return nil
		},
	}
}

func NewWhoamiCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account the stored session belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			identity, err := deps.Client.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			formatter.Info(fmt.Sprintf("Logged in as %s", identity.Email))
			return nil
		},
	}
}

// resolveSignupPassword collects a password for a new account and
// enforces the server's minimum length before any request is made
func resolveSignupPassword(flag string, in io.Reader) (string, error) {
	pw, err := resolvePassword(flag, in)
	if err != nil {
		return "", err
	}

	if len(pw) < sdk.MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", sdk.MinPasswordLength)
	}
	return pw, nil
}

// resolvePassword uses the flag value when given, otherwise reads a
// line from stdin
func resolvePassword(flag string, in io.Reader) (string, error) {
	if flag != "" {
		return flag, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no password provided")
	}

	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("no password provided")
	}
	return pw, nil
}
