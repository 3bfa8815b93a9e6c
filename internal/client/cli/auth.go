package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/veildiary/internal/client/client"
	"github.com/dmitrijs2005/veildiary/internal/client/session"
	"github.com/spf13/cobra"
)

var errPasswordMismatch = errors.New("passwords do not match")

func newPingCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			if err := a.client.Ping(ctx); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "OK")
			return nil
		},
	}
}

func (a *App) emailFlagOrPrompt(email string) (string, error) {
	if email != "" {
		return email, nil
	}
	return GetSimpleText(a.reader, "Email", a.out)
}

func newRegisterCmd(a *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := a.emailFlagOrPrompt(email)
			if err != nil {
				return err
			}
			password, err := a.password("Password")
			if err != nil {
				return err
			}
			confirm, err := a.password("Repeat password")
			if err != nil {
				return err
			}
			if password != confirm {
				return errPasswordMismatch
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			if err := a.client.Register(ctx, addr, password); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Registered. Run `veildiary login` to sign in.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newLoginCmd(a *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := a.emailFlagOrPrompt(email)
			if err != nil {
				return err
			}
			password, err := a.password("Password")
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			tokens, err := a.client.Login(ctx, addr, password)
			if err != nil {
				return err
			}

			a.session = &session.Session{
				Email:        addr,
				AccessToken:  tokens.AccessToken,
				RefreshToken: tokens.RefreshToken,
			}
			if err := a.store.Save(a.session); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s\n", addr)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newLogoutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			a.session = &session.Session{}
			a.client.SetTokens(client.Tokens{})
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}
