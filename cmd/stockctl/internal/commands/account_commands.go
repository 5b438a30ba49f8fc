package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/stockkeeper/internal/auth"
	"github.com/mmynk/stockkeeper/pkg/api"
)

func newRegisterCmd(a *app) *cobra.Command {
	var username, password, phone string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.client().Register(cmd.Context(), &api.RegisterRequest{
				Username:    username,
				Password:    password,
				PhoneNumber: phone,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registration successful! Please login.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&phone, "phone", "", "10-digit phone number for low-stock alerts")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.client().Login(cmd.Context(), &api.LoginRequest{
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}

			err = a.sessions().Save(StoredSession{
				Session: auth.Session{UserID: resp.User.ID, Username: resp.User.Username},
				Server:  a.server,
				Token:   resp.Token,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", resp.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := a.authedClient()
			if errors.Is(err, ErrNotLoggedIn) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			if err != nil {
				return err
			}

			// The server call is informational; the session is dropped either way.
			_, _ = c.Logout(cmd.Context(), &api.LogoutRequest{})
			if err := a.sessions().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := a.authedClient()
			if err != nil {
				return err
			}

			resp, err := c.GetCurrentUser(cmd.Context(), &api.GetCurrentUserRequest{})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d), phone %s, sms alerts %s\n",
				resp.User.Username, resp.User.ID, resp.User.PhoneNumber, onOff(resp.User.SMSEnabled))
			return nil
		},
	}
}
