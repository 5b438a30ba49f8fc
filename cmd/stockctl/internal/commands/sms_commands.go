package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/stockkeeper/pkg/api"
)

func newSmsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sms",
		Short: "Low-stock SMS alerts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show whether alerts are on",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, _, err := a.authedClient()
				if err != nil {
					return err
				}
				resp, err := c.GetSmsPreference(cmd.Context(), &api.GetSmsPreferenceRequest{})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "SMS alerts: %s\n", onOff(resp.Enabled))
				return nil
			},
		},
		newSmsSetCmd(a, "enable", true),
		newSmsSetCmd(a, "disable", false),
	)
	return cmd
}

func newSmsSetCmd(a *app, use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Turn alerts %s", onOff(enabled)),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := a.authedClient()
			if err != nil {
				return err
			}
			if _, err := c.UpdateSmsPreference(cmd.Context(), &api.UpdateSmsPreferenceRequest{Enabled: enabled}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "SMS alerts: %s\n", onOff(enabled))
			return nil
		},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
