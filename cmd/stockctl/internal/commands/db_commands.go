package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/stockkeeper/internal/config"
	"github.com/mmynk/stockkeeper/internal/inventory"
	"github.com/mmynk/stockkeeper/internal/storage/sqlite"
)

var errNotConfirmed = errors.New("refusing to wipe the database without --yes")

// newDBCmd groups maintenance commands that open the database file directly.
func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance (local, no server needed)",
	}
	cmd.AddCommand(newDBResetCmd(a))
	return cmd
}

func newDBResetCmd(a *app) *cobra.Command {
	var (
		yes       bool
		usersOnly bool
		dbPath    string
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every user and item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errNotConfirmed
			}

			if dbPath == "" {
				cfg, err := config.Load(config.LoadOptions{ConfigPath: a.configPath})
				if err != nil {
					return err
				}
				dbPath = cfg.Storage.Path
			}

			store, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if usersOnly {
				if err := store.ClearUsersTable(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared users in %s.\n", dbPath)
				return nil
			}

			if err := inventory.NewController(store).ClearDatabase(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared users and items in %s.\n", dbPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	cmd.Flags().BoolVar(&usersOnly, "users-only", false, "only clear the users table")
	cmd.Flags().StringVar(&dbPath, "db", "", "database file (default from config)")
	return cmd
}
