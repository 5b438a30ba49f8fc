package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/stockkeeper/pkg/api"
)

func newItemsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage your inventory",
	}
	cmd.AddCommand(
		newItemsListCmd(a),
		newItemsAddCmd(a),
		newItemsUpdateCmd(a),
		newItemsDeleteCmd(a),
		newItemsClearCmd(a),
	)
	return cmd
}

func newItemsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := a.authedClient()
			if err != nil {
				return err
			}

			resp, err := c.ListItems(cmd.Context(), &api.ListItemsRequest{})
			if err != nil {
				return err
			}
			if len(resp.Items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No items.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tQUANTITY")
			for _, item := range resp.Items {
				fmt.Fprintf(w, "%d\t%s\t%d\n", item.ID, item.Name, item.Quantity)
			}
			return w.Flush()
		},
	}
}

func newItemsAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME QUANTITY",
		Short: "Add an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := parseQuantity(args[1])
			if err != nil {
				return err
			}

			c, _, err := a.authedClient()
			if err != nil {
				return err
			}

			if _, err := c.AddItem(cmd.Context(), &api.AddItemRequest{Name: args[0], Quantity: quantity}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d).\n", args[0], quantity)
			return nil
		},
	}
}

func newItemsUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update ID NAME QUANTITY",
		Short: "Rename an item and set its quantity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			quantity, err := parseQuantity(args[2])
			if err != nil {
				return err
			}

			c, _, err := a.authedClient()
			if err != nil {
				return err
			}

			_, err = c.UpdateItem(cmd.Context(), &api.UpdateItemRequest{ID: id, Name: args[1], Quantity: quantity})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated item %d.\n", id)
			return nil
		},
	}
}

func newItemsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			c, _, err := a.authedClient()
			if err != nil {
				return err
			}

			if _, err := c.DeleteItem(cmd.Context(), &api.DeleteItemRequest{ID: id}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %d.\n", id)
			return nil
		},
	}
}

func newItemsClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all of your items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := a.authedClient()
			if err != nil {
				return err
			}

			if _, err := c.ClearItems(cmd.Context(), &api.ClearItemsRequest{}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All items deleted.")
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}

// parseQuantity only checks the argument is an integer; range is the server's call.
func parseQuantity(s string) (int, error) {
	q, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return q, nil
}
