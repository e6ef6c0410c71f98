package cmd

import (
	"github.com/spf13/cobra"
)

func newOrderCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "order <binding-file>",
		Short: "Print the prototype creation order",
		Long: `Print the interfaces that get a prototype, in creation order.

Each line holds an interface name followed by its parent, if any.
Dictionaries and interfaces without an interface object are left out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := buildMap(o.cfg, args[0])
			if err != nil {
				return err
			}
			return writeOrder(cmd.OutOrStdout(), m)
		},
	}
}
