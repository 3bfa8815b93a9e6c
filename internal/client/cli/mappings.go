package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMappingsCmd(a *App) *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		ctx, cancel := a.requestContext(cmd.Context())
		defer cancel()

		ms, err := a.client.Mappings(ctx)
		if err != nil {
			return err
		}
		printMappings(a.out, ms)
		return nil
	}

	cmd := &cobra.Command{
		Use:     "mappings",
		Aliases: []string{"mapping", "names"},
		Short:   "Manage the names hidden by --anonymize",
		Args:    cobra.NoArgs,
		RunE:    list,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your mappings, newest first",
			Args:  cobra.NoArgs,
			RunE:  list,
		},
		&cobra.Command{
			Use:   "add <original> <pseudonym>",
			Short: "Add a mapping, or change the pseudonym of an existing one",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.requireLogin(); err != nil {
					return err
				}
				ctx, cancel := a.requestContext(cmd.Context())
				defer cancel()

				m, err := a.client.SaveMapping(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s -> %s (%s)\n", m.Original, m.Pseudonym, m.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm <id>",
			Aliases: []string{"delete"},
			Short:   "Delete a mapping",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.requireLogin(); err != nil {
					return err
				}
				ctx, cancel := a.requestContext(cmd.Context())
				defer cancel()

				if err := a.client.DeleteMapping(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "Deleted")
				return nil
			},
		},
	)
	return cmd
}
