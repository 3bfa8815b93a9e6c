package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// textFromArgsOrStdin joins args, or reads lines from stdin when there are
// none.
func (a *App) textFromArgsOrStdin(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	return GetMultiline(a.reader, prompt, a.out)
}

func newWriteCmd(a *App) *cobra.Command {
	var private, anonymize bool

	cmd := &cobra.Command{
		Use:   "write [text...]",
		Short: "Write a diary entry",
		Long: `Write a diary entry. Without arguments the text is read from stdin.
Entries are public unless --private is given. With --anonymize every name
from "veildiary mappings" is replaced by its pseudonym before publishing;
only you can see the original text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			text, err := a.textFromArgsOrStdin(args, "Entry text")
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			e, err := a.client.CreateEntry(ctx, text, !private, anonymize)
			if err != nil {
				return err
			}
			printEntry(a.out, e)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&private, "private", "p", false, "keep the entry to yourself")
	cmd.Flags().BoolVar(&anonymize, "anonymize", false, "replace mapped names with pseudonyms")
	return cmd
}

func newFeedCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Show the latest public entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			entries, err := a.client.Feed(ctx)
			if err != nil {
				return err
			}
			printEntries(a.out, entries)
			return nil
		},
	}
}

func newMineCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Show all of your entries, private ones included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			entries, err := a.client.MyEntries(ctx)
			if err != nil {
				return err
			}
			printEntries(a.out, entries)
			return nil
		},
	}
}

func newUserCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "user <username>",
		Short: "Show a user's public entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			entries, err := a.client.UserEntries(ctx, args[0])
			if err != nil {
				return err
			}
			printEntries(a.out, entries)
			return nil
		},
	}
}

func newRmCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <entry-id>",
		Short: "Delete one of your entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			if err := a.client.DeleteEntry(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Deleted")
			return nil
		},
	}
}
