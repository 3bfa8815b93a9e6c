package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTransformCmd(a *App) *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "transform [text...]",
		Short: "Preview how your mappings change a text",
		Long: `Apply your mappings to a text without saving anything. With --reverse
pseudonyms are turned back into the original names.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			text, err := a.textFromArgsOrStdin(args, "Text")
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			out, err := a.client.Transform(ctx, text, reverse)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "turn pseudonyms back into names")
	return cmd
}
