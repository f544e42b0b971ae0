package cli

import (
	"github.com/spf13/cobra"

	"onlinelibrary/internal/catalog"
)

// NewPopularCommand creates the popular command.
func NewPopularCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:           "popular",
		Short:         "List the highest rated books",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return NewExitError(ExitCommandError, "--limit must not be negative")
			}

			store, err := catalog.New()
			if err != nil {
				return WrapExitError(ExitFailure, "failed to seed catalog", err)
			}

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Books(catalog.Popular(store.All(), limit))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", catalog.PopularLimit, "number of books to list")

	return cmd
}
