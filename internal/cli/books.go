package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"onlinelibrary/internal/catalog"
	"onlinelibrary/internal/slug"
)

// BooksOptions holds flags for the books command.
type BooksOptions struct {
	Category string
	Search   string
}

// NewBooksCommand creates the books command.
func NewBooksCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BooksOptions{}

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List the seeded catalog",
		Long: `List the seeded catalog, filtered the same way the browse page is.

--category takes a category slug such as "sci-fi" or "all". --search keeps
books whose title or author contains the text, ignoring case.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.New()
			if err != nil {
				return WrapExitError(ExitFailure, "failed to seed catalog", err)
			}

			books := store.All()
			if !catalog.HasCategory(books, opts.Category) {
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown category %q", opts.Category))
			}

			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Books(catalog.Filter(books, opts.Category, opts.Search))
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", slug.All, "category slug")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "title or author text")

	return cmd
}
