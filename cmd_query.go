package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"desearch/internal/domain"
	"desearch/internal/search"
	"desearch/internal/ui/views"
)

// errSearchFailed marks a search that settled in the failed phase; the
// message has already been printed.
var errSearchFailed = errors.New("search failed")

func newQueryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <text...>",
		Short: "Run a single search and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			a, err := newApp(ctx, cfg, opts.tags, opts.debug)
			if err != nil {
				return err
			}
			defer a.Close()

			return runQuery(ctx, a.orch, strings.Join(args, " "), cmd.OutOrStdout(), cfg.UI.ShowDescriptions)
		},
	}
}

// runQuery performs one search and prints the settled state
func runQuery(ctx context.Context, orch *search.Orchestrator, query string, w io.Writer, showDescriptions bool) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query must not be blank")
	}

	state := orch.Search(ctx, query)
	if err := views.NewPrinter(w, showDescriptions).Print(state); err != nil {
		return err
	}
	if state.Phase == domain.PhaseFailed {
		return fmt.Errorf("%w: %s", errSearchFailed, state.Err)
	}
	return nil
}
