package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"desearch/internal/domain"
	"desearch/internal/eventbus"
	"desearch/internal/ui"
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "desearch [query...]",
		Short: "Search programming interview questions from the terminal",
		Long: `desearch is a terminal client for the programming question search service.

Run it without arguments to open the interactive search, or pass a query to
start searching right away.

Examples:
  desearch
  desearch binary search --difficulty Easy
  desearch query "two pointers" --tag Arrays --limit 5`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, strings.Join(args, " "))
		},
	}
	opts.register(root)

	root.AddCommand(newQueryCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// runTUI starts the interactive program
func runTUI(cmd *cobra.Command, opts *rootOptions, query string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, opts.tags, false)
	if err != nil {
		return err
	}
	defer a.Close()

	model, err := ui.NewModel(a.orch, cfg,
		ui.WithContext(ctx),
		ui.WithLogger(a.logger),
		ui.WithInitialQuery(query),
	)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			a.logger.Warn("event channel full, dropping event", zap.String("type", string(e.Type())))
		}
	}
	for _, t := range domain.StateEventTypes {
		unsubscribe := a.bus.Subscribe(t, forwardEvent)
		defer unsubscribe()
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	if os.Getenv("DESEARCH_E2E_TEST") == "1" {
		fmt.Fprintln(cmd.OutOrStdout(), "__READY__")
	}

	a.logger.Info("starting UI", zap.String("initial_query", query))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Info("UI exited normally")
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "desearch %s\n", version)
		},
	}
}
