package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/cookbook/internal/display"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/storage"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse recipes interactively (the default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context(), a)
		},
	}
}

// runBrowse starts at Home and moves between the browser and the add form
// until the user quits.
func runBrowse(ctx context.Context, a *app) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return errors.New("browse needs a terminal; try `cookbook list`")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	changes := a.watchStore(ctx)

	shell := display.NewShell(domain.RouteHome, a.log.Named("nav"))
	shell.Handle(domain.RouteHome, func(ctx context.Context, _ string) error {
		b := display.NewBrowser(a.catalog, changes, a.log.Named("browser"))
		outcome, err := display.RunBrowser(ctx, b)
		if err != nil {
			return err
		}
		a.log.Debug("browser closed: %s", outcome)
		if outcome == display.OutcomeAdd {
			return shell.Navigate(ctx, domain.RouteAddRecipe, "")
		}
		return nil
	})
	shell.Handle(domain.RouteAddRecipe, a.addScreen(shell))

	fmt.Fprint(a.out, display.RenderBanner(0))
	return shell.Run(ctx)
}

// watchStore returns store change notifications, or nil when the backend
// has nothing on disk to watch.
func (a *app) watchStore(ctx context.Context) <-chan struct{} {
	if a.store.WatchDir == "" {
		return nil
	}
	ch, err := storage.Watch(ctx, a.store.WatchDir, a.store.WatchPrefix, storage.DefaultDebounce, a.log.Named("watch"))
	if err != nil {
		a.log.Warn("live refresh disabled: %v", err)
		return nil
	}
	return ch
}
