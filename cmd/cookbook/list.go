package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/cookbook/internal/display"
	"github.com/hammamikhairi/cookbook/internal/domain"
)

// summaryJSON is the --json shape of one list entry.
type summaryJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Area     string `json:"area"`
	IsCustom bool   `json:"isCustom"`
}

func newListCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List recipes, optionally filtered by name, category or area",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			recipes, err := a.catalog.Search(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("listing recipes: %w", err)
			}

			if jsonOutput {
				out := make([]summaryJSON, len(recipes))
				for i, r := range recipes {
					out[i] = summaryJSON(r)
				}
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Fprint(a.out, display.RenderList(recipes))
			if len(recipes) > 0 {
				fmt.Fprintln(a.out, display.RenderCount(recipes))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.catalog.Get(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no recipe with id %q", args[0])
			}
			if err != nil {
				return fmt.Errorf("loading recipe: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			fmt.Fprint(a.out, display.RenderDetail(r))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	return cmd
}
