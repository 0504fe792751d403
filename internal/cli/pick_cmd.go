package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/questgen/internal/cli/formatter"
	"github.com/alexanderramin/questgen/internal/ranking"
)

// errNoPick is returned when the user aborts the candidate prompt.
var errNoPick = errors.New("no quest picked")

// pickRunner shows the candidate prompt and returns the chosen template id.
// Replaced in tests.
type pickRunner func(ctx context.Context, query string, pool []ranking.Candidate) (string, error)

func newPickCmd(app *App) *cobra.Command {
	return newPickCmdWith(app, runPickForm)
}

func newPickCmdWith(app *App, prompt pickRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "pick DESCRIPTION...",
		Short: "Select a quest, asking which one when the match is ambiguous",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queryArg(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			sel, err := app.Quests.Select(ctx, query)
			if err != nil {
				return err
			}
			if sel.Candidate != nil || len(sel.Pool) == 0 {
				fmt.Fprintln(out, formatter.FormatSelection(query, sel))
				return nil
			}
			if !app.interactive() {
				fmt.Fprintln(out, formatter.FormatSelection(query, sel))
				return errors.New("ambiguous description; run pick in a terminal or use show ID")
			}

			pool := sel.Pool[:min(len(sel.Pool), app.Config.DefaultLimit)]
			id, err := prompt(ctx, query, pool)
			if err != nil {
				return err
			}
			for i := range pool {
				if pool[i].ID == id {
					sel = ranking.Selection{Candidate: &pool[i], Rule: sel.Rule, Pool: sel.Pool}
					break
				}
			}
			if sel.Candidate == nil {
				return fmt.Errorf("%w: %s", errNoPick, id)
			}
			fmt.Fprintln(out, formatter.FormatSelection(query, sel))
			return nil
		},
	}
}

func runPickForm(ctx context.Context, query string, pool []ranking.Candidate) (string, error) {
	options := make([]huh.Option[string], 0, len(pool))
	for _, c := range pool {
		label := fmt.Sprintf("%s  %s  %s", c.Title, formatter.FormatMinutes(c.EstimatedTimeMin), formatter.Dim(c.Intent))
		options = append(options, huh.NewOption(label, c.ID))
	}

	var chosen string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which quest fits?").
				Description(query).
				Options(options...).
				Value(&chosen),
		),
	).WithTheme(questHuhTheme()).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errNoPick
		}
		return "", err
	}
	return chosen, nil
}
