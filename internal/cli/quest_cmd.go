package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/questgen/internal/cli/formatter"
)

func newRankCmd(app *App) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "rank DESCRIPTION...",
		Short: "Rank dataset templates against a task description",
		Example: `  questgen rank 소파에 쌓인 빨래
  questgen rank -n 10 --explain "퇴근 후 10분 정리"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queryArg(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			candidates, err := app.Quests.Rank(ctx, query, app.Config.DefaultLimit)
			if err != nil {
				return err
			}

			view := rankView{Query: query, Candidates: make([]rankedItem, 0, len(candidates))}
			for _, c := range candidates {
				item := rankedItem{Candidate: c}
				if explain {
					if item.Breakdown, err = app.Quests.Explain(ctx, query, c.ID); err != nil {
						return err
					}
				}
				view.Candidates = append(view.Candidates, item)
			}

			return render(cmd.OutOrStdout(), app.Config.Output, view, func() string {
				var b strings.Builder
				b.WriteString(formatter.FormatCandidates(query, candidates))
				for _, item := range view.Candidates {
					if item.Breakdown != nil {
						b.WriteString("\n")
						b.WriteString(formatter.FormatBreakdown(item.Breakdown))
					}
				}
				return b.String()
			})
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "show the per-signal score breakdown of each candidate")
	return cmd
}

func newSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select DESCRIPTION...",
		Short: "Pick the single best quest, or report that the description is ambiguous",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queryArg(args)
			if err != nil {
				return err
			}
			sel, err := app.Quests.Select(cmd.Context(), query)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), app.Config.Output, newSelectionView(query, sel), func() string {
				return formatter.FormatSelection(query, sel) + "\n"
			})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a template and its missions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Quests.FindTemplate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), app.Config.Output, newTemplateView(t), func() string {
				return formatter.FormatTemplate(t)
			})
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile DESCRIPTION...",
		Short: "Show how a description is classified by the route rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queryArg(args)
			if err != nil {
				return err
			}
			p, err := app.Quests.Profile(cmd.Context(), query)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), app.Config.Output, newProfileView(query, p), func() string {
				return formatter.FormatProfile(query, p)
			})
		},
	}
}
