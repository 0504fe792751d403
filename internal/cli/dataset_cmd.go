package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/questgen/internal/cli/formatter"
	"github.com/alexanderramin/questgen/internal/config"
	"github.com/alexanderramin/questgen/internal/dataset"
	"github.com/alexanderramin/questgen/internal/domain"
)

func newDatasetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Validate, import and inspect quest datasets",
	}

	cmd.AddCommand(
		newDatasetCheckCmd(app),
		newDatasetImportCmd(app),
		newDatasetHistoryCmd(app),
		newDatasetStatsCmd(app),
	)

	return cmd
}

// datasetDir is the positional DIR argument, or the configured directory.
func datasetDir(app *App, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return app.Config.DatasetDir
}

func newDatasetCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check [DIR]",
		Short: "Validate a dataset directory without importing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := datasetDir(app, args)
			res, err := app.Datasets.Check(cmd.Context(), dataset.DirSource{Dir: dir})
			if err != nil {
				return err
			}
			if res.Problems == nil {
				res.Problems = []string{}
			}
			err = render(cmd.OutOrStdout(), app.Config.Output, res, func() string {
				return formatter.FormatCheckResult(dir, res)
			})
			if err != nil {
				return err
			}
			if !res.OK() {
				return fmt.Errorf("dataset %s has %d problem(s)", dir, len(res.Problems))
			}
			return nil
		},
	}
}

func newDatasetImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import [DIR]",
		Short: "Validate a dataset directory and store it in the document store",
		Long: `Validates the five dataset documents and replaces the stored copy in one
transaction. Later commands run with --use-db read the stored copy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := datasetDir(app, args)
			label, err := filepath.Abs(dir)
			if err != nil {
				label = dir
			}

			if app.interactive() && app.Config.Output == config.OutputText {
				stop := formatter.StartSpinner(cmd.ErrOrStderr(), "importing "+dir)
				defer stop()
			}
			imp, err := app.Datasets.Import(cmd.Context(), dataset.DirSource{Dir: dir}, label)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), app.Config.Output, imp, func() string {
				return formatter.FormatImport(imp)
			})
		},
	}
}

func newDatasetHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List dataset imports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			imports, err := app.Datasets.History(cmd.Context())
			if err != nil {
				return err
			}
			if imports == nil {
				imports = []*domain.DatasetImport{}
			}
			return render(cmd.OutOrStdout(), app.Config.Output, imports, func() string {
				return formatter.FormatImportHistory(imports)
			})
		},
	}
}

func newDatasetStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show counts for the dataset the rank commands use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Quests == nil {
				return errors.New("quest service is not configured")
			}
			st, err := app.Quests.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), app.Config.Output, st, func() string {
				return formatter.Header("Dataset") + "\n" + formatter.FormatStats(st)
			})
		},
	}
}
