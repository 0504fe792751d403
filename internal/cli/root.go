package cli

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexanderramin/questgen/internal/config"
	"github.com/alexanderramin/questgen/internal/service"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Quests   service.QuestService
	Datasets service.DatasetService
	Config   config.Config

	// Metrics is dumped to stderr after each command when --metrics is set.
	Metrics prometheus.Gatherer

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Bootstrap builds the services once flags, env and config file have
	// been resolved. Tests inject services directly and leave it nil.
	Bootstrap func(cfg config.Config) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "questgen" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	def := config.DefaultConfig()
	root := &cobra.Command{
		Use:           "questgen",
		Short:         "Turn a free-text task description into a ready-made quest",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.New(), cmd.Flags())
			if err != nil {
				return err
			}
			app.Config = cfg
			if app.Bootstrap != nil {
				return app.Bootstrap(cfg)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !app.Config.MetricsDump || app.Metrics == nil {
				return nil
			}
			return writeMetrics(cmd.ErrOrStderr(), app.Metrics)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default ./questgen.yaml or ~/.questgen/questgen.yaml)")
	pf.String("dataset", def.DatasetDir, "dataset directory")
	pf.String("db", def.DBPath, "SQLite document store path")
	pf.Bool("use-db", def.UseDB, "load the dataset from the document store instead of the directory")
	pf.IntP("limit", "n", def.DefaultLimit, "number of candidates to show")
	pf.Int("cache-size", def.CacheSize, "rank cache entries (0 disables)")
	pf.String("log-level", def.LogLevel, "log level: debug, info, warn or error")
	pf.Bool("log-use-cases", def.LogUseCases, "log every service use case to stderr")
	pf.StringP("output", "o", def.Output, "output format: text, json or yaml")
	pf.Bool("metrics", def.MetricsDump, "print Prometheus metrics to stderr after the command")

	root.AddCommand(
		newRankCmd(app),
		newSelectCmd(app),
		newPickCmd(app),
		newShowCmd(app),
		newProfileCmd(app),
		newExploreCmd(app),
		newDatasetCmd(app),
	)

	return root
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
