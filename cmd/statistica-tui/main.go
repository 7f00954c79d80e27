// statistica-tui is the interactive workbench for the statistica analysis
// backend: pick a method, walk its wizard, and inspect the results without
// leaving the terminal.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scottierieh/statistica-frontend-sub010/analyses/catalog"
	"github.com/scottierieh/statistica-frontend-sub010/pkg/wizardapp"
	"github.com/scottierieh/statistica-frontend-sub010/utils/dataset"
	"github.com/scottierieh/statistica-frontend-sub010/utils/runlog"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
)

var (
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "statistica-tui <dataset.csv>",
	Short: "Terminal workbench for the statistica analysis backend",
	Long: `statistica-tui walks one statistical method through a step wizard:
choose variables, tune parameters, review the validation checklist, then
submit the run to the statistica backend and browse the results.

The dataset argument is a CSV file with a header row. Configuration can also
come from environment variables with the STATISTICA_ prefix, e.g.
STATISTICA_API_URL.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE:          runWizard,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available analysis methods",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := catalog.Default(nil)
		if err != nil {
			return err
		}
		for _, a := range registry.List() {
			meta := a.Metadata()
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", meta.ID, meta.Description)
		}
		return nil
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the most recent submission history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := runlog.Open(viper.GetString("run-log"), runlog.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("open run log: %w", err)
		}
		defer l.Close()

		runs, err := l.Recent(viper.GetInt("limit"))
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
			return nil
		}
		for _, run := range runs {
			outcome := "in flight"
			switch {
			case run.Finished && run.Succeeded:
				outcome = "ok"
			case run.Finished:
				outcome = "failed: " + run.Error
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s %s\n",
				run.StartedAt.Format(time.RFC3339), run.Analysis, outcome)
		}
		return nil
	},
}

func runWizard(cmd *cobra.Command, args []string) error {
	datasetPath := args[0]

	ds, err := dataset.Load(datasetPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	logger.Debug("dataset loaded",
		zap.String("path", datasetPath),
		zap.Int("rows", ds.Rows()),
		zap.Int("columns", len(ds.ColumnNames())))

	client, err := statsapi.New(viper.GetString("api-url"),
		statsapi.WithTimeout(viper.GetDuration("timeout")),
		statsapi.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("configure API client: %w", err)
	}

	registry, err := catalog.Default(client)
	if err != nil {
		return err
	}

	analysisID := viper.GetString("analysis")
	analysis, ok := registry.Get(analysisID)
	if !ok {
		ids := make([]string, 0, len(registry.List()))
		for _, a := range registry.List() {
			ids = append(ids, a.Metadata().ID)
		}
		return fmt.Errorf("unknown analysis %q (available: %s)", analysisID, strings.Join(ids, ", "))
	}

	opts := []wizardapp.Option{
		wizardapp.WithAnalysis(analysis),
		wizardapp.WithDataset(ds),
		wizardapp.WithExportPath(viper.GetString("export")),
	}

	if path := viper.GetString("run-log"); path != "" {
		l, err := runlog.Open(path, runlog.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("open run log: %w", err)
		}
		defer l.Close()
		opts = append(opts, wizardapp.WithRunLog(l))
	}

	if viper.GetBool("watch") {
		watcher, err := dataset.Watch(datasetPath, dataset.WithWatchLogger(logger))
		if err != nil {
			return fmt.Errorf("watch dataset: %w", err)
		}
		defer watcher.Close()
		opts = append(opts, wizardapp.WithDatasetWatcher(watcher, datasetPath))
	}

	app, err := wizardapp.New(opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = app.Stop()
	}()

	return app.Start(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("run-log", "statistica-runs.db", "path to the local run history database")

	rootCmd.Flags().StringP("analysis", "a", "naive-bayes", "analysis method to configure (see 'list')")
	rootCmd.Flags().String("api-url", "http://localhost:8000", "base URL of the statistica backend")
	rootCmd.Flags().Duration("timeout", 60*time.Second, "timeout for analysis requests")
	rootCmd.Flags().String("export", "analysis-results.csv", "path the export action writes result CSV to")
	rootCmd.Flags().Bool("watch", false, "reload the dataset and reset the wizard when the file changes")

	runsCmd.Flags().Int("limit", 20, "number of runs to show")

	cobra.CheckErr(viper.BindPFlag("run-log", rootCmd.PersistentFlags().Lookup("run-log")))
	cobra.CheckErr(viper.BindPFlag("analysis", rootCmd.Flags().Lookup("analysis")))
	cobra.CheckErr(viper.BindPFlag("api-url", rootCmd.Flags().Lookup("api-url")))
	cobra.CheckErr(viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout")))
	cobra.CheckErr(viper.BindPFlag("export", rootCmd.Flags().Lookup("export")))
	cobra.CheckErr(viper.BindPFlag("watch", rootCmd.Flags().Lookup("watch")))
	cobra.CheckErr(viper.BindPFlag("limit", runsCmd.Flags().Lookup("limit")))

	viper.SetEnvPrefix("STATISTICA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(listCmd, runsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
