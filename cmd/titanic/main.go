package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/analysis"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/config"
	"github.com/lennart-telwest/titanic-analysis-kaggle/pkg/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool
	inputPath  string
	outputDir  string
	noCharts   bool

	// clean flags
	cleanedName string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "titanic",
	Short: "Explore which passenger attributes went along with survival",
	Long: `titanic loads the passenger manifest, drops Cabin, interpolates missing
ages in file order, fills missing ports with "S", buckets ages, flags
passengers travelling with family, and reports counts and survival rates
per class, sex, age bucket and family for every view.

Configuration is read from --config (YAML), then TITANIC_* environment
variables (a .env file is honoured), then flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("input") {
			cfg.Input = inputPath
		}
		if cmd.Flags().Changed("output") {
			cfg.OutputDir = outputDir
		}
		if noCharts {
			cfg.Charts = false
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full exploration and write every chart and table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := analysis.New(cfg, logger, cmd.OutOrStdout()).Run(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("analysis complete", zap.String("run_id", res.RunID), zap.Int("views", len(res.Summaries)), zap.Strings("files", res.Files))
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the manifest, derive features and write the table as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := analysis.New(cfg, logger, cmd.OutOrStdout()).Clean()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cleaned table saved to:", res.Files[0])
		return nil
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show completeness, the age description before and after imputation and port counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := analysis.New(cfg, logger, cmd.OutOrStdout()).Describe()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "path to the manifest CSV")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "directory for charts and exports")
	rootCmd.PersistentFlags().BoolVar(&noCharts, "no-charts", false, "skip rendering charts")

	cleanCmd.Flags().StringVar(&cleanedName, "name", "", "file name of the cleaned CSV")
	cleanCmd.PreRun = func(cmd *cobra.Command, args []string) {
		if cleanedName != "" {
			cfg.CleanedCSV = cleanedName
		}
	}

	rootCmd.AddCommand(analyzeCmd, cleanCmd, describeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "titanic:", err)
		os.Exit(1)
	}
}
