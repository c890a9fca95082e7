package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/joescharf/revscore/internal/logging"
	"github.com/joescharf/revscore/internal/output"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui     *output.UI
	logger *zap.Logger

	verbose bool
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "revscore",
	Short: "Rank code-generation agents from their review results",
	Long: `revscore aggregates self-reviews, independent reviews and security reviews
produced for several candidate implementations of the same task, scores each
candidate on three axes and writes a markdown ranking report.

Running bare 'revscore' runs the full analysis and writes the report.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return analyzeRun()
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Analyze without writing the report")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/revscore/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".config", "revscore"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("REVSCORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

// defaultCandidates maps each candidate to the commit hash its reviews were run against.
var defaultCandidates = map[string]string{
	"1-multi":  "c08a599",
	"2-claude": "8da96b7",
	"3-codex":  "7171739",
	"4-gemini": "74b55c1",
	"5-amp":    "4def1d7",
	"6-droid":  "b2afeaa",
	"7-cursor": "d6bfeca",
	"8-qwen":   "f256d40",
}

func setDefaults() {
	viper.SetDefault("base_dir", "results")
	viper.SetDefault("report_path", "COMPREHENSIVE_ANALYSIS_REPORT.md")
	viper.SetDefault("unified.candidate", "1-multi")
	viper.SetDefault("unified.file", "unified-review.json")
	viper.SetDefault("candidates", defaultCandidates)
	viper.SetDefault("weights.self", 0.2)
	viper.SetDefault("weights.independent", 0.4)
	viper.SetDefault("weights.security", 0.4)
	viper.SetDefault("thresholds.self", 50.0)
	viper.SetDefault("thresholds.independent", 70.0)
	viper.SetDefault("thresholds.security", 70.0)
	viper.SetDefault("thresholds.needs_work", 50.0)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
	ui.DryRun = dryRun

	logCfg := logging.DefaultConfig()
	logCfg.Level = viper.GetString("log.level")
	logCfg.File = viper.GetString("log.file")
	if verbose {
		logCfg.Level = "debug"
	}
	logger = logging.NewConsole(logCfg)
}
