package ontonav

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soundprediction/ontonav"
	"github.com/soundprediction/ontonav/pkg/config"
	"github.com/soundprediction/ontonav/pkg/loader"
	"github.com/soundprediction/ontonav/pkg/logger"
	"github.com/soundprediction/ontonav/pkg/telemetry"
	"github.com/soundprediction/ontonav/pkg/types"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "ontonav",
		Short: "Ontonav: AI Ontology Navigator",
		Long: `Ontonav loads AI ontology snapshots and answers reachability questions
over them: which capabilities a task requires, which intrinsics implement
a capability, which risks a risk is mapped to.

Complete documentation is available at https://github.com/soundprediction/ontonav`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize configuration
			initConfig()
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ontonav.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringSlice("data", nil, "snapshot directories to load")

	// Bind flags to viper
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("data.paths", rootCmd.PersistentFlags().Lookup("data"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".ontonav" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ontonav")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
}

// loadOntology loads the configured snapshot directories.
func loadOntology(cfg *config.Config, log *slog.Logger) (*types.Ontology, error) {
	if len(cfg.Data.Paths) == 0 {
		return nil, fmt.Errorf("no data paths configured, set --data, data.paths, or ONTONAV_DATA_PATHS")
	}
	return loader.New(loader.WithLogger(log)).Load(cfg.Data.Paths...)
}

// buildExplorer assembles an Explorer over the configured snapshot. The
// returned cleanup flushes telemetry and must run before exit.
func buildExplorer(cfg *config.Config, log *slog.Logger) (*ontonav.Explorer, func(), error) {
	ontology, err := loadOntology(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	opts := []ontonav.Option{ontonav.WithLogger(log)}
	cleanup := func() {}
	if cfg.Telemetry.Enabled {
		recorder, err := telemetry.NewRecorder(cfg.Telemetry.Dir, cfg.Telemetry.BatchSize, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create telemetry recorder: %w", err)
		}
		opts = append(opts, ontonav.WithRecorder(recorder))
		cleanup = func() {
			if err := recorder.Close(); err != nil {
				log.Warn("failed to flush telemetry", "error", err)
			}
		}
	}

	explorer, err := ontonav.New(ontology, opts...)
	if err != nil {
		return nil, nil, err
	}
	return explorer, cleanup, nil
}
