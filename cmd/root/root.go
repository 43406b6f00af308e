// Package root contains the root command for the application
package root

import (
	"context"
	"os"

	"fjacquet/cfo-copilot/internal/common"
	"fjacquet/cfo-copilot/internal/config"
	"fjacquet/cfo-copilot/internal/container"
	"fjacquet/cfo-copilot/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	LogLevel string
	Data     string
	JSON     bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "cfo-copilot",
		Short: "A CLI copilot that answers finance questions from monthly actuals, budget, FX and cash data.",
		Long: `cfo-copilot answers questions about revenue vs budget, gross margin trend,
opex breakdown, EBITDA and cash runway from a monthly finance dataset
(a CSV directory or an .xlsx workbook).`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to cfo-copilot!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()

			cfg := GetConfig()
			if cfg == nil {
				Log.Fatal("Failed to load configuration")
			}
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Ensure CSV delimiter is updated after env variables are loaded
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// AppContainer is the lazily built application container. Tests may
	// reset it to force reinitialization.
	AppContainer *container.Container

	appConfig *config.Config
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.LogLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Data, "data", "d", "", "Data source: CSV directory or .xlsx workbook")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.JSON, "json", "j", false, "Render answers as JSON envelopes")
}

// GetConfig returns the application configuration, loading it on first use.
// Command-line flags take precedence over file and environment values.
// A nil return means loading failed and the cause was logged.
func GetConfig() *config.Config {
	if appConfig != nil {
		return appConfig
	}

	cfg, err := config.InitializeConfig()
	if err != nil {
		Log.WithError(err).Error("Failed to load configuration")
		return nil
	}

	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.Data != "" {
		cfg.Data.Source = SharedFlags.Data
	}

	appConfig = cfg
	return appConfig
}

// GetContainer returns the application container, building it on first use.
// A nil return means initialization failed and the cause was logged; callers
// decide whether that is fatal.
func GetContainer() *container.Container {
	if AppContainer != nil {
		return AppContainer
	}

	cfg := GetConfig()
	if cfg == nil {
		return nil
	}

	c, err := container.NewContainer(context.Background(), cfg)
	if err != nil {
		GetLogrusAdapter().WithError(err).Error("Failed to initialize application container")
		return nil
	}

	AppContainer = c
	return AppContainer
}

// GetLogrusAdapter wraps the shared command logger in the logging interface
// used by internal packages.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}
