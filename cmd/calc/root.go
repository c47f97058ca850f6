package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"retrocalc/internal/apiclient"
	"retrocalc/internal/clock"
)

var (
	cfgFile string

	// logger is built in PersistentPreRunE; a no-op unless --log-file is set.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "RetroCalc - terminal calculator backed by the retrocalc API",
	Long: `calc is a keypad calculator whose arithmetic is evaluated by the retrocalc
API (cmd/api). It keeps one pending operator and one stored operand, like a
pocket calculator.

Examples:
  # interactive calculator
  calc --api-url http://localhost:8080

  # evaluate a key sequence and print the display and log
  calc eval 3 + 4 =

  # print the server clock once
  calc time`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := buildLogger(viper.GetString("log_file"), viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.retrocalc.yaml)")
	flags.StringP("api-url", "u", apiclient.DefaultBaseURL, "retrocalc API base URL")
	flags.Duration("timeout", 10*time.Second, "timeout for each API request")
	flags.Duration("clock-interval", clock.DefaultInterval, "how often the live clock is refreshed")
	flags.String("log-file", "", "write JSON logs to this file")
	flags.BoolP("verbose", "v", false, "log at debug level")

	_ = viper.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("clock_interval", flags.Lookup("clock-interval"))
	_ = viper.BindPFlag("log_file", flags.Lookup("log-file"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))

	rootCmd.AddCommand(evalCmd, timeCmd)
}

// initConfig loads settings with precedence flags > CALC_* env > config file.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".retrocalc")
	}

	viper.SetEnvPrefix("CALC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "calc: reading config %s: %v\n", cfgFile, err)
		}
	}
}

func buildLogger(path string, verbose bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func newClient() *apiclient.Client {
	return apiclient.New(
		viper.GetString("api_url"),
		apiclient.WithTimeout(viper.GetDuration("timeout")),
		apiclient.WithLogger(logger),
	)
}
