// internal/cli/root.go
package mteb

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mwiater/mteb/internal/appconfig"
	"github.com/mwiater/mteb/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

// Flags whose values are merged from the config file when not given on the command line.
var (
	boolFlags  = []string{"debug", "jsonMode"}
	valueFlags = []string{"source", "dataDir", "hubURL", "seed", "logFile", "export", "exportMarkdown"}
)

var rootCmd = &cobra.Command{
	Use:          "mteb",
	Short:        "mteb: embedding benchmark task catalogue and dataset loader",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) If user did NOT set a flag, copy the config value into the flag so
		//    both pflags and viper reflect the same, final value.
		for _, name := range boolFlags {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(name)))
			}
		}
		for _, name := range valueFlags {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}

		// 3) Materialize the merged configuration (flags > config > defaults).
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return err
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		// 4) Logging. JSON mode keeps stdout for the payload.
		console := os.Stdout
		if cfg.JSONMode {
			console = os.Stderr
		}
		if err := logging.InitTo(console, cfg.LogFilePath()); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		logging.SetDebug(cfg.Debug)
		logging.LogDebug("config resolved: source=%s dataDir=%s seed=%d", cfg.Source, cfg.DataDir, cfg.Seed)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	d := appconfig.Defaults()
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("jsonMode", false, "enable JSON output mode")
	rootCmd.PersistentFlags().String("source", d.Source, "dataset source: local or hub")
	rootCmd.PersistentFlags().String("dataDir", d.DataDir, "root directory of the local dataset source")
	rootCmd.PersistentFlags().String("hubURL", d.HubURL, "base URL of the hub datasets-server")
	rootCmd.PersistentFlags().Int64("seed", d.Seed, "seed for subsampling")
	rootCmd.PersistentFlags().String("logFile", d.LogFile, "log file path")
	rootCmd.PersistentFlags().String("export", "", "write the loaded task summary to this file (.json or .yaml)")
	rootCmd.PersistentFlags().String("exportMarkdown", "", "write the loaded task summary as Markdown to this file")

	// Bind flags to Viper keys (flags override config)
	for _, name := range append(append([]string{}, boolFlags...), valueFlags...) {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults.
func ensureConfigLoaded() error {
	d := appconfig.Defaults()
	viper.SetDefault("debug", false)
	viper.SetDefault("jsonMode", false)
	viper.SetDefault("source", d.Source)
	viper.SetDefault("dataDir", d.DataDir)
	viper.SetDefault("hubURL", d.HubURL)
	viper.SetDefault("requestsPerSecond", d.RequestsPerSecond)
	viper.SetDefault("pageSize", d.PageSize)
	viper.SetDefault("timeout", d.TimeoutSeconds)
	viper.SetDefault("seed", d.Seed)
	viper.SetDefault("logFile", d.LogFile)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// No file: fine, we'll use defaults/flags
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the merged configuration, or the defaults before any command ran.
func GetConfig() *appconfig.Config {
	if currentConfig == nil {
		cfg := appconfig.Defaults()
		cfg.ApplyDefaults()
		return &cfg
	}
	return currentConfig
}

// Helper accessors (reflect merged Viper state)
func DebugEnabled() bool    { return viper.GetBool("debug") }
func JSONModeEnabled() bool { return viper.GetBool("jsonMode") }
