// internal/cli/root.go
package arcx

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arcx/internal/appconfig"
	"arcx/internal/logging"
	"arcx/internal/prefs"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	prefStore     prefs.Store
)

var rootCmd = &cobra.Command{
	Use:   "arcx",
	Short: "arcx — terminal companion for the ARC Explainer benchmarking platform",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file required; it names the API base URL).
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) If the user did NOT set the flag, copy the config value into
		//    the flag so both pflags and viper reflect the same value.
		if !cmd.Flags().Changed("debug") {
			val := viper.GetBool("debug")
			_ = cmd.Flags().Set("debug", strconv.FormatBool(val))
		}
		currentConfig.Debug = viper.GetBool("debug")

		// 3) Route logging per the merged configuration.
		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}

		// 4) Open the preference store (last model/dataset/sort memory).
		store, err := prefs.OpenFile(currentConfig.PrefsFilePath())
		if err != nil {
			return fmt.Errorf("open preference store: %w", err)
		}
		prefStore = store

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
	},
}

// Execute runs the root command, exiting nonzero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file and materializes a stable
// snapshot for the command implementations.
func ensureConfigLoaded() error {
	viper.SetDefault("debug", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg, err := appconfig.Load(cfgFile)
	if err != nil {
		return err
	}
	currentConfig = &cfg
	return nil
}

// GetConfig returns the loaded application configuration for the command
// implementations.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// Prefs returns the process preference store.
func Prefs() prefs.Store {
	if prefStore == nil {
		prefStore = prefs.NewMemory()
	}
	return prefStore
}

// DebugEnabled reflects the merged viper state.
func DebugEnabled() bool { return viper.GetBool("debug") }
