// internal/cli/show_config.go
package arcx

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"arcx/internal/appconfig"
)

// showCmd groups read-only inspection commands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Inspect application state",
}

// showConfigCmd prints the merged configuration. With --debug the full
// struct is pretty-printed as well.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		appconfig.ShowConfig(cmd.OutOrStdout(), cfg.ConfigPath, cfg)
		if DebugEnabled() {
			pp.Println(cfg)
		}
		return nil
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(showCmd)
}
