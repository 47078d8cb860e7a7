// internal/cli/show_config.go
package mteb

import (
	"github.com/mwiater/mteb/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements 'show config', which prints the configuration
// after the config file, flags and defaults have been merged.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), currentConfig, *GetConfig())
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
