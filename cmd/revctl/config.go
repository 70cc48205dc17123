package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initConfigFile wires viper's file layer, following this codebase's
// flag > viper (env + file) > default precedence: the PersistentFlags
// bound in main.go's init take priority once set explicitly, viper
// reads REVCTL_MANIFEST_DIR and ~/.config/revctl/config.toml next, and
// the SetDefault call in main.go's init is the fallback.
func initConfigFile() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return
	}
	dir := filepath.Join(configDir, "revctl")
	viper.AddConfigPath(dir)
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	_ = viper.ReadInConfig() // absent config file is not an error
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read or write persisted revctl configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(viper.GetString(args[0]))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Persist a configuration value to the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		viper.Set(key, value)

		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("locating config directory: %w", err)
		}
		dir := filepath.Join(configDir, "revctl")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		path := filepath.Join(dir, "config.toml")
		if err := viper.WriteConfigAs(path); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
		fmt.Printf("%s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
