// Command revctl is the command-line front end for the revision graph
// engine: it reads a directory of revision manifests, builds the frozen
// map, and exposes heads/bases/resolve/upgrade/downgrade/graph/add as
// subcommands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/revgraph-dev/revgraph/internal/obslog"
)

var (
	manifestDir string
	verboseFlag bool
	quietFlag   bool
	logFormat   string
	noColorFlag bool
	telemetryFlag bool

	rootCtx = context.Background()
)

var rootCmd = &cobra.Command{
	Use:           "revctl",
	Short:         "Inspect and plan schema migrations over a revision graph",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		obslog.SetVerbose(verboseFlag)
		obslog.SetQuiet(quietFlag)
		obslog.SetJSON(logFormat == "json")
		if noColorFlag || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		}
		manifestDir = viper.GetString("manifest_dir")
		telemetryEnabled = telemetryFlag
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&manifestDir, "manifest-dir", "./revisions", "directory of revision manifest files")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&telemetryFlag, "telemetry", false, "emit trace/metric output to stdout for this invocation")

	_ = viper.BindPFlag("manifest_dir", rootCmd.PersistentFlags().Lookup("manifest-dir"))
	viper.SetDefault("manifest_dir", "./revisions")
	viper.SetEnvPrefix("REVCTL")
	viper.AutomaticEnv()

	cobra.OnInitialize(initConfigFile)

	rootCmd.AddCommand(headsCmd)
	rootCmd.AddCommand(basesCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(downgradeCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
