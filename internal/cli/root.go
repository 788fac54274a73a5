package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	configDir  string

	groupTitleColor = color.New(color.FgCyan, color.Bold)
)

// rootCmd is the root command for planner.
var rootCmd = &cobra.Command{
	Use:     "planner",
	Version: "dev",
	Short:   "Inspect trip itineraries kept by the itinerary service",
	Long: `planner reads itineraries from the itinerary service the way the editor
sees them: days in order, destinations sorted by time, and the routes
between consecutive destinations.`,
	// Explicit Args keeps flag values such as --config-dir from being read
	// as subcommand names.
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion overrides the version printed by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding app.env")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "itinerary",
		Title: groupTitleColor.Sprint("Itinerary:"),
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "local-api",
		Title: groupTitleColor.Sprint("Local API:"),
	})

	rootCmd.AddCommand(showCmd, routesCmd, tokenCmd)
}
