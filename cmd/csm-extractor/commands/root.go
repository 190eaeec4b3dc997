package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "csm-extractor",
	Short: "Extract planned machinery survey data from class survey reports",
	Long: `csm-extractor locates the Planned Machinery Survey (CSM) section inside a
class survey status report PDF, reads its tables with a vision model, and
writes the result as structured JSON.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
