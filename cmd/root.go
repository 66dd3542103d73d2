package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"notemark/logger"
)

var (
	verbose bool
	pretty  bool
)

var rootCmd = &cobra.Command{
	Use:   "notemark",
	Short: "Personal notes and bookmarks API",
	Long: `notemark serves a JSON API for notes and bookmarks with tag and
text filtering. Bookmark titles are looked up from the page when omitted.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		return logger.Init(os.Stderr, level, pretty)
	},
}

// Execute runs the command line. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Human-friendly colored log output")
}
