package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"notemark/services"
)

var resolveTimeout time.Duration

var resolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Look up the title a bookmark for url would get",
	Long: `Fetch url the way bookmark creation does and print the title found.
When no title can be found the URL itself is printed, as it would be stored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := services.NewResolver(services.ResolverOptions{Timeout: resolveTimeout})

		title := resolver.Resolve(cmd.Context(), args[0])
		if title == "" {
			title = args[0]
		}
		fmt.Fprintln(cmd.OutOrStdout(), title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().DurationVar(&resolveTimeout, "timeout", services.DefaultMetadataTimeout, "Fetch timeout")
}
