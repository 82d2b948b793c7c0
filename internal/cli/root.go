package cli

import (
	"github.com/spf13/cobra"
	"github.com/thenvoi/mcp-server/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	// created at init time
	log *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thenvoi-mcp",
		Short: "Thenvoi MCP server — platform tools over the Model Context Protocol",
		Long:  "thenvoi-mcp exposes the Thenvoi platform API as MCP tools, scoped to the kind of credential it is started with.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logLevel
			if level == "" {
				level = "info"
			}
			log = logging.New(nil, level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./thenvoi.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
