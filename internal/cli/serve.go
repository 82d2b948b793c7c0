package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenvoi/mcp-server/internal/config"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/server"
)

const defaultConfigPath = "thenvoi.yaml"

func newServeCmd() *cobra.Command {
	var (
		transport string
		port      int
		bind      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				path = defaultConfigPath
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			if transport != "" {
				cfg.Server.Transport = transport
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			issues := config.Validate(cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Msg(issue.Error())
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			creds, err := platform.NewCredentials(cfg.API.Key, cfg.API.BaseURL)
			if err != nil {
				return err
			}

			log.Info().
				Str("transport", cfg.Server.Transport).
				Str("scope", string(creds.Kind)).
				Str("baseUrl", cfg.API.BaseURL).
				Msg("starting server")

			srv := server.New(cfg, log, creds)

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			switch cfg.Server.Transport {
			case "stdio":
				return srv.ServeStdio(ctx)
			default:
				return srv.ServeHTTP(ctx)
			}
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "override transport (stdio, sse, ws)")
	cmd.Flags().IntVar(&port, "port", 0, "override server port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (loopback, lan)")

	return cmd
}
