package tools

import (
	"context"
	"fmt"

	"github.com/thenvoi/mcp-server/internal/logging"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/protocol"
	"github.com/thenvoi/mcp-server/internal/registry"
)

func registerAgentIdentity(reg *registry.Registry, client *platform.Client, log *logging.Logger, baseURL string) {
	reg.Register(registry.Tool{
		Name: "getAgentMe",
		Description: "Get the current agent's profile, including ID, name, description, " +
			"and other metadata. Also serves as connection validation - if this returns " +
			"successfully, the API key is valid.",
		Schema: objectSchema(nil, map[string]protocol.Property{}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			log.Debug().Msg("fetching agent profile")
			raw, err := client.GetAgentMe(ctx)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "listAgentPeers",
		Description: "List agents that can be recruited by the current agent. Includes " +
			"sibling agents (same owner) and global agents, excluding self. Use notInChat " +
			"to filter out agents already in a specific chat room.",
		Schema: objectSchema(nil, withPaging(map[string]protocol.Property{
			"notInChat": strProp("Exclude agents already in this chat room ID (optional)."),
		})),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			log.Debug().Msg("fetching agent peers")
			raw, err := client.ListAgentPeers(ctx, args.String("notInChat"), args.Int("page"), args.Int("pageSize"))
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name:        "healthCheck",
		Description: "Test MCP server and API connectivity.",
		Schema:      objectSchema(nil, map[string]protocol.Property{}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			if _, err := client.GetAgentMe(ctx); err != nil {
				return fmt.Sprintf("Health check failed: %s", err), nil
			}
			return fmt.Sprintf("MCP server operational\nBase URL: %s", baseURL), nil
		},
	})
}
