package tools

import (
	"github.com/thenvoi/mcp-server/internal/logging"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/registry"
)

// BuildAgentRegistry assembles the tool surface visible to tv_agent_*
// sessions.
func BuildAgentRegistry(client *platform.Client, log *logging.Logger, baseURL string) *registry.Registry {
	reg := registry.New()
	log = log.Sub("tools")

	registerAgentIdentity(reg, client, log, baseURL)
	registerAgentChats(reg, client, log)
	registerAgentMessages(reg, client, log)
	registerAgentLifecycle(reg, client, log)

	return reg
}
