package tools

import (
	"github.com/thenvoi/mcp-server/internal/logging"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/registry"
)

// BuildHumanRegistry assembles the tool surface visible to tv_user_*
// sessions.
func BuildHumanRegistry(client *platform.Client, log *logging.Logger) *registry.Registry {
	reg := registry.New()
	log = log.Sub("tools")

	registerHumanAccount(reg, client, log)
	registerHumanChats(reg, client, log)
	registerHumanMessages(reg, client, log)

	return reg
}
