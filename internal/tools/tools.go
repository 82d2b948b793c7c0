// Package tools builds the two tool registries, one per credential
// scope. Handlers are pure forwarding closures over the platform client:
// validate locally, make exactly one remote call, return the payload.
package tools

import (
	"encoding/json"

	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/protocol"
)

// Participant roles accepted by the add-participant tools.
var participantRoles = []string{"owner", "admin", "member"}

// Event message types accepted by createAgentChatEvent.
var eventTypes = []string{"tool_call", "tool_result", "thought", "error", "task"}

func objectSchema(required []string, props map[string]protocol.Property) protocol.InputSchema {
	if required == nil {
		required = []string{}
	}
	return protocol.InputSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func strProp(desc string) protocol.Property {
	return protocol.Property{Type: "string", Description: desc}
}

func intProp(desc string) protocol.Property {
	return protocol.Property{Type: "integer", Description: desc}
}

func enumProp(desc string, values []string) protocol.Property {
	return protocol.Property{Type: "string", Description: desc, Enum: values}
}

var pageProps = map[string]protocol.Property{
	"page":     intProp("Page number for pagination (optional)."),
	"pageSize": intProp("Number of items per page (optional)."),
}

// marshalParticipants re-encodes a typed participant list in the
// platform's response envelope shape.
func marshalParticipants(list []platform.Participant) (string, error) {
	data, err := json.MarshalIndent(map[string]any{"data": list}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// withPaging merges the shared pagination properties into props.
func withPaging(props map[string]protocol.Property) map[string]protocol.Property {
	merged := make(map[string]protocol.Property, len(props)+len(pageProps))
	for k, v := range pageProps {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}
	return merged
}
