package tools

import (
	"context"
	"encoding/json"

	"github.com/thenvoi/mcp-server/internal/logging"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/protocol"
	"github.com/thenvoi/mcp-server/internal/registry"
)

func registerAgentMessages(reg *registry.Registry, client *platform.Client, log *logging.Logger) {
	reg.Register(registry.Tool{
		Name: "getAgentChatContext",
		Description: "Get conversation context for agent rehydration. Returns all " +
			"messages the agent sent plus all text messages that @mention the agent, " +
			"in chronological order (oldest first). Use this to load the complete " +
			"context an external agent needs to resume execution.",
		Schema: objectSchema([]string{"chatId"}, withPaging(map[string]protocol.Property{
			"chatId": strProp("The unique identifier of the chat room (required)."),
		})),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")
			log.Debug().Str("chatId", chatID).Msg("fetching agent context")
			raw, err := client.GetAgentChatContext(ctx, chatID, args.Int("page"), args.Int("pageSize"))
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "createAgentChatMessage",
		Description: "Send a text message in a chat room. Messages MUST include at " +
			"least one @mention to ensure proper routing. Either provide recipients " +
			"as comma-separated participant names (resolved to IDs automatically), or " +
			"mentions as a JSON array of pre-resolved {\"id\", \"name\"} objects. If " +
			"both are provided, mentions takes precedence. For event-type messages " +
			"(tool_call, tool_result, thought, error, task), use createAgentChatEvent " +
			"instead.",
		Schema: objectSchema([]string{"chatId", "content"}, map[string]protocol.Property{
			"chatId":  strProp("The unique identifier of the chat room (required)."),
			"content": strProp("The message content/text (required)."),
			"recipients": strProp("Comma-separated participant names to tag, e.g. " +
				"\"weather agent,sarah\". Names are resolved to IDs via the chat's " +
				"participant list."),
			"mentions": strProp("JSON array of mentions with pre-resolved IDs: " +
				"[{\"id\": \"uuid\", \"name\": \"display_name\"}, ...]. Skips name " +
				"resolution when provided."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")
			mentions, err := agentMentions(ctx, client, chatID, args)
			if err != nil {
				return "", err
			}

			log.Debug().Str("chatId", chatID).Int("mentions", len(mentions)).Msg("creating message")
			raw, err := client.CreateAgentChatMessage(ctx, chatID, args.String("content"), mentions)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "createAgentChatEvent",
		Description: "Post an event in a chat room (tool_call, tool_result, thought, " +
			"error, task). Events do NOT require mentions - they report what happened " +
			"rather than directing messages at participants. For text messages with " +
			"mentions, use createAgentChatMessage instead.",
		Schema: objectSchema([]string{"chatId", "content", "messageType"}, map[string]protocol.Property{
			"chatId":      strProp("The unique identifier of the chat room (required)."),
			"content":     strProp("Human-readable event content (required)."),
			"messageType": enumProp("Event type (required).", eventTypes),
			"metadata":    strProp("Optional JSON object with structured event data. Structure varies by messageType."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")

			var metadata map[string]any
			if raw := args.String("metadata"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
					return "", registry.Validationf("invalid JSON for metadata: %s", err.Error())
				}
			}

			log.Debug().Str("chatId", chatID).Str("messageType", args.String("messageType")).Msg("creating event")
			raw, err := client.CreateAgentChatEvent(ctx, chatID, args.String("content"), args.String("messageType"), metadata)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})
}

// agentMentions produces the validated mention set for a message: the
// pre-resolved mentions argument wins, otherwise recipient names are
// resolved against the chat's participants. Missing both is an error that
// tells the caller how to discover participants.
func agentMentions(ctx context.Context, client *platform.Client, chatID string, args registry.Args) ([]platform.Mention, error) {
	if raw := args.String("mentions"); raw != "" {
		return parseMentions(raw)
	}

	if recipients := args.String("recipients"); recipients != "" {
		participants, err := client.ListAgentChatParticipants(ctx, chatID)
		if err != nil {
			return nil, err
		}
		return resolveRecipients(recipients, participants)
	}

	return nil, registry.Validationf("missing recipients or mentions. To send a message, specify who to tag. "+
		"Use recipients='name1,name2' (names) or mentions='[{\"id\":\"uuid\",\"name\":\"display_name\"}]' (IDs). "+
		"Call listAgentChatParticipants(chatId='%s') to see available participants.", chatID)
}
