package tools

import (
	"context"
	"time"

	"github.com/thenvoi/mcp-server/internal/logging"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/protocol"
	"github.com/thenvoi/mcp-server/internal/registry"
)

func registerHumanMessages(reg *registry.Registry, client *platform.Client, log *logging.Logger) {
	reg.Register(registry.Tool{
		Name:        "listUserChatMessages",
		Description: "List messages in a chat room.",
		Schema: objectSchema([]string{"chatId"}, withPaging(map[string]protocol.Property{
			"chatId":      strProp("The chat room ID (required)."),
			"messageType": strProp("Filter by type: 'text', 'tool_call', etc. (optional)."),
			"since":       strProp("ISO 8601 timestamp to filter messages after (optional)."),
		})),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")

			var since *time.Time
			if raw := args.String("since"); raw != "" {
				t, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return "", registry.Validationf("invalid since timestamp %q: expected ISO 8601", raw)
				}
				since = &t
			}

			log.Debug().Str("chatId", chatID).Msg("fetching messages")
			raw, err := client.ListMyChatMessages(ctx, chatID, args.Int("page"), args.Int("pageSize"), args.String("messageType"), since)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "sendUserChatMessage",
		Description: "Send a message in a chat room. recipients is required - " +
			"provide comma-separated participant names to @mention; names are " +
			"resolved to IDs via the chat's participant list.",
		Schema: objectSchema([]string{"chatId", "content", "recipients"}, map[string]protocol.Property{
			"chatId":     strProp("The chat room ID (required)."),
			"content":    strProp("Message text (required)."),
			"recipients": strProp("Comma-separated participant names to @mention (required)."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")

			participants, err := client.ListMyChatParticipants(ctx, chatID, "")
			if err != nil {
				return "", err
			}
			mentions, err := resolveRecipients(args.String("recipients"), participants)
			if err != nil {
				return "", err
			}

			log.Debug().Str("chatId", chatID).Int("mentions", len(mentions)).Msg("sending message")
			raw, err := client.SendMyChatMessage(ctx, chatID, args.String("content"), mentions)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})
}
