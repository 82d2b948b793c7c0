package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenvoi/mcp-server/internal/logging"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/protocol"
	"github.com/thenvoi/mcp-server/internal/registry"
)

func registerHumanChats(reg *registry.Registry, client *platform.Client, log *logging.Logger) {
	reg.Register(registry.Tool{
		Name:        "listUserChats",
		Description: "List chat rooms where the user is a participant.",
		Schema:      objectSchema(nil, withPaging(map[string]protocol.Property{})),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			log.Debug().Msg("fetching user's chat rooms")
			raw, err := client.ListMyChats(ctx, args.Int("page"), args.Int("pageSize"))
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name:        "getUserChat",
		Description: "Get a specific chat room by ID.",
		Schema: objectSchema([]string{"chatId"}, map[string]protocol.Property{
			"chatId": strProp("The chat room ID (required)."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")
			log.Debug().Str("chatId", chatID).Msg("fetching chat")
			raw, err := client.GetMyChat(ctx, chatID)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name:        "createUserChat",
		Description: "Create a new chat room with the user as owner.",
		Schema: objectSchema(nil, map[string]protocol.Property{
			"taskId": strProp("Optional task ID to associate with the chat."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			log.Debug().Msg("creating chat room")
			raw, err := client.CreateMyChat(ctx, args.String("taskId"))
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name:        "listUserChatParticipants",
		Description: "List participants in a chat room.",
		Schema: objectSchema([]string{"chatId"}, map[string]protocol.Property{
			"chatId":          strProp("The chat room ID (required)."),
			"participantType": enumProp("Filter by type (optional).", []string{"User", "Agent"}),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")
			log.Debug().Str("chatId", chatID).Msg("fetching participants")
			participants, err := client.ListMyChatParticipants(ctx, chatID, args.String("participantType"))
			if err != nil {
				return "", err
			}
			return marshalParticipants(participants)
		},
	})

	reg.Register(registry.Tool{
		Name:        "addUserChatParticipant",
		Description: "Add a participant to a chat room.",
		Schema: objectSchema([]string{"chatId", "participantId"}, map[string]protocol.Property{
			"chatId":        strProp("The chat room ID (required)."),
			"participantId": strProp("ID of user or agent to add (required)."),
			"role":          enumProp("Role to assign (optional, defaults to 'member').", participantRoles),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")
			participantID := args.String("participantId")
			role := strings.ToLower(args.String("role"))
			if role == "" {
				role = "member"
			}
			log.Debug().Str("chatId", chatID).Str("participantId", participantID).Msg("adding participant")
			if _, err := client.AddMyChatParticipant(ctx, chatID, participantID, role); err != nil {
				return "", err
			}
			return fmt.Sprintf("Added participant: %s", participantID), nil
		},
	})

	reg.Register(registry.Tool{
		Name:        "removeUserChatParticipant",
		Description: "Remove a participant from a chat room.",
		Schema: objectSchema([]string{"chatId", "participantId"}, map[string]protocol.Property{
			"chatId":        strProp("The chat room ID (required)."),
			"participantId": strProp("ID of participant to remove (required)."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")
			participantID := args.String("participantId")
			log.Debug().Str("chatId", chatID).Str("participantId", participantID).Msg("removing participant")
			if _, err := client.RemoveMyChatParticipant(ctx, chatID, participantID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Removed participant: %s", participantID), nil
		},
	})
}
