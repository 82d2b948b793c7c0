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

func registerAgentChats(reg *registry.Registry, client *platform.Client, log *logging.Logger) {
	reg.Register(registry.Tool{
		Name: "listAgentChats",
		Description: "List chat rooms where the agent is a participant. " +
			"Supports pagination.",
		Schema: objectSchema(nil, withPaging(map[string]protocol.Property{})),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			log.Debug().Msg("fetching agent's chat rooms")
			raw, err := client.ListAgentChats(ctx, args.Int("page"), args.Int("pageSize"))
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "getAgentChat",
		Description: "Get detailed information about a single chat room where the " +
			"agent is a participant.",
		Schema: objectSchema([]string{"chatId"}, map[string]protocol.Property{
			"chatId": strProp("The unique identifier of the chat room (required)."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")
			log.Debug().Str("chatId", chatID).Msg("fetching chat")
			raw, err := client.GetAgentChat(ctx, chatID)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "createAgentChat",
		Description: "Create a new chat room with the agent as owner. Optionally " +
			"associates the chat with a task.",
		Schema: objectSchema(nil, map[string]protocol.Property{
			"taskId": strProp("Optional ID of an associated task."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			log.Debug().Msg("creating chat room")
			raw, err := client.CreateAgentChat(ctx, args.String("taskId"))
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "listAgentChatParticipants",
		Description: "List all participants (users and agents) in a chat room where " +
			"the agent is a member.",
		Schema: objectSchema([]string{"chatId"}, map[string]protocol.Property{
			"chatId": strProp("The unique identifier of the chat room (required)."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")
			log.Debug().Str("chatId", chatID).Msg("fetching participants")
			participants, err := client.ListAgentChatParticipants(ctx, chatID)
			if err != nil {
				return "", err
			}
			return marshalParticipants(participants)
		},
	})

	reg.Register(registry.Tool{
		Name: "addAgentChatParticipant",
		Description: "Add a participant (agent or user) to a chat room. The acting " +
			"agent must be the owner or admin of the room. Use listAgentPeers with " +
			"notInChat to discover available participants.",
		Schema: objectSchema([]string{"chatId", "participantId"}, map[string]protocol.Property{
			"chatId":        strProp("The unique identifier of the chat room (required)."),
			"participantId": strProp("The ID of the participant (user or agent) to add (required)."),
			"role":          enumProp("The role to assign (optional, defaults to 'member').", participantRoles),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")
			participantID := args.String("participantId")
			role := strings.ToLower(args.String("role"))
			if role == "" {
				role = "member"
			}
			log.Debug().Str("chatId", chatID).Str("participantId", participantID).Str("role", role).Msg("adding participant")
			if _, err := client.AddAgentChatParticipant(ctx, chatID, participantID, role); err != nil {
				return "", err
			}
			return fmt.Sprintf("Participant added successfully: %s", participantID), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "removeAgentChatParticipant",
		Description: "Remove a participant from a chat room. The acting agent must be " +
			"the owner or admin of the room.",
		Schema: objectSchema([]string{"chatId", "participantId"}, map[string]protocol.Property{
			"chatId":        strProp("The unique identifier of the chat room (required)."),
			"participantId": strProp("The participant's ID to remove (required)."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID := args.String("chatId")
			participantID := args.String("participantId")
			log.Debug().Str("chatId", chatID).Str("participantId", participantID).Msg("removing participant")
			if _, err := client.RemoveAgentChatParticipant(ctx, chatID, participantID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Participant removed successfully: %s", participantID), nil
		},
	})
}
