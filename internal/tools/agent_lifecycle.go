package tools

import (
	"context"

	"github.com/thenvoi/mcp-server/internal/logging"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/protocol"
	"github.com/thenvoi/mcp-server/internal/registry"
)

// The message lifecycle contract: only these three transition verbs are
// exposed, and the platform's record of the current state is the single
// source of truth. A transition the platform rejects (no open attempt,
// already terminal) comes back as a conflict error, which the dispatcher
// surfaces as a structured tool error without closing the session.

func registerAgentLifecycle(reg *registry.Registry, client *platform.Client, log *logging.Logger) {
	reg.Register(registry.Tool{
		Name: "markAgentMessageProcessing",
		Description: "Mark a message as being processed by the agent. Creates a new " +
			"processing attempt with a system-managed timestamp and sets the agent's " +
			"delivery status to \"processing\". Call this when the agent starts " +
			"working on a message.",
		Schema: objectSchema([]string{"chatId", "messageId"}, map[string]protocol.Property{
			"chatId":    strProp("The unique identifier of the chat room (required)."),
			"messageId": strProp("The ID of the message to mark as processing (required)."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID, messageID := args.String("chatId"), args.String("messageId")
			log.Debug().Str("chatId", chatID).Str("messageId", messageID).Msg("marking message processing")
			raw, err := client.MarkAgentMessageProcessing(ctx, chatID, messageID)
			if err != nil {
				return "", err
			}
			log.Info().Str("messageId", messageID).Msg("message marked as processing")
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "markAgentMessageProcessed",
		Description: "Mark a message as successfully processed by the agent. Completes " +
			"the current processing attempt and sets the delivery status to " +
			"\"processed\". Requires an active processing attempt - call " +
			"markAgentMessageProcessing first.",
		Schema: objectSchema([]string{"chatId", "messageId"}, map[string]protocol.Property{
			"chatId":    strProp("The unique identifier of the chat room (required)."),
			"messageId": strProp("The ID of the message to mark as processed (required)."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID, messageID := args.String("chatId"), args.String("messageId")
			log.Debug().Str("chatId", chatID).Str("messageId", messageID).Msg("marking message processed")
			raw, err := client.MarkAgentMessageProcessed(ctx, chatID, messageID)
			if err != nil {
				return "", err
			}
			log.Info().Str("messageId", messageID).Msg("message marked as processed")
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "markAgentMessageFailed",
		Description: "Mark a message processing as failed by the agent. Completes the " +
			"current processing attempt with an error message and sets the delivery " +
			"status to \"failed\". Requires an active processing attempt - call " +
			"markAgentMessageProcessing first.",
		Schema: objectSchema([]string{"chatId", "messageId", "error"}, map[string]protocol.Property{
			"chatId":    strProp("The unique identifier of the chat room (required)."),
			"messageId": strProp("The ID of the message to mark as failed (required)."),
			"error":     strProp("Error message describing why processing failed (required)."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			chatID, messageID := args.String("chatId"), args.String("messageId")
			log.Debug().Str("chatId", chatID).Str("messageId", messageID).Msg("marking message failed")
			raw, err := client.MarkAgentMessageFailed(ctx, chatID, messageID, args.String("error"))
			if err != nil {
				return "", err
			}
			log.Info().Str("messageId", messageID).Msg("message marked as failed")
			return string(raw), nil
		},
	})
}
