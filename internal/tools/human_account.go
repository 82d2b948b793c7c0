package tools

import (
	"context"

	"github.com/thenvoi/mcp-server/internal/logging"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/protocol"
	"github.com/thenvoi/mcp-server/internal/registry"
)

func registerHumanAccount(reg *registry.Registry, client *platform.Client, log *logging.Logger) {
	reg.Register(registry.Tool{
		Name:        "getUserProfile",
		Description: "Get the current user's profile details, including name, email, and role.",
		Schema:      objectSchema(nil, map[string]protocol.Property{}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			log.Debug().Msg("fetching user profile")
			raw, err := client.GetMyProfile(ctx)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "updateUserProfile",
		Description: "Update the current user's profile. At least one field must be " +
			"provided; omitted fields are left unchanged.",
		Schema: objectSchema(nil, map[string]protocol.Property{
			"firstName": strProp("New first name (optional)."),
			"lastName":  strProp("New last name (optional)."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			fields := map[string]any{}
			if args.Has("firstName") {
				fields["first_name"] = args.String("firstName")
			}
			if args.Has("lastName") {
				fields["last_name"] = args.String("lastName")
			}
			if len(fields) == 0 {
				return "", registry.Validationf("at least one field (firstName or lastName) must be provided")
			}

			log.Debug().Msg("updating user profile")
			raw, err := client.UpdateMyProfile(ctx, fields)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "listUserPeers",
		Description: "List entities you can interact with in chat rooms: other users, " +
			"your agents, and global agents.",
		Schema: objectSchema(nil, withPaging(map[string]protocol.Property{
			"notInChat": strProp("Exclude entities already in this chat room (optional)."),
			"peerType":  enumProp("Filter by type (optional).", []string{"User", "Agent"}),
		})),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			log.Debug().Msg("fetching user peers")
			raw, err := client.ListMyPeers(ctx, args.String("notInChat"), args.String("peerType"), args.Int("page"), args.Int("pageSize"))
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name:        "listUserAgents",
		Description: "List agents owned by the user.",
		Schema:      objectSchema(nil, withPaging(map[string]protocol.Property{})),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			log.Debug().Msg("fetching user's agents")
			raw, err := client.ListMyAgents(ctx, args.Int("page"), args.Int("pageSize"))
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})

	reg.Register(registry.Tool{
		Name: "registerUserAgent",
		Description: "Register a new external agent. Returns the agent details " +
			"including its API key. Save the API key - it's only shown once!",
		Schema: objectSchema([]string{"name"}, map[string]protocol.Property{
			"name":        strProp("Agent name (required)."),
			"description": strProp("Agent description (optional)."),
			"modelType":   strProp("AI model type (optional)."),
		}),
		Handler: func(ctx context.Context, args registry.Args) (string, error) {
			log.Debug().Str("name", args.String("name")).Msg("registering agent")
			raw, err := client.RegisterMyAgent(ctx, args.String("name"), args.String("description"), args.String("modelType"))
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	})
}
