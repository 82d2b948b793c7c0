// Package server implements the envelope dispatcher, the session
// registry, and the transport bindings (stdio, SSE, WebSocket).
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thenvoi/mcp-server/internal/config"
	"github.com/thenvoi/mcp-server/internal/logging"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/protocol"
	"github.com/thenvoi/mcp-server/internal/registry"
	"github.com/thenvoi/mcp-server/internal/tools"
	"github.com/thenvoi/mcp-server/internal/version"
)

const serverName = "thenvoi-mcp-server"

// Server dispatches invocation envelopes for all sessions. Both scope
// registries are built once at startup; each session selects one at
// handshake time, so the dispatch hot path never checks scope itself.
type Server struct {
	cfg        config.Config
	log        *logging.Logger
	creds      *platform.Credentials
	registries map[platform.CredentialKind]*registry.Registry
	sessions   *SessionRegistry
}

// New creates a dispatcher for the given credentials.
func New(cfg config.Config, log *logging.Logger, creds *platform.Credentials) *Server {
	toolLog := log.Sub("tools")
	return &Server{
		cfg:   cfg,
		log:   log.Sub("dispatch"),
		creds: creds,
		registries: map[platform.CredentialKind]*registry.Registry{
			platform.CredentialAgent: tools.BuildAgentRegistry(creds.Client, toolLog, cfg.API.BaseURL),
			platform.CredentialHuman: tools.BuildHumanRegistry(creds.Client, toolLog),
		},
		sessions: NewSessionRegistry(cfg.Server.MaxPending, log.Sub("sessions")),
	}
}

// Sessions exposes the session registry to the transport bindings.
func (s *Server) Sessions() *SessionRegistry { return s.sessions }

// Handle processes one inbound envelope for a session and returns the
// response envelope, or nil for notifications. The caller owns delivery
// to the session's sink.
func (s *Server) Handle(ctx context.Context, sess *Session, req protocol.Request) *protocol.Response {
	// The first envelope of the session binds its scope, whatever the
	// method. The scope never changes afterwards.
	kind := sess.BindKind(s.creds.Kind)

	switch req.Method {
	case protocol.MethodInitialize:
		return s.handleInitialize(sess, req)
	case protocol.MethodInitialized:
		s.log.Debug().Str("sessionId", sess.ID).Msg("client initialized")
		return nil
	case protocol.MethodPing:
		resp := protocol.NewResponse(req.ID, map[string]any{})
		return &resp
	case protocol.MethodListTools:
		resp := protocol.NewResponse(req.ID, protocol.ListToolsResult{Tools: s.registries[kind].List()})
		return &resp
	case protocol.MethodCallTool:
		return s.handleCallTool(ctx, sess, kind, req)
	default:
		if req.IsNotification() {
			s.log.Debug().Str("method", req.Method).Msg("ignoring unknown notification")
			return nil
		}
		resp := protocol.NewError(req.ID, protocol.CodeMethodNotFound, "Method not found",
			fmt.Sprintf("Unknown method: %s", req.Method))
		return &resp
	}
}

func (s *Server) handleInitialize(sess *Session, req protocol.Request) *protocol.Response {
	kind, _ := sess.Kind()
	s.log.Info().
		Str("sessionId", sess.ID).
		Str("scope", string(kind)).
		Msg("session initialized")

	resp := protocol.NewResponse(req.ID, protocol.InitializeResult{
		ProtocolVersion: protocol.ProtocolVersion,
		Capabilities:    protocol.Capabilities{Tools: map[string]any{}},
		ServerInfo: protocol.ServerInfo{
			Name:    serverName,
			Version: version.Version,
		},
	})
	return &resp
}

func (s *Server) handleCallTool(ctx context.Context, sess *Session, kind platform.CredentialKind, req protocol.Request) *protocol.Response {
	var params protocol.CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		resp := protocol.NewError(req.ID, protocol.CodeInvalidParams, "Invalid params", err.Error())
		return &resp
	}

	// Tools outside the session's scope do not exist as far as this
	// session is concerned: same error as a name that was never
	// registered anywhere.
	tool, ok := s.registries[kind].Get(params.Name)
	if !ok {
		s.log.Debug().Str("sessionId", sess.ID).Str("tool", params.Name).Msg("unknown tool")
		resp := protocol.NewError(req.ID, protocol.CodeInvalidParams, "Unknown tool",
			fmt.Sprintf("Tool not found: %s", params.Name))
		return &resp
	}

	if params.Arguments == nil {
		params.Arguments = map[string]any{}
	}
	if err := registry.ValidateArgs(tool.Schema, params.Arguments); err != nil {
		resp := protocol.NewError(req.ID, protocol.CodeInvalidParams, "Invalid arguments", err.Error())
		return &resp
	}

	s.log.Debug().Str("sessionId", sess.ID).Str("tool", params.Name).Msg("calling tool")

	payload, err := tool.Handler(ctx, registry.Args(params.Arguments))
	if err != nil {
		return s.toolError(req.ID, params.Name, err)
	}

	resp := protocol.NewResponse(req.ID, protocol.TextResult(payload))
	return &resp
}

// toolError maps a handler failure onto the wire. Validation failures
// never reached the platform and are protocol-level errors; upstream
// failures come back as structured tool results so the connection stays
// healthy.
func (s *Server) toolError(id any, toolName string, err error) *protocol.Response {
	var validation *registry.ValidationError
	if errors.As(err, &validation) {
		resp := protocol.NewError(id, protocol.CodeInvalidParams, "Invalid arguments", validation.Message)
		return &resp
	}

	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		s.log.Warn().Str("tool", toolName).Str("kind", string(apiErr.Kind)).Msg("upstream error")
		resp := protocol.NewResponse(id, protocol.ErrorResult(fmt.Sprintf("%s failed: %s", toolName, apiErr.Error())))
		return &resp
	}

	s.log.Error().Err(err).Str("tool", toolName).Msg("tool handler failed")
	resp := protocol.NewResponse(id, protocol.ErrorResult(fmt.Sprintf("%s failed: %s", toolName, err.Error())))
	return &resp
}
