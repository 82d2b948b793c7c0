package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenvoi/mcp-server/internal/logging"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/registry"
)

func testLog() *logging.Logger {
	return logging.New(nil, "silent")
}

func TestRegistriesDisjoint(t *testing.T) {
	client := platform.NewClient("http://localhost", "tv_agent_x")
	agent := BuildAgentRegistry(client, testLog(), "http://localhost")
	human := BuildHumanRegistry(client, testLog())

	assert.NotZero(t, agent.Count())
	assert.NotZero(t, human.Count())

	humanNames := make(map[string]bool)
	for _, name := range human.Names() {
		humanNames[name] = true
	}
	for _, name := range agent.Names() {
		assert.False(t, humanNames[name], "tool %q registered in both scopes", name)
	}
}

func TestAgentRegistryToolSet(t *testing.T) {
	client := platform.NewClient("http://localhost", "tv_agent_x")
	reg := BuildAgentRegistry(client, testLog(), "http://localhost")

	for _, name := range []string{
		"getAgentMe", "listAgentPeers", "healthCheck",
		"listAgentChats", "getAgentChat", "createAgentChat",
		"listAgentChatParticipants", "addAgentChatParticipant", "removeAgentChatParticipant",
		"getAgentChatContext", "createAgentChatMessage", "createAgentChatEvent",
		"markAgentMessageProcessing", "markAgentMessageProcessed", "markAgentMessageFailed",
	} {
		_, ok := reg.Get(name)
		assert.True(t, ok, "missing agent tool %q", name)
	}

	_, ok := reg.Get("sendUserChatMessage")
	assert.False(t, ok, "human tool leaked into agent scope")
}

func TestHumanRegistryToolSet(t *testing.T) {
	client := platform.NewClient("http://localhost", "tv_user_x")
	reg := BuildHumanRegistry(client, testLog())

	for _, name := range []string{
		"getUserProfile", "updateUserProfile", "listUserPeers",
		"listUserChats", "getUserChat", "createUserChat",
		"listUserChatMessages", "sendUserChatMessage",
		"listUserChatParticipants", "addUserChatParticipant", "removeUserChatParticipant",
		"listUserAgents", "registerUserAgent",
	} {
		_, ok := reg.Get(name)
		assert.True(t, ok, "missing human tool %q", name)
	}

	_, ok := reg.Get("markAgentMessageProcessing")
	assert.False(t, ok, "agent tool leaked into human scope")
}

func TestCreateMessageResolvesRecipients(t *testing.T) {
	var sentMentions []any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/web/api/v1/agent/chats/chat-1/participants":
			json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
				{"id": "p1", "name": "Weather Agent"},
				{"id": "p2", "username": "sarah"},
			}})
		case "/web/api/v1/agent/chats/chat-1/messages":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			msg := body["message"].(map[string]any)
			sentMentions = msg["mentions"].([]any)
			w.Write([]byte(`{"id":"msg-1"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := platform.NewClient(srv.URL, "tv_agent_x")
	reg := BuildAgentRegistry(client, testLog(), srv.URL)
	tool, ok := reg.Get("createAgentChatMessage")
	require.True(t, ok)

	out, err := tool.Handler(context.Background(), registry.Args{
		"chatId":     "chat-1",
		"content":    "hello",
		"recipients": "sarah",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "msg-1")
	require.Len(t, sentMentions, 1)
	m := sentMentions[0].(map[string]any)
	assert.Equal(t, "p2", m["id"])
}

func TestCreateMessageUnresolvedRecipientFailsBeforeSend(t *testing.T) {
	var messagePosted bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/web/api/v1/agent/chats/chat-1/participants":
			json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
				{"id": "p1", "name": "Weather Agent"},
			}})
		case "/web/api/v1/agent/chats/chat-1/messages":
			messagePosted = true
			w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	client := platform.NewClient(srv.URL, "tv_agent_x")
	reg := BuildAgentRegistry(client, testLog(), srv.URL)
	tool, _ := reg.Get("createAgentChatMessage")

	_, err := tool.Handler(context.Background(), registry.Args{
		"chatId":     "chat-1",
		"content":    "hello",
		"recipients": "nobody",
	})
	require.Error(t, err)

	var verr *registry.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "nobody")
	assert.False(t, messagePosted, "message must not be sent when resolution fails")
}

func TestCreateMessageMentionsTakePrecedence(t *testing.T) {
	var participantsListed bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/web/api/v1/agent/chats/chat-1/participants":
			participantsListed = true
			json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
		case "/web/api/v1/agent/chats/chat-1/messages":
			w.Write([]byte(`{"id":"msg-2"}`))
		}
	}))
	defer srv.Close()

	client := platform.NewClient(srv.URL, "tv_agent_x")
	reg := BuildAgentRegistry(client, testLog(), srv.URL)
	tool, _ := reg.Get("createAgentChatMessage")

	_, err := tool.Handler(context.Background(), registry.Args{
		"chatId":     "chat-1",
		"content":    "hello",
		"recipients": "ignored",
		"mentions":   `[{"id":"p9","name":"direct"}]`,
	})
	require.NoError(t, err)
	assert.False(t, participantsListed, "pre-resolved mentions should skip participant lookup")
}

func TestCreateMessageMissingRouting(t *testing.T) {
	client := platform.NewClient("http://localhost", "tv_agent_x")
	reg := BuildAgentRegistry(client, testLog(), "http://localhost")
	tool, _ := reg.Get("createAgentChatMessage")

	_, err := tool.Handler(context.Background(), registry.Args{
		"chatId":  "chat-1",
		"content": "hello",
	})
	require.Error(t, err)

	var verr *registry.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "listAgentChatParticipants")
}

func TestLifecycleConflictSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"message is already being processed"}`))
	}))
	defer srv.Close()

	client := platform.NewClient(srv.URL, "tv_agent_x")
	reg := BuildAgentRegistry(client, testLog(), srv.URL)
	tool, ok := reg.Get("markAgentMessageProcessing")
	require.True(t, ok)

	_, err := tool.Handler(context.Background(), registry.Args{
		"chatId":    "chat-1",
		"messageId": "msg-1",
	})
	require.Error(t, err)

	var apiErr *platform.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, platform.KindConflict, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "already being processed")
}

func TestHealthCheckNeverErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	client := platform.NewClient(srv.URL, "tv_agent_x")
	reg := BuildAgentRegistry(client, testLog(), srv.URL)
	tool, _ := reg.Get("healthCheck")

	out, err := tool.Handler(context.Background(), registry.Args{})
	require.NoError(t, err)
	assert.Contains(t, out, "Health check failed")
}

func TestCreateEventInvalidMetadata(t *testing.T) {
	client := platform.NewClient("http://localhost", "tv_agent_x")
	reg := BuildAgentRegistry(client, testLog(), "http://localhost")
	tool, _ := reg.Get("createAgentChatEvent")

	_, err := tool.Handler(context.Background(), registry.Args{
		"chatId":      "chat-1",
		"content":     "ran tool",
		"messageType": "tool_call",
		"metadata":    "{broken",
	})
	require.Error(t, err)

	var verr *registry.ValidationError
	assert.ErrorAs(t, err, &verr)
}
