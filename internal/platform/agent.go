package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Agent-scoped API. Every method maps to one platform endpoint under
// /agent and requires a tv_agent_* key.

// GetAgentMe returns the authenticated agent's profile.
func (c *Client) GetAgentMe(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/agent/me", nil, nil)
}

// ListAgentPeers lists agents recruitable by the current agent.
// notInChat, when set, excludes agents already in that chat room.
func (c *Client) ListAgentPeers(ctx context.Context, notInChat string, page, pageSize int) (json.RawMessage, error) {
	q := pageQuery(page, pageSize)
	if notInChat != "" {
		q.Set("not_in_chat", notInChat)
	}
	return c.do(ctx, http.MethodGet, "/agent/peers", q, nil)
}

// ListAgentChats lists chat rooms the agent participates in.
func (c *Client) ListAgentChats(ctx context.Context, page, pageSize int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/agent/chats", pageQuery(page, pageSize), nil)
}

// GetAgentChat returns one chat room by id.
func (c *Client) GetAgentChat(ctx context.Context, chatID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/agent/chats/"+url.PathEscape(chatID), nil, nil)
}

// CreateAgentChat creates a chat room owned by the agent, optionally
// associated with a task.
func (c *Client) CreateAgentChat(ctx context.Context, taskID string) (json.RawMessage, error) {
	chat := map[string]any{}
	if taskID != "" {
		chat["task_id"] = taskID
	}
	return c.do(ctx, http.MethodPost, "/agent/chats", nil, map[string]any{"chat": chat})
}

// GetAgentChatContext returns the agent's rehydration context for a chat:
// everything the agent sent plus every text message mentioning it, oldest
// first.
func (c *Client) GetAgentChatContext(ctx context.Context, chatID string, page, pageSize int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/agent/chats/"+url.PathEscape(chatID)+"/context", pageQuery(page, pageSize), nil)
}

// ListAgentChatParticipants lists a chat room's participants.
func (c *Client) ListAgentChatParticipants(ctx context.Context, chatID string) ([]Participant, error) {
	raw, err := c.do(ctx, http.MethodGet, "/agent/chats/"+url.PathEscape(chatID)+"/participants", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeParticipants(raw)
}

// AddAgentChatParticipant adds a user or agent to a chat room.
func (c *Client) AddAgentChatParticipant(ctx context.Context, chatID, participantID, role string) (json.RawMessage, error) {
	body := map[string]any{
		"participant": map[string]any{
			"participant_id": participantID,
			"role":           role,
		},
	}
	return c.do(ctx, http.MethodPost, "/agent/chats/"+url.PathEscape(chatID)+"/participants", nil, body)
}

// RemoveAgentChatParticipant removes a participant from a chat room.
func (c *Client) RemoveAgentChatParticipant(ctx context.Context, chatID, participantID string) (json.RawMessage, error) {
	path := "/agent/chats/" + url.PathEscape(chatID) + "/participants/" + url.PathEscape(participantID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// CreateAgentChatMessage sends a text message with resolved mentions.
func (c *Client) CreateAgentChatMessage(ctx context.Context, chatID, content string, mentions []Mention) (json.RawMessage, error) {
	body := map[string]any{
		"message": map[string]any{
			"content":  content,
			"mentions": mentions,
		},
	}
	return c.do(ctx, http.MethodPost, "/agent/chats/"+url.PathEscape(chatID)+"/messages", nil, body)
}

// CreateAgentChatEvent posts an event message (tool_call, tool_result,
// thought, error, task). Events carry no mentions.
func (c *Client) CreateAgentChatEvent(ctx context.Context, chatID, content, messageType string, metadata map[string]any) (json.RawMessage, error) {
	event := map[string]any{
		"content":      content,
		"message_type": messageType,
	}
	if metadata != nil {
		event["metadata"] = metadata
	}
	return c.do(ctx, http.MethodPost, "/agent/chats/"+url.PathEscape(chatID)+"/events", nil, map[string]any{"event": event})
}

// MarkAgentMessageProcessing opens a new processing attempt for a message.
// The platform rejects the call with a conflict if an attempt is already
// open.
func (c *Client) MarkAgentMessageProcessing(ctx context.Context, chatID, messageID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, lifecyclePath(chatID, messageID, "processing"), nil, nil)
}

// MarkAgentMessageProcessed completes the current processing attempt as a
// success. Requires an open attempt; the platform reports a conflict
// otherwise.
func (c *Client) MarkAgentMessageProcessed(ctx context.Context, chatID, messageID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, lifecyclePath(chatID, messageID, "processed"), nil, nil)
}

// MarkAgentMessageFailed completes the current processing attempt as a
// failure, recording the error. Requires an open attempt.
func (c *Client) MarkAgentMessageFailed(ctx context.Context, chatID, messageID, errMessage string) (json.RawMessage, error) {
	body := map[string]any{"error": errMessage}
	return c.do(ctx, http.MethodPost, lifecyclePath(chatID, messageID, "failed"), nil, body)
}

func lifecyclePath(chatID, messageID, verb string) string {
	return "/agent/chats/" + url.PathEscape(chatID) + "/messages/" + url.PathEscape(messageID) + "/" + verb
}
