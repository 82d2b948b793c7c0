package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// Human-scoped API. Every method maps to one platform endpoint under /my
// and requires a tv_user_* key.

// GetMyProfile returns the authenticated user's profile.
func (c *Client) GetMyProfile(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/my/profile", nil, nil)
}

// UpdateMyProfile patches profile fields. Only keys present in fields are
// sent, so the platform never interprets an omitted field as "set null".
func (c *Client) UpdateMyProfile(ctx context.Context, fields map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, "/my/profile", nil, map[string]any{"user": fields})
}

// ListMyPeers lists entities the user can interact with: other users,
// owned agents, and global agents.
func (c *Client) ListMyPeers(ctx context.Context, notInChat, peerType string, page, pageSize int) (json.RawMessage, error) {
	q := pageQuery(page, pageSize)
	if notInChat != "" {
		q.Set("not_in_chat", notInChat)
	}
	if peerType != "" {
		q.Set("type", peerType)
	}
	return c.do(ctx, http.MethodGet, "/my/peers", q, nil)
}

// ListMyChats lists chat rooms the user participates in.
func (c *Client) ListMyChats(ctx context.Context, page, pageSize int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/my/chats", pageQuery(page, pageSize), nil)
}

// GetMyChat returns one chat room by id.
func (c *Client) GetMyChat(ctx context.Context, chatID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/my/chats/"+url.PathEscape(chatID), nil, nil)
}

// CreateMyChat creates a chat room owned by the user.
func (c *Client) CreateMyChat(ctx context.Context, taskID string) (json.RawMessage, error) {
	chat := map[string]any{}
	if taskID != "" {
		chat["task_id"] = taskID
	}
	return c.do(ctx, http.MethodPost, "/my/chats", nil, map[string]any{"chat": chat})
}

// ListMyChatMessages lists messages in a chat room with optional type and
// time filters.
func (c *Client) ListMyChatMessages(ctx context.Context, chatID string, page, pageSize int, messageType string, since *time.Time) (json.RawMessage, error) {
	q := pageQuery(page, pageSize)
	if messageType != "" {
		q.Set("message_type", messageType)
	}
	if since != nil {
		q.Set("since", since.UTC().Format(time.RFC3339))
	}
	return c.do(ctx, http.MethodGet, "/my/chats/"+url.PathEscape(chatID)+"/messages", q, nil)
}

// SendMyChatMessage sends a text message with resolved mentions.
func (c *Client) SendMyChatMessage(ctx context.Context, chatID, content string, mentions []Mention) (json.RawMessage, error) {
	body := map[string]any{
		"message": map[string]any{
			"content":  content,
			"mentions": mentions,
		},
	}
	return c.do(ctx, http.MethodPost, "/my/chats/"+url.PathEscape(chatID)+"/messages", nil, body)
}

// ListMyChatParticipants lists a chat room's participants, optionally
// filtered by type ("User" or "Agent").
func (c *Client) ListMyChatParticipants(ctx context.Context, chatID, participantType string) ([]Participant, error) {
	q := url.Values{}
	if participantType != "" {
		q.Set("participant_type", participantType)
	}
	raw, err := c.do(ctx, http.MethodGet, "/my/chats/"+url.PathEscape(chatID)+"/participants", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeParticipants(raw)
}

// AddMyChatParticipant adds a user or agent to a chat room.
func (c *Client) AddMyChatParticipant(ctx context.Context, chatID, participantID, role string) (json.RawMessage, error) {
	body := map[string]any{
		"participant": map[string]any{
			"participant_id": participantID,
			"role":           role,
		},
	}
	return c.do(ctx, http.MethodPost, "/my/chats/"+url.PathEscape(chatID)+"/participants", nil, body)
}

// RemoveMyChatParticipant removes a participant from a chat room.
func (c *Client) RemoveMyChatParticipant(ctx context.Context, chatID, participantID string) (json.RawMessage, error) {
	path := "/my/chats/" + url.PathEscape(chatID) + "/participants/" + url.PathEscape(participantID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ListMyAgents lists agents owned by the user.
func (c *Client) ListMyAgents(ctx context.Context, page, pageSize int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/my/agents", pageQuery(page, pageSize), nil)
}

// RegisterMyAgent registers a new external agent. The response includes
// the agent's API key, shown exactly once.
func (c *Client) RegisterMyAgent(ctx context.Context, name, description, modelType string) (json.RawMessage, error) {
	agent := map[string]any{"name": name}
	if description != "" {
		agent["description"] = description
	}
	if modelType != "" {
		agent["model_type"] = modelType
	}
	return c.do(ctx, http.MethodPost, "/my/agents", nil, map[string]any{"agent": agent})
}
