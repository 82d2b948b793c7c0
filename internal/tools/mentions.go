package tools

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/registry"
)

// parseMentions decodes a pre-resolved mentions JSON array of
// {id, name} objects. Used by callers that already know participant ids.
func parseMentions(raw string) ([]platform.Mention, error) {
	var items []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, registry.Validationf("invalid JSON for mentions: %s", err.Error())
	}

	mentions := make([]platform.Mention, 0, len(items))
	for _, item := range items {
		if item.ID == "" || item.Name == "" {
			return nil, registry.Validationf("each mention requires both id and name")
		}
		mentions = append(mentions, platform.Mention{ID: item.ID, Name: item.Name})
	}
	return mentions, nil
}

// resolveRecipients resolves a comma-separated list of participant names
// against the chat's participant list. Matching is case-insensitive over
// every name field a participant carries; a leading @ on a token is
// tolerated. Every token must resolve or the whole call fails before any
// message is sent.
func resolveRecipients(recipients string, participants []platform.Participant) ([]platform.Mention, error) {
	var tokens []string
	for _, part := range strings.Split(recipients, ",") {
		token := strings.TrimPrefix(strings.TrimSpace(part), "@")
		if token != "" {
			tokens = append(tokens, strings.ToLower(token))
		}
	}
	if len(tokens) == 0 {
		return nil, registry.Validationf("recipients cannot be empty")
	}

	byName := make(map[string]platform.Participant)
	for _, p := range participants {
		for _, name := range []string{p.Name, p.Username, p.DisplayName, p.FirstName} {
			if name != "" {
				byName[strings.ToLower(name)] = p
			}
		}
	}

	var mentions []platform.Mention
	var notFound []string
	for _, token := range tokens {
		p, ok := byName[token]
		if !ok {
			notFound = append(notFound, token)
			continue
		}
		mentions = append(mentions, platform.Mention{ID: p.ID, Name: p.DisplayLabel()})
	}

	if len(notFound) > 0 {
		available := make([]string, 0, len(byName))
		for name := range byName {
			available = append(available, name)
		}
		sort.Strings(available)
		return nil, registry.Validationf("could not find participants: %s. Available participants: %s",
			strings.Join(notFound, ", "), strings.Join(available, ", "))
	}

	return mentions, nil
}
