package platform

import (
	"fmt"
	"strings"
)

// CredentialKind is the scope an API key authenticates as. It determines
// which tool surface a session sees.
type CredentialKind string

const (
	CredentialAgent CredentialKind = "agent"
	CredentialHuman CredentialKind = "human"
)

// Key prefixes issued by the platform.
const (
	agentKeyPrefix = "tv_agent_"
	humanKeyPrefix = "tv_user_"
)

// ResolveKind determines the credential kind from the API key prefix.
func ResolveKind(apiKey string) (CredentialKind, error) {
	switch {
	case strings.HasPrefix(apiKey, agentKeyPrefix):
		return CredentialAgent, nil
	case strings.HasPrefix(apiKey, humanKeyPrefix):
		return CredentialHuman, nil
	default:
		return "", fmt.Errorf("unrecognized API key prefix (expected %s* or %s*)", agentKeyPrefix, humanKeyPrefix)
	}
}

// Credentials binds a resolved credential kind to the outbound client
// authenticated with it. Immutable for the process lifetime.
type Credentials struct {
	Kind   CredentialKind
	Client *Client
}

// NewCredentials resolves the key's kind and builds the outbound client.
func NewCredentials(apiKey, baseURL string) (*Credentials, error) {
	kind, err := ResolveKind(apiKey)
	if err != nil {
		return nil, err
	}
	return &Credentials{Kind: kind, Client: NewClient(baseURL, apiKey)}, nil
}
