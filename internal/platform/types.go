package platform

import "encoding/json"

// Participant is one member of a chat room. Users and agents carry
// different name fields; all are kept so mention resolution can match
// whichever the caller typed.
type Participant struct {
	ID          string `json:"id"`
	Type        string `json:"type,omitempty"` // "User" | "Agent"
	Role        string `json:"role,omitempty"`
	Name        string `json:"name,omitempty"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
}

// DisplayLabel returns the best human-readable name for a participant.
func (p Participant) DisplayLabel() string {
	switch {
	case p.Name != "":
		return p.Name
	case p.Username != "":
		return p.Username
	case p.DisplayName != "":
		return p.DisplayName
	case p.FirstName != "":
		return p.FirstName
	default:
		return "Unknown"
	}
}

// Mention is a resolved participant reference attached to a message.
type Mention struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// participantList is the envelope the platform wraps list responses in.
type participantList struct {
	Data []Participant `json:"data"`
}

// decodeParticipants parses a participants list response.
func decodeParticipants(raw json.RawMessage) ([]Participant, error) {
	var list participantList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, &APIError{Kind: KindTransportError, Message: "decoding participants: " + err.Error()}
	}
	return list.Data, nil
}
