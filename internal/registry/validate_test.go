package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenvoi/mcp-server/internal/protocol"
)

func testSchema() protocol.InputSchema {
	return protocol.InputSchema{
		Type: "object",
		Properties: map[string]protocol.Property{
			"chatId":   {Type: "string"},
			"page":     {Type: "integer"},
			"role":     {Type: "string", Enum: []string{"member", "owner"}},
			"archived": {Type: "boolean"},
		},
		Required: []string{"chatId"},
	}
}

func TestValidateArgsValid(t *testing.T) {
	err := ValidateArgs(testSchema(), map[string]any{
		"chatId":   "chat-1",
		"page":     float64(2),
		"role":     "member",
		"archived": true,
	})
	assert.NoError(t, err)
}

func TestValidateArgsMissingRequired(t *testing.T) {
	err := ValidateArgs(testSchema(), map[string]any{"page": float64(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatId")

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateArgsUnknownArgument(t *testing.T) {
	err := ValidateArgs(testSchema(), map[string]any{
		"chatId": "chat-1",
		"bogus":  "x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown argument "bogus"`)
	// the error lists the declared argument names
	assert.Contains(t, err.Error(), "chatId")
	assert.Contains(t, err.Error(), "page")
}

func TestValidateArgsWrongTypes(t *testing.T) {
	err := ValidateArgs(testSchema(), map[string]any{"chatId": float64(5)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a string")

	err = ValidateArgs(testSchema(), map[string]any{"chatId": "c", "page": "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an integer")

	err = ValidateArgs(testSchema(), map[string]any{"chatId": "c", "page": float64(1.5)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an integer")

	err = ValidateArgs(testSchema(), map[string]any{"chatId": "c", "archived": "yes"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a boolean")
}

func TestValidateArgsEnum(t *testing.T) {
	err := ValidateArgs(testSchema(), map[string]any{"chatId": "c", "role": "admin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")

	// enum matching is case-insensitive
	err = ValidateArgs(testSchema(), map[string]any{"chatId": "c", "role": "Member"})
	assert.NoError(t, err)
}

func TestValidateArgsEmptySchema(t *testing.T) {
	schema := protocol.InputSchema{Type: "object", Properties: map[string]protocol.Property{}}
	assert.NoError(t, ValidateArgs(schema, map[string]any{}))

	err := ValidateArgs(schema, map[string]any{"anything": 1})
	assert.Error(t, err)
}

func TestValidationf(t *testing.T) {
	err := Validationf("bad %s", "thing")
	assert.Equal(t, "bad thing", err.Message)
	assert.Equal(t, "bad thing", err.Error())
}
