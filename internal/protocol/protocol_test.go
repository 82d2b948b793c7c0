package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIsNotification(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`), &req))
	assert.True(t, req.IsNotification())

	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":1,"method":"ping"}`), &req))
	assert.False(t, req.IsNotification())

	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":"abc","method":"ping"}`), &req))
	assert.False(t, req.IsNotification())
}

func TestRequestIDDecoding(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":42,"method":"ping"}`), &req))
	// JSON numbers decode as float64
	assert.Equal(t, float64(42), req.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":"req-1","method":"ping"}`), &req))
	assert.Equal(t, "req-1", req.ID)
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse("id-1", map[string]any{"ok": true})
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, "id-1", resp.ID)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Result)
}

func TestNewError(t *testing.T) {
	resp := NewError(float64(7), CodeInvalidParams, "Invalid params", "missing foo")
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, float64(7), resp.ID)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidParams, resp.Error.Code)
	assert.Equal(t, "Invalid params", resp.Error.Message)
	assert.Equal(t, "missing foo", resp.Error.Data)
}

func TestErrorResponseEncoding(t *testing.T) {
	resp := NewError(nil, CodeParseError, "Parse error", nil)
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	// id must be present (and null) even for parse errors
	assert.Contains(t, string(data), `"id":null`)
	assert.Contains(t, string(data), `"code":-32700`)
	assert.NotContains(t, string(data), `"result"`)
}

func TestTextResult(t *testing.T) {
	res := TextResult("hello")
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)
	assert.Equal(t, "hello", res.Content[0].Text)
	assert.False(t, res.IsError)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "isError")
}

func TestErrorResult(t *testing.T) {
	res := ErrorResult("boom")
	require.Len(t, res.Content, 1)
	assert.Equal(t, "boom", res.Content[0].Text)
	assert.True(t, res.IsError)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"isError":true`)
}

func TestInitializeResultEncoding(t *testing.T) {
	res := InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    Capabilities{Tools: map[string]any{}},
		ServerInfo:      ServerInfo{Name: "test", Version: "0.0.1"},
	}
	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"protocolVersion":"2024-11-05"`)
	assert.Contains(t, string(data), `"tools":{}`)
}
