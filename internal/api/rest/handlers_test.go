package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clintrovert/octoscope/internal/github"
	"github.com/clintrovert/octoscope/internal/tools"
)

type rpcTestError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcTestResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcTestError   `json:"error"`
}

func newTestRouter(t *testing.T, extra ...*tools.Tool) chi.Router {
	t.Helper()
	client, err := github.NewClient("https://api.github.com", zap.NewNop())
	require.NoError(t, err)

	registry := tools.NewRegistry()
	service := github.NewService(client, github.DemoToken, zap.NewNop())
	require.NoError(t, tools.NewGitHubTools(service).RegisterAll(registry))
	for _, tool := range extra {
		require.NoError(t, registry.Register(tool))
	}

	h := NewHandler(registry, "octoscope", "1.0.0", zap.NewNop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func postRPC(t *testing.T, router chi.Router, path, body string) (*httptest.ResponseRecorder, rpcTestResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp rpcTestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/", "/health"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"status": "ok", "server": "octoscope"}`, rec.Body.String())
		})
	}
}

func TestInitialize(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := postRPC(t, router, "/", `{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": {}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, json.RawMessage("1"), resp.ID)
	require.Nil(t, resp.Error)

	var result struct {
		ProtocolVersion string         `json:"protocolVersion"`
		Capabilities    map[string]any `json:"capabilities"`
		ServerInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"serverInfo"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	assert.Equal(t, "2024-11-05", result.ProtocolVersion)
	assert.Contains(t, result.Capabilities, "tools")
	assert.Equal(t, "octoscope", result.ServerInfo.Name)
	assert.Equal(t, "1.0.0", result.ServerInfo.Version)
}

func TestToolsList(t *testing.T) {
	router := newTestRouter(t)

	_, resp := postRPC(t, router, "/", `{"jsonrpc": "2.0", "id": 2, "method": "tools/list"}`)

	require.Nil(t, resp.Error)

	var result struct {
		Tools []struct {
			Name        string          `json:"name"`
			Description string          `json:"description"`
			InputSchema json.RawMessage `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Tools, 4)

	assert.Equal(t, "get_repos", result.Tools[0].Name)
	assert.Equal(t, "get_issues", result.Tools[1].Name)
	assert.Equal(t, "get_pull_requests", result.Tools[2].Name)
	assert.Equal(t, "search_code", result.Tools[3].Name)
	assert.NotEmpty(t, result.Tools[0].InputSchema)
}

func TestToolsCallReturnsTextContent(t *testing.T) {
	router := newTestRouter(t)

	_, resp := postRPC(t, router, "/", `{
		"jsonrpc": "2.0",
		"id": "call-1",
		"method": "tools/call",
		"params": {"name": "get_repos", "arguments": {"username": "octocat"}}
	}`)

	require.Nil(t, resp.Error)
	assert.Equal(t, json.RawMessage(`"call-1"`), resp.ID)

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.Contains(t, result.Content[0].Text, "microsoft/vscode")
}

func TestToolsCallOnMCPPath(t *testing.T) {
	router := newTestRouter(t)

	_, resp := postRPC(t, router, "/mcp", `{
		"jsonrpc": "2.0",
		"id": 9,
		"method": "tools/call",
		"params": {"name": "get_issues", "arguments": {"owner": "acme", "repo": "widget"}}
	}`)

	require.Nil(t, resp.Error)
	assert.Contains(t, string(resp.Result), "acme/widget")
}

func TestUnknownToolReturnsMethodNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := postRPC(t, router, "/", `{
		"jsonrpc": "2.0",
		"id": 3,
		"method": "tools/call",
		"params": {"name": "nope", "arguments": {}}
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
	assert.Equal(t, "Tool 'nope' not found", resp.Error.Message)
}

func TestUnknownMethodReturnsMethodNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := postRPC(t, router, "/", `{"jsonrpc": "2.0", "id": 4, "method": "bogus/method"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
	assert.Equal(t, "Method 'bogus/method' not found", resp.Error.Message)
}

func TestInvalidArgumentsReturnInvalidParams(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := postRPC(t, router, "/", `{
		"jsonrpc": "2.0",
		"id": 5,
		"method": "tools/call",
		"params": {"name": "get_repos", "arguments": {}}
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32602, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "username")
}

func TestMalformedBodyReturnsParseError(t *testing.T) {
	router := newTestRouter(t)

	rec, resp := postRPC(t, router, "/", `{not json`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32700, resp.Error.Code)
	assert.Equal(t, json.RawMessage("null"), resp.ID)
}

func TestPanicDuringDispatchReturnsInternalError(t *testing.T) {
	router := newTestRouter(t, &tools.Tool{
		Definition: tools.Definition{Name: "boom", Description: "always panics", InputSchema: tools.Schema{Type: "object"}},
		Handler: func(context.Context, map[string]any) (string, error) {
			panic("kaboom")
		},
	})

	rec, resp := postRPC(t, router, "/", `{
		"jsonrpc": "2.0",
		"id": 6,
		"method": "tools/call",
		"params": {"name": "boom", "arguments": {}}
	}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32603, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "Internal error")
	assert.Equal(t, json.RawMessage("6"), resp.ID)
}

func TestMissingIDEchoedAsNull(t *testing.T) {
	router := newTestRouter(t)

	_, resp := postRPC(t, router, "/", `{"jsonrpc": "2.0", "method": "initialize"}`)

	assert.Equal(t, json.RawMessage("null"), resp.ID)
}
