package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clintrovert/octoscope/internal/tools"
)

// protocolVersion is the MCP revision this endpoint speaks.
const protocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes used by the endpoint.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Handler serves the JSON-RPC-over-HTTP face of the tool surface.
type Handler struct {
	registry      *tools.Registry
	logger        *zap.Logger
	serverName    string
	serverVersion string
}

// NewHandler creates a new REST handler.
func NewHandler(registry *tools.Registry, serverName, serverVersion string, logger *zap.Logger) *Handler {
	return &Handler{
		registry:      registry,
		logger:        logger,
		serverName:    serverName,
		serverVersion: serverVersion,
	}
}

// rpcRequest is the inbound JSON-RPC envelope. The id stays raw so the
// response echoes it byte for byte, whatever its JSON type.
type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  rpcParams       `json:"params"`
}

// rpcParams carries tools/call parameters. Other methods put different
// shapes under params; their fields are simply not decoded.
type rpcParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      serverInfo     `json:"serverInfo"`
}

type listToolsResult struct {
	Tools []tools.Definition `json:"tools"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callToolResult struct {
	Content []textContent `json:"content"`
}

type healthResponse struct {
	Status string `json:"status"`
	Server string `json:"server"`
}

// Health handles GET / and GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Server: h.serverName})
}

// HandleRPC handles POST / and POST /mcp. Dispatch failures come back as
// JSON-RPC error objects; only an unexpected internal failure also flips
// the HTTP status to 500.
func (h *Handler) HandleRPC(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusOK, nil, codeParseError, "Parse error: "+err.Error())
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("panic during rpc dispatch",
				zap.String("method", req.Method),
				zap.Any("panic", rec),
			)
			h.writeError(w, http.StatusInternalServerError, req.ID, codeInternalError, fmt.Sprintf("Internal error: %v", rec))
		}
	}()

	h.logger.Debug("received rpc request",
		zap.String("method", req.Method),
		zap.String("tool", req.Params.Name),
	)

	switch req.Method {
	case "initialize":
		h.writeResult(w, req.ID, initializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities:    map[string]any{"tools": map[string]any{}},
			ServerInfo:      serverInfo{Name: h.serverName, Version: h.serverVersion},
		})
	case "tools/list":
		h.writeResult(w, req.ID, listToolsResult{Tools: h.registry.List()})
	case "tools/call":
		h.handleToolCall(w, r, req)
	default:
		h.writeError(w, http.StatusOK, req.ID, codeMethodNotFound, fmt.Sprintf("Method '%s' not found", req.Method))
	}
}

func (h *Handler) handleToolCall(w http.ResponseWriter, r *http.Request, req rpcRequest) {
	out, err := h.registry.Call(r.Context(), req.Params.Name, req.Params.Arguments)
	if err != nil {
		var unknownErr *tools.UnknownToolError
		if errors.As(err, &unknownErr) {
			h.writeError(w, http.StatusOK, req.ID, codeMethodNotFound, err.Error())
			return
		}

		var validationErr *tools.ValidationError
		if errors.As(err, &validationErr) {
			h.writeError(w, http.StatusOK, req.ID, codeInvalidParams, err.Error())
			return
		}

		h.logger.Error("tool dispatch failed",
			zap.String("tool", req.Params.Name),
			zap.Error(err),
		)
		h.writeError(w, http.StatusInternalServerError, req.ID, codeInternalError, "Internal error: "+err.Error())
		return
	}

	h.writeResult(w, req.ID, callToolResult{
		Content: []textContent{{Type: "text", Text: out}},
	})
}

// RegisterRoutes registers the JSON-RPC endpoint and the health check.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Health)
	r.Get("/health", h.Health)
	r.Post("/", h.HandleRPC)
	r.Post("/mcp", h.HandleRPC)
}

func (h *Handler) writeResult(w http.ResponseWriter, id json.RawMessage, result any) {
	h.writeJSON(w, http.StatusOK, rpcResponse{JSONRPC: "2.0", ID: normalizeID(id), Result: result})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, id json.RawMessage, code int, message string) {
	h.writeJSON(w, status, rpcResponse{JSONRPC: "2.0", ID: normalizeID(id), Error: &rpcError{Code: code, Message: message}})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

// normalizeID makes a missing id an explicit JSON null so the response
// envelope always carries the key.
func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}
