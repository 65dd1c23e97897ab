// ABOUTME: Transport-independent MCP method dispatch
// ABOUTME: Handles initialize, ping, tools/list, and tools/call against a tool registry

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mauromedda/storybook-mcp-go/internal/log"
	"github.com/mauromedda/storybook-mcp-go/internal/tools"
)

// ContextFunc builds the addon context for a request in the given session.
type ContextFunc func(sess *Session) *tools.AddonContext

// Dispatcher answers MCP requests. It holds no per-request state and is safe
// for concurrent use.
type Dispatcher struct {
	registry *tools.Registry
	info     ServerInfo
	addon    ContextFunc
}

// NewDispatcher creates a Dispatcher. A nil addon func yields a nil addon
// context, which tools treat as missing configuration.
func NewDispatcher(registry *tools.Registry, info ServerInfo, addon ContextFunc) *Dispatcher {
	if addon == nil {
		addon = func(*Session) *tools.AddonContext { return nil }
	}
	return &Dispatcher{registry: registry, info: info, addon: addon}
}

// Handle processes one request. It returns nil for notifications.
func (d *Dispatcher) Handle(ctx context.Context, sess *Session, req *Request) *Response {
	if req.JSONRPC != jsonRPCVersion {
		return errorResponse(req.ID, codeInvalidRequest, "invalid jsonrpc version")
	}

	var (
		result any
		rpcErr *RPCError
	)
	switch req.Method {
	case "initialize":
		result, rpcErr = d.initialize(sess, req.Params)
	case "ping":
		result = struct{}{}
	case "tools/list":
		result = d.listTools(sess)
	case "tools/call":
		result, rpcErr = d.callTool(ctx, sess, req.Params)
	default:
		if req.IsNotification() {
			// notifications/initialized, notifications/cancelled: ACK only
			return nil
		}
		rpcErr = &RPCError{Code: codeMethodNotFound, Message: fmt.Sprintf("method not found: %s", req.Method)}
	}

	if req.IsNotification() {
		return nil
	}
	if rpcErr != nil {
		return &Response{JSONRPC: jsonRPCVersion, ID: req.ID, Error: rpcErr}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return errorResponse(req.ID, codeInternalError, err.Error())
	}
	return &Response{JSONRPC: jsonRPCVersion, ID: req.ID, Result: data}
}

func (d *Dispatcher) initialize(sess *Session, raw json.RawMessage) (any, *RPCError) {
	var params InitializeParams
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, &RPCError{Code: codeInvalidParams, Message: "invalid params"}
		}
	}

	version := negotiateVersion(params.ProtocolVersion)
	sess.setClient(params.ClientInfo, version)
	log.Debug("mcp: session %s initialized by %s %s (protocol %s)", sess.ID, params.ClientInfo.Name, params.ClientInfo.Version, version)

	return InitializeResult{
		ProtocolVersion: version,
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{ListChanged: true},
		},
		ServerInfo: d.info,
	}, nil
}

func (d *Dispatcher) listTools(sess *Session) map[string]any {
	enabled := d.registry.Enabled(d.addon(sess))
	list := make([]MCPTool, 0, len(enabled))
	for _, t := range enabled {
		list = append(list, MCPTool{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			InputSchema: t.Schema(),
		})
	}
	return map[string]any{"tools": list}
}

func (d *Dispatcher) callTool(ctx context.Context, sess *Session, raw json.RawMessage) (any, *RPCError) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, &RPCError{Code: codeInvalidParams, Message: "invalid params"}
	}

	res, err := d.registry.Call(ctx, params.Name, tools.Call{
		SessionID: sess.ID,
		Addon:     d.addon(sess),
		Arguments: params.Arguments,
	})
	switch {
	case errors.Is(err, tools.ErrUnknownTool), errors.Is(err, tools.ErrToolDisabled):
		return nil, &RPCError{Code: codeInvalidParams, Message: err.Error()}
	case err != nil:
		return nil, &RPCError{Code: codeInternalError, Message: err.Error()}
	}
	return ToolResultFromResult(res), nil
}

func errorResponse(id json.RawMessage, code int, message string) *Response {
	return &Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	}
}
