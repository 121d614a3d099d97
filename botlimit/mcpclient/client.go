// Package mcpclient calls the botlimit service tools over MCP.
package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/go-harden/botlimit/botlimit/config"
	"github.com/go-harden/botlimit/botlimit/limit"
	"github.com/go-harden/botlimit/botlimit/protocol"
)

// Client wraps an initialized MCP client session.
type Client struct {
	c *client.Client
}

// Connect opens a streamable HTTP session against the service at url.
func Connect(ctx context.Context, url string) (*Client, error) {
	c, err := client.NewStreamableHttpClient(url)
	if err != nil {
		return nil, fmt.Errorf("creating MCP client: %w", err)
	}
	mc, err := Wrap(ctx, c)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	return mc, nil
}

// Wrap starts and initializes an existing MCP client, such as an in-process one.
func Wrap(ctx context.Context, c *client.Client) (*Client, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "botlimit-cli",
		Version: config.Version,
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		return nil, fmt.Errorf("initializing session: %w", err)
	}
	return &Client{c: c}, nil
}

func (c *Client) Close() error {
	return c.c.Close()
}

// Limits returns the limit of field, or of every field when field is "".
func (c *Client) Limits(ctx context.Context, field string) (*protocol.LimitsResponse, error) {
	args := map[string]interface{}{}
	if field != "" {
		args["field"] = field
	}
	return callTool[protocol.LimitsResponse](ctx, c.c, "limit_get", args)
}

func (c *Client) Measure(ctx context.Context, value string) (*protocol.MeasureResponse, error) {
	return callTool[protocol.MeasureResponse](ctx, c.c, "text_measure", map[string]interface{}{
		"value": value,
	})
}

func (c *Client) Truncate(ctx context.Context, field, value string) (*protocol.TruncateResponse, error) {
	return callTool[protocol.TruncateResponse](ctx, c.c, "text_truncate", map[string]interface{}{
		"field": field,
		"value": value,
	})
}

func (c *Client) TruncateOnboarding(ctx context.Context, content limit.OnboardingContent) (*protocol.OnboardingResponse, error) {
	return callTool[protocol.OnboardingResponse](ctx, c.c, "onboarding_truncate", map[string]interface{}{
		"content": content,
	})
}

// HistoryListOpts filters history_list. Zero values leave the service defaults.
type HistoryListOpts struct {
	SessionID string
	Limit     int
}

func (c *Client) HistoryList(ctx context.Context, opts HistoryListOpts) (*protocol.HistoryResponse, error) {
	args := map[string]interface{}{}
	if opts.SessionID != "" {
		args["session_id"] = opts.SessionID
	}
	if opts.Limit > 0 {
		args["limit"] = opts.Limit
	}
	return callTool[protocol.HistoryResponse](ctx, c.c, "history_list", args)
}

// HistoryClearOpts selects what history_clear removes. ID takes precedence
// over SessionID; with neither set all history is removed.
type HistoryClearOpts struct {
	ID        string
	SessionID string
}

func (c *Client) HistoryClear(ctx context.Context, opts HistoryClearOpts) (*protocol.HistoryClearResponse, error) {
	args := map[string]interface{}{}
	if opts.ID != "" {
		args["id"] = opts.ID
	}
	if opts.SessionID != "" {
		args["session_id"] = opts.SessionID
	}
	return callTool[protocol.HistoryClearResponse](ctx, c.c, "history_clear", args)
}

func callTool[T any](ctx context.Context, c *client.Client, name string, args map[string]interface{}) (*T, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := c.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	text := resultText(result)
	if result.IsError {
		return nil, fmt.Errorf("%s: %s", name, text)
	}

	var out T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%s: decoding result: %w", name, err)
	}
	return &out, nil
}

func resultText(result *mcp.CallToolResult) string {
	var sb strings.Builder
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}
