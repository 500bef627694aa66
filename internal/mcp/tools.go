package mcp

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/acolita/chance/internal/logging"
	"github.com/acolita/chance/internal/rng"
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(randomBytesTool(), s.handleRandomBytes)
	s.mcpServer.AddTool(randomIntTool(), s.handleRandomInt)
	s.mcpServer.AddTool(randomPickTool(), s.handleRandomPick)
	s.mcpServer.AddTool(randomShuffleTool(), s.handleRandomShuffle)
}

// Tool definitions

func randomBytesTool() mcp.Tool {
	return mcp.NewTool(toolRandomBytes,
		mcp.WithDescription("Generate random bytes from the configured source"),
		mcp.WithNumber("count",
			mcp.Description("Number of bytes (default: 32)"),
		),
		mcp.WithString("encoding",
			mcp.Description("Output encoding: 'hex' or 'base64'"),
			mcp.DefaultString(encodingHex),
		),
	)
}

func randomIntTool() mcp.Tool {
	return mcp.NewTool(toolRandomInt,
		mcp.WithDescription("Draw uniformly distributed integers from the half-open range [low, high)"),
		mcp.WithNumber("low",
			mcp.Required(),
			mcp.Description("Inclusive lower bound"),
		),
		mcp.WithNumber("high",
			mcp.Required(),
			mcp.Description("Exclusive upper bound"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of values to draw (default: 1)"),
		),
	)
}

func randomPickTool() mcp.Tool {
	return mcp.NewTool(toolRandomPick,
		mcp.WithDescription("Pick items uniformly at random, with replacement"),
		mcp.WithString("items",
			mcp.Required(),
			mcp.Description(descItems),
		),
		mcp.WithString("separator",
			mcp.Description(descSeparator),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of picks (default: 1)"),
		),
	)
}

func randomShuffleTool() mcp.Tool {
	return mcp.NewTool(toolRandomShuffle,
		mcp.WithDescription("Return the items in a random order"),
		mcp.WithString("items",
			mcp.Required(),
			mcp.Description(descItems),
		),
		mcp.WithString("separator",
			mcp.Description(descSeparator),
		),
	)
}

// Tool results

type bytesResult struct {
	Count    int    `json:"count"`
	Encoding string `json:"encoding"`
	Data     string `json:"data"`
}

type intResult struct {
	Low    int   `json:"low"`
	High   int   `json:"high"`
	Values []int `json:"values"`
}

type pick struct {
	Index int    `json:"index"`
	Item  string `json:"item"`
}

type pickResult struct {
	Picks []pick `json:"picks"`
}

type shuffleResult struct {
	Items []string `json:"items"`
}

// Tool handlers

func (s *Server) handleRandomBytes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count := mcp.ParseInt(req, "count", 32)
	encoding := strings.ToLower(mcp.ParseString(req, "encoding", encodingHex))
	if encoding != encodingHex && encoding != encodingBase64 {
		return mcp.NewToolResultError(fmt.Sprintf("unknown encoding %q (want hex or base64)", encoding)), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if count < 1 || count > s.limits.MaxBytes {
		return mcp.NewToolResultError(fmt.Sprintf(errCountRange, s.limits.MaxBytes)), nil
	}

	if ok, retry := s.budget.Take(count); !ok {
		return mcp.NewToolResultError(fmt.Sprintf(errBudgetExhausted, s.budget.Limit(), retry.Round(time.Second))), nil
	}

	buf := make([]byte, count)
	if err := s.src.TryFillBytes(buf); err != nil {
		s.budget.Refund(count)
		return sourceError(toolRandomBytes, err), nil
	}
	slog.Debug("random bytes generated", logging.Sample("output", buf))

	data := hex.EncodeToString(buf)
	if encoding == encodingBase64 {
		data = base64.StdEncoding.EncodeToString(buf)
	}
	return jsonResult(bytesResult{Count: count, Encoding: encoding, Data: data})
}

func (s *Server) handleRandomInt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	low := mcp.ParseInt(req, "low", 0)
	high := mcp.ParseInt(req, "high", 0)
	count := mcp.ParseInt(req, "count", 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if count < 1 || count > s.limits.MaxItems {
		return mcp.NewToolResultError(fmt.Sprintf(errCountRange, s.limits.MaxItems)), nil
	}

	values := make([]int, 0, count)
	for range count {
		v, ok, err := rng.TryIn(s.src, low, high)
		if err != nil {
			return sourceError(toolRandomInt, err), nil
		}
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("empty range: low (%d) must be less than high (%d)", low, high)), nil
		}
		values = append(values, v)
	}

	return jsonResult(intResult{Low: low, High: high, Values: values})
}

func (s *Server) handleRandomPick(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := splitItems(mcp.ParseString(req, "items", ""), mcp.ParseString(req, "separator", defaultSeparator))
	count := mcp.ParseInt(req, "count", 1)
	if len(items) == 0 {
		return mcp.NewToolResultError(errNoItems), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) > s.limits.MaxItems {
		return mcp.NewToolResultError(fmt.Sprintf(errTooManyItems, len(items), s.limits.MaxItems)), nil
	}
	if count < 1 || count > s.limits.MaxItems {
		return mcp.NewToolResultError(fmt.Sprintf(errCountRange, s.limits.MaxItems)), nil
	}

	picks := make([]pick, 0, count)
	for range count {
		i, _, err := rng.TryIndex(s.src, len(items))
		if err != nil {
			return sourceError(toolRandomPick, err), nil
		}
		picks = append(picks, pick{Index: i, Item: items[i]})
	}

	return jsonResult(pickResult{Picks: picks})
}

func (s *Server) handleRandomShuffle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := splitItems(mcp.ParseString(req, "items", ""), mcp.ParseString(req, "separator", defaultSeparator))

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) > s.limits.MaxItems {
		return mcp.NewToolResultError(fmt.Sprintf(errTooManyItems, len(items), s.limits.MaxItems)), nil
	}
	if err := rng.TryShuffle(s.src, items); err != nil {
		return sourceError(toolRandomShuffle, err), nil
	}

	return jsonResult(shuffleResult{Items: items})
}

// splitItems splits s on sep, trimming whitespace and dropping empty items.
func splitItems(s, sep string) []string {
	if sep == "" {
		sep = defaultSeparator
	}
	items := []string{}
	for _, item := range strings.Split(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func sourceError(tool string, err error) *mcp.CallToolResult {
	slog.Error("random source failed",
		slog.String("tool", tool),
		slog.String("error", err.Error()),
	)
	return mcp.NewToolResultError(fmt.Sprintf(errSourceFailed, err))
}

// jsonResult marshals v to a JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
