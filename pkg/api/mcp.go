package api

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/abbrev-registry/pkg/abbrev"
	"github.com/hazyhaar/abbrev-registry/pkg/dict"
	"github.com/hazyhaar/abbrev-registry/pkg/kit"
)

// RegisterMCPTools registers the abbreviation MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, reg *dict.Registry, logger *slog.Logger) {
	ep := newEndpoints(reg, nil, logger)
	registerAbbreviate(srv, ep)
	registerAbbreviateBatch(srv, ep)
	registerListDicts(srv, ep)
}

func categoryOption() mcp.ToolOption {
	return mcp.WithString("category", mcp.Required(),
		mcp.Description("Abbreviation category"),
		mcp.Enum(categoryNames()...),
	)
}

func categoryNames() []string {
	names := make([]string, len(abbrev.Categories))
	for i, c := range abbrev.Categories {
		names[i] = string(c)
	}
	return names
}

func registerAbbreviate(srv *server.MCPServer, ep *endpoints) {
	tool := mcp.NewTool("abbreviate",
		mcp.WithDescription("Abbreviate a bibliographic field (journal title, court, place...) using the loaded abbreviation lists. abbreviated=false means the text must be kept as is."),
		categoryOption(),
		mcp.WithString("key", mcp.Required(), mcp.Description("The field text to abbreviate")),
		mcp.WithString("jurisdiction", mcp.Description("Jurisdiction code (e.g. us, fr); falls back to default")),
	)

	kit.RegisterMCPTool(srv, tool, ep.abbreviate, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		key, ok := args["key"].(string)
		if !ok {
			return nil, fmt.Errorf("key must be a string")
		}
		category, _ := args["category"].(string)
		jurisdiction, _ := args["jurisdiction"].(string)
		return &kit.MCPDecodeResult{Request: &abbreviateReq{
			Category:     category,
			Jurisdiction: jurisdiction,
			Key:          key,
		}}, nil
	})
}

func registerAbbreviateBatch(srv *server.MCPServer, ep *endpoints) {
	tool := mcp.NewTool("abbreviate_batch",
		mcp.WithDescription(fmt.Sprintf("Abbreviate up to %d fields of one category in a single run; returns every result and the run's recorded abbreviations.", MaxBatch)),
		categoryOption(),
		mcp.WithArray("keys", mcp.Required(),
			mcp.Description("Field texts to abbreviate"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("jurisdiction", mcp.Description("Jurisdiction code applied to every key")),
	)

	kit.RegisterMCPTool(srv, tool, ep.batch, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		raw, ok := args["keys"].([]any)
		if !ok {
			return nil, fmt.Errorf("keys must be an array of strings")
		}
		category, _ := args["category"].(string)
		jurisdiction, _ := args["jurisdiction"].(string)
		reqs := make([]abbreviateReq, len(raw))
		for i, v := range raw {
			key, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("keys[%d] must be a string", i)
			}
			reqs[i] = abbreviateReq{Category: category, Jurisdiction: jurisdiction, Key: key}
		}
		return &kit.MCPDecodeResult{Request: &batchReq{Requests: reqs}}, nil
	})
}

func registerListDicts(srv *server.MCPServer, ep *endpoints) {
	tool := mcp.NewTool("list_dicts",
		mcp.WithDescription("List all loaded abbreviation lists with metadata (jurisdiction, table, entry count, source)."),
	)

	kit.RegisterMCPTool(srv, tool, ep.listDicts, func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}
