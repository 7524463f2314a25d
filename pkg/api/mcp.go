package api

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/alsatian-transform/pkg/kit"
)

// RegisterMCPTools registers the transform MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, s *Service) {
	registerTransformText(srv, s)
	registerListTables(srv, s)
}

func registerTransformText(srv *server.MCPServer, s *Service) {
	tool := mcp.NewTool("transform_text",
		mcp.WithDescription("Rewrite Alsatian text towards German or Luxembourgish spelling, either with frequency-filtered spelling rules or with a word-for-word vocabulary."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The Alsatian text to transform")),
		mcp.WithString("mode", mcp.Description("rules (default) or vocab"), mcp.Enum(ModeRules, ModeVocab)),
	)

	kit.RegisterMCPTool(srv, tool, kit.Logging(s.logger(), "transform_text")(transformEndpoint(s)),
		func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
			args := req.GetArguments()
			text, ok := args["text"].(string)
			if !ok {
				return nil, fmt.Errorf("text must be a string")
			}
			mode, _ := args["mode"].(string)
			return &kit.MCPDecodeResult{Request: &transformReq{Text: text, Mode: mode}}, nil
		})
}

func registerListTables(srv *server.MCPServer, s *Service) {
	tool := mcp.NewTool("list_tables",
		mcp.WithDescription("List the loaded rule and vocabulary tables with their source, language and entry count."),
	)

	kit.RegisterMCPTool(srv, tool, kit.Logging(s.logger(), "list_tables")(listTablesEndpoint(s)),
		func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
			return &kit.MCPDecodeResult{Request: nil}, nil
		})
}
