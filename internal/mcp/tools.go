package mcp

import (
	"context"
	"encoding/json"

	"github.com/yaklabco/leptomcp/internal/docs"
	"github.com/yaklabco/leptomcp/internal/logging"
	"github.com/yaklabco/leptomcp/pkg/report"
)

// Tool names exposed via tools/list.
const (
	toolListSections     = "list-sections"
	toolGetDocumentation = "get-documentation"
	toolAutofixer        = "leptos-autofixer"
)

func listTools() toolsResult {
	return toolsResult{Tools: []tool{
		{
			Name:        toolListSections,
			Description: "List all available Leptos documentation sections with their use cases",
			InputSchema: inputSchema{
				Type:       "object",
				Properties: map[string]property{},
				Required:   []string{},
			},
		},
		{
			Name:        toolGetDocumentation,
			Description: "Get Leptos documentation for a specific section. Pass section name like 'signals', 'components', 'routing'",
			InputSchema: inputSchema{
				Type: "object",
				Properties: map[string]property{
					"section": {
						Type:        "string",
						Description: "Section name or path to retrieve",
					},
				},
				Required: []string{"section"},
			},
		},
		{
			Name:        toolAutofixer,
			Description: "Analyze Leptos code and suggest fixes for common issues",
			InputSchema: inputSchema{
				Type: "object",
				Properties: map[string]property{
					"code": {
						Type:        "string",
						Description: "Leptos code to analyze",
					},
				},
				Required: []string{"code"},
			},
		},
	}}
}

// toolArgs holds the union of all tool arguments. Absent or
// wrongly-typed fields read as empty strings.
type toolArgs struct {
	Section string `json:"section"`
	Code    string `json:"code"`
}

func (s *Server) callTool(ctx context.Context, params json.RawMessage) (any, *responseError) {
	if len(params) == 0 {
		return nil, rpcErrorf("Missing params")
	}

	var call callParams
	if err := json.Unmarshal(params, &call); err != nil || call.Name == "" {
		return nil, rpcErrorf("Missing tool name")
	}

	s.logger.Info("tool call", logging.FieldTool, call.Name)

	var args toolArgs
	if len(call.Arguments) > 0 {
		// Tools read arguments permissively; a bad shape degrades to
		// empty values instead of failing the call.
		_ = json.Unmarshal(call.Arguments, &args)
	}

	switch call.Name {
	case toolListSections:
		return textContent(docs.List()), nil
	case toolGetDocumentation:
		return textContent(docs.Render(args.Section)), nil
	case toolAutofixer:
		text, err := s.analyzeCode(ctx, args.Code)
		if err != nil {
			return nil, rpcErrorf("analysis failed: %v", err)
		}
		return textContent(text), nil
	default:
		return nil, rpcErrorf("Unknown tool: %s", call.Name)
	}
}

// analyzeCode runs the rule catalog over submitted code and renders
// the canonical JSON report.
func (s *Server) analyzeCode(ctx context.Context, code string) (string, error) {
	result, err := s.engine.AnalyzeSource(ctx, "input.rs", []byte(code), s.cfg)
	if err != nil {
		return "", err
	}

	data, err := report.Build(result.Findings, s.engine.Catalog).JSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
