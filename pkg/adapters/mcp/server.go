package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/fsa"
	"github.com/aretw0/fsa/internal/presentation/graph"
	"github.com/aretw0/fsa/pkg/domain"
	"github.com/aretw0/fsa/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ReportsURI is the resource listing stored report names.
const ReportsURI = "fsa://reports"

// GraphResponse is the structured result of render_graph.
type GraphResponse struct {
	Format string `json:"format" jsonschema_description:"mermaid or dot"`
	Graph  string `json:"graph" jsonschema_description:"The rendered diagram source"`
}

// Analyzer defines what the MCP server needs from the library.
type Analyzer interface {
	AnalyzeDefinition(ctx context.Context, name string, def *schema.Definition) (*domain.Report, error)
	Report(ctx context.Context, name string) (*domain.Report, error)
	Reports(ctx context.Context) ([]string, error)
}

// Server wraps the Analyzer and exposes it as an MCP Server.
type Server struct {
	analyzer  Analyzer
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(analyzer Analyzer) *Server {
	s := &Server{
		analyzer:  analyzer,
		mcpServer: server.NewMCPServer("fsa-mcp", strings.TrimSpace(fsa.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: analyze_automaton
	analyzeTool := mcp.NewTool("analyze_automaton",
		mcp.WithDescription("Analyze an automaton definition (X, E, delta) and store the report under name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name to store the report under")),
		mcp.WithString("definition", mcp.Required(), mcp.Description("The definition document")),
		mcp.WithString("format", mcp.Description("json (default) or yaml")),
		mcp.WithOutputSchema[domain.Report](),
	)
	s.mcpServer.AddTool(analyzeTool, mcp.NewStructuredToolHandler(s.handleAnalyze))

	// TOOL: get_report
	reportTool := mcp.NewTool("get_report",
		mcp.WithDescription("Fetch the last report stored under name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Report name")),
		mcp.WithOutputSchema[domain.Report](),
	)
	s.mcpServer.AddTool(reportTool, mcp.NewStructuredToolHandler(s.handleGetReport))

	// TOOL: render_graph
	graphTool := mcp.NewTool("render_graph",
		mcp.WithDescription("Render an automaton definition as a Mermaid or Graphviz diagram."),
		mcp.WithString("definition", mcp.Required(), mcp.Description("The definition document")),
		mcp.WithString("format", mcp.Description("mermaid (default) or dot")),
		mcp.WithString("input", mcp.Description("Definition format: json (default) or yaml")),
		mcp.WithBoolean("overlay", mcp.Description("Color states by analysis results")),
		mcp.WithOutputSchema[GraphResponse](),
	)
	s.mcpServer.AddTool(graphTool, mcp.NewStructuredToolHandler(s.handleRenderGraph))
}

func decodeArg(args map[string]interface{}, formatKey string) (*schema.Definition, error) {
	doc, _ := args["definition"].(string)
	if doc == "" {
		return nil, fmt.Errorf("definition is required")
	}
	format := schema.FormatJSON
	if f, _ := args[formatKey].(string); f != "" {
		var err error
		if format, err = schema.ParseFormat(f); err != nil {
			return nil, err
		}
	}
	return schema.Decode([]byte(doc), format)
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Report, error) {
	name, _ := args["name"].(string)
	if name == "" {
		return domain.Report{}, fmt.Errorf("name is required")
	}
	def, err := decodeArg(args, "format")
	if err != nil {
		return domain.Report{}, fmt.Errorf("invalid definition: %w", err)
	}

	report, err := s.analyzer.AnalyzeDefinition(ctx, name, def)
	if err != nil {
		return domain.Report{}, err
	}
	return *report, nil
}

func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Report, error) {
	name, _ := args["name"].(string)
	report, err := s.analyzer.Report(ctx, name)
	if err != nil {
		return domain.Report{}, fmt.Errorf("report %q: %w", name, err)
	}
	return *report, nil
}

func (s *Server) handleRenderGraph(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GraphResponse, error) {
	def, err := decodeArg(args, "input")
	if err != nil {
		return GraphResponse{}, fmt.Errorf("invalid definition: %w", err)
	}
	a, err := def.Build()
	if err != nil {
		return GraphResponse{}, err
	}

	var overlay *domain.Report
	if on, _ := args["overlay"].(bool); on {
		if overlay, err = a.Analyze(); err != nil {
			return GraphResponse{}, err
		}
	}

	format, _ := args["format"].(string)
	switch format {
	case "", "mermaid":
		return GraphResponse{Format: "mermaid", Graph: graph.GenerateMermaid(a, overlay)}, nil
	case "dot":
		return GraphResponse{Format: "dot", Graph: graph.GenerateDot(a, overlay)}, nil
	default:
		return GraphResponse{}, fmt.Errorf("unsupported graph format %q", format)
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ReportsURI, "Stored Reports",
		mcp.WithMIMEType("application/json"),
	), s.readReports)
}

func (s *Server) readReports(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.analyzer.Reports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	jsonBytes, _ := json.Marshal(names)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ReportsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
