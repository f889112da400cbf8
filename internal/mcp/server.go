package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/formfold/mcp-pdf-forms/internal/config"
	"github.com/formfold/mcp-pdf-forms/internal/forms"
	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents the MCP server instance
type Server struct {
	config       *config.Config
	formsService *forms.Service
	mcpServer    *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, formsService *forms.Service) (*Server, error) {
	if formsService == nil {
		return nil, fmt.Errorf("formsService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:       cfg,
		formsService: formsService,
		mcpServer:    mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register form fields file tool
	formFieldsFileTool := mcp.NewTool(
		"form_fields_file",
		mcp.WithDescription("Extract the interactive form field mapping from a PDF file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithBoolean("use_full_names",
			mcp.Description("Key fields by their dotted fully qualified names"),
		),
	)
	s.mcpServer.AddTool(formFieldsFileTool, s.handleFormFieldsFile)

	// Register form create file tool
	formCreateFileTool := mcp.NewTool(
		"form_create_file",
		mcp.WithDescription("Create new form fields in a PDF file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the input PDF file"),
		),
		mcp.WithString("output_path",
			mcp.Required(),
			mcp.Description("Full path the modified PDF is written to"),
		),
		mcp.WithString("specs",
			mcp.Required(),
			mcp.Description(`JSON array of field specs, e.g. `+
				`[{"name":"email","kind":"text","page_number":1,"x":100,"y":700}]`),
		),
	)
	s.mcpServer.AddTool(formCreateFileTool, s.handleFormCreateFile)

	// Register form fill file tool
	formFillFileTool := mcp.NewTool(
		"form_fill_file",
		mcp.WithDescription("Fill the form fields of a PDF file with values"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the input PDF file"),
		),
		mcp.WithString("output_path",
			mcp.Required(),
			mcp.Description("Full path the filled PDF is written to"),
		),
		mcp.WithString("values",
			mcp.Required(),
			mcp.Description(`JSON object of field name to value, e.g. `+
				`{"email":"a@b.c","subscribed":true}`),
		),
		mcp.WithBoolean("use_full_names",
			mcp.Description("Key fields by their dotted fully qualified names"),
		),
		mcp.WithBoolean("strict",
			mcp.Description("Fail the whole fill on the first mismatched value type"),
		),
	)
	s.mcpServer.AddTool(formFillFileTool, s.handleFormFillFile)

	// Register form validate file tool
	formValidateFileTool := mcp.NewTool(
		"form_validate_file",
		mcp.WithDescription("Validate if a file is a readable PDF and count its form fields"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(formValidateFileTool, s.handleFormValidateFile)

	// Register form server info tool
	formServerInfoTool := mcp.NewTool(
		"form_server_info",
		mcp.WithDescription("Get server information, available tools, and usage guidance"),
	)
	s.mcpServer.AddTool(formServerInfoTool, s.handleFormServerInfo)
}

// Handler functions
func (s *Server) handleFormFieldsFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	useFullNames := false
	if v, ok := args["use_full_names"].(bool); ok {
		useFullNames = v
	}

	req := forms.FieldsFileRequest{Path: path, UseFullNames: useFullNames}
	result, err := s.formsService.FieldsFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatFieldsFileResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleFormCreateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outputPath, err := request.RequireString("output_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	specsJSON, err := request.RequireString("specs")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var specs []fields.WidgetSpec
	if err := json.Unmarshal([]byte(specsJSON), &specs); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid specs JSON: %v", err)), nil
	}
	if len(specs) == 0 {
		return mcp.NewToolResultError("specs must contain at least one field spec"), nil
	}

	req := forms.CreateFileRequest{Path: path, OutputPath: outputPath, Specs: specs}
	result, err := s.formsService.CreateFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Created %d field(s) in %s\n", len(result.FieldNames), result.Path)
	for i, name := range result.FieldNames {
		responseText += fmt.Sprintf("%d. %s\n", i+1, name)
	}
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.OutputPath, result.Size)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleFormFillFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outputPath, err := request.RequireString("output_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	valuesJSON, err := request.RequireString("values")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(valuesJSON), &values); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid values JSON: %v", err)), nil
	}

	args := request.GetArguments()
	useFullNames := false
	if v, ok := args["use_full_names"].(bool); ok {
		useFullNames = v
	}
	strict := false
	if v, ok := args["strict"].(bool); ok {
		strict = v
	}

	req := forms.FillFileRequest{
		Path:         path,
		OutputPath:   outputPath,
		Values:       values,
		UseFullNames: useFullNames,
		Strict:       strict,
	}
	result, err := s.formsService.FillFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Filled %d field(s) in %s\n", result.FilledCount, result.Path)
	responseText += fmt.Sprintf("Output: %s (%d bytes)\n", result.OutputPath, result.Size)
	if len(result.Diagnostics) > 0 {
		responseText += fmt.Sprintf("\nDiagnostics (%d):\n", len(result.Diagnostics))
		for _, d := range result.Diagnostics {
			responseText += fmt.Sprintf("  - %s\n", d.String())
		}
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleFormValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := forms.ValidateFileRequest{Path: path}
	result, err := s.formsService.ValidateFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable (%d pages, %d form fields)",
			result.Path, result.Pages, result.FieldCount)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleFormServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := forms.ServerInfoRequest{}
	result, err := s.formsService.ServerInfo(req, s.config.ServerName, s.config.Version)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatServerInfoResult(result)
	return mcp.NewToolResultText(responseText), nil
}

// Formatting methods
func (s *Server) formatFieldsFileResult(result *forms.FieldsFileResult) string {
	text := fmt.Sprintf("Form fields for: %s\n", result.Path)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Total fields: %d\n", len(result.Fields))

	if len(result.Fields) > 0 {
		text += "\nFields:\n"
		for i, f := range result.Fields {
			text += fmt.Sprintf("%d. %s (%s)", i+1, f.Name, f.Kind)
			if page := f.Page(); page > 0 {
				text += fmt.Sprintf(", page %d", page)
			}
			if f.Required {
				text += ", required"
			}
			if f.ReadOnly {
				text += ", read-only"
			}
			text += "\n"
			if f.Tooltip != "" {
				text += fmt.Sprintf("   Tooltip: %s\n", f.Tooltip)
			}
			if len(f.Options) > 0 {
				text += fmt.Sprintf("   Options: %v\n", f.Options)
			}
			if f.Value != nil {
				text += fmt.Sprintf("   Value: %v\n", f.Value)
			}
		}
	}

	if len(result.Diagnostics) > 0 {
		text += fmt.Sprintf("\nDiagnostics (%d):\n", len(result.Diagnostics))
		for _, d := range result.Diagnostics {
			text += fmt.Sprintf("  - %s\n", d.String())
		}
	}

	return text
}

func (s *Server) formatServerInfoResult(result *forms.ServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n", result.MaxFileSize/(1024*1024))

	// Available tools
	text += "\n🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	// Usage guidance
	text += "\n" + result.UsageGuidance

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	} else {
		return s.runStdioMode(ctx)
	}
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting PDF form MCP server in stdio mode")
		log.Printf("PDF directory: %s", s.config.PDFDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// For now, we'll just use stdio mode since the mark3labs library
	// handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
