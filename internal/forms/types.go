package forms

import (
	"github.com/formfold/mcp-pdf-forms/internal/forms/diag"
	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
)

// FieldsFileRequest asks for the field mapping of a PDF file.
type FieldsFileRequest struct {
	Path         string `json:"path"`
	UseFullNames bool   `json:"use_full_names,omitempty"`
}

// FieldsFileResult is the extracted mapping plus every recovered fault.
type FieldsFileResult struct {
	Path        string            `json:"path"`
	Pages       int               `json:"pages"`
	Fields      []*fields.Field   `json:"fields"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty"`
}

// CreateFileRequest asks for new fields to be created in a PDF file.
type CreateFileRequest struct {
	Path       string              `json:"path"`
	OutputPath string              `json:"output_path"`
	Specs      []fields.WidgetSpec `json:"specs"`
}

// CreateFileResult reports the outcome of a field creation request.
type CreateFileResult struct {
	Path       string   `json:"path"`
	OutputPath string   `json:"output_path"`
	FieldNames []string `json:"field_names"`
	Size       int64    `json:"size"`
}

// FillFileRequest asks for values to be written into a PDF file's fields.
type FillFileRequest struct {
	Path         string         `json:"path"`
	OutputPath   string         `json:"output_path"`
	Values       map[string]any `json:"values"`
	UseFullNames bool           `json:"use_full_names,omitempty"`
	Strict       bool           `json:"strict,omitempty"`
}

// FillFileResult reports the outcome of a fill request.
type FillFileResult struct {
	Path        string            `json:"path"`
	OutputPath  string            `json:"output_path"`
	FilledCount int               `json:"filled_count"`
	Size        int64             `json:"size"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty"`
}

// ValidateFileRequest asks whether a file is a readable PDF.
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ValidateFileResult reports readability and basic shape of a file.
type ValidateFileResult struct {
	Path       string `json:"path"`
	Valid      bool   `json:"valid"`
	Pages      int    `json:"pages,omitempty"`
	FieldCount int    `json:"field_count,omitempty"`
	Message    string `json:"message,omitempty"`
}

// ServerInfoRequest asks for server metadata and usage guidance.
type ServerInfoRequest struct{}

// ToolInfo describes one exposed tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}

// ServerInfoResult is the server self-description.
type ServerInfoResult struct {
	ServerName       string     `json:"server_name"`
	Version          string     `json:"version"`
	DefaultDirectory string     `json:"default_directory"`
	MaxFileSize      int64      `json:"max_file_size"`
	AvailableTools   []ToolInfo `json:"available_tools"`
	UsageGuidance    string     `json:"usage_guidance"`
}
