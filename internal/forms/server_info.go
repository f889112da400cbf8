package forms

import "github.com/formfold/mcp-pdf-forms/internal/descriptions"

// ServerInfo describes the server, its tools and how to use them.
func (s *Service) ServerInfo(_ ServerInfoRequest, serverName, version string) (*ServerInfoResult, error) {
	return &ServerInfoResult{
		ServerName:       serverName,
		Version:          version,
		DefaultDirectory: s.ConfiguredDirectory(),
		MaxFileSize:      s.maxFileSize,
		AvailableTools: []ToolInfo{
			{
				Name:        "form_fields_file",
				Description: descriptions.GetToolDescription("form_fields_file"),
				Usage:       "form_fields_file(path: \"/path/to/form.pdf\")",
				Parameters:  "path (required), use_full_names (optional bool)",
			},
			{
				Name:        "form_create_file",
				Description: descriptions.GetToolDescription("form_create_file"),
				Usage:       "form_create_file(path: \"/in.pdf\", output_path: \"/out.pdf\", specs: \"[...]\")",
				Parameters:  "path (required), output_path (required), specs (required JSON array)",
			},
			{
				Name:        "form_fill_file",
				Description: descriptions.GetToolDescription("form_fill_file"),
				Usage:       "form_fill_file(path: \"/in.pdf\", output_path: \"/out.pdf\", values: \"{...}\")",
				Parameters:  "path (required), output_path (required), values (required JSON object)",
			},
			{
				Name:        "form_validate_file",
				Description: descriptions.GetToolDescription("form_validate_file"),
				Usage:       "form_validate_file(path: \"/path/to/form.pdf\")",
				Parameters:  "path (required)",
			},
			{
				Name:        "form_server_info",
				Description: descriptions.GetToolDescription("form_server_info"),
				Usage:       "form_server_info()",
				Parameters:  "none",
			},
		},
		UsageGuidance: "Start with form_validate_file to confirm the document is readable, " +
			"then form_fields_file to discover field names. Field names are the keys " +
			"accepted by form_fill_file; diagnostics list widgets that were skipped " +
			"because of malformed document data.",
	}, nil
}
