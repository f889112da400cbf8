package forms

import (
	"bytes"
	"fmt"
	"os"

	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
	"github.com/formfold/mcp-pdf-forms/internal/forms/security"
)

// Service exposes the form core as file-level operations for the MCP server
// and the CLI: every request names an input file inside the configured
// directory, and write operations produce a new output file.
type Service struct {
	maxFileSize   int64
	pathValidator *security.PathValidator
}

// NewService creates a service confined to configuredDirectory.
func NewService(maxFileSize int64, configuredDirectory string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}
	return &Service{maxFileSize: maxFileSize, pathValidator: pathValidator}, nil
}

// MaxFileSize returns the configured file size limit in bytes.
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// ConfiguredDirectory returns the directory requests are confined to.
func (s *Service) ConfiguredDirectory() string {
	return s.pathValidator.Dir()
}

// FieldsFile extracts the field mapping of a PDF file.
func (s *Service) FieldsFile(req FieldsFileRequest) (*FieldsFileResult, error) {
	data, err := s.loadFile(req.Path)
	if err != nil {
		return nil, err
	}

	session, err := OpenBytes(data, SessionOptions{UseFullNames: req.UseFullNames})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", req.Path, err)
	}

	mapping := session.Fields()
	result := &FieldsFileResult{
		Path:        req.Path,
		Pages:       session.PageCount(),
		Fields:      make([]*fields.Field, 0, len(mapping)),
		Diagnostics: session.Diagnostics(),
	}
	for _, name := range mapping.Names() {
		result.Fields = append(result.Fields, mapping[name])
	}
	return result, nil
}

// CreateFile creates the requested fields and writes the result to the
// output path. All specs are materialized in one batched pass.
func (s *Service) CreateFile(req CreateFileRequest) (*CreateFileResult, error) {
	data, err := s.loadFile(req.Path)
	if err != nil {
		return nil, err
	}
	if err := s.pathValidator.ValidatePath(req.OutputPath); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	session, err := OpenBytes(data, SessionOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", req.Path, err)
	}
	if err := session.CreateFields(req.Specs...); err != nil {
		return nil, err
	}

	out, err := session.Bytes()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(req.OutputPath, out, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}

	names := make([]string, 0, len(req.Specs))
	for _, spec := range req.Specs {
		names = append(names, spec.Name)
	}
	return &CreateFileResult{
		Path:       req.Path,
		OutputPath: req.OutputPath,
		FieldNames: names,
		Size:       int64(len(out)),
	}, nil
}

// FillFile writes values into a PDF file's fields and saves the result to
// the output path.
func (s *Service) FillFile(req FillFileRequest) (*FillFileResult, error) {
	data, err := s.loadFile(req.Path)
	if err != nil {
		return nil, err
	}
	if err := s.pathValidator.ValidatePath(req.OutputPath); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	session, err := OpenBytes(data, SessionOptions{
		UseFullNames: req.UseFullNames,
		StrictFill:   req.Strict,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", req.Path, err)
	}
	if err := session.Fill(req.Values); err != nil {
		return nil, err
	}

	filled := 0
	for name := range req.Values {
		if _, ok := session.Fields()[name]; ok {
			filled++
		}
	}

	out, err := session.Bytes()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(req.OutputPath, out, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}

	return &FillFileResult{
		Path:        req.Path,
		OutputPath:  req.OutputPath,
		FilledCount: filled,
		Size:        int64(len(out)),
		Diagnostics: session.Diagnostics(),
	}, nil
}

// ValidateFile reports whether a file is a readable PDF and how many form
// fields it exposes.
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	data, err := s.loadFile(req.Path)
	if err != nil {
		return nil, err
	}

	result := &ValidateFileResult{Path: req.Path}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		result.Message = "file does not start with a PDF header"
		return result, nil
	}

	session, err := OpenBytes(data, SessionOptions{})
	if err != nil {
		result.Message = err.Error()
		return result, nil
	}

	result.Valid = true
	result.Pages = session.PageCount()
	result.FieldCount = len(session.Fields())
	return result, nil
}

// loadFile validates, size-checks and fully buffers an input file. The core
// never reads lazily; input bytes are buffered up front.
func (s *Service) loadFile(path string) ([]byte, error) {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access file: %w", err)
	}
	if info.Size() > s.maxFileSize {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed size %d", info.Size(), s.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
