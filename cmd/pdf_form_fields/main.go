package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/formfold/mcp-pdf-forms/internal/forms"
	"github.com/formfold/mcp-pdf-forms/internal/forms/diag"
	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
)

var (
	outputFormat = flag.String("format", "text", "Output format: text, json")
	fullNames    = flag.Bool("full-names", false, "Key fields by their dotted fully qualified names")
	createSpecs  = flag.String("create", "", "JSON array of field specs to create (requires -output)")
	fillValues   = flag.String("fill", "", "JSON object of field values to fill (requires -output)")
	strictFill   = flag.Bool("strict", false, "Fail the fill on the first mismatched value type")
	outputPath   = flag.String("output", "", "Path the modified PDF is written to")
	verbose      = flag.Bool("verbose", false, "Enable verbose output")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: PDF file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	pdfPath := flag.Arg(0)
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", pdfPath)
		os.Exit(1)
	}

	if (*createSpecs != "" || *fillValues != "") && *outputPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -create and -fill require -output\n")
		os.Exit(1)
	}

	result, err := processFile(pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing form fields: %v\n", err)
		os.Exit(1)
	}

	if err := outputResults(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("PDF Form Fields - Inspect, create and fill form fields in PDF documents")
	fmt.Println()
	fmt.Println("This tool extracts the interactive field mapping of a PDF document, keeps")
	fmt.Println("going when individual widgets are malformed, and can create new fields or")
	fmt.Println("fill existing ones, writing the result to a new file.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -format        Output format: text (default), json")
	fmt.Println("  -full-names    Key fields by their dotted fully qualified names")
	fmt.Println("  -create        JSON array of field specs to create (requires -output)")
	fmt.Println("  -fill          JSON object of field values to fill (requires -output)")
	fmt.Println("  -strict        Fail the fill on the first mismatched value type")
	fmt.Println("  -output        Path the modified PDF is written to")
	fmt.Println("  -verbose       Enable verbose output")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  pdf_form_fields document.pdf")
	fmt.Println("  pdf_form_fields -format json forms/w9.pdf")
	fmt.Println(`  pdf_form_fields -create '[{"name":"email","kind":"text","page_number":1,"x":100,"y":700}]' \`)
	fmt.Println("      -output out.pdf blank.pdf")
	fmt.Println(`  pdf_form_fields -fill '{"email":"a@b.c","subscribed":true}' -output filled.pdf form.pdf`)
	fmt.Println()
	fmt.Println("SUPPORTED FIELD KINDS:")
	fmt.Println("  • text (single line and multiline, with optional max length)")
	fmt.Println("  • checkbox and radio groups")
	fmt.Println("  • dropdown and listbox (with option lists)")
	fmt.Println("  • signature and image placeholders")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  pdf_form_fields [OPTIONS] <pdf_file>")
}

// FormFieldsResult represents the complete result of a CLI invocation
type FormFieldsResult struct {
	FilePath    string            `json:"file_path"`
	OutputPath  string            `json:"output_path,omitempty"`
	Success     bool              `json:"success"`
	Pages       int               `json:"pages"`
	FieldCount  int               `json:"field_count"`
	Fields      []*fields.Field   `json:"fields"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty"`
	Error       string            `json:"error,omitempty"`
}

func processFile(pdfPath string) (*FormFieldsResult, error) {
	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	result := &FormFieldsResult{
		FilePath: absPath,
		Success:  false,
	}

	if *verbose {
		fmt.Printf("🔍 Analyzing PDF: %s\n\n", absPath)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	session, err := forms.OpenBytes(data, forms.SessionOptions{
		UseFullNames: *fullNames,
		StrictFill:   *strictFill,
	})
	if err != nil {
		result.Error = err.Error()
		return result, nil // Don't fail, return error in result
	}

	if *createSpecs != "" {
		var specs []fields.WidgetSpec
		if err := json.Unmarshal([]byte(*createSpecs), &specs); err != nil {
			return nil, fmt.Errorf("invalid -create JSON: %w", err)
		}
		if err := session.CreateFields(specs...); err != nil {
			result.Error = err.Error()
			return result, nil
		}
	}

	if *fillValues != "" {
		var values map[string]any
		if err := json.Unmarshal([]byte(*fillValues), &values); err != nil {
			return nil, fmt.Errorf("invalid -fill JSON: %w", err)
		}
		if err := session.Fill(values); err != nil {
			result.Error = err.Error()
			return result, nil
		}
	}

	if *outputPath != "" {
		out, err := session.Bytes()
		if err != nil {
			result.Error = err.Error()
			return result, nil
		}
		if err := os.WriteFile(*outputPath, out, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write output file: %w", err)
		}
		result.OutputPath = *outputPath
	}

	mapping := session.Fields()
	result.Success = true
	result.Pages = session.PageCount()
	result.FieldCount = len(mapping)
	result.Diagnostics = session.Diagnostics()
	for _, name := range mapping.Names() {
		result.Fields = append(result.Fields, mapping[name])
	}

	if *verbose {
		fmt.Printf("✅ Processing completed successfully\n")
		fmt.Printf("📊 Found %d form fields\n\n", result.FieldCount)
	}

	return result, nil
}

func outputResults(result *FormFieldsResult) error {
	switch *outputFormat {
	case "json":
		return outputJSON(result)
	case "text":
		return outputText(result)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputJSON(result *FormFieldsResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *FormFieldsResult) error {
	if !result.Success {
		fmt.Printf("❌ Form field processing failed: %s\n", result.Error)
		return nil
	}

	if result.FieldCount == 0 {
		fmt.Println("⚠️  No form fields detected in the PDF")
		fmt.Println()
		fmt.Println("SUGGESTIONS:")
		fmt.Println("• This PDF may not contain interactive forms")
		fmt.Println("• Forms might use XFA (XML Forms Architecture) - not supported")
		fmt.Println("• The PDF might be scanned/image-based with visual form elements only")
		fmt.Println("• Use -create to add interactive fields to a flat PDF")
		return nil
	}

	fmt.Printf("✅ %d form fields across %d pages\n\n", result.FieldCount, result.Pages)

	for i, field := range result.Fields {
		fmt.Printf("[%d] %s\n", i+1, field.Name)
		fmt.Printf("    Type: %s\n", field.Kind)

		if field.Value != nil {
			fmt.Printf("    Value: %v\n", field.Value)
		}

		if page := field.Page(); page > 0 {
			fmt.Printf("    Page: %d\n", page)
		}

		if rect := field.Rect(); rect.Width > 0 || rect.Height > 0 {
			fmt.Printf("    Position: (%.1f, %.1f) %.1fx%.1f\n", rect.X, rect.Y, rect.Width, rect.Height)
		}

		properties := []string{}
		if field.Required {
			properties = append(properties, "Required")
		}
		if field.ReadOnly {
			properties = append(properties, "ReadOnly")
		}
		if field.Multiline {
			properties = append(properties, "Multiline")
		}
		if len(properties) > 0 {
			fmt.Printf("    Properties: %v\n", properties)
		}

		if field.Tooltip != "" {
			fmt.Printf("    Tooltip: %s\n", field.Tooltip)
		}

		if len(field.Options) > 0 {
			fmt.Printf("    Options: %v\n", field.Options)
		}

		if field.MaxLength != nil {
			fmt.Printf("    Max Length: %d\n", *field.MaxLength)
		}

		fmt.Println()
	}

	if len(result.Diagnostics) > 0 {
		fmt.Println("📋 DIAGNOSTICS")
		fmt.Println("==============")
		for _, d := range result.Diagnostics {
			fmt.Printf("  ⚠️  %s\n", d.String())
		}
		fmt.Println()
	}

	if result.OutputPath != "" {
		fmt.Printf("💾 Wrote %s\n", result.OutputPath)
	}

	return nil
}

func init() {
	// Custom flag usage
	flag.Usage = func() {
		printHelp()
	}
}
