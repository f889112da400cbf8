package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	FormFieldsFileDescription = `Inspect the interactive form fields of a PDF document.

**When to use:** Need to know what a fillable PDF collects before filling it, or want to read the values already entered into a form.

**Why it's useful:** Returns every field with its type, page, position, tooltip, options, and current value, and keeps going when individual widgets are broken so you always get the fields that could be read.

**Examples:**
• Form discovery: "List the fields of application.pdf so I know what data to collect"
• Value readout: "Read the responses already filled into signed-intake.pdf"
• Pre-fill check: "Check which fields of tax-form.pdf are required before filling"

**Common workflows:**
1. Fill Preparation: Inspect fields → Collect matching data → Call form_fill_file
2. Response Processing: Inspect filled form → Extract values → Feed downstream systems
3. Form Audit: Inspect fields → Review diagnostics → Repair or regenerate broken forms

**Best practices:** Check the diagnostics array in the response; a non-empty list means some widgets were skipped or degraded rather than failing the whole call.`

	FormCreateFileDescription = `Add new interactive form fields to an existing PDF document.

**When to use:** Turning a flat PDF into a fillable form, or extending an existing form with additional fields.

**Why it's useful:** Creates text fields, checkboxes, radio groups, dropdowns, listboxes, and signature fields with proper widget annotations and visible frames, all in one call.

**Examples:**
• Form authoring: "Add a name text field and a consent checkbox to page 1 of waiver.pdf"
• Survey building: "Add a radio group with three placements to feedback.pdf"
• Contract preparation: "Add a signature field to the last page of agreement.pdf"

**Common workflows:**
1. Form Authoring: Create fields → Inspect with form_fields_file → Fill with form_fill_file
2. Template Extension: Inspect existing fields → Add the missing ones → Distribute template
3. Signature Routing: Add signature fields → Send for signing → Read back responses

**Best practices:** Supply explicit widths and heights when the defaults do not fit the page layout; radio groups take one rect per option.`

	FormFillFileDescription = `Fill the form fields of a PDF document with provided values.

**When to use:** Have a fillable PDF and the data to put into it, such as generating completed applications, invoices, or certificates.

**Why it's useful:** Writes values into text fields, checkboxes, radio groups, dropdowns, and listboxes, matching each value to the field's type and skipping unknown keys so partial data never aborts the fill.

**Examples:**
• Document generation: "Fill customer data into invoice-template.pdf and save as invoice-001.pdf"
• Batch personalization: "Fill each employee record into certificate.pdf"
• Application assembly: "Fill the collected answers into application.pdf for submission"

**Common workflows:**
1. Template Filling: Inspect fields → Map data to field names → Fill → Save output
2. Round Trip: Fill form → Re-inspect output → Verify values landed
3. Partial Fill: Fill known values → Review diagnostics → Collect missing data → Fill again

**Best practices:** Field names must match exactly; values whose type does not match the field are reported as diagnostics unless strict mode is enabled.`

	FormValidateFileDescription = `Verify a PDF file is readable and report its form surface.

**When to use:** Before filling or inspecting unknown PDFs, especially user uploads or files produced by other systems.

**Why it's useful:** Catches corrupted or non-PDF files early and reports whether the document carries any form fields at all, so workflows can branch before doing real work.

**Examples:**
• Upload verification: "Check the uploaded contract.pdf is a valid PDF before processing"
• Pipeline gating: "Validate every file in /inbox/ and route the fillable ones to the fill step"
• Quality control: "Verify generated-form.pdf opens cleanly before sending to the client"

**Common workflows:**
1. Automated Processing: Validate → Fill or inspect if valid → Handle errors gracefully
2. Intake Triage: Validate → Route fillable forms one way, flat documents another
3. Output Check: Generate form → Validate result → Ship or retry

**Best practices:** Run this first in automated workflows; the response distinguishes unreadable files from readable files without form fields.`

	FormServerInfoDescription = `Get server status, available tools, and configuration.

**When to use:** Starting work with the form server, troubleshooting issues, or checking available functionality.

**Why it's useful:** Provides a complete overview of the server's tools, the configured PDF directory, and file size limits for informed decision-making.

**Examples:**
• System check: "Verify the server is ready before batch filling"
• Troubleshooting: "Check server info to diagnose why files aren't being found"
• Capability discovery: "See all available tools and their descriptions"

**Common workflows:**
1. Session Startup: Check server info → Verify configuration → Plan processing approach
2. Debugging: Review server status → Check directory path → Verify tool availability

**Best practices:** Run at the start of sessions to confirm the configured directory matches where your PDFs live.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"form_fields_file":   FormFieldsFileDescription,
	"form_create_file":   FormCreateFileDescription,
	"form_fill_file":     FormFillFileDescription,
	"form_validate_file": FormValidateFileDescription,
	"form_server_info":   FormServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
