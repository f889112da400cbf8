// Package fill applies a name-to-value mapping onto an existing field model
// and the underlying document objects. Unknown names and nil values are never
// errors; only a value whose shape does not match the field variant is, and
// even that can be demoted to a diagnostic.
package fill

import (
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/formfold/mcp-pdf-forms/internal/forms/diag"
	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
)

// Options configures the fill pass.
type Options struct {
	// Strict makes a value/variant shape mismatch abort the fill with a
	// ValueTypeError. The default routes it through the same
	// skip-and-diagnose policy as the read path.
	Strict bool
}

// Apply writes values into the mapping and its document objects. Names not
// present in the mapping are silently skipped; a nil value clears the field.
func Apply(mapping fields.Mapping, values map[string]any, opts Options) ([]diag.Diagnostic, error) {
	var diags []diag.Diagnostic

	for name, value := range values {
		field, ok := mapping[name]
		if !ok {
			continue
		}
		if value == nil {
			clearValue(field)
			continue
		}
		if err := setValue(field, value); err != nil {
			if opts.Strict {
				return diags, err
			}
			diags = append(diags, diag.Warnf(name, diag.KindValueType, "%v", err))
		}
	}
	return diags, nil
}

// setValue coerces one value by field variant and writes it through to the
// annotation dictionaries.
func setValue(field *fields.Field, value any) error {
	switch field.Kind {
	case fields.KindText:
		s, ok := value.(string)
		if !ok {
			return &diag.ValueTypeError{Field: field.Name, Want: "string", Got: value}
		}
		field.Value = s
		if d := field.Obj; d != nil {
			d["V"] = types.StringLiteral(s)
			delete(d, "AP")
		}

	case fields.KindCheckbox:
		b, ok := value.(bool)
		if !ok {
			return &diag.ValueTypeError{Field: field.Name, Want: "bool", Got: value}
		}
		if !b {
			clearValue(field)
			return nil
		}
		field.Value = true
		on := "Yes"
		if len(field.Placements) > 0 && field.Placements[0].Export != "" {
			on = field.Placements[0].Export
		}
		setToggleState(field, on)

	case fields.KindRadio:
		s, ok := value.(string)
		if !ok {
			return &diag.ValueTypeError{Field: field.Name, Want: "string", Got: value}
		}
		export, ok := radioExport(field, s)
		if !ok {
			return &diag.ValueTypeError{Field: field.Name, Want: "one of the group's options", Got: value}
		}
		field.Value = s
		setToggleState(field, export)

	case fields.KindDropdown, fields.KindListbox:
		s, ok := value.(string)
		if !ok {
			return &diag.ValueTypeError{Field: field.Name, Want: "string", Got: value}
		}
		if !field.Editable && len(field.Options) > 0 && !contains(field.Options, s) {
			return &diag.ValueTypeError{Field: field.Name, Want: "one of the defined choices", Got: value}
		}
		field.Value = s
		if d := field.Obj; d != nil {
			d["V"] = types.StringLiteral(s)
			delete(d, "AP")
		}

	case fields.KindSignature, fields.KindImage:
		b, ok := value.([]byte)
		if !ok {
			return &diag.ValueTypeError{Field: field.Name, Want: "[]byte", Got: value}
		}
		// Kept in the model only; painting signature and image payloads is
		// a rendering concern outside the fill pass.
		field.Value = b
	}
	return nil
}

// clearValue resets a field's value without error, whatever its variant.
func clearValue(field *fields.Field) {
	field.Value = nil
	switch field.Kind {
	case fields.KindCheckbox, fields.KindRadio:
		setToggleState(field, "Off")
		field.Value = nil
	default:
		if d := field.Obj; d != nil {
			delete(d, "V")
		}
	}
}

// setToggleState selects one appearance state across a toggle field: V on
// the logical field, AS per placement.
func setToggleState(field *fields.Field, state string) {
	if d := field.Obj; d != nil {
		d["V"] = types.Name(state)
	}
	for _, p := range field.Placements {
		if p.Obj == nil {
			continue
		}
		if p.Export == state && state != "Off" {
			p.Obj["AS"] = types.Name(state)
		} else {
			p.Obj["AS"] = types.Name("Off")
		}
	}
}

// radioExport maps a requested option onto a placement export name. A value
// that is itself an export name wins; a decimal index into the placements is
// accepted as a positional fallback, matching how created groups are named.
func radioExport(field *fields.Field, value string) (string, bool) {
	for _, p := range field.Placements {
		if p.Export != "" && p.Export == value {
			return p.Export, true
		}
	}
	if i, err := strconv.Atoi(value); err == nil && i >= 0 && i < len(field.Placements) {
		if export := field.Placements[i].Export; export != "" {
			return export, true
		}
	}
	return "", false
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}
