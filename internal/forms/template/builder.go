// Package template implements the read path: it walks every page of a
// document, resolves each widget annotation to a canonical key and constructs
// the typed field model, isolating per-field failures so one malformed
// annotation never spoils the rest of the document.
package template

import (
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/formfold/mcp-pdf-forms/internal/forms/diag"
	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
)

// Options configures the builder.
type Options struct {
	// UseFullNames keys fields by their fully qualified (dot-joined) names
	// instead of their local names.
	UseFullNames bool
}

// Build produces the name-keyed field mapping for a document. Every fault
// tied to a single annotation is recorded as a diagnostic and the annotation
// is skipped; Build itself never fails on document-data imperfections.
func Build(ctx *model.Context, opts Options) (fields.Mapping, []diag.Diagnostic) {
	mapping := fields.Mapping{}
	var diags []diag.Diagnostic

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageDict, _, _, err := ctx.PageDict(pageNr, false)
		if err != nil || pageDict == nil {
			if err != nil {
				diags = append(diags, diag.Warnf("", diag.KindFieldConstruction,
					"failed to load page %d: %v", pageNr, err))
			}
			continue
		}

		annotsObj, found := pageDict.Find("Annots")
		if !found {
			continue
		}
		annots, err := ctx.DereferenceArray(annotsObj)
		if err != nil {
			diags = append(diags, diag.Warnf("", diag.KindFieldConstruction,
				"failed to resolve annotations of page %d: %v", pageNr, err))
			continue
		}

		for _, annotRef := range annots {
			annot, err := ctx.DereferenceDict(annotRef)
			if err != nil || annot == nil {
				if err != nil {
					diags = append(diags, diag.Warnf("", diag.KindFieldConstruction,
						"failed to process widget on page %d: %v", pageNr, err))
				}
				continue
			}
			if subtype := extractName(ctx, annot, []Path{{"Subtype"}}, ""); subtype != "Widget" {
				continue
			}

			key, err := ResolveKey(ctx, annot, opts.UseFullNames, pageNr)
			if err != nil {
				diags = append(diags, diag.Warnf("", diag.KindKeyResolution,
					"failed to process widget on page %d: %v", pageNr, err))
				continue
			}

			field, fieldDiags := buildField(ctx, annot, key, pageNr)
			diags = append(diags, fieldDiags...)
			if field == nil {
				continue
			}
			mapping.Insert(field)
		}
	}

	return mapping, diags
}

// buildField constructs one field variant from a widget annotation. A nil
// field with no diagnostics means the annotation is deliberately ignored
// (pushbuttons carry no form data).
func buildField(ctx *model.Context, annot types.Dict, key string, pageNr int) (*fields.Field, []diag.Diagnostic) {
	var diags []diag.Diagnostic

	flags, _ := extractInt(ctx, annot, flagPaths)

	var kind fields.Kind
	switch ft := extractName(ctx, annot, fieldTypePaths, ""); ft {
	case "Tx":
		kind = fields.KindText
	case "Sig":
		kind = fields.KindSignature
	case "Ch":
		if flags&flagCombo != 0 {
			kind = fields.KindDropdown
		} else {
			kind = fields.KindListbox
		}
	case "Btn":
		if flags&flagPushbutton != 0 {
			return nil, nil
		}
		if flags&flagRadio != 0 {
			kind = fields.KindRadio
		} else {
			kind = fields.KindCheckbox
		}
	default:
		return nil, []diag.Diagnostic{diag.Warnf(key, diag.KindFieldConstruction,
			"missing or unsupported field type on page %d", pageNr)}
	}

	rect, ok := extractRect(ctx, annot, rectPaths)
	if !ok {
		return nil, []diag.Diagnostic{diag.Warnf(key, diag.KindFieldConstruction,
			"missing or malformed rectangle on page %d", pageNr)}
	}

	// The field's terminal dictionary is the widget itself, or the group
	// parent when the widget carries no name of its own (radio kids). The
	// fill pass writes V there; viewers read the value from the parent.
	terminal := annot
	if _, hasName := annot.Find("T"); !hasName {
		if raw, found := annot.Find("Parent"); found {
			if parent, err := ctx.DereferenceDict(raw); err == nil && parent != nil {
				terminal = parent
			}
		}
	}

	field := &fields.Field{
		Name:     key,
		Kind:     kind,
		Tooltip:  extractText(ctx, annot, tooltipPaths, ""),
		Required: flags&flagRequired != 0,
		ReadOnly: flags&flagReadOnly != 0,
		Obj:      terminal,
	}
	placement := fields.Placement{Page: pageNr, Rect: rect, Obj: annot}

	switch kind {
	case fields.KindText:
		// A dangling MaxLen or Ff reference degrades to "no limit" and
		// "single line"; the field itself is always constructed.
		if maxLen, ok := extractInt(ctx, annot, maxLenPaths); ok && maxLen >= 0 {
			field.MaxLength = &maxLen
		}
		field.Multiline = flags&flagMultiline != 0
		field.FontSize = parseFontSize(extractText(ctx, annot, appearancePaths, ""))
		if field.FontSize == 0 {
			field.FontSize = fields.DefaultFontSize
		}
		if v := extractText(ctx, annot, valuePaths, ""); v != "" {
			field.Value = v
		}

	case fields.KindCheckbox:
		field.Size = rect.Width
		if rect.Height < field.Size {
			field.Size = rect.Height
		}
		placement.Export = onStateName(ctx, annot)
		if v := extractName(ctx, annot, valuePaths, "Off"); v != "Off" {
			field.Value = true
		}

	case fields.KindRadio:
		placement.Export = onStateName(ctx, annot)
		if v := extractName(ctx, annot, valuePaths, "Off"); v != "Off" {
			field.Value = v
		}

	case fields.KindDropdown, fields.KindListbox:
		options, found := extractOptions(ctx, annot, choicePaths)
		if !found {
			// Unlike the generic skip policy, a choice field without an
			// option list is still usable: keep it with no options.
			diags = append(diags, diag.Warnf(key, diag.KindMissingChoices,
				"field %q has no choices defined", key))
		}
		field.Options = options
		field.Editable = flags&flagEdit != 0
		if v := extractText(ctx, annot, valuePaths, ""); v != "" {
			field.Value = v
		}

	case fields.KindSignature, fields.KindImage:
		// No extra data.
	}

	field.Placements = []fields.Placement{placement}
	return field, diags
}

// onStateName returns the non-Off appearance state of a toggle widget, the
// name a checkbox or radio sibling must be set to when selected. Defaults to
// "Yes" when the appearance dictionary is absent or unreadable.
func onStateName(ctx *model.Context, annot types.Dict) string {
	obj, ok := lookup(ctx, annot, Path{"AP", "N"})
	if !ok {
		return "Yes"
	}
	states, ok := obj.(types.Dict)
	if !ok {
		return "Yes"
	}
	names := make([]string, 0, len(states))
	for name := range states {
		if name != "Off" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "Yes"
	}
	sort.Strings(names)
	return names[0]
}
