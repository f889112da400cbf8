// Package merge composites rendered overlays into page content streams and
// registers the matching interactive field objects, batching the document
// mutation so creating N fields costs one pass over the document instead of
// N rewrites.
package merge

import (
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/formfold/mcp-pdf-forms/internal/forms/diag"
	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
	"github.com/formfold/mcp-pdf-forms/internal/forms/overlay"
)

// annotFlagPrint marks an annotation as printable (annotation flag bit 3).
const annotFlagPrint = 1 << 2

// PageGroup couples one page with the specs whose widgets land on it.
type PageGroup struct {
	Page  int
	Specs []fields.WidgetSpec
}

// Single merges one page's overlay fragment and field specs. It is the batch
// case of size one.
func Single(ctx *model.Context, content []byte, specs []fields.WidgetSpec, pageNr int) ([]*fields.Field, error) {
	overlays := make(overlay.Buffer, ctx.PageCount)
	if pageNr >= 1 && pageNr <= ctx.PageCount {
		overlays[pageNr-1] = content
	}
	return Batch(ctx, overlays, []PageGroup{{Page: pageNr, Specs: specs}})
}

// Batch composites the overlay buffer onto the document and appends the
// widget annotations of every group, touching each page once. The result is
// equivalent to repeated Single calls in group order. Empty input is a no-op
// on a structurally unchanged document.
func Batch(ctx *model.Context, overlays overlay.Buffer, groups []PageGroup) ([]*fields.Field, error) {
	if len(groups) == 0 {
		return nil, nil
	}
	for _, g := range groups {
		if g.Page < 1 || g.Page > ctx.PageCount {
			return nil, &diag.PageRangeError{Page: g.Page, PageCount: ctx.PageCount}
		}
	}

	acro, err := ensureAcroForm(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare AcroForm: %w", err)
	}

	var created []*fields.Field
	for _, g := range groups {
		pageDict, _, _, err := ctx.PageDict(g.Page, false)
		if err != nil {
			return nil, fmt.Errorf("failed to load page %d: %w", g.Page, err)
		}

		if len(overlays) >= g.Page {
			if content := overlays[g.Page-1]; len(content) > 0 {
				if err := appendPageContent(ctx, pageDict, content); err != nil {
					return nil, fmt.Errorf("failed to merge overlay into page %d: %w", g.Page, err)
				}
			}
		}

		for i := range g.Specs {
			field, err := appendWidget(ctx, acro, pageDict, &g.Specs[i], g.Page)
			if err != nil {
				return nil, fmt.Errorf("failed to create field %q: %w", g.Specs[i].Name, err)
			}
			created = append(created, field)
		}
	}
	return created, nil
}

// appendPageContent splices an overlay fragment behind the page's existing
// content. The fragment is isolated in its own q..Q pair; the original
// content stays untouched beneath it.
func appendPageContent(ctx *model.Context, pageDict types.Dict, content []byte) error {
	wrapped := make([]byte, 0, len(content)+4)
	wrapped = append(wrapped, 'q', '\n')
	wrapped = append(wrapped, content...)
	wrapped = append(wrapped, 'Q', '\n')

	sd, err := ctx.NewStreamDictForBuf(wrapped)
	if err != nil {
		return err
	}
	if err := sd.Encode(); err != nil {
		return err
	}
	ref, err := ctx.IndRefForNewObject(*sd)
	if err != nil {
		return err
	}

	switch obj := pageDict["Contents"].(type) {
	case nil:
		pageDict["Contents"] = *ref
	case types.IndirectRef:
		pageDict["Contents"] = types.Array{obj, *ref}
	case types.Array:
		pageDict["Contents"] = append(obj, *ref)
	default:
		return fmt.Errorf("unsupported page Contents entry %T", obj)
	}
	return nil
}

// appendWidget builds and registers the interactive objects for one spec and
// returns the resulting Field, placements wired to the new dictionaries.
func appendWidget(ctx *model.Context, acro, pageDict types.Dict, spec *fields.WidgetSpec, pageNr int) (*fields.Field, error) {
	if spec.Kind == fields.KindRadio && len(spec.Placements) > 0 {
		return appendRadioGroup(ctx, acro, pageDict, spec, pageNr)
	}

	rect := spec.Rects()[0]
	d := widgetDict(spec, rect)

	var export string
	if spec.Kind == fields.KindCheckbox || spec.Kind == fields.KindRadio {
		export = "Yes"
		ap, err := appearanceStates(ctx, rect, export)
		if err != nil {
			return nil, err
		}
		d["AP"] = ap
		d["V"] = types.Name("Off")
		d["AS"] = types.Name("Off")
	}

	ref, err := ctx.IndRefForNewObject(d)
	if err != nil {
		return nil, err
	}
	appendAnnot(pageDict, *ref)
	appendToFields(ctx, acro, *ref)

	field := specToField(spec)
	field.Obj = d
	field.Placements = []fields.Placement{{Page: pageNr, Rect: rect, Export: export, Obj: d}}
	return field, nil
}

// appendRadioGroup creates a parent field owning one kid widget per
// placement. Export names are positional; each kid's appearance dictionary
// carries its export state so later extraction can recover it.
func appendRadioGroup(ctx *model.Context, acro, pageDict types.Dict, spec *fields.WidgetSpec, pageNr int) (*fields.Field, error) {
	parent := types.Dict{
		"FT":   types.Name("Btn"),
		"T":    types.StringLiteral(spec.Name),
		"Ff":   types.Integer(fieldFlags(spec)),
		"V":    types.Name("Off"),
		"Kids": types.Array{},
	}
	if spec.Tooltip != "" {
		parent["TU"] = types.StringLiteral(spec.Tooltip)
	}
	parentRef, err := ctx.IndRefForNewObject(parent)
	if err != nil {
		return nil, err
	}

	field := specToField(spec)
	field.Obj = parent

	kids := types.Array{}
	for i, rect := range spec.Rects() {
		export := strconv.Itoa(i)
		kid := types.Dict{
			"Type":    types.Name("Annot"),
			"Subtype": types.Name("Widget"),
			"Rect":    rectArray(rect),
			"F":       types.Integer(annotFlagPrint),
			"Parent":  *parentRef,
			"AS":      types.Name("Off"),
		}
		decorate(kid, spec)
		ap, err := appearanceStates(ctx, rect, export)
		if err != nil {
			return nil, err
		}
		kid["AP"] = ap

		kidRef, err := ctx.IndRefForNewObject(kid)
		if err != nil {
			return nil, err
		}
		kids = append(kids, *kidRef)
		appendAnnot(pageDict, *kidRef)
		field.Placements = append(field.Placements, fields.Placement{
			Page: pageNr, Rect: rect, Export: export, Obj: kid,
		})
	}
	parent["Kids"] = kids
	appendToFields(ctx, acro, *parentRef)
	return field, nil
}

// widgetDict assembles the merged field/widget dictionary for a non-radio
// spec.
func widgetDict(spec *fields.WidgetSpec, rect fields.Rect) types.Dict {
	d := types.Dict{
		"Type":    types.Name("Annot"),
		"Subtype": types.Name("Widget"),
		"Rect":    rectArray(rect),
		"F":       types.Integer(annotFlagPrint),
		"T":       types.StringLiteral(spec.Name),
		"Ff":      types.Integer(fieldFlags(spec)),
	}
	if spec.Tooltip != "" {
		d["TU"] = types.StringLiteral(spec.Tooltip)
	}

	switch spec.Kind {
	case fields.KindText:
		d["FT"] = types.Name("Tx")
		d["DA"] = types.StringLiteral(fmt.Sprintf("/Helv %g Tf 0 g", fontSize(spec)))
		if spec.MaxLength != nil {
			d["MaxLen"] = types.Integer(*spec.MaxLength)
		}
	case fields.KindCheckbox, fields.KindRadio:
		d["FT"] = types.Name("Btn")
	case fields.KindDropdown, fields.KindListbox:
		d["FT"] = types.Name("Ch")
		d["DA"] = types.StringLiteral(fmt.Sprintf("/Helv %g Tf 0 g", fontSize(spec)))
		opts := make(types.Array, 0, len(spec.Options))
		for _, o := range spec.Options {
			opts = append(opts, types.StringLiteral(o))
		}
		d["Opt"] = opts
	case fields.KindSignature, fields.KindImage:
		d["FT"] = types.Name("Sig")
	}

	decorate(d, spec)
	return d
}

// decorate applies the presentation hints shared by widgets and radio kids.
func decorate(d types.Dict, spec *fields.WidgetSpec) {
	mk := types.Dict{}
	if c := spec.BackgroundColor; c != nil {
		mk["BG"] = colorArray(*c)
	}
	if c := spec.BorderColor; c != nil {
		mk["BC"] = colorArray(*c)
	}
	if len(mk) > 0 {
		d["MK"] = mk
	}
	if spec.BorderWidth > 0 {
		d["BS"] = types.Dict{"W": types.Float(spec.BorderWidth)}
	}
}

// appearanceStates builds the N appearance dictionary of a toggle widget
// with an on state and an Off state, so the export name survives round trips
// even before a viewer regenerates appearances.
func appearanceStates(ctx *model.Context, rect fields.Rect, export string) (types.Dict, error) {
	inset := rect.Width * 0.25
	on := fmt.Sprintf("q\n0 0 0 rg\n%.2f %.2f %.2f %.2f re\nf\nQ\n",
		inset, inset, rect.Width-2*inset, rect.Height-2*inset)

	onRef, err := appearanceStream(ctx, rect, []byte(on))
	if err != nil {
		return nil, err
	}
	offRef, err := appearanceStream(ctx, rect, nil)
	if err != nil {
		return nil, err
	}
	return types.Dict{
		"N": types.Dict{
			export: *onRef,
			"Off":  *offRef,
		},
	}, nil
}

// appearanceStream creates a form XObject the size of the widget rect.
func appearanceStream(ctx *model.Context, rect fields.Rect, content []byte) (*types.IndirectRef, error) {
	sd, err := ctx.NewStreamDictForBuf(content)
	if err != nil {
		return nil, err
	}
	sd.Dict["Type"] = types.Name("XObject")
	sd.Dict["Subtype"] = types.Name("Form")
	sd.Dict["BBox"] = types.NewNumberArray(0, 0, rect.Width, rect.Height)
	sd.Dict["Resources"] = types.Dict{}
	if err := sd.Encode(); err != nil {
		return nil, err
	}
	return ctx.IndRefForNewObject(*sd)
}

func appendAnnot(pageDict types.Dict, ref types.IndirectRef) {
	if annots, ok := pageDict["Annots"].(types.Array); ok {
		pageDict["Annots"] = append(annots, ref)
		return
	}
	pageDict["Annots"] = types.Array{ref}
}

// specToField derives the persisted field model from a spec, dropping the
// overlay-only presentation hints.
func specToField(spec *fields.WidgetSpec) *fields.Field {
	f := &fields.Field{
		Name:     spec.Name,
		Kind:     spec.Kind,
		Tooltip:  spec.Tooltip,
		Required: spec.Required,
		ReadOnly: spec.ReadOnly,
	}
	switch spec.Kind {
	case fields.KindText:
		f.MaxLength = spec.MaxLength
		f.Multiline = spec.Multiline
		f.FontSize = fontSize(spec)
	case fields.KindCheckbox:
		rect := spec.Rects()[0]
		f.Size = rect.Width
		if rect.Height < f.Size {
			f.Size = rect.Height
		}
	case fields.KindDropdown, fields.KindListbox:
		f.Options = append([]string(nil), spec.Options...)
		f.Editable = spec.Editable
	}
	return f
}

func fontSize(spec *fields.WidgetSpec) float64 {
	if spec.FontSize > 0 {
		return spec.FontSize
	}
	return fields.DefaultFontSize
}

func fieldFlags(spec *fields.WidgetSpec) int {
	flags := 0
	if spec.ReadOnly {
		flags |= 1 << 0
	}
	if spec.Required {
		flags |= 1 << 1
	}
	switch spec.Kind {
	case fields.KindText:
		if spec.Multiline {
			flags |= 1 << 12
		}
	case fields.KindRadio:
		flags |= 1 << 15
	case fields.KindDropdown:
		flags |= 1 << 17
		// The Edit flag is defined only in combination with Combo, so
		// listboxes never carry it.
		if spec.Editable {
			flags |= 1 << 18
		}
	}
	return flags
}

func rectArray(r fields.Rect) types.Array {
	return types.NewNumberArray(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func colorArray(c fields.Color) types.Array {
	return types.NewNumberArray(c.R, c.G, c.B)
}
