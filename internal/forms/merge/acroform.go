package merge

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// defaultAppearance is the document-level fallback appearance: Helvetica at
// auto size, black text.
const defaultAppearance = "/Helv 0 Tf 0 g"

// ensureAcroForm returns the catalog's interactive-form dictionary, creating
// it when absent. NeedAppearances is forced on so viewers regenerate widget
// appearances after values change.
func ensureAcroForm(ctx *model.Context) (types.Dict, error) {
	root, err := ctx.Catalog()
	if err != nil {
		return nil, err
	}

	if obj, found := root.Find("AcroForm"); found {
		if d, err := ctx.DereferenceDict(obj); err == nil && d != nil {
			if _, found := d.Find("Fields"); !found {
				d["Fields"] = types.Array{}
			}
			d["NeedAppearances"] = types.Boolean(true)
			if _, found := d.Find("DA"); !found {
				d["DA"] = types.StringLiteral(defaultAppearance)
			}
			if _, found := d.Find("DR"); !found {
				d["DR"] = defaultResources()
			}
			return d, nil
		}
		// Dangling AcroForm reference: fall through and rebuild it.
	}

	acro := types.Dict{
		"Fields":          types.Array{},
		"NeedAppearances": types.Boolean(true),
		"DA":              types.StringLiteral(defaultAppearance),
		"DR":              defaultResources(),
	}
	root["AcroForm"] = acro
	return acro, nil
}

func defaultResources() types.Dict {
	return types.Dict{
		"Font": types.Dict{
			"Helv": types.Dict{
				"Type":     types.Name("Font"),
				"Subtype":  types.Name("Type1"),
				"BaseFont": types.Name("Helvetica"),
				"Encoding": types.Name("WinAnsiEncoding"),
			},
		},
	}
}

// appendToFields registers a new field object in the AcroForm Fields array.
func appendToFields(ctx *model.Context, acro types.Dict, ref types.IndirectRef) {
	var arr types.Array
	if obj, found := acro.Find("Fields"); found {
		if a, err := ctx.DereferenceArray(obj); err == nil {
			arr = a
		}
	}
	acro["Fields"] = append(arr, ref)
}
