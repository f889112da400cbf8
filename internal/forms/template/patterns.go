package template

// Ordered candidate paths per widget property. Kept declarative: nonstandard
// producers tend to hang properties off the parent field dictionary instead
// of the widget annotation, and extending a table is cheaper than extending
// code. Earlier candidates win.
var (
	fieldTypePaths = []Path{
		{"FT"},
		{"Parent", "FT"},
		{"Parent", "Parent", "FT"},
	}

	flagPaths = []Path{
		{"Ff"},
		{"Parent", "Ff"},
	}

	tooltipPaths = []Path{
		{"TU"},
		{"Parent", "TU"},
	}

	maxLenPaths = []Path{
		{"MaxLen"},
		{"Parent", "MaxLen"},
	}

	choicePaths = []Path{
		{"Opt"},
		{"Parent", "Opt"},
	}

	valuePaths = []Path{
		{"V"},
		{"Parent", "V"},
	}

	appearancePaths = []Path{
		{"DA"},
		{"Parent", "DA"},
	}

	rectPaths = []Path{
		{"Rect"},
	}
)

// Field flag bits, PDF 32000-1 table 221ff.
const (
	flagReadOnly   = 1 << 0
	flagRequired   = 1 << 1
	flagMultiline  = 1 << 12
	flagRadio      = 1 << 15
	flagPushbutton = 1 << 16
	flagCombo      = 1 << 17
	flagEdit       = 1 << 18
)
