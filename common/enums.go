// Enumerations shared between packages. String conversions are generated by
// go-enum, see enums_enum.go.
package common

//go:generate go tool go-enum --marshal --names --values

// Requested output type.
// ENUM(html, xhtml, tree)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtHtml:
		return ".html"
	case OutputFmtXhtml:
		return ".xhtml"
	case OutputFmtTree:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Separator rendering selected by page break block.
// ENUM(default, doubleRule)
type PageBreakStyle string

// Presentation state of the writing modal.
// ENUM(loading, success, error)
type ModalPhase int

// State of glossary tooltip controller.
// ENUM(idle, pending, active)
type TooltipState int

// Text accent detected inside span text.
// ENUM(none, shout, quoted)
type Accent int
