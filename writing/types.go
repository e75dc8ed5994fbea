package writing

import (
	"encoding/json"
	"strings"
	"time"

	"folio/common"
)

// Type definitions for writings as served by the content backend. Body is
// Portable Text: an ordered list of typed blocks, text blocks carry spans
// with marks referencing block level mark definitions.

// Document is a single writing.
type Document struct {
	ID          string
	Slug        string
	Title       string
	PublishedAt time.Time
	Cover       *Asset
	Body        []Block
	// Terms lists glossary entries attached to the writing in backend order.
	Terms []GlossaryTerm
	// Glossary indexes Terms and every term dereferenced in mark definitions.
	// Read only after parsing.
	Glossary GlossaryIndex
}

// Images returns cover and every image asset of the body in document order.
func (d *Document) Images() []Asset {
	var assets []Asset
	if d.Cover != nil {
		assets = append(assets, *d.Cover)
	}
	var walk func([]Block)
	walk = func(blocks []Block) {
		for _, b := range blocks {
			switch v := b.(type) {
			case *Image:
				assets = append(assets, v.Asset)
			case *DialogueGroup:
				walk(v.Content)
			}
		}
	}
	walk(d.Body)
	return assets
}

// Asset references binary content (image, audio) stored by the backend.
type Asset struct {
	Ref string
	URL string
}

// GlossaryTerm is a vocabulary entry referenced from text.
type GlossaryTerm struct {
	Slug       string
	Term       string
	Definition string
}

type GlossaryIndex map[string]GlossaryTerm

// Lookup returns term by slug, unresolvable references are not errors.
func (gi GlossaryIndex) Lookup(slug string) (GlossaryTerm, bool) {
	if gi == nil || slug == "" {
		return GlossaryTerm{}, false
	}
	t, ok := gi[slug]
	return t, ok
}

// Known span decorators.
const (
	DecorStrong        = "strong"
	DecorEmphasis      = "em"
	DecorCode          = "code"
	DecorUnderline     = "underline"
	DecorStrikeThrough = "strike-through"
)

// IsDecorator checks if mark is decorator rather than mark definition key.
func IsDecorator(mark string) bool {
	switch mark {
	case DecorStrong, DecorEmphasis, DecorCode, DecorUnderline, DecorStrikeThrough:
		return true
	}
	return false
}

// MarkType distinguishes annotation kinds.
type MarkType string

const (
	MarkLink     MarkType = "link"
	MarkGlossary MarkType = "glossaryRef"
)

// MarkDef is an annotation definition, spans refer to it by key.
type MarkDef struct {
	Key     string
	Type    MarkType
	Href    string
	TermRef string
}

// Span is a run of text with decorators and annotation keys in Marks.
type Span struct {
	Key   string
	Text  string
	Marks []string
}

// Block is one structural unit of writing body. The set of implementations
// is closed: Heading, Paragraph, Quote, DialogueLine, PageBreak, Image,
// Audio, DialogueGroup and Unknown.
type Block interface {
	// Key is the backend item key, may be empty.
	Key() string
	// Type names the block for logs and fallback rendering.
	Type() string
	isBlock()
}

// TextBlock is the common part of blocks with inline content.
type TextBlock struct {
	BlockKey string
	Style    string
	Spans    []Span
	MarkDefs []MarkDef
}

func (tb *TextBlock) Key() string { return tb.BlockKey }

// Inline gives access to inline content regardless of concrete block type.
func (tb *TextBlock) Inline() *TextBlock { return tb }

// AsPlainText returns concatenated text of all spans.
func (tb *TextBlock) AsPlainText() string {
	var buf strings.Builder
	for _, s := range tb.Spans {
		buf.WriteString(s.Text)
	}
	return buf.String()
}

// InlineBlock is implemented by every block with text content.
type InlineBlock interface {
	Block
	Inline() *TextBlock
}

type Heading struct {
	TextBlock
	Level int
}

type Paragraph struct {
	TextBlock
}

type Quote struct {
	TextBlock
}

type DialogueLine struct {
	TextBlock
}

type PageBreak struct {
	BlockKey string
	Style    common.PageBreakStyle
}

type Image struct {
	BlockKey string
	Asset    Asset
	Alt      string
}

type Audio struct {
	BlockKey string
	Asset    Asset
	Caption  string
}

// DialogueGroup holds nested blocks. Backend schema allows a single level of
// nesting, renderer enforces it.
type DialogueGroup struct {
	BlockKey string
	Content  []Block
}

// Unknown keeps blocks of any type not known at build time.
type Unknown struct {
	BlockKey string
	BlockTyp string
	Raw      json.RawMessage
}

func (*Heading) Type() string      { return "heading" }
func (*Paragraph) Type() string    { return "paragraph" }
func (*Quote) Type() string        { return "quote" }
func (*DialogueLine) Type() string { return "dialogueLine" }

func (b *PageBreak) Key() string      { return b.BlockKey }
func (b *PageBreak) Type() string     { return "pageBreak" }
func (b *Image) Key() string          { return b.BlockKey }
func (b *Image) Type() string         { return "image" }
func (b *Audio) Key() string          { return b.BlockKey }
func (b *Audio) Type() string         { return "audio" }
func (b *DialogueGroup) Key() string  { return b.BlockKey }
func (b *DialogueGroup) Type() string { return "dialogueGroup" }
func (b *Unknown) Key() string        { return b.BlockKey }
func (b *Unknown) Type() string       { return b.BlockTyp }

func (*TextBlock) isBlock()     {}
func (*PageBreak) isBlock()     {}
func (*Image) isBlock()         {}
func (*Audio) isBlock()         {}
func (*DialogueGroup) isBlock() {}
func (*Unknown) isBlock()       {}

// AsPlainText extracts text from block, recursing into dialogue groups and
// pulling any "text" values out of unknown blocks.
func AsPlainText(b Block) string {
	switch v := b.(type) {
	case InlineBlock:
		return v.Inline().AsPlainText()
	case *Image:
		return v.Alt
	case *Audio:
		return v.Caption
	case *DialogueGroup:
		parts := make([]string, 0, len(v.Content))
		for _, c := range v.Content {
			if t := AsPlainText(c); t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, "\n")
	case *Unknown:
		return extractRawText(v.Raw)
	}
	return ""
}

// extractRawText recursively collects all "text" string fields in document order.
func extractRawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	var parts []string
	var walk func(any)
	walk = func(n any) {
		switch t := n.(type) {
		case map[string]any:
			if s, ok := t["text"].(string); ok && s != "" {
				parts = append(parts, s)
			}
			// children/content keep order, other keys are unordered
			for _, k := range []string{"children", "content", "body"} {
				if c, ok := t[k]; ok {
					walk(c)
				}
			}
		case []any:
			for _, c := range t {
				walk(c)
			}
		}
	}
	walk(v)
	return strings.Join(parts, " ")
}
