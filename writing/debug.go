package writing

import (
	"time"

	"folio/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the parsed writing. It exists solely for
// manual inspection and debug reports.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	return treeWriter{debug.NewTreeWriter()}.document(d).String()
}

func (tw treeWriter) document(d *Document) treeWriter {
	tw.Line(0, "Document id=%q slug=%q", d.ID, d.Slug)
	tw.TextBlock(1, "Title", d.Title)
	if !d.PublishedAt.IsZero() {
		tw.Line(1, "PublishedAt=%s", d.PublishedAt.Format(time.RFC3339))
	}
	if d.Cover != nil {
		tw.Line(1, "Cover ref=%q url=%q", d.Cover.Ref, d.Cover.URL)
	}
	if len(d.Terms) > 0 {
		tw.Line(1, "Terms: %d", len(d.Terms))
		for i, t := range d.Terms {
			tw.Line(2, "Term[%d] slug=%q term=%q", i, t.Slug, t.Term)
		}
	}
	if extra := len(d.Glossary) - len(d.Terms); extra > 0 {
		tw.Line(1, "Glossary: %d (%d from marks)", len(d.Glossary), extra)
	}
	tw.Line(1, "Body: %d", len(d.Body))
	for i, b := range d.Body {
		tw.block(2, i, b)
	}
	return tw
}

func (tw treeWriter) block(depth, idx int, b Block) {
	switch v := b.(type) {
	case *Heading:
		tw.Line(depth, "[%d] heading level=%d key=%q", idx, v.Level, v.BlockKey)
		tw.inline(depth+1, &v.TextBlock)
	case InlineBlock:
		tb := v.Inline()
		tw.Line(depth, "[%d] %s style=%q key=%q", idx, v.Type(), tb.Style, tb.BlockKey)
		tw.inline(depth+1, tb)
	case *PageBreak:
		tw.Line(depth, "[%d] pageBreak style=%q key=%q", idx, v.Style.String(), v.BlockKey)
	case *Image:
		tw.Line(depth, "[%d] image ref=%q url=%q alt=%q", idx, v.Asset.Ref, v.Asset.URL, v.Alt)
	case *Audio:
		tw.Line(depth, "[%d] audio ref=%q url=%q caption=%q", idx, v.Asset.Ref, v.Asset.URL, v.Caption)
	case *DialogueGroup:
		tw.Line(depth, "[%d] dialogueGroup key=%q items=%d", idx, v.BlockKey, len(v.Content))
		for i, c := range v.Content {
			tw.block(depth+1, i, c)
		}
	case *Unknown:
		tw.Line(depth, "[%d] unknown type=%q key=%q bytes=%d", idx, v.BlockTyp, v.BlockKey, len(v.Raw))
	default:
		tw.Line(depth, "[%d] <unexpected %T>", idx, b)
	}
}

func (tw treeWriter) inline(depth int, tb *TextBlock) {
	for i, s := range tb.Spans {
		tw.Line(depth, "Span[%d] marks=%q", i, s.Marks)
		tw.TextBlock(depth+1, "Text", s.Text)
	}
	for i, md := range tb.MarkDefs {
		switch md.Type {
		case MarkLink:
			tw.Line(depth, "MarkDef[%d] key=%q link href=%q", i, md.Key, md.Href)
		case MarkGlossary:
			tw.Line(depth, "MarkDef[%d] key=%q glossary term=%q", i, md.Key, md.TermRef)
		default:
			tw.Line(depth, "MarkDef[%d] key=%q type=%q", i, md.Key, md.Type)
		}
	}
}
