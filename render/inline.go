package render

import (
	"slices"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"folio/common"
	"folio/writing"
)

// AnnotationKind tells how annotated run of text is wrapped.
type AnnotationKind int

const (
	AnnotationLink AnnotationKind = iota + 1
	AnnotationGlossary
)

// Annotation is resolved mark definition shared by one or more units.
type Annotation struct {
	Kind AnnotationKind
	// Key is mark definition key, consecutive units with the same key share
	// a single wrapper when rendered.
	Key  string
	Href string
	Term writing.GlossaryTerm
}

// Unit is the smallest renderable piece of inline content.
type Unit struct {
	// Text is the original span text, delimiters included.
	Text        string
	Decorations []string
	Accent      common.Accent
	Annotation  *Annotation
}

// decoration nesting order, outermost first
var decorationOrder = []string{
	writing.DecorStrong,
	writing.DecorEmphasis,
	writing.DecorCode,
	writing.DecorUnderline,
	writing.DecorStrikeThrough,
}

var decorationTags = map[string]string{
	writing.DecorStrong:        "strong",
	writing.DecorEmphasis:      "em",
	writing.DecorCode:          "code",
	writing.DecorUnderline:     "u",
	writing.DecorStrikeThrough: "del",
}

// ResolveSpans turns spans into flat ordered sequence of units. Concatenated
// Text of the result is always equal to concatenated text of spans.
func ResolveSpans(spans []writing.Span, defs []writing.MarkDef, glossary writing.GlossaryIndex) []Unit {
	return resolveSpans(spans, defs, glossary, zap.NewNop())
}

func resolveSpans(spans []writing.Span, defs []writing.MarkDef, glossary writing.GlossaryIndex, log *zap.Logger) []Unit {
	byKey := make(map[string]*writing.MarkDef, len(defs))
	for i := range defs {
		byKey[defs[i].Key] = &defs[i]
	}

	units := make([]Unit, 0, len(spans))
	for _, span := range spans {
		if span.Text == "" {
			continue
		}
		decorations, annotation := classifyMarks(span, byKey, glossary, log)
		for _, piece := range splitAccents(span.Text) {
			units = append(units, Unit{
				Text:        piece.text,
				Decorations: decorations,
				Accent:      piece.accent,
				Annotation:  annotation,
			})
		}
	}
	return units
}

// classifyMarks separates decorators from annotation keys. Only the first
// resolvable annotation is used.
func classifyMarks(span writing.Span, defs map[string]*writing.MarkDef, glossary writing.GlossaryIndex, log *zap.Logger) ([]string, *Annotation) {
	var (
		decorations []string
		annotation  *Annotation
	)
	for _, mark := range span.Marks {
		if writing.IsDecorator(mark) {
			if !slices.Contains(decorations, mark) {
				decorations = append(decorations, mark)
			}
			continue
		}
		def, ok := defs[mark]
		if !ok {
			log.Debug("Mark without definition, ignoring", zap.String("span", span.Key), zap.String("mark", mark))
			continue
		}
		if annotation != nil {
			log.Debug("Span has more than one annotation, ignoring extra", zap.String("span", span.Key), zap.String("mark", mark))
			continue
		}
		switch def.Type {
		case writing.MarkLink:
			if def.Href == "" {
				log.Debug("Link without target, ignoring", zap.String("span", span.Key), zap.String("mark", mark))
				continue
			}
			annotation = &Annotation{Kind: AnnotationLink, Key: def.Key, Href: def.Href}
		case writing.MarkGlossary:
			term, ok := glossary.Lookup(def.TermRef)
			if !ok {
				log.Debug("Unresolved glossary reference, rendering as text", zap.String("span", span.Key), zap.String("term", def.TermRef))
				continue
			}
			annotation = &Annotation{Kind: AnnotationGlossary, Key: def.Key, Term: term}
		default:
			log.Debug("Unsupported annotation type, ignoring", zap.String("span", span.Key), zap.String("type", string(def.Type)))
		}
	}
	slices.SortStableFunc(decorations, func(a, b string) int {
		return slices.Index(decorationOrder, a) - slices.Index(decorationOrder, b)
	})
	return decorations, annotation
}

type accentPiece struct {
	text   string
	accent common.Accent
}

// splitAccents partitions text by bracketed runs first, then by double quoted
// runs in the remaining plain text. Unclosed delimiters stay plain.
func splitAccents(text string) []accentPiece {
	var pieces []accentPiece
	for _, p := range splitDelimited(text, '[', ']', common.AccentShout) {
		if p.accent != common.AccentNone {
			pieces = append(pieces, p)
			continue
		}
		pieces = append(pieces, splitDelimited(p.text, '"', '"', common.AccentQuoted)...)
	}
	return pieces
}

func splitDelimited(text string, open, closing byte, accent common.Accent) []accentPiece {
	var pieces []accentPiece
	for len(text) > 0 {
		start := strings.IndexByte(text, open)
		if start < 0 {
			break
		}
		end := strings.IndexByte(text[start+1:], closing)
		if end < 0 {
			break
		}
		end += start + 2
		if start > 0 {
			pieces = append(pieces, accentPiece{text: text[:start]})
		}
		pieces = append(pieces, accentPiece{text: text[start:end], accent: accent})
		text = text[end:]
	}
	if len(text) > 0 {
		pieces = append(pieces, accentPiece{text: text})
	}
	return pieces
}

// appendUnits writes units into parent, grouping runs with the same
// annotation under one wrapper.
func (r *Renderer) appendUnits(parent *etree.Element, units []Unit) {
	for i := 0; i < len(units); {
		ann := units[i].Annotation
		if ann == nil {
			r.appendUnit(parent, &units[i])
			i++
			continue
		}
		j := i + 1
		for j < len(units) && units[j].Annotation != nil && units[j].Annotation.Key == ann.Key {
			j++
		}
		wrapper := r.annotationWrapper(parent, ann)
		for k := i; k < j; k++ {
			r.appendUnit(wrapper, &units[k])
		}
		if ann.Kind == AnnotationGlossary {
			r.appendTooltip(wrapper, ann)
		}
		i = j
	}
}

func (r *Renderer) annotationWrapper(parent *etree.Element, ann *Annotation) *etree.Element {
	switch ann.Kind {
	case AnnotationLink:
		a := parent.CreateElement("a")
		a.CreateAttr("href", ann.Href)
		a.CreateAttr("class", "external-link")
		a.CreateAttr("target", "_blank")
		a.CreateAttr("rel", "noopener noreferrer")
		return a
	default:
		span := parent.CreateElement("span")
		span.CreateAttr("class", "glossary-term")
		span.CreateAttr("data-term", ann.Term.Slug)
		span.CreateAttr("role", "button")
		span.CreateAttr("tabindex", "0")
		if r.isActive(ann.Term.Slug) {
			span.CreateAttr("aria-expanded", "true")
		} else {
			span.CreateAttr("aria-expanded", "false")
		}
		return span
	}
}

// appendTooltip adds definition popup to the first occurrence of the active
// term in rendered output.
func (r *Renderer) appendTooltip(wrapper *etree.Element, ann *Annotation) {
	if r.tooltipShown || !r.isActive(ann.Term.Slug) {
		return
	}
	r.tooltipShown = true

	tip := wrapper.CreateElement("span")
	tip.CreateAttr("class", "glossary-tooltip")
	tip.CreateAttr("role", "tooltip")
	term := tip.CreateElement("strong")
	term.SetText(ann.Term.Term)
	if ann.Term.Definition != "" {
		tip.CreateText(" ")
		tip.CreateText(ann.Term.Definition)
	}
}

func (r *Renderer) isActive(slug string) bool {
	return r.tooltip != nil && slug != "" && r.tooltip.Active() == slug
}

func (r *Renderer) appendUnit(parent *etree.Element, u *Unit) {
	target := parent
	for _, d := range u.Decorations {
		target = target.CreateElement(decorationTags[d])
	}
	switch u.Accent {
	case common.AccentShout:
		strong := target.CreateElement("strong")
		strong.CreateAttr("class", "shout")
		strong.SetText(r.upper.String(strings.TrimSuffix(strings.TrimPrefix(u.Text, "["), "]")))
	case common.AccentQuoted:
		span := target.CreateElement("span")
		span.CreateAttr("class", "quoted")
		span.SetText(u.Text)
	default:
		target.CreateText(u.Text)
	}
}
