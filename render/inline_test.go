package render

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap/zaptest"

	"folio/common"
	"folio/writing"
)

func concatUnits(units []Unit) string {
	var buf strings.Builder
	for _, u := range units {
		buf.WriteString(u.Text)
	}
	return buf.String()
}

func concatSpans(spans []writing.Span) string {
	var buf strings.Builder
	for _, s := range spans {
		buf.WriteString(s.Text)
	}
	return buf.String()
}

func TestResolveSpansPreservesText(t *testing.T) {
	tests := []struct {
		name  string
		spans []writing.Span
	}{
		{"plain", []writing.Span{{Text: "Hello world"}}},
		{"accents", []writing.Span{{Text: `Hello [WORLD] and "quoted".`}}},
		{"unclosed", []writing.Span{{Text: `open [bracket and "quote`}}},
		{"nested delimiters", []writing.Span{{Text: `["inside"] "[out]"`}}},
		{"multibyte", []writing.Span{{Text: "Sénja [ĝis] «ŝi» \"日本語\"—ok"}, {Text: "ünd"}}},
		{"empty spans", []writing.Span{{Text: ""}, {Text: "a"}, {Text: ""}}},
		{"adjacent", []writing.Span{{Text: `[A][B]""`}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := ResolveSpans(tt.spans, nil, nil)
			if got, want := concatUnits(units), concatSpans(tt.spans); got != want {
				t.Fatalf("text not preserved: got %q, want %q", got, want)
			}
		})
	}
}

func TestResolveSpansAccents(t *testing.T) {
	units := ResolveSpans([]writing.Span{{Text: `Hello [WORLD] and "quoted".`}}, nil, nil)

	want := []struct {
		text   string
		accent common.Accent
	}{
		{"Hello ", common.AccentNone},
		{"[WORLD]", common.AccentShout},
		{" and ", common.AccentNone},
		{`"quoted"`, common.AccentQuoted},
		{".", common.AccentNone},
	}
	if len(units) != len(want) {
		t.Fatalf("expected %d units, got %d: %+v", len(want), len(units), units)
	}
	for i, w := range want {
		if units[i].Text != w.text || units[i].Accent != w.accent {
			t.Errorf("unit %d = (%q, %s), want (%q, %s)", i, units[i].Text, units[i].Accent, w.text, w.accent)
		}
	}
}

func TestResolveSpansBracketsBeforeQuotes(t *testing.T) {
	units := ResolveSpans([]writing.Span{{Text: `["a"]`}}, nil, nil)
	if len(units) != 1 || units[0].Accent != common.AccentShout {
		t.Fatalf("bracketed run must win over quotes: %+v", units)
	}
}

func TestResolveSpansAnnotations(t *testing.T) {
	glossary := writing.GlossaryIndex{
		"senja": {Slug: "senja", Term: "Senja", Definition: "Sunset."},
	}
	defs := []writing.MarkDef{
		{Key: "g1", Type: writing.MarkGlossary, TermRef: "senja"},
		{Key: "g2", Type: writing.MarkGlossary, TermRef: "missing"},
		{Key: "l1", Type: writing.MarkLink, Href: "https://example.com"},
	}
	spans := []writing.Span{
		{Key: "a", Text: "senja", Marks: []string{"em", "g1", "strong", "l1"}},
		{Key: "b", Text: "nothing", Marks: []string{"g2"}},
		{Key: "c", Text: "link", Marks: []string{"l1", "unknown-key"}},
	}
	units := ResolveSpans(spans, defs, glossary)
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}

	if ann := units[0].Annotation; ann == nil || ann.Kind != AnnotationGlossary || ann.Term.Term != "Senja" {
		t.Fatalf("unit 0: expected glossary annotation, got %+v", ann)
	}
	if got := strings.Join(units[0].Decorations, ","); got != "strong,em" {
		t.Fatalf("unit 0: decorations in nesting order expected, got %q", got)
	}
	if units[1].Annotation != nil {
		t.Fatalf("unit 1: unresolved glossary reference must degrade to text, got %+v", units[1].Annotation)
	}
	if ann := units[2].Annotation; ann == nil || ann.Kind != AnnotationLink || ann.Href != "https://example.com" {
		t.Fatalf("unit 2: expected link annotation, got %+v", ann)
	}
}

type fixedView string

func (v fixedView) Active() string { return string(v) }

func TestAppendUnitsSharesWrapper(t *testing.T) {
	glossary := writing.GlossaryIndex{"senja": {Slug: "senja", Term: "Senja", Definition: "Sunset."}}
	tb := &writing.TextBlock{
		Spans: []writing.Span{
			{Text: "the ", Marks: []string{"g1"}},
			{Text: "[big]", Marks: []string{"g1", "strong"}},
			{Text: " sky", Marks: []string{"g1"}},
			{Text: " and again ", Marks: nil},
			{Text: "senja", Marks: []string{"g3"}},
		},
		MarkDefs: []writing.MarkDef{
			{Key: "g1", Type: writing.MarkGlossary, TermRef: "senja"},
			{Key: "g3", Type: writing.MarkGlossary, TermRef: "senja"},
		},
	}
	r := New(zaptest.NewLogger(t), WithGlossary(glossary), WithTooltip(fixedView("senja")))

	p := etree.NewElement("p")
	r.RenderInline(p, tb)

	terms := p.FindElements("./span[@class='glossary-term']")
	if len(terms) != 2 {
		t.Fatalf("expected 2 glossary wrappers, got %d", len(terms))
	}
	if got := terms[0].SelectAttrValue("aria-expanded", ""); got != "true" {
		t.Fatalf("active term must be expanded, got %q", got)
	}
	if terms[0].FindElement(".//strong[@class='shout']") == nil {
		t.Fatalf("decorated unit must stay inside shared wrapper")
	}
	if len(p.FindElements(".//span[@class='glossary-tooltip']")) != 1 {
		t.Fatalf("tooltip must be rendered once")
	}
	if terms[0].FindElement("./span[@class='glossary-tooltip']") == nil {
		t.Fatalf("tooltip must be attached to the first occurrence")
	}
}

func TestAppendUnitsShoutUppercase(t *testing.T) {
	r := New(zaptest.NewLogger(t))
	p := etree.NewElement("p")
	r.RenderInline(p, &writing.TextBlock{Spans: []writing.Span{{Text: "[straße]"}}})

	strong := p.FindElement("./strong[@class='shout']")
	if strong == nil {
		t.Fatalf("shout element missing")
	}
	if got := strong.Text(); got != "STRASSE" {
		t.Fatalf("shout text = %q, want %q", got, "STRASSE")
	}
}
