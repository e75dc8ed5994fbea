package writing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"folio/common"
)

// Wire shapes of the backend projection. Only fields used by renderer are
// decoded, everything else is ignored.

type rawDocument struct {
	ID          string            `json:"_id"`
	Title       string            `json:"title"`
	Slug        slugField         `json:"slug"`
	PublishedAt string            `json:"publishedAt"`
	Body        []json.RawMessage `json:"body"`
	MainImage   *rawMedia         `json:"mainImage"`
	Glossary    []*rawTerm        `json:"glossary"`
}

type rawAsset struct {
	ID  string `json:"_id"`
	Ref string `json:"_ref"`
	URL string `json:"url"`
}

type rawMedia struct {
	Asset   *rawAsset `json:"asset"`
	Alt     string    `json:"alt"`
	Caption string    `json:"caption"`
}

type rawTerm struct {
	Ref        string    `json:"_ref"`
	Slug       slugField `json:"slug"`
	Term       string    `json:"term"`
	Definition plainText `json:"definition"`
}

type rawHead struct {
	Type string `json:"_type"`
	Key  string `json:"_key"`
}

type rawSpan struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

type rawMarkDef struct {
	Key     string    `json:"_key"`
	Type    string    `json:"_type"`
	Href    string    `json:"href"`
	Term    *rawTerm  `json:"term"`
	TermRef slugField `json:"termRef"`
}

type rawTextBlock struct {
	Style    string       `json:"style"`
	Children []rawSpan    `json:"children"`
	MarkDefs []rawMarkDef `json:"markDefs"`
}

type rawPageBreak struct {
	Style string `json:"style"`
}

type rawGroup struct {
	Content []json.RawMessage `json:"content"`
}

// slugField accepts both projected ("slug": "x") and raw ("slug": {"current": "x"}) forms.
type slugField string

func (s *slugField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = slugField(v)
		return nil
	}
	var v struct {
		Current string `json:"current"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = slugField(v.Current)
	return nil
}

// plainText accepts plain string or Portable Text blocks, the latter flattened
// to text with blocks separated by new lines.
type plainText string

func (p *plainText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*p = plainText(v)
		return nil
	}
	var blocks []rawTextBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return err
	}
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		var buf strings.Builder
		for _, c := range b.Children {
			buf.WriteString(c.Text)
		}
		lines = append(lines, buf.String())
	}
	*p = plainText(strings.Join(lines, "\n"))
	return nil
}

// Parse decodes writing as returned by backend query (the "result" object).
// Malformed JSON is an error, unexpected content is not.
func Parse(data []byte, log *zap.Logger) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unable to decode writing: %w", err)
	}

	doc := &Document{
		ID:       raw.ID,
		Slug:     string(raw.Slug),
		Title:    raw.Title,
		Glossary: make(GlossaryIndex),
	}

	if raw.PublishedAt != "" {
		ts, err := time.Parse(time.RFC3339, raw.PublishedAt)
		if err != nil {
			log.Warn("Unable to parse publication time, ignoring", zap.String("id", raw.ID), zap.String("value", raw.PublishedAt), zap.Error(err))
		} else {
			doc.PublishedAt = ts
		}
	}

	if raw.MainImage != nil && raw.MainImage.Asset != nil {
		doc.Cover = raw.MainImage.Asset.asset()
	}

	for _, t := range raw.Glossary {
		if term, ok := t.term(); ok {
			doc.Terms = append(doc.Terms, term)
			doc.Glossary[term.Slug] = term
		} else if t != nil {
			log.Debug("Glossary entry without slug, ignoring", zap.String("id", raw.ID), zap.String("term", t.Term))
		}
	}

	doc.Body = parseBlocks(raw.Body, doc.Glossary, log)
	return doc, nil
}

func (a *rawAsset) asset() *Asset {
	ref := a.Ref
	if ref == "" {
		ref = a.ID
	}
	if ref == "" && a.URL == "" {
		return nil
	}
	return &Asset{Ref: ref, URL: a.URL}
}

func (t *rawTerm) term() (GlossaryTerm, bool) {
	if t == nil || t.Slug == "" {
		return GlossaryTerm{}, false
	}
	return GlossaryTerm{Slug: string(t.Slug), Term: t.Term, Definition: string(t.Definition)}, true
}

func parseBlocks(items []json.RawMessage, glossary GlossaryIndex, log *zap.Logger) []Block {
	blocks := make([]Block, 0, len(items))
	for i, item := range items {
		blocks = append(blocks, parseBlock(item, i, glossary, log))
	}
	return blocks
}

// parseBlock never fails: anything it cannot understand becomes Unknown so
// renderer still has something to show.
func parseBlock(item json.RawMessage, idx int, glossary GlossaryIndex, log *zap.Logger) Block {
	var head rawHead
	if err := json.Unmarshal(item, &head); err != nil {
		log.Warn("Malformed body item, keeping as unknown", zap.Int("index", idx), zap.Error(err))
		return &Unknown{BlockTyp: "malformed", Raw: item}
	}

	var err error
	switch head.Type {
	case "block":
		var tb rawTextBlock
		if err = json.Unmarshal(item, &tb); err == nil {
			return textBlock(head.Key, &tb, glossary, log)
		}
	case "pageBreak", "break":
		var pb rawPageBreak
		if err = json.Unmarshal(item, &pb); err == nil {
			style, perr := common.ParsePageBreakStyle(pb.Style)
			if perr != nil {
				style = common.PageBreakStyleDefault
			}
			return &PageBreak{BlockKey: head.Key, Style: style}
		}
	case "image":
		var m rawMedia
		if err = json.Unmarshal(item, &m); err == nil {
			img := &Image{BlockKey: head.Key, Alt: m.Alt}
			if m.Asset != nil {
				if a := m.Asset.asset(); a != nil {
					img.Asset = *a
				}
			}
			return img
		}
	case "audio", "audioFile":
		var m rawMedia
		if err = json.Unmarshal(item, &m); err == nil {
			au := &Audio{BlockKey: head.Key, Caption: m.Caption}
			if m.Asset != nil {
				if a := m.Asset.asset(); a != nil {
					au.Asset = *a
				}
			}
			return au
		}
	case "dialogueGroup", "dialogue":
		var g rawGroup
		if err = json.Unmarshal(item, &g); err == nil {
			return &DialogueGroup{BlockKey: head.Key, Content: parseBlocks(g.Content, glossary, log)}
		}
	default:
		log.Debug("Unknown block type", zap.Int("index", idx), zap.String("type", head.Type))
		return &Unknown{BlockKey: head.Key, BlockTyp: head.Type, Raw: item}
	}
	log.Warn("Unable to decode block, keeping as unknown", zap.Int("index", idx), zap.String("type", head.Type), zap.Error(err))
	return &Unknown{BlockKey: head.Key, BlockTyp: head.Type, Raw: item}
}

func textBlock(key string, raw *rawTextBlock, glossary GlossaryIndex, log *zap.Logger) Block {
	tb := TextBlock{
		BlockKey: key,
		Style:    raw.Style,
		Spans:    make([]Span, 0, len(raw.Children)),
		MarkDefs: make([]MarkDef, 0, len(raw.MarkDefs)),
	}
	for _, c := range raw.Children {
		if c.Type != "" && c.Type != "span" {
			// inline objects are not supported, keep their text if any
			log.Debug("Inline object treated as text", zap.String("type", c.Type), zap.String("block", key))
		}
		tb.Spans = append(tb.Spans, Span{Key: c.Key, Text: c.Text, Marks: c.Marks})
	}
	for _, md := range raw.MarkDefs {
		def := MarkDef{Key: md.Key, Type: MarkType(md.Type), Href: md.Href, TermRef: string(md.TermRef)}
		if term, ok := md.Term.term(); ok {
			def.TermRef = term.Slug
			if _, exists := glossary[term.Slug]; !exists {
				glossary[term.Slug] = term
			}
		} else if def.TermRef == "" && md.Term != nil {
			// not dereferenced by query, will not resolve
			def.TermRef = md.Term.Ref
		}
		tb.MarkDefs = append(tb.MarkDefs, def)
	}

	switch style := raw.Style; {
	case style == "" || style == "normal":
		return &Paragraph{TextBlock: tb}
	case style == "blockquote":
		return &Quote{TextBlock: tb}
	case style == "dialogue":
		return &DialogueLine{TextBlock: tb}
	case len(style) == 2 && style[0] == 'h':
		if level, err := strconv.Atoi(style[1:]); err == nil && level >= 1 && level <= 6 {
			return &Heading{TextBlock: tb, Level: level}
		}
	}
	log.Debug("Unknown text style, rendering as paragraph", zap.String("style", raw.Style), zap.String("block", key))
	return &Paragraph{TextBlock: tb}
}
