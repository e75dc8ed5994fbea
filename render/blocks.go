// Package render converts writing body into element trees.
package render

import (
	"strconv"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"folio/common"
	"folio/writing"
)

// MaxDialogueDepth limits nesting of dialogue groups, deeper groups are not
// descended into.
const MaxDialogueDepth = 1

// TooltipView is read only view of tooltip state.
type TooltipView interface {
	Active() string
}

// Renderer keeps per render settings. It is not safe for concurrent use.
type Renderer struct {
	log         *zap.Logger
	glossary    writing.GlossaryIndex
	tooltip     TooltipView
	assetURL    func(writing.Asset) string
	broken      func(ref string) bool
	placeholder string
	upper       cases.Caser

	tooltipShown bool
}

type Option func(*Renderer)

// WithGlossary sets index used to resolve glossary references.
func WithGlossary(g writing.GlossaryIndex) Option {
	return func(r *Renderer) { r.glossary = g }
}

func WithTooltip(v TooltipView) Option {
	return func(r *Renderer) { r.tooltip = v }
}

// WithAssetURL sets function turning asset into usable URL. Default is to
// use asset URL as is.
func WithAssetURL(f func(writing.Asset) string) Option {
	return func(r *Renderer) { r.assetURL = f }
}

// WithBroken sets predicate reporting images which failed to load.
func WithBroken(f func(ref string) bool) Option {
	return func(r *Renderer) { r.broken = f }
}

func WithPlaceholder(url string) Option {
	return func(r *Renderer) { r.placeholder = url }
}

// WithLanguage selects case mapping rules for accented text.
func WithLanguage(tag language.Tag) Option {
	return func(r *Renderer) { r.upper = cases.Upper(tag) }
}

func New(log *zap.Logger, opts ...Option) *Renderer {
	r := &Renderer{
		log:      log.Named("render"),
		assetURL: func(a writing.Asset) string { return a.URL },
		broken:   func(string) bool { return false },
		upper:    cases.Upper(language.Und),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// RenderBlocks produces exactly one element per block.
func (r *Renderer) RenderBlocks(blocks []writing.Block) []*etree.Element {
	r.tooltipShown = false

	out := make([]*etree.Element, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, r.renderBlock(b, 0, false))
	}
	return out
}

// RenderInline renders resolved spans into parent.
func (r *Renderer) RenderInline(parent *etree.Element, tb *writing.TextBlock) {
	r.appendUnits(parent, resolveSpans(tb.Spans, tb.MarkDefs, r.glossary, r.log))
}

func (r *Renderer) renderBlock(b writing.Block, depth int, restricted bool) *etree.Element {
	switch v := b.(type) {
	case *writing.Heading:
		if restricted {
			return r.textElement("p", "", &v.TextBlock)
		}
		level := min(max(v.Level, 1), 6)
		class := ""
		if level == 1 {
			class = "display"
		}
		return r.textElement("h"+strconv.Itoa(level), class, &v.TextBlock)
	case *writing.Paragraph:
		return r.textElement("p", "", &v.TextBlock)
	case *writing.Quote:
		if restricted {
			return r.textElement("p", "", &v.TextBlock)
		}
		return r.textElement("blockquote", "", &v.TextBlock)
	case *writing.DialogueLine:
		if restricted {
			return r.textElement("p", "", &v.TextBlock)
		}
		return r.textElement("p", "dialogue", &v.TextBlock)
	case *writing.PageBreak:
		if restricted {
			return r.plain(v)
		}
		return r.pageBreak(v)
	case *writing.Image:
		if restricted {
			return r.plain(v)
		}
		return r.image(v)
	case *writing.Audio:
		if restricted {
			return r.plain(v)
		}
		return r.audio(v)
	case *writing.DialogueGroup:
		if depth >= MaxDialogueDepth {
			r.log.Warn("Dialogue group nested too deep, rendering as passthrough", zap.String("key", v.BlockKey), zap.Int("depth", depth))
			return r.passthrough(v)
		}
		div := etree.NewElement("div")
		div.CreateAttr("class", "dialogue-group")
		for _, c := range v.Content {
			div.AddChild(r.renderBlock(c, depth+1, true))
		}
		return div
	case *writing.Unknown:
		r.log.Debug("Unknown block, rendering as passthrough", zap.String("type", v.BlockTyp), zap.String("key", v.BlockKey))
		return r.passthrough(v)
	case nil:
		r.log.Warn("Missing block, rendering as passthrough", zap.Int("depth", depth))
		return r.passthrough(&writing.Unknown{BlockTyp: "missing"})
	default:
		r.log.Warn("Unexpected block implementation, rendering as passthrough", zap.String("type", b.Type()))
		return r.passthrough(b)
	}
}

func (r *Renderer) textElement(tag, class string, tb *writing.TextBlock) *etree.Element {
	el := etree.NewElement(tag)
	if class != "" {
		el.CreateAttr("class", class)
	}
	r.RenderInline(el, tb)
	return el
}

// plain renders media inside dialogue group as paragraph with its caption.
func (r *Renderer) plain(b writing.Block) *etree.Element {
	p := etree.NewElement("p")
	if text := writing.AsPlainText(b); text != "" {
		p.SetText(text)
	}
	return p
}

func (r *Renderer) pageBreak(pb *writing.PageBreak) *etree.Element {
	if pb.Style == common.PageBreakStyleDoubleRule {
		div := etree.NewElement("div")
		div.CreateAttr("class", "page-break double-rule")
		div.CreateAttr("role", "separator")
		div.CreateElement("hr")
		div.CreateElement("hr")
		return div
	}
	hr := etree.NewElement("hr")
	hr.CreateAttr("class", "page-break")
	return hr
}

// ImageSource returns URL to display for asset, placeholder when asset is
// known to be broken or has no usable URL.
func (r *Renderer) ImageSource(a writing.Asset) string {
	if r.broken(a.Ref) {
		return r.placeholder
	}
	if u := r.assetURL(a); u != "" {
		return u
	}
	return r.placeholder
}

func (r *Renderer) image(img *writing.Image) *etree.Element {
	fig := etree.NewElement("figure")
	fig.CreateAttr("class", "image")
	r.AppendImage(fig, img.Asset, img.Alt, "")
	if img.Alt != "" {
		fig.CreateElement("figcaption").SetText(img.Alt)
	}
	return fig
}

// AppendImage adds img element with fallback data for the asset.
func (r *Renderer) AppendImage(parent *etree.Element, a writing.Asset, alt, class string) *etree.Element {
	el := parent.CreateElement("img")
	if class != "" {
		el.CreateAttr("class", class)
	}
	el.CreateAttr("src", r.ImageSource(a))
	el.CreateAttr("alt", alt)
	if a.Ref != "" {
		el.CreateAttr("data-ref", a.Ref)
	}
	if r.placeholder != "" {
		el.CreateAttr("data-fallback", r.placeholder)
	}
	if r.broken(a.Ref) {
		el.CreateAttr("data-broken", "true")
	}
	return el
}

func (r *Renderer) audio(au *writing.Audio) *etree.Element {
	fig := etree.NewElement("figure")
	fig.CreateAttr("class", "audio")
	player := fig.CreateElement("audio")
	player.CreateAttr("controls", "controls")
	player.CreateAttr("preload", "none")
	if src := r.assetURL(au.Asset); src != "" {
		player.CreateAttr("src", src)
	} else {
		r.log.Debug("Audio without source", zap.String("key", au.BlockKey), zap.String("ref", au.Asset.Ref))
	}
	if au.Caption != "" {
		fig.CreateElement("figcaption").SetText(au.Caption)
	}
	return fig
}

func (r *Renderer) passthrough(b writing.Block) *etree.Element {
	div := etree.NewElement("div")
	div.CreateAttr("class", "unknown-block")
	div.CreateAttr("data-type", b.Type())
	p := div.CreateElement("p")
	p.CreateAttr("class", "passthrough")
	if text := writing.AsPlainText(b); text != "" {
		p.SetText(text)
	} else {
		p.SetText("[" + b.Type() + "]")
	}
	return div
}
