package modal

import (
	"time"

	"github.com/beevik/etree"

	"folio/common"
	"folio/render"
)

// TimeLayout formats publication time as HH:mm, dd/MM/yyyy.
const TimeLayout = "15:04, 02/01/2006"

// Element ids of the modal tree.
const (
	BackdropID = "writing-modal-backdrop"
	DialogID   = "writing-modal"
	TitleID    = "writing-modal-title"
	BodyID     = "writing-modal-body"
	CloseID    = "writing-modal-close"
	DismissID  = "writing-modal-dismiss"
)

// Render returns element tree for the current state. Tree is built anew on
// every call.
func (s *Shell) Render() *etree.Element {
	backdrop := etree.NewElement("div")
	backdrop.CreateAttr("id", BackdropID)
	backdrop.CreateAttr("class", "modal-backdrop")

	dialog := backdrop.CreateElement("div")
	dialog.CreateAttr("id", DialogID)
	dialog.CreateAttr("role", "dialog")
	dialog.CreateAttr("aria-modal", "true")

	switch s.phase {
	case common.ModalPhaseLoading:
		dialog.CreateAttr("class", "writing-modal loading")
		dialog.CreateAttr("aria-busy", "true")
		p := dialog.CreateElement("p")
		p.CreateAttr("class", "status")
		p.SetText(s.opts.Messages.Loading)
	case common.ModalPhaseError:
		dialog.CreateAttr("class", "writing-modal error")
		p := dialog.CreateElement("p")
		p.CreateAttr("class", "error")
		p.CreateAttr("role", "alert")
		p.SetText(s.message)
		btn := dialog.CreateElement("button")
		btn.CreateAttr("id", DismissID)
		btn.CreateAttr("type", "button")
		btn.SetText(s.opts.Messages.Dismiss)
	case common.ModalPhaseSuccess:
		dialog.CreateAttr("class", "writing-modal")
		dialog.CreateAttr("aria-labelledby", TitleID)
		s.renderDocument(dialog)
	}
	return backdrop
}

func (s *Shell) newRenderer() *render.Renderer {
	opts := []render.Option{
		render.WithPlaceholder(s.opts.Placeholder),
		render.WithLanguage(s.opts.Language),
		render.WithBroken(func(ref string) bool { return s.broken[ref] }),
		render.WithAssetURL(s.assetURL),
	}
	if s.doc != nil {
		opts = append(opts, render.WithGlossary(s.doc.Glossary))
	}
	if s.tooltip != nil {
		opts = append(opts, render.WithTooltip(s.tooltip))
	}
	return render.New(s.log, opts...)
}

func (s *Shell) renderDocument(dialog *etree.Element) {
	doc := s.doc
	r := s.newRenderer()

	btn := dialog.CreateElement("button")
	btn.CreateAttr("id", CloseID)
	btn.CreateAttr("type", "button")
	btn.CreateAttr("class", "close")
	btn.CreateAttr("aria-label", s.opts.Messages.CloseLabel)
	btn.SetText("×")

	title := dialog.CreateElement("h2")
	title.CreateAttr("id", TitleID)
	title.SetText(doc.Title)

	if !doc.PublishedAt.IsZero() {
		p := dialog.CreateElement("p")
		p.CreateAttr("class", "published")
		ts := p.CreateElement("time")
		ts.CreateAttr("datetime", doc.PublishedAt.Format(time.RFC3339))
		ts.SetText(FormatTime(doc.PublishedAt, s.opts.Location))
	}

	if doc.Cover != nil {
		r.AppendImage(dialog, *doc.Cover, doc.Title, "cover")
	}

	body := dialog.CreateElement("div")
	body.CreateAttr("id", BodyID)
	body.CreateAttr("class", "prose")
	for i, el := range r.RenderBlocks(doc.Body) {
		if b := doc.Body[i]; b != nil && b.Key() != "" {
			el.CreateAttr("id", "block-"+b.Key())
		}
		body.AddChild(el)
	}
}

// FormatTime renders publication time in loc.
func FormatTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(TimeLayout)
}

// insideDialog reports whether element with target id is the dialog or one
// of its descendants in the current tree. Unknown ids are outside.
func (s *Shell) insideDialog(target string) bool {
	if target == "" {
		return false
	}
	root := s.Render()
	dialog := root.FindElement("./div[@id='" + DialogID + "']")
	if dialog == nil {
		return false
	}
	if target == DialogID {
		return true
	}
	return findByID(dialog, target) != nil
}

func findByID(el *etree.Element, id string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.SelectAttrValue("id", "") == id {
			return c
		}
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
