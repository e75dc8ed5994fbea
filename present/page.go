package present

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/beevik/etree"

	"folio/common"
	"folio/utils/debug"
)

//go:embed modal.css
var defaultStylesheet []byte

// WritePage wraps modal tree into standalone document of requested format.
func WritePage(w io.Writer, modal *etree.Element, title, lang string, format common.OutputFmt) error {
	if format == common.OutputFmtTree {
		tw := debug.NewTreeWriter()
		tw.Element(0, modal)
		_, err := io.WriteString(w, tw.String())
		return err
	}

	doc := etree.NewDocument()
	if format == common.OutputFmtXhtml {
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	}
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	if format == common.OutputFmtXhtml {
		html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	}
	if lang != "" {
		html.CreateAttr("lang", lang)
	}

	head := html.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("charset", "utf-8")
	vp := head.CreateElement("meta")
	vp.CreateAttr("name", "viewport")
	vp.CreateAttr("content", "width=device-width, initial-scale=1")
	head.CreateElement("title").SetText(title)
	head.CreateElement("style").SetText(string(defaultStylesheet))

	body := html.CreateElement("body")
	body.AddChild(modal)

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write page: %w", err)
	}
	return nil
}
