package present

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"folio/common"
)

func sampleModal() *etree.Element {
	root := etree.NewElement("div")
	root.CreateAttr("id", "writing-modal-backdrop")
	p := root.CreateElement("p")
	p.CreateAttr("class", "status")
	p.SetText("Loading & waiting")
	return root
}

func TestWritePageHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePage(&buf, sampleModal(), "Catatan Pagi", "id", common.OutputFmtHtml); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatalf("page must start with doctype, got %q", out[:min(len(out), 40)])
	}
	if strings.Contains(out, "<?xml") {
		t.Fatalf("html page must not carry xml declaration")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(out); err != nil {
		t.Fatalf("page is not well formed: %v", err)
	}
	html := doc.SelectElement("html")
	if html == nil || html.SelectAttrValue("lang", "") != "id" {
		t.Fatalf("html element with lang expected")
	}
	if title := doc.FindElement("/html/head/title"); title == nil || title.Text() != "Catatan Pagi" {
		t.Fatalf("title missing")
	}
	if style := doc.FindElement("/html/head/style"); style == nil || !strings.Contains(style.Text(), ".writing-modal") {
		t.Fatalf("default stylesheet missing")
	}
	p := doc.FindElement("/html/body/div[@id='writing-modal-backdrop']/p")
	if p == nil || p.Text() != "Loading & waiting" {
		t.Fatalf("modal tree must be placed into body: %v", p)
	}
}

func TestWritePageXHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePage(&buf, sampleModal(), "T", "", common.OutputFmtXhtml); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") {
		t.Fatalf("xhtml page must start with xml declaration")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(out); err != nil {
		t.Fatalf("page is not well formed: %v", err)
	}
	html := doc.Root()
	if html.SelectAttrValue("xmlns", "") != "http://www.w3.org/1999/xhtml" {
		t.Fatalf("xhtml namespace missing")
	}
	if html.SelectAttr("lang") != nil {
		t.Fatalf("empty language must not produce attribute")
	}
}

func TestWritePageTree(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePage(&buf, sampleModal(), "T", "id", common.OutputFmtTree); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	want := "div id=\"writing-modal-backdrop\"\n" +
		"  p class=\"status\"\n" +
		"    #text: \"Loading & waiting\"\n"
	if got := buf.String(); got != want {
		t.Fatalf("tree dump:\n%s\nwant:\n%s", got, want)
	}
}
