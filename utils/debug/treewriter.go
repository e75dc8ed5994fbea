// Package debug has helpers producing human readable dumps of documents and
// rendered trees.
package debug

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// Element dumps rendered element with its attributes, text and children,
// one node per line. Whitespace only character data is skipped.
func (tw TreeWriter) Element(depth int, el *etree.Element) {
	if el == nil {
		return
	}
	tw.indent(depth)
	tw.w.WriteString(el.FullTag())
	for _, a := range el.Attr {
		fmt.Fprintf(tw.w, " %s=%s", a.FullKey(), strconv.Quote(a.Value))
	}
	tw.w.WriteByte('\n')
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			tw.Element(depth+1, t)
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				tw.TextBlock(depth+1, "#text", t.Data)
			}
		}
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
