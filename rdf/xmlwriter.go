package rdf

import (
	"fmt"
	"io"
)

// xmlWriterFrame tracks one open element: whether its start tag has
// been finalized with ">" yet (still self-closable otherwise) and
// whether text content was written directly inside it.
type xmlWriterFrame struct {
	name    string
	opened  bool
	hasText bool
}

// XMLWriter is a namespaced, auto-indenting, auto-empty-element XML
// emitter (spec §3 "XML writer"): callers push StartElement/Text/
// EndElement events; the writer self-closes an element as "<a/>" when
// EndElement immediately follows StartElement with no content in
// between, and indents nested elements by depth. rss_serializer.go is
// the only caller - the RDF/XML encoder (rdfxml_encoder.go) was
// already written directly against a bufio.Writer before this type
// existed and is left as-is.
type XMLWriter struct {
	buf    *StringBuffer
	indent string
	stack  []*xmlWriterFrame
}

// NewXMLWriter returns a writer that indents nested elements with
// indent (pass "" to disable indentation).
func NewXMLWriter(indent string) *XMLWriter {
	return &XMLWriter{buf: NewStringBuffer(), indent: indent}
}

func (w *XMLWriter) writeIndent() {
	for i := 0; i < len(w.stack); i++ {
		w.buf.WriteString(w.indent)
	}
}

// openCurrent finalizes the current top-of-stack element's start tag
// the first time any content follows it.
func (w *XMLWriter) openCurrent() {
	if len(w.stack) == 0 {
		return
	}
	top := w.stack[len(w.stack)-1]
	if !top.opened {
		top.opened = true
		w.buf.WriteString(">")
	}
}

// Raw writes s verbatim (used for the leading <?xml ...?> header).
func (w *XMLWriter) Raw(s string) {
	w.buf.WriteString(s)
}

// StartElement opens name with attributes written in attrOrder.
func (w *XMLWriter) StartElement(name string, attrOrder []string, attrs map[string]string) {
	w.openCurrent()
	if len(w.stack) > 0 {
		w.buf.WriteString("\n")
	}
	w.writeIndent()
	w.buf.WriteString("<" + name)
	for _, k := range attrOrder {
		w.buf.WriteString(fmt.Sprintf(` %s="%s"`, k, escapeXMLAttr(attrs[k])))
	}
	w.stack = append(w.stack, &xmlWriterFrame{name: name})
}

// Text writes escaped character data inside the current element.
func (w *XMLWriter) Text(s string) {
	if s == "" {
		return
	}
	w.openCurrent()
	if len(w.stack) > 0 {
		w.stack[len(w.stack)-1].hasText = true
	}
	w.buf.WriteString(escapeXML(s))
}

// EndElement closes the most recently opened element.
func (w *XMLWriter) EndElement() {
	if len(w.stack) == 0 {
		return
	}
	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if !top.opened {
		w.buf.WriteString("/>")
		if len(w.stack) == 0 {
			w.buf.WriteString("\n")
		}
		return
	}
	if !top.hasText {
		w.buf.WriteString("\n")
		w.writeIndent()
	}
	w.buf.WriteString("</" + top.name + ">")
	if len(w.stack) == 0 {
		w.buf.WriteString("\n")
	}
}

// Bytes flattens everything written so far.
func (w *XMLWriter) Bytes() []byte { return w.buf.Bytes() }

// WriteTo flushes the document to out.
func (w *XMLWriter) WriteTo(out io.Writer) error {
	_, err := out.Write(w.Bytes())
	return err
}
