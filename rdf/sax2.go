package rdf

import (
	"encoding/xml"
	"io"

	htmlcharset "golang.org/x/net/html/charset"
)

// SAX2Handler is the event callback set a SAX2 driver dispatches to
// (spec §4.2 "SAX2 driver: hides the underlying XML parser"). Any
// field left nil is simply not called for that event kind.
type SAX2Handler struct {
	StartElement func(xml.StartElement, Locator) error
	EndElement   func(xml.EndElement, Locator) error
	CharData     func(xml.CharData, Locator) error
	Comment      func(xml.Comment, Locator) error
}

// SAX2Driver adapts encoding/xml.Decoder's pull-style token stream to
// the push-style callback interface the RSS/Atom parser is written
// against (spec §4.2), so rss_parser.go handles encoding/xml tokens
// without driving an xml.Decoder itself. It also resolves the feed's declared (or sniffed)
// character encoding before any token is read: xml.Decoder's
// CharsetReader hook is wired to golang.org/x/net/html/charset, which
// feeds served without an explicit UTF-8 declaration - the case spec
// §4.7's "tag-soup" framing exists for - still decode correctly.
type SAX2Driver struct {
	dec     *xml.Decoder
	handler SAX2Handler
	uri     string
}

// NewSAX2Driver constructs a driver reading from r. uri labels the
// Locators it produces (spec's {file, uri, line, column, byte} tuple).
func NewSAX2Driver(r io.Reader, uri string, handler SAX2Handler) *SAX2Driver {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charsetLabel string, input io.Reader) (io.Reader, error) {
		return htmlcharset.NewReaderLabel(charsetLabel, input)
	}
	dec.Strict = false
	return &SAX2Driver{dec: dec, handler: handler, uri: uri}
}

// Run drives the underlying decoder to completion, dispatching every
// token to the registered handler until EOF or the first handler
// error.
func (d *SAX2Driver) Run() error {
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		loc := Locator{URI: d.uri, Line: -1, Column: -1, Byte: d.dec.InputOffset()}
		switch t := tok.(type) {
		case xml.StartElement:
			if d.handler.StartElement != nil {
				if err := d.handler.StartElement(t.Copy(), loc); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if d.handler.EndElement != nil {
				if err := d.handler.EndElement(t, loc); err != nil {
					return err
				}
			}
		case xml.CharData:
			if d.handler.CharData != nil {
				if err := d.handler.CharData(t.Copy(), loc); err != nil {
					return err
				}
			}
		case xml.Comment:
			if d.handler.Comment != nil {
				if err := d.handler.Comment(t.Copy(), loc); err != nil {
					return err
				}
			}
		}
	}
}
