package rdf

import (
	"io"
	"sort"
	"strconv"
	"strings"
)

// rss1PredicateQName reverses rssFieldPredicate/rssBlockPredicate for
// serialization: the small set of predicate IRIs the RSS 1.0 writer
// knows how to abbreviate back to an element name.
var rss1PredicateQName = map[string]string{
	nsRSS10 + "title":         "title",
	nsRSS10 + "link":          "link",
	nsRSS10 + "description":   "description",
	nsRSS10 + "webMaster":     "webMaster",
	nsRSS10 + "generator":     "generator",
	nsRSS10 + "ttl":           "ttl",
	nsRSS10 + "url":           "url",
	nsRSS10 + "name":          "name",
	nsRSS10 + "width":         "width",
	nsRSS10 + "height":        "height",
	nsRSS10 + "guid":          "guid",
	nsRSS10 + "rel":           "rel",
	nsRSS10 + "href":          "href",
	nsRSS10 + "length":        "length",
	nsRSS10 + "type":          "type",
	nsContentModule + "encoded": "content:encoded",
	nsDC + "date":             "dc:date",
	nsDC + "creator":          "dc:creator",
	nsDC + "language":         "dc:language",
	nsDC + "rights":           "dc:rights",
}

func rss1QName(pred string) (string, bool) {
	name, ok := rss1PredicateQName[pred]
	return name, ok
}

func isRSS1BlockPredicate(pred string) bool {
	switch pred {
	case nsRSS10 + "image", nsRSS10 + "textinput", nsDC + "creator", nsRSS10 + "category", nsRSS10 + "enclosure", nsRSS10 + "source":
		return true
	default:
		return false
	}
}

// rssTripleEncoder is the RSSEncoder spec §4.8 promises: it buffers
// the triple stream (RSS 1.0's channel/item/block shape can't be
// reconstructed until every statement about a subject has arrived) and
// renders RSS 1.0 XML on Close, keyed by subject - unlike
// rdfxmltripleEncoder, which writes one rdf:Description per statement
// as each arrives.
type rssTripleEncoder struct {
	w       io.Writer
	triples []Triple
	closed  bool
	err     error
}

func newRSSTripleEncoder(w io.Writer) TripleEncoder {
	return &rssTripleEncoder{w: w}
}

func (e *rssTripleEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	e.triples = append(e.triples, t)
	return nil
}

func (e *rssTripleEncoder) Flush() error { return e.err }

func (e *rssTripleEncoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true
	if e.err != nil {
		return e.err
	}
	if err := renderRSS1(e.w, e.triples); err != nil {
		e.err = err
		return err
	}
	return nil
}

func renderRSS1(w io.Writer, triples []Triple) error {
	bySubj := map[string][]Triple{}
	subjTerm := map[string]Term{}
	var subjOrder []string
	for _, t := range triples {
		key := t.S.String()
		if _, ok := bySubj[key]; !ok {
			subjOrder = append(subjOrder, key)
			subjTerm[key] = t.S
		}
		bySubj[key] = append(bySubj[key], t)
	}

	var channelKey string
	var itemKeys []string
	for _, key := range subjOrder {
		for _, t := range bySubj[key] {
			iri, ok := t.O.(IRI)
			if t.P.Value != rdfTypeIRI || !ok {
				continue
			}
			switch iri.Value {
			case nsRSS10 + "channel":
				channelKey = key
			case nsRSS10 + "item":
				itemKeys = append(itemKeys, key)
			}
		}
	}

	nsStack := NewNamespaceStack()
	nsStack.Push("rdf", rdfXMLNS, 0)
	nsStack.Push("dc", nsDC, 0)
	nsStack.Push("content", nsContentModule, 0)
	nsStack.Push("", nsRSS10, 0)

	xw := NewXMLWriter("  ")
	xw.Raw(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")

	var attrOrder []string
	attrs := map[string]string{}
	for _, prefix := range []string{"", "rdf", "dc", "content"} {
		uri, _ := nsStack.Lookup(prefix)
		name := "xmlns"
		if prefix != "" {
			name = "xmlns:" + prefix
		}
		attrOrder = append(attrOrder, name)
		attrs[name] = uri
	}
	xw.StartElement("rdf:RDF", attrOrder, attrs)

	if channelKey != "" {
		renderRSS1Node(xw, "channel", subjTerm[channelKey], bySubj[channelKey], bySubj)
	}
	for _, key := range itemKeys {
		renderRSS1Node(xw, "item", subjTerm[key], bySubj[key], bySubj)
	}
	xw.EndElement() // rdf:RDF
	nsStack.PopTo(0)

	return xw.WriteTo(w)
}

func renderRSS1Node(xw *XMLWriter, elemName string, subj Term, triples []Triple, bySubj map[string][]Triple) {
	attrOrder, attrs := subjectAttrs(subj)
	xw.StartElement(elemName, attrOrder, attrs)
	for _, t := range triples {
		if t.P.Value == rdfTypeIRI {
			continue
		}
		if t.P.Value == nsRSS10+"items" {
			renderRSS1Seq(xw, t.O, bySubj)
			continue
		}
		renderRSS1Predicate(xw, t, bySubj)
	}
	xw.EndElement()
}

func renderRSS1Predicate(xw *XMLWriter, t Triple, bySubj map[string][]Triple) {
	localName, known := rss1QName(t.P.Value)
	if !known {
		if ns, local, ok := splitIRIForQName(t.P.Value); ok {
			_ = ns
			localName = local
		} else {
			return
		}
	}
	switch obj := t.O.(type) {
	case Literal:
		xw.StartElement(localName, nil, nil)
		xw.Text(obj.Lexical)
		xw.EndElement()
	case IRI:
		if nested, ok := bySubj[obj.Value]; ok && isRSS1BlockPredicate(t.P.Value) {
			renderRSS1Block(xw, localName, obj, nested)
			return
		}
		xw.StartElement(localName, []string{"rdf:resource"}, map[string]string{"rdf:resource": obj.Value})
		xw.EndElement()
	case BlankNode:
		if nested, ok := bySubj[obj.String()]; ok {
			renderRSS1Block(xw, localName, obj, nested)
		}
	}
}

func renderRSS1Block(xw *XMLWriter, elemName string, subj Term, triples []Triple) {
	attrOrder, attrs := subjectAttrs(subj)
	xw.StartElement(elemName, attrOrder, attrs)
	for _, t := range triples {
		if t.P.Value == rdfTypeIRI {
			continue
		}
		localName, known := rss1QName(t.P.Value)
		if !known {
			if _, local, ok := splitIRIForQName(t.P.Value); ok {
				localName = local
			} else {
				continue
			}
		}
		switch obj := t.O.(type) {
		case Literal:
			xw.StartElement(localName, nil, nil)
			xw.Text(obj.Lexical)
			xw.EndElement()
		case IRI:
			xw.StartElement(localName, []string{"rdf:resource"}, map[string]string{"rdf:resource": obj.Value})
			xw.EndElement()
		}
	}
	xw.EndElement()
}

func renderRSS1Seq(xw *XMLWriter, seqSubj Term, bySubj map[string][]Triple) {
	type member struct {
		n   int
		val Term
	}
	var members []member
	for _, t := range bySubj[seqSubj.String()] {
		if !strings.HasPrefix(t.P.Value, rdfXMLNS+"_") {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(t.P.Value, rdfXMLNS+"_")); err == nil {
			members = append(members, member{n: n, val: t.O})
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].n < members[j].n })

	xw.StartElement("items", nil, nil)
	xw.StartElement("rdf:Seq", nil, nil)
	for _, m := range members {
		if iri, ok := m.val.(IRI); ok {
			xw.StartElement("rdf:li", []string{"rdf:resource"}, map[string]string{"rdf:resource": iri.Value})
			xw.EndElement()
		}
	}
	xw.EndElement() // rdf:Seq
	xw.EndElement() // items
}

func subjectAttrs(subj Term) ([]string, map[string]string) {
	switch v := subj.(type) {
	case IRI:
		return []string{"rdf:about"}, map[string]string{"rdf:about": v.Value}
	case BlankNode:
		return []string{"rdf:nodeID"}, map[string]string{"rdf:nodeID": v.ID}
	default:
		return nil, nil
	}
}
