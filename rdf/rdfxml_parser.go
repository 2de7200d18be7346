package rdf

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
)

// rdfxmlFrame is the per-element evaluation context the RDF/XML state
// machine (spec §4.1) pushes and pops as it descends into node and
// property elements: in-scope xml:base, xml:lang, the current subject,
// and the rdf:li ordinal counter.
type rdfxmlFrame struct {
	base string
	lang string
	subj Term
	liN  int
}

// rdfxmlTripleDecoder parses RDF/XML into triples using encoding/xml's
// Decoder as the underlying token source. The whole document is walked
// on the first call to Next (the chunked Parser contract in
// parser_api.go only resolves RDF/XML once ParseChunk's is_end=true is
// reached, since *xml.Decoder cannot resume a partially-buffered token
// across a reader boundary).
type rdfxmlTripleDecoder struct {
	dec    *xml.Decoder
	opts   DecodeOptions
	queue  []Triple
	err    error
	parsed bool

	bnodeSeq int
	emitted  int64
	depth    int

	// nsPrefix maps namespace URI -> a stable prefix, used only to
	// re-serialize parseType="Literal" content as a self-contained
	// XML fragment (spec §4.1 "XML literal").
	nsPrefix    map[string]string
	nsPrefixSeq int

	// seenIDs tracks every resolved rdf:ID IRI (which already folds in
	// the in-scope base) so a reused rdf:ID under the same base is
	// reported without aborting the parse.
	seenIDs map[string]bool
}

func newRDFXMLTripleDecoderWithOptions(r io.Reader, opts DecodeOptions) (TripleDecoder, error) {
	opts = normalizeDecodeOptions(opts)
	return &rdfxmlTripleDecoder{
		dec:      xml.NewDecoder(r),
		opts:     opts,
		nsPrefix: map[string]string{},
		seenIDs:  map[string]bool{},
	}, nil
}

func (d *rdfxmlTripleDecoder) Err() error { return d.err }

func (d *rdfxmlTripleDecoder) Close() error { return nil }

func (d *rdfxmlTripleDecoder) Next() (Triple, error) {
	if d.err != nil {
		return Triple{}, d.err
	}
	if !d.parsed {
		d.parsed = true
		if err := d.parseDocument(); err != nil {
			d.err = err
			return Triple{}, err
		}
	}
	if len(d.queue) == 0 {
		return Triple{}, io.EOF
	}
	t := d.queue[0]
	d.queue = d.queue[1:]
	d.emitted++
	if d.opts.MaxTriples > 0 && d.emitted > d.opts.MaxTriples {
		err := WrapParseError("rdfxml", "", -1, ErrTripleLimitExceeded)
		d.err = err
		return Triple{}, err
	}
	return t, nil
}

func (d *rdfxmlTripleDecoder) emit(s Term, p IRI, o Term) {
	d.queue = append(d.queue, Triple{S: s, P: p, O: o})
}

func (d *rdfxmlTripleDecoder) wrapErr(format string, a ...interface{}) error {
	return WrapParseError("rdfxml", "", -1, fmt.Errorf(format, a...))
}

func (d *rdfxmlTripleDecoder) forbiddenTermErr(format string, a ...interface{}) error {
	return &ParseError{Code: ErrCodeForbiddenTerm, Format: "rdfxml", Message: fmt.Sprintf(format, a...)}
}

func (d *rdfxmlTripleDecoder) newBlankNode() BlankNode {
	d.bnodeSeq++
	return BlankNode{ID: fmt.Sprintf("genid%d", d.bnodeSeq)}
}

func (d *rdfxmlTripleDecoder) enter() error {
	d.depth++
	if d.opts.MaxDepth > 0 && d.depth > d.opts.MaxDepth {
		return WrapParseError("rdfxml", "", -1, ErrMaxDepthExceeded)
	}
	return nil
}

func (d *rdfxmlTripleDecoder) leave() { d.depth-- }

// parseDocument reads the top-level element and dispatches: an rdf:RDF
// wrapper containing zero or more node elements, or (per spec §4.1
// "rdf:RDF may be omitted") a single bare node element.
func (d *rdfxmlTripleDecoder) parseDocument() error {
	root := rdfxmlFrame{base: d.opts.BaseURI}
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return WrapParseError("rdfxml", "", -1, fmt.Errorf("%w: %v", errMalformedXML, err))
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		root.base = xmlBaseAttr(start, root.base)
		root.lang = xmlLangAttr(start, root.lang)
		d.recordNamespaces(start)

		if start.Name.Space == rdfXMLNS && start.Name.Local == "RDF" {
			return d.parseNodeElementList(root, start.Name)
		}
		// No rdf:RDF wrapper: this single element is the one node element.
		return d.parseNodeElement(start, root)
	}
}

// parseNodeElementList consumes node elements until the matching close
// tag of the given wrapper element name (usually rdf:RDF).
func (d *rdfxmlTripleDecoder) parseNodeElementList(frame rdfxmlFrame, wrapper xml.Name) error {
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return WrapParseError("rdfxml", "", -1, fmt.Errorf("%w: %v", errMalformedXML, err))
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.parseNodeElement(t, frame); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name == wrapper {
				return nil
			}
		}
	}
}

// parseNodeElement parses one node element (spec §4.1 "node element"):
// it resolves the subject from rdf:about / rdf:ID / rdf:nodeID, emits
// the implicit rdf:type triple for typed node elements, emits any
// property-attribute triples abbreviated onto the element itself, then
// descends into its property element children.
func (d *rdfxmlTripleDecoder) parseNodeElement(start xml.StartElement, parent rdfxmlFrame) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	frame := parent
	frame.base = xmlBaseAttr(start, frame.base)
	frame.lang = xmlLangAttr(start, frame.lang)
	frame.liN = 0
	d.recordNamespaces(start)

	if start.Name.Space == rdfXMLNS {
		switch start.Name.Local {
		case "li", "RDF", "ID", "aboutEach", "aboutEachPrefix":
			return d.forbiddenTermErr("disallowed as node element name: rdf:%s", start.Name.Local)
		}
	}

	subj, err := d.resolveNodeSubject(start, frame)
	if err != nil {
		return err
	}
	frame.subj = subj

	if start.Name.Space != rdfXMLNS || start.Name.Local != "Description" {
		d.emit(subj, IRI{Value: rdfTypeIRI}, IRI{Value: start.Name.Space + start.Name.Local})
	}

	for _, attr := range propertyAttrs(start) {
		if err := checkLiteralNFC("rdfxml", attr.Value, d.opts.NonNFCFatal); err != nil {
			return err
		}
		d.emit(subj, IRI{Value: attr.Name.Space + attr.Name.Local}, Literal{Lexical: attr.Value, Lang: frame.lang})
	}

	return d.parsePropertyElements(subj, frame, start.Name)
}

// resolveNodeSubject applies the spec's mutual-exclusivity rules for
// rdf:about / rdf:ID / rdf:nodeID and synthesizes a blank node when
// none is present.
func (d *rdfxmlTripleDecoder) resolveNodeSubject(start xml.StartElement, frame rdfxmlFrame) (Term, error) {
	if forbidden := forbiddenAttr(start); forbidden != "" {
		return nil, d.forbiddenTermErr("rdf:%s is never given triple semantics", forbidden)
	}
	about := rdfAttr(start, "about")
	id := rdfAttr(start, "ID")
	nodeID := rdfAttr(start, "nodeID")
	bagID := rdfAttr(start, "bagID")

	count := 0
	if about != nil {
		count++
	}
	if id != nil {
		count++
	}
	if nodeID != nil {
		count++
	}
	if count > 1 {
		return nil, d.wrapErr("node element cannot combine rdf:about, rdf:ID and rdf:nodeID")
	}

	if bagID != nil {
		if !d.opts.AllowBagID {
			return nil, d.wrapErr("rdf:bagID is not enabled (set AllowBagID)")
		}
		glog.Warningf("rdfxml: rdf:bagID is deprecated, treating %q as an ordinary node identifier", bagID.Value)
	}

	switch {
	case about != nil:
		return IRI{Value: resolveIRI(frame.base, about.Value)}, nil
	case id != nil:
		if !isQNameLocal(id.Value) {
			return nil, d.wrapErr("rdf:ID is not a valid NCName: %q", id.Value)
		}
		resolved := resolveIRI(frame.base, "#"+id.Value)
		if d.seenIDs[resolved] {
			glog.Warningf("rdfxml: rdf:ID %q reused under base %q", id.Value, frame.base)
		}
		d.seenIDs[resolved] = true
		return IRI{Value: resolved}, nil
	case nodeID != nil:
		return BlankNode{ID: nodeID.Value}, nil
	default:
		return d.newBlankNode(), nil
	}
}

// parsePropertyElements consumes the property element children of a
// node element until its matching close tag.
func (d *rdfxmlTripleDecoder) parsePropertyElements(subj Term, frame rdfxmlFrame, nodeName xml.Name) error {
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return WrapParseError("rdfxml", "", -1, fmt.Errorf("%w: %v", errMalformedXML, err))
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.parsePropertyElement(t, subj, &frame); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name == nodeName {
				return nil
			}
		}
	}
}

// parsePropertyElement parses one property element (spec §4.1
// "property element"): rdf:li / rdf:_n expansion, rdf:parseType in its
// three forms, rdf:resource / rdf:nodeID object references, reification
// via rdf:ID, and the CharData-or-node-element ambiguity of a bare
// property element's content.
func (d *rdfxmlTripleDecoder) parsePropertyElement(start xml.StartElement, subj Term, frame *rdfxmlFrame) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	d.recordNamespaces(start)

	if forbidden := forbiddenAttr(start); forbidden != "" {
		return d.forbiddenTermErr("rdf:%s is never given triple semantics", forbidden)
	}

	pred, err := d.propertyPredicate(start, frame)
	if err != nil {
		return err
	}

	var reifyIRI *IRI
	if id := rdfAttr(start, "ID"); id != nil {
		if !isQNameLocal(id.Value) {
			return d.wrapErr("rdf:ID is not a valid NCName: %q", id.Value)
		}
		iri := IRI{Value: resolveIRI(frame.base, "#"+id.Value)}
		reifyIRI = &iri
	}

	propLang := frame.lang
	if lang := xmlAttr(start, xmlXMLNS, "lang"); lang != "" {
		propLang = lang
	}

	if pt := rdfAttr(start, "parseType"); pt != nil {
		obj, err := d.parsePropertyByType(pt.Value, start, subj, pred, *frame)
		if err != nil {
			return err
		}
		d.emit(subj, pred, obj)
		d.reify(reifyIRI, subj, pred, obj)
		return nil
	}

	if res := rdfAttr(start, "resource"); res != nil {
		obj := IRI{Value: resolveIRI(frame.base, res.Value)}
		if err := d.consumeElement(); err != nil {
			return err
		}
		d.emit(subj, pred, obj)
		d.reify(reifyIRI, subj, pred, obj)
		return nil
	}

	if nodeID := rdfAttr(start, "nodeID"); nodeID != nil {
		obj := BlankNode{ID: nodeID.Value}
		if err := d.consumeElement(); err != nil {
			return err
		}
		d.emit(subj, pred, obj)
		d.reify(reifyIRI, subj, pred, obj)
		return nil
	}

	var datatype *IRI
	if dt := rdfAttr(start, "datatype"); dt != nil {
		resolved := IRI{Value: resolveIRI(frame.base, dt.Value)}
		datatype = &resolved
	}

	if attrs := propertyAttrs(start); len(attrs) > 0 && datatype == nil {
		// Property attributes abbreviated onto an otherwise-empty
		// property element: its object is a fresh blank node carrying
		// one triple per attribute (spec §4.1 "property attributes").
		obj := d.newBlankNode()
		if err := d.consumeElement(); err != nil {
			return err
		}
		d.emit(subj, pred, obj)
		d.reify(reifyIRI, subj, pred, obj)
		for _, attr := range attrs {
			if err := checkLiteralNFC("rdfxml", attr.Value, d.opts.NonNFCFatal); err != nil {
				return err
			}
			d.emit(obj, IRI{Value: attr.Name.Space + attr.Name.Local}, Literal{Lexical: attr.Value, Lang: propLang})
		}
		return nil
	}

	obj, err := d.parsePropertyContent(*frame, propLang, datatype)
	if err != nil {
		return err
	}
	d.emit(subj, pred, obj)
	d.reify(reifyIRI, subj, pred, obj)
	return nil
}

func (d *rdfxmlTripleDecoder) propertyPredicate(start xml.StartElement, frame *rdfxmlFrame) (IRI, error) {
	if start.Name.Space == rdfXMLNS {
		switch start.Name.Local {
		case "li":
			frame.liN++
			return IRI{Value: rdfMemberIRI(frame.liN)}, nil
		case "Description", "RDF", "ID", "about", "bagID", "parseType", "resource", "nodeID", "aboutEach", "aboutEachPrefix":
			return IRI{}, d.forbiddenTermErr("disallowed as property element name: rdf:%s", start.Name.Local)
		}
	}
	return IRI{Value: start.Name.Space + start.Name.Local}, nil
}

// reify emits the four rdf:Statement triples spec'd for property
// elements carrying rdf:ID (spec §4.1 "reification").
func (d *rdfxmlTripleDecoder) reify(subject *IRI, s Term, p IRI, o Term) {
	if subject == nil {
		return
	}
	d.emit(*subject, IRI{Value: rdfTypeIRI}, IRI{Value: rdfStatementIRI})
	d.emit(*subject, IRI{Value: rdfSubjectIRI}, s)
	d.emit(*subject, IRI{Value: rdfPredicateIRI}, p)
	d.emit(*subject, IRI{Value: rdfObjectIRI}, o)
}

// parsePropertyByType implements the three rdf:parseType values. Any
// value other than "Resource" and "Collection" is treated as "Literal"
// per spec, optionally logged when WarnOtherParseTypes is set.
func (d *rdfxmlTripleDecoder) parsePropertyByType(parseType string, start xml.StartElement, subj Term, pred IRI, frame rdfxmlFrame) (Term, error) {
	switch parseType {
	case "Resource":
		obj := d.newBlankNode()
		childFrame := frame
		childFrame.subj = obj
		childFrame.liN = 0
		if err := d.parsePropertyElements(obj, childFrame, start.Name); err != nil {
			return nil, err
		}
		return obj, nil
	case "Collection":
		return d.parseCollection(start, frame)
	default:
		if parseType != "Literal" && d.opts.WarnOtherParseTypes {
			glog.Warningf("rdfxml: unrecognized rdf:parseType=%q on %s, treating as Literal", parseType, pred.Value)
		}
		return d.parseXMLLiteral(start)
	}
}

// parseCollection implements rdf:parseType="Collection": each child is
// a full node element, linked by a fresh rdf:first/rdf:rest chain
// terminated by rdf:nil (spec §4.1 "collection").
func (d *rdfxmlTripleDecoder) parseCollection(start xml.StartElement, frame rdfxmlFrame) (Term, error) {
	var members []xml.StartElement
	depth := 0
	for {
		tok, err := d.dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, WrapParseError("rdfxml", "", -1, fmt.Errorf("%w: %v", errMalformedXML, err))
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				members = append(members, t)
			}
			depth++
		case xml.EndElement:
			if depth == 0 {
				goto done
			}
			depth--
		}
	}
done:

	if len(members) == 0 {
		return IRI{Value: rdfNilIRI}, nil
	}

	head := d.newBlankNode()
	cell := Term(head)
	for i, member := range members {
		memberSubj, err := d.resolveCollectionMember(member, frame)
		if err != nil {
			return nil, err
		}
		if d.opts.AllowRDFTypeRDFList {
			d.emit(cell, IRI{Value: rdfTypeIRI}, IRI{Value: rdfListIRI})
		}
		d.emit(cell, IRI{Value: rdfFirstIRI}, memberSubj)
		if i == len(members)-1 {
			d.emit(cell, IRI{Value: rdfRestIRI}, IRI{Value: rdfNilIRI})
		} else {
			next := d.newBlankNode()
			d.emit(cell, IRI{Value: rdfRestIRI}, next)
			cell = next
		}
	}
	return head, nil
}

// resolveCollectionMember resolves a buffered collection member start
// tag to its subject term. Since xml.Decoder has already consumed the
// member's tokens while scanning for collection boundaries in
// parseCollection, only the member's rdf:about or rdf:nodeID is read
// (otherwise a fresh blank node is used); the member's type, its other
// attributes and its property elements produce no triples.
func (d *rdfxmlTripleDecoder) resolveCollectionMember(start xml.StartElement, frame rdfxmlFrame) (Term, error) {
	if about := rdfAttr(start, "about"); about != nil {
		return IRI{Value: resolveIRI(frame.base, about.Value)}, nil
	}
	if nodeID := rdfAttr(start, "nodeID"); nodeID != nil {
		return BlankNode{ID: nodeID.Value}, nil
	}
	return d.newBlankNode(), nil
}

// parsePropertyContent resolves the CharData-or-nested-node ambiguity
// of a property element with no rdf:resource/nodeID/parseType: a bare
// element whose only content is character data is a literal; one whose
// only content is a single child element is a reference to that
// element's resolved subject.
func (d *rdfxmlTripleDecoder) parsePropertyContent(frame rdfxmlFrame, lang string, datatype *IRI) (Term, error) {
	var text strings.Builder
	for {
		tok, err := d.dec.Token()
		if err != nil {
			if err == io.EOF {
				if err := checkLiteralNFC("rdfxml", text.String(), d.opts.NonNFCFatal); err != nil {
					return nil, err
				}
				return d.literalFrom(text.String(), lang, datatype), nil
			}
			return nil, WrapParseError("rdfxml", "", -1, fmt.Errorf("%w: %v", errMalformedXML, err))
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			childSubj, err := d.resolveNodeSubject(t, frame)
			if err != nil {
				return nil, err
			}
			childFrame := frame
			childFrame.base = xmlBaseAttr(t, frame.base)
			childFrame.lang = xmlLangAttr(t, frame.lang)
			childFrame.liN = 0
			d.recordNamespaces(t)
			if t.Name.Space != rdfXMLNS || t.Name.Local != "Description" {
				d.emit(childSubj, IRI{Value: rdfTypeIRI}, IRI{Value: t.Name.Space + t.Name.Local})
			}
			for _, attr := range propertyAttrs(t) {
				if err := checkLiteralNFC("rdfxml", attr.Value, d.opts.NonNFCFatal); err != nil {
					return nil, err
				}
				d.emit(childSubj, IRI{Value: attr.Name.Space + attr.Name.Local}, Literal{Lexical: attr.Value, Lang: childFrame.lang})
			}
			if err := d.parsePropertyElements(childSubj, childFrame, t.Name); err != nil {
				return nil, err
			}
			if err := d.drainTrailingWhitespace(); err != nil {
				return nil, err
			}
			return childSubj, nil
		case xml.EndElement:
			if err := checkLiteralNFC("rdfxml", text.String(), d.opts.NonNFCFatal); err != nil {
				return nil, err
			}
			return d.literalFrom(text.String(), lang, datatype), nil
		}
	}
}

func (d *rdfxmlTripleDecoder) literalFrom(text string, lang string, datatype *IRI) Literal {
	if datatype != nil {
		return Literal{Lexical: text, Datatype: *datatype}
	}
	if lang != "" {
		return Literal{Lexical: text, Lang: lang}
	}
	return Literal{Lexical: text}
}

// drainTrailingWhitespace consumes tokens up to (and including) the
// enclosing property element's EndElement, tolerating only whitespace
// CharData and Comment/ProcInst between a nested node element and its
// parent's close tag.
func (d *rdfxmlTripleDecoder) drainTrailingWhitespace() error {
	for {
		tok, err := d.dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return WrapParseError("rdfxml", "", -1, fmt.Errorf("%w: %v", errMalformedXML, err))
		}
		switch tok.(type) {
		case xml.EndElement:
			return nil
		case xml.CharData, xml.Comment, xml.ProcInst:
			continue
		default:
			return d.wrapErr("unexpected content after nested node element")
		}
	}
}

// parseXMLLiteral re-serializes the element's subtree as a
// self-contained XML fragment, declaring any namespace prefixes it
// uses (spec §4.1 "parseType=Literal").
func (d *rdfxmlTripleDecoder) parseXMLLiteral(start xml.StartElement) (Term, error) {
	var buf strings.Builder
	declared := map[string]bool{}
	depth := 0
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, WrapParseError("rdfxml", "", -1, fmt.Errorf("%w: %v", errMalformedXML, err))
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			d.writeXMLStartTag(&buf, t, declared)
		case xml.EndElement:
			if depth == 0 {
				return Literal{Lexical: buf.String(), Datatype: IRI{Value: rdfXMLLiteralIRI}}, nil
			}
			depth--
			d.writeXMLEndTag(&buf, t)
		case xml.CharData:
			buf.WriteString(escapeXML(string(t)))
		}
	}
}

func (d *rdfxmlTripleDecoder) writeXMLStartTag(buf *strings.Builder, t xml.StartElement, declared map[string]bool) {
	var pending []string
	tagName := d.qnameFor(t.Name, declared, &pending)
	attrNames := make([]string, len(t.Attr))
	for i, attr := range t.Attr {
		attrNames[i] = d.qnameFor(attr.Name, declared, &pending)
	}

	buf.WriteByte('<')
	buf.WriteString(tagName)
	for _, ns := range pending {
		buf.WriteString(` xmlns:`)
		buf.WriteString(d.nsPrefix[ns])
		buf.WriteString(`="`)
		buf.WriteString(escapeXMLAttr(ns))
		buf.WriteByte('"')
	}
	for i, attr := range t.Attr {
		buf.WriteByte(' ')
		buf.WriteString(attrNames[i])
		buf.WriteString(`="`)
		buf.WriteString(escapeXMLAttr(attr.Value))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')
}

func (d *rdfxmlTripleDecoder) writeXMLEndTag(buf *strings.Builder, t xml.EndElement) {
	buf.WriteString("</")
	buf.WriteString(d.qnameFor(t.Name, map[string]bool{}, nil))
	buf.WriteByte('>')
}

// qnameFor assigns (or reuses) a stable prefix for an XML-literal
// namespace URI. When pending is non-nil, namespaces not yet declared
// within this literal's declared set are appended to it so the caller
// can emit the corresponding xmlns:prefix attribute.
func (d *rdfxmlTripleDecoder) qnameFor(name xml.Name, declared map[string]bool, pending *[]string) string {
	if name.Space == "" {
		return name.Local
	}
	prefix, ok := d.nsPrefix[name.Space]
	if !ok {
		d.nsPrefixSeq++
		prefix = fmt.Sprintf("ns%d", d.nsPrefixSeq)
		d.nsPrefix[name.Space] = prefix
	}
	if pending != nil && !declared[name.Space] {
		declared[name.Space] = true
		*pending = append(*pending, name.Space)
	}
	return prefix + ":" + name.Local
}

// consumeElement discards tokens up to and including the matching
// EndElement, used after rdf:resource / rdf:nodeID short-circuit a
// property element whose content (if any) is ignored.
func (d *rdfxmlTripleDecoder) consumeElement() error {
	depth := 0
	for {
		tok, err := d.dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return WrapParseError("rdfxml", "", -1, fmt.Errorf("%w: %v", errMalformedXML, err))
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// recordNamespaces tracks namespace URI -> prefix for this element's
// own xmlns declarations, used by parseXMLLiteral re-serialization.
func (d *rdfxmlTripleDecoder) recordNamespaces(start xml.StartElement) {
	for _, attr := range start.Attr {
		if attr.Name.Space == xmlnsAttrSpace {
			if _, ok := d.nsPrefix[attr.Value]; !ok {
				d.nsPrefix[attr.Value] = attr.Name.Local
			}
		}
	}
}

var errMalformedXML = fmt.Errorf("malformed XML")

// xmlnsAttrSpace is the literal Name.Space encoding/xml assigns to
// xmlns and xmlns:prefix declaration attributes (it does not resolve
// them to the XML namespace-of-namespaces URI).
const xmlnsAttrSpace = "xmlns"

func xmlAttr(start xml.StartElement, space, local string) string {
	for _, attr := range start.Attr {
		if attr.Name.Space == space && attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}

func xmlBaseAttr(start xml.StartElement, fallback string) string {
	if base := xmlAttr(start, xmlXMLNS, "base"); base != "" {
		return resolveIRI(fallback, base)
	}
	return fallback
}

func xmlLangAttr(start xml.StartElement, fallback string) string {
	if lang := xmlAttr(start, xmlXMLNS, "lang"); lang != "" {
		return lang
	}
	return fallback
}

func rdfAttr(start xml.StartElement, local string) *xml.Attr {
	for i, attr := range start.Attr {
		if attr.Name.Space == rdfXMLNS && attr.Name.Local == local {
			return &start.Attr[i]
		}
	}
	return nil
}

// forbiddenAttr reports the first rdf:aboutEach / rdf:aboutEachPrefix
// attribute found on a start tag, if any. Neither is ever given triple
// semantics (spec §9 Open Questions): both are rejected outright.
func forbiddenAttr(start xml.StartElement) string {
	if rdfAttr(start, "aboutEach") != nil {
		return "aboutEach"
	}
	if rdfAttr(start, "aboutEachPrefix") != nil {
		return "aboutEachPrefix"
	}
	return ""
}

// propertyAttrs returns the non-rdf, non-xml, non-xmlns attributes of
// a start tag: the "rest" attributes spec'd as abbreviated property
// values (spec §4.1 "property attributes").
func propertyAttrs(start xml.StartElement) []xml.Attr {
	var rest []xml.Attr
	for _, attr := range start.Attr {
		switch {
		case attr.Name.Space == rdfXMLNS:
			continue
		case attr.Name.Space == xmlXMLNS:
			continue
		case attr.Name.Space == xmlnsAttrSpace:
			continue
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			continue
		}
		rest = append(rest, attr)
	}
	return rest
}
