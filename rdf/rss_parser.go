package rdf

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

// Namespace URIs the RSS/Atom field-mapping table unifies (spec §4.7:
// "a per-namespace override table unifying Atom 0.3/1.0, RSS 0.9x/
// 1.0/1.1/2.0, Dublin Core, content:encoded, iTunes podcast extensions
// into one field set").
const (
	nsRSS10          = "http://purl.org/rss/1.0/"
	nsContentModule  = "http://purl.org/rss/1.0/modules/content/"
	nsDC             = "http://purl.org/dc/elements/1.1/"
	nsAtom03         = "http://purl.org/atom/ns#"
	nsAtom10         = "http://www.w3.org/2005/Atom"
	nsItunesPodcast  = "http://www.itunes.com/dtds/podcast-1.0.dtd"
)

type rssElementKind int

const (
	rssKindIgnore rssElementKind = iota
	rssKindChannel
	rssKindItem
	rssKindBlock
	rssKindField
)

type rssElementSpec struct {
	kind  rssElementKind
	field string
	block RSSNodeType
}

// rssElementTable is the per-namespace override table spec §4.7 names:
// every element the parser recognizes, across every dialect in scope,
// collapsed onto one canonical field/block set.
var rssElementTable = map[xml.Name]rssElementSpec{
	{Space: "", Local: "rss"}:             {kind: rssKindIgnore},
	{Space: rdfXMLNS, Local: "RDF"}:       {kind: rssKindIgnore},
	{Space: nsAtom10, Local: "feed"}:      {kind: rssKindIgnore},
	{Space: nsAtom03, Local: "feed"}:      {kind: rssKindIgnore},

	{Space: "", Local: "channel"}:     {kind: rssKindChannel},
	{Space: nsRSS10, Local: "channel"}: {kind: rssKindChannel},

	{Space: "", Local: "item"}:        {kind: rssKindItem},
	{Space: nsRSS10, Local: "item"}:   {kind: rssKindItem},
	{Space: nsAtom10, Local: "entry"}: {kind: rssKindItem},
	{Space: nsAtom03, Local: "entry"}: {kind: rssKindItem},

	{Space: "", Local: "image"}:        {kind: rssKindBlock, block: RSSNodeImage},
	{Space: nsRSS10, Local: "image"}:   {kind: rssKindBlock, block: RSSNodeImage},
	{Space: "", Local: "textInput"}:    {kind: rssKindBlock, block: RSSNodeTextInput},
	{Space: "", Local: "textinput"}:    {kind: rssKindBlock, block: RSSNodeTextInput},
	{Space: nsRSS10, Local: "textinput"}: {kind: rssKindBlock, block: RSSNodeTextInput},

	{Space: "", Local: "author"}:      {kind: rssKindBlock, block: RSSNodeAuthor},
	{Space: nsAtom10, Local: "author"}: {kind: rssKindBlock, block: RSSNodeAuthor},
	{Space: nsAtom03, Local: "author"}: {kind: rssKindBlock, block: RSSNodeAuthor},

	{Space: "", Local: "category"}:      {kind: rssKindBlock, block: RSSNodeCategory},
	{Space: nsAtom10, Local: "category"}: {kind: rssKindBlock, block: RSSNodeCategory},

	{Space: "", Local: "enclosure"}: {kind: rssKindBlock, block: RSSNodeEnclosure},

	{Space: nsAtom10, Local: "link"}: {kind: rssKindBlock, block: RSSNodeLink},
	{Space: nsAtom03, Local: "link"}: {kind: rssKindBlock, block: RSSNodeLink},

	{Space: "", Local: "source"}: {kind: rssKindBlock, block: RSSNodeSource},

	{Space: "", Local: "title"}:        {kind: rssKindField, field: "title"},
	{Space: nsRSS10, Local: "title"}:   {kind: rssKindField, field: "title"},
	{Space: nsAtom10, Local: "title"}:  {kind: rssKindField, field: "title"},
	{Space: nsAtom03, Local: "title"}:  {kind: rssKindField, field: "title"},

	{Space: "", Local: "link"}:       {kind: rssKindField, field: "link"},
	{Space: nsRSS10, Local: "link"}:  {kind: rssKindField, field: "link"},

	{Space: "", Local: "description"}:      {kind: rssKindField, field: "description"},
	{Space: nsRSS10, Local: "description"}: {kind: rssKindField, field: "description"},
	{Space: nsAtom10, Local: "summary"}:    {kind: rssKindField, field: "description"},
	{Space: nsAtom10, Local: "subtitle"}:   {kind: rssKindField, field: "description"},
	{Space: nsAtom03, Local: "tagline"}:    {kind: rssKindField, field: "description"},

	{Space: nsAtom10, Local: "content"}:       {kind: rssKindField, field: "content"},
	{Space: nsContentModule, Local: "encoded"}: {kind: rssKindField, field: "content"},

	{Space: "", Local: "pubDate"}:        {kind: rssKindField, field: "date"},
	{Space: nsAtom10, Local: "published"}: {kind: rssKindField, field: "date"},
	{Space: nsAtom10, Local: "updated"}:   {kind: rssKindField, field: "date"},
	{Space: nsAtom03, Local: "issued"}:    {kind: rssKindField, field: "date"},
	{Space: nsAtom03, Local: "modified"}:  {kind: rssKindField, field: "date"},
	{Space: nsDC, Local: "date"}:          {kind: rssKindField, field: "date"},
	{Space: "", Local: "lastBuildDate"}:   {kind: rssKindField, field: "date"},

	{Space: "", Local: "guid"}:        {kind: rssKindField, field: "guid"},
	{Space: nsAtom10, Local: "id"}:    {kind: rssKindField, field: "guid"},
	{Space: nsAtom03, Local: "id"}:    {kind: rssKindField, field: "guid"},

	{Space: nsDC, Local: "creator"}:       {kind: rssKindField, field: "creator"},
	{Space: "", Local: "managingEditor"}:  {kind: rssKindField, field: "creator"},
	{Space: "", Local: "name"}:            {kind: rssKindField, field: "name"},
	{Space: nsRSS10, Local: "name"}:       {kind: rssKindField, field: "name"},

	{Space: "", Local: "language"}: {kind: rssKindField, field: "language"},
	{Space: nsDC, Local: "language"}: {kind: rssKindField, field: "language"},

	{Space: "", Local: "copyright"}: {kind: rssKindField, field: "rights"},
	{Space: nsDC, Local: "rights"}:  {kind: rssKindField, field: "rights"},
	{Space: nsAtom10, Local: "rights"}: {kind: rssKindField, field: "rights"},

	{Space: "", Local: "webMaster"}: {kind: rssKindField, field: "webMaster"},
	{Space: "", Local: "generator"}: {kind: rssKindField, field: "generator"},
	{Space: nsAtom10, Local: "generator"}: {kind: rssKindField, field: "generator"},
	{Space: "", Local: "ttl"}:       {kind: rssKindField, field: "ttl"},

	{Space: "", Local: "url"}:      {kind: rssKindField, field: "url"},
	{Space: nsRSS10, Local: "url"}: {kind: rssKindField, field: "url"},
	{Space: "", Local: "width"}:    {kind: rssKindField, field: "width"},
	{Space: "", Local: "height"}:   {kind: rssKindField, field: "height"},

	{Space: nsItunesPodcast, Local: "summary"}:  {kind: rssKindField, field: "itunesSummary"},
	{Space: nsItunesPodcast, Local: "author"}:   {kind: rssKindField, field: "itunesAuthor"},
	{Space: nsItunesPodcast, Local: "duration"}: {kind: rssKindField, field: "itunesDuration"},
	{Space: nsItunesPodcast, Local: "explicit"}: {kind: rssKindField, field: "itunesExplicit"},
}

// rssDateLayouts are the date formats spec §4.7's "uplift" pass
// recognizes across the syndication dialects in scope: RFC 822 (RSS),
// RFC 3339 (Atom), and a couple of the sloppy variants real feeds ship.
var rssDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

// normalizeToISO8601 rewrites s to RFC 3339 (a profile of ISO 8601) if
// it matches a known feed date layout, the date half of spec §4.7's
// uplift pass.
func normalizeToISO8601(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range rssDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), true
		}
	}
	return s, false
}

const rssSyntheticSubjectPrefix = "rssgenid"

// rssParseFrame tracks one open element while walking the document.
type rssParseFrame struct {
	kind    rssElementKind
	field   string
	node    *RSSNode // set for channel/item/block frames
	textBuf *StringBuffer
	lang    string
}

type rssParser struct {
	feed     *RSSFeed
	stack    []*rssParseFrame
	blankSeq int
}

func (p *rssParser) newSyntheticSubject() BlankNode {
	p.blankSeq++
	return BlankNode{ID: fmt.Sprintf("%s%d", rssSyntheticSubjectPrefix, p.blankSeq)}
}

func isSyntheticRSSSubject(t Term) bool {
	bn, ok := t.(BlankNode)
	return ok && strings.HasPrefix(bn.ID, rssSyntheticSubjectPrefix)
}

// subjectFromAttrs resolves rdf:about (RSS 1.0's node identity) or
// synthesizes a placeholder blank node promoted later in uplift.
func (p *rssParser) subjectFromAttrs(start xml.StartElement) Term {
	for _, attr := range start.Attr {
		if attr.Name.Space == rdfXMLNS && attr.Name.Local == "about" {
			return IRI{Value: attr.Value}
		}
	}
	return p.newSyntheticSubject()
}

func (p *rssParser) top() *rssParseFrame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// currentNode finds the nearest enclosing channel/item/block frame, so
// a field read inside it is recorded against the right node.
func (p *rssParser) currentNode() *RSSNode {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].node != nil {
			return p.stack[i].node
		}
	}
	return nil
}

func (p *rssParser) onStart(start xml.StartElement, loc Locator) error {
	spec, ok := rssElementTable[start.Name]
	if !ok {
		// Unrecognized element: keep the stack balanced, but remember
		// nothing from it - its content is lost, matching the tag-soup
		// reader's "recognize known boundaries, ignore the rest" shape.
		p.stack = append(p.stack, &rssParseFrame{kind: rssKindIgnore})
		return nil
	}
	switch spec.kind {
	case rssKindChannel:
		node := NewRSSNode(RSSNodeChannel, p.subjectFromAttrs(start))
		p.feed.Channel = node
		p.stack = append(p.stack, &rssParseFrame{kind: spec.kind, node: node})
	case rssKindItem:
		node := NewRSSNode(RSSNodeItem, p.subjectFromAttrs(start))
		p.feed.Items = append(p.feed.Items, node)
		p.stack = append(p.stack, &rssParseFrame{kind: spec.kind, node: node})
	case rssKindBlock:
		node := NewRSSNode(spec.block, p.subjectFromAttrs(start))
		for _, attr := range start.Attr {
			if attr.Name.Space == rdfXMLNS {
				continue
			}
			switch attr.Name.Local {
			case "href", "url", "length", "type", "rel":
				node.AddField(attr.Name.Local, RSSFieldValue{Value: attr.Value, IsURI: attr.Name.Local == "href" || attr.Name.Local == "url"})
			}
		}
		if parent := p.currentNode(); parent != nil {
			parent.AddBlock(node)
		}
		p.stack = append(p.stack, &rssParseFrame{kind: spec.kind, node: node, textBuf: NewStringBuffer()})
	case rssKindField:
		var lang string
		for _, attr := range start.Attr {
			if attr.Name.Space == xmlXMLNS && attr.Name.Local == "lang" {
				lang = attr.Value
			}
		}
		p.stack = append(p.stack, &rssParseFrame{kind: spec.kind, field: spec.field, textBuf: NewStringBuffer(), lang: lang})
	default:
		p.stack = append(p.stack, &rssParseFrame{kind: spec.kind})
	}
	return nil
}

func (p *rssParser) onCharData(cd xml.CharData, loc Locator) error {
	if top := p.top(); top != nil && top.textBuf != nil {
		top.textBuf.Write(cd)
	}
	return nil
}

func (p *rssParser) onEnd(end xml.EndElement, loc Locator) error {
	if len(p.stack) == 0 {
		return nil
	}
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	if top.kind == rssKindField {
		text := strings.TrimSpace(top.textBuf.String())
		if text == "" {
			return nil
		}
		if parent := p.currentNode(); parent != nil {
			parent.AddField(top.field, RSSFieldValue{Value: text, Lang: top.lang})
		}
	}
	if top.kind == rssKindBlock && top.node.Type == RSSNodeLink {
		// Bare text inside a <link> block (RSS 0.9x "<link>uri</link>"
		// mistakenly captured as a block by a namespace alias) still
		// carries its URI as text content.
		if text := strings.TrimSpace(top.textBuf.String()); text != "" {
			top.node.AddField("href", RSSFieldValue{Value: text, IsURI: true})
		}
	}
	return nil
}

// parseRSSAtom runs the tag-soup reader (spec §4.7) over r and returns
// the typed-node model it built, after the uplift pass.
func parseRSSAtom(r io.Reader, baseURI string) (*RSSFeed, error) {
	p := &rssParser{feed: &RSSFeed{}}
	driver := NewSAX2Driver(r, baseURI, SAX2Handler{
		StartElement: p.onStart,
		CharData:     p.onCharData,
		EndElement:   p.onEnd,
	})
	if err := driver.Run(); err != nil {
		return nil, err
	}
	upliftFeed(p.feed)
	return p.feed, nil
}

// upliftFeed rewrites dates to ISO-8601 and promotes each node's
// placeholder subject to its guid/link IRI once known (spec §4.7
// "uplift" pass).
func upliftFeed(feed *RSSFeed) {
	if feed.Channel != nil {
		upliftNode(feed.Channel)
	}
	for _, item := range feed.Items {
		upliftNode(item)
	}
}

func upliftNode(n *RSSNode) {
	if vs := n.fields["date"]; vs != nil {
		for i, v := range vs {
			if iso, ok := normalizeToISO8601(v.Value); ok {
				vs[i].Value = iso
			}
		}
	}
	if isSyntheticRSSSubject(n.Subject) {
		if guid, ok := n.FirstField("guid"); ok {
			n.Subject = IRI{Value: guid.Value}
		} else if link, ok := n.FirstField("link"); ok {
			n.Subject = IRI{Value: link.Value}
		} else if href, ok := n.FirstField("href"); ok {
			n.Subject = IRI{Value: href.Value}
		}
	}
	for _, b := range n.Blocks {
		upliftNode(b)
	}
}

// rssFieldPredicate maps a canonical field name to its output
// predicate IRI.
func rssFieldPredicate(field string) string {
	switch field {
	case "title", "link", "description", "webMaster", "generator", "ttl", "url", "name", "width", "height", "href", "rel", "length", "type":
		return nsRSS10 + field
	case "content":
		return nsContentModule + "encoded"
	case "date":
		return nsDC + "date"
	case "guid":
		return nsRSS10 + "guid"
	case "creator":
		return nsDC + "creator"
	case "language":
		return nsDC + "language"
	case "rights":
		return nsDC + "rights"
	case "itunesSummary":
		return nsItunesPodcast + "summary"
	case "itunesAuthor":
		return nsItunesPodcast + "author"
	case "itunesDuration":
		return nsItunesPodcast + "duration"
	case "itunesExplicit":
		return nsItunesPodcast + "explicit"
	default:
		return nsRSS10 + field
	}
}

func rssBlockPredicate(t RSSNodeType) string {
	switch t {
	case RSSNodeImage:
		return nsRSS10 + "image"
	case RSSNodeTextInput:
		return nsRSS10 + "textinput"
	case RSSNodeAuthor:
		return nsDC + "creator"
	case RSSNodeCategory:
		return nsRSS10 + "category"
	case RSSNodeEnclosure:
		return nsRSS10 + "enclosure"
	case RSSNodeLink:
		return nsRSS10 + "link"
	case RSSNodeSource:
		return nsRSS10 + "source"
	default:
		return nsRSS10 + "item"
	}
}

// EmitTriples walks the typed-node list (channel, items, and every
// nested block) and produces one triple per field value and per
// block/type relationship, plus an rdf:Seq linking the channel to its
// items in document order (spec §4.7: "emission walks the typed-node
// list producing (s,p,o) triples with rdf:Seq for the items list";
// spec §8's gapless rdf:li numbering invariant applies to this Seq).
func (feed *RSSFeed) EmitTriples(emit func(Triple)) {
	blankSeq := 0
	freshBlank := func() BlankNode {
		blankSeq++
		return BlankNode{ID: fmt.Sprintf("rssseq%d", blankSeq)}
	}

	if feed.Channel != nil {
		emit(Triple{S: feed.Channel.Subject, P: IRI{Value: rdfTypeIRI}, O: IRI{Value: nsRSS10 + "channel"}})
		emitRSSNode(feed.Channel, emit)
		if len(feed.Items) > 0 {
			seq := freshBlank()
			emit(Triple{S: feed.Channel.Subject, P: IRI{Value: nsRSS10 + "items"}, O: seq})
			emit(Triple{S: seq, P: IRI{Value: rdfTypeIRI}, O: IRI{Value: rdfSeqIRI}})
			for i, item := range feed.Items {
				emit(Triple{S: seq, P: IRI{Value: rdfMemberIRI(i + 1)}, O: item.Subject})
			}
		}
	}
	for _, item := range feed.Items {
		emit(Triple{S: item.Subject, P: IRI{Value: rdfTypeIRI}, O: IRI{Value: nsRSS10 + "item"}})
		emitRSSNode(item, emit)
	}
}

func emitRSSNode(n *RSSNode, emit func(Triple)) {
	for _, field := range n.FieldOrder() {
		pred := rssFieldPredicate(field)
		for _, v := range n.Field(field) {
			var obj Term
			if v.IsURI {
				obj = IRI{Value: v.Value}
			} else if v.Datatype != "" {
				obj = Literal{Lexical: v.Value, Datatype: IRI{Value: v.Datatype}}
			} else {
				obj = Literal{Lexical: v.Value, Lang: v.Lang}
			}
			emit(Triple{S: n.Subject, P: IRI{Value: pred}, O: obj})
		}
	}
	for _, block := range n.Blocks {
		emit(Triple{S: n.Subject, P: IRI{Value: rssBlockPredicate(block.Type)}, O: block.Subject})
		emit(Triple{S: block.Subject, P: IRI{Value: rdfTypeIRI}, O: IRI{Value: nsRSS10 + block.Type.String()}})
		emitRSSNode(block, emit)
	}
	for _, t := range n.Triples {
		emit(Triple{S: n.Subject, P: t.P, O: t.O})
	}
}

// rssTripleDecoder adapts the whole-document RSS/Atom parse to the
// streaming TripleDecoder interface (parser.go), the same
// parse-everything-up-front shape rdfxml_parser.go uses for RDF/XML.
type rssTripleDecoder struct {
	triples []Triple
	pos     int
	emitted int64
	opts    DecodeOptions
}

func newRSSTripleDecoderWithOptions(r io.Reader, opts DecodeOptions) (TripleDecoder, error) {
	opts = normalizeDecodeOptions(opts)
	feed, err := parseRSSAtom(r, opts.BaseURI)
	if err != nil {
		return nil, WrapParseError("rss", "", -1, fmt.Errorf("%w: %v", errMalformedXML, err))
	}
	var triples []Triple
	feed.EmitTriples(func(t Triple) { triples = append(triples, t) })
	return &rssTripleDecoder{triples: triples, opts: opts}, nil
}

func (d *rssTripleDecoder) Next() (Triple, error) {
	if d.pos >= len(d.triples) {
		return Triple{}, io.EOF
	}
	t := d.triples[d.pos]
	d.pos++
	d.emitted++
	if d.opts.MaxTriples > 0 && d.emitted > d.opts.MaxTriples {
		return Triple{}, WrapParseError("rss", "", -1, ErrTripleLimitExceeded)
	}
	return t, nil
}

func (d *rssTripleDecoder) Err() error  { return nil }
func (d *rssTripleDecoder) Close() error { return nil }
