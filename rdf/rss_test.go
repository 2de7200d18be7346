package rdf

import (
	"context"
	"strings"
	"testing"
)

// TestRSS2DecodeProducesChannelAndItemTriples exercises the RSS/Atom
// decoder (spec §4.7) through the public ReadAll surface: an RSS 2.0
// document yields a channel typed with rdf:type rss:channel, two items
// typed rss:item, and an rdf:Seq linking the channel to its items in
// document order.
func TestRSS2DecodeProducesChannelAndItemTriples(t *testing.T) {
	doc := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Example Feed</title>
    <link>http://example.org/</link>
    <description>An example feed</description>
    <item>
      <title>First post</title>
      <link>http://example.org/1</link>
      <guid>http://example.org/1</guid>
    </item>
    <item>
      <title>Second post</title>
      <link>http://example.org/2</link>
      <guid>http://example.org/2</guid>
    </item>
  </channel>
</rss>`

	stmts, err := ReadAll(context.Background(), strings.NewReader(doc), FormatRSS2)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(stmts) == 0 {
		t.Fatal("expected at least one triple")
	}

	var channelTypeCount, itemTypeCount, seqMemberCount int
	var channelSubj Term
	itemSubjs := map[string]bool{"http://example.org/1": false, "http://example.org/2": false}
	for _, s := range stmts {
		if s.P.Value == rdfTypeIRI {
			switch o := s.O.(type) {
			case IRI:
				if o.Value == nsRSS10+"channel" {
					channelTypeCount++
					channelSubj = s.S
				}
				if o.Value == nsRSS10+"item" {
					itemTypeCount++
					if iri, ok := s.S.(IRI); ok {
						if _, known := itemSubjs[iri.Value]; known {
							itemSubjs[iri.Value] = true
						}
					}
				}
			}
		}
		if strings.HasPrefix(s.P.Value, rdfXMLNS+"_") {
			seqMemberCount++
		}
	}
	if channelTypeCount != 1 {
		t.Fatalf("expected exactly 1 channel rdf:type triple, got %d", channelTypeCount)
	}
	if itemTypeCount != 2 {
		t.Fatalf("expected exactly 2 item rdf:type triples, got %d", itemTypeCount)
	}
	for iri, seen := range itemSubjs {
		if !seen {
			t.Errorf("item %q never uplifted to its guid/link IRI as subject", iri)
		}
	}
	if seqMemberCount != 2 {
		t.Fatalf("expected an rdf:Seq with 2 rdf:_n members linking the channel's items, got %d", seqMemberCount)
	}
	if channelSubj == nil {
		t.Fatal("channel subject not found")
	}
}

// TestRSS1EncodeRoundTrip serializes a hand-built triple set through
// the RSS 1.0 encoder (spec §4.8 RSSEncoder) and re-parses the
// resulting document, checking the channel/item structure survives
// the round trip.
func TestRSS1EncodeRoundTrip(t *testing.T) {
	channel := IRI{Value: "http://example.org/"}
	item1 := IRI{Value: "http://example.org/1"}
	item2 := IRI{Value: "http://example.org/2"}
	seq := BlankNode{ID: "seq1"}

	stmts := []Statement{
		{S: channel, P: IRI{Value: rdfTypeIRI}, O: IRI{Value: nsRSS10 + "channel"}},
		{S: channel, P: IRI{Value: nsRSS10 + "title"}, O: Literal{Lexical: "Example Feed"}},
		{S: channel, P: IRI{Value: nsRSS10 + "link"}, O: Literal{Lexical: "http://example.org/"}},
		{S: channel, P: IRI{Value: nsRSS10 + "description"}, O: Literal{Lexical: "An example feed"}},
		{S: channel, P: IRI{Value: nsRSS10 + "items"}, O: seq},
		{S: seq, P: IRI{Value: rdfTypeIRI}, O: IRI{Value: rdfSeqIRI}},
		{S: seq, P: IRI{Value: rdfMemberIRI(1)}, O: item1},
		{S: seq, P: IRI{Value: rdfMemberIRI(2)}, O: item2},
		{S: item1, P: IRI{Value: rdfTypeIRI}, O: IRI{Value: nsRSS10 + "item"}},
		{S: item1, P: IRI{Value: nsRSS10 + "title"}, O: Literal{Lexical: "First post"}},
		{S: item1, P: IRI{Value: nsRSS10 + "link"}, O: Literal{Lexical: "http://example.org/1"}},
		{S: item2, P: IRI{Value: rdfTypeIRI}, O: IRI{Value: nsRSS10 + "item"}},
		{S: item2, P: IRI{Value: nsRSS10 + "title"}, O: Literal{Lexical: "Second post"}},
		{S: item2, P: IRI{Value: nsRSS10 + "link"}, O: Literal{Lexical: "http://example.org/2"}},
	}

	var buf strings.Builder
	enc, err := NewWriter(&buf, FormatRSS1)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for _, s := range stmts {
		if err := enc.Write(s); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `rdf:about="http://example.org/"`) {
		t.Errorf("expected channel rdf:about, got:\n%s", out)
	}
	if !strings.Contains(out, "<rdf:Seq>") {
		t.Errorf("expected an rdf:Seq block for items, got:\n%s", out)
	}
	if strings.Count(out, "<rdf:li") != 2 {
		t.Errorf("expected exactly 2 rdf:li entries, got:\n%s", out)
	}
	if !strings.Contains(out, "First post") || !strings.Contains(out, "Second post") {
		t.Errorf("expected both item titles present, got:\n%s", out)
	}

	reparsed, err := ReadAll(context.Background(), strings.NewReader(out), FormatRSS1)
	if err != nil {
		t.Fatalf("re-parsing emitted RSS 1.0 as FormatRSS1: %v", err)
	}
	var itemTypeCount int
	for _, s := range reparsed {
		if s.P.Value == rdfTypeIRI {
			if iri, ok := s.O.(IRI); ok && iri.Value == nsRSS10+"item" {
				itemTypeCount++
			}
		}
	}
	if itemTypeCount != 2 {
		t.Errorf("expected 2 item rdf:type triples after re-parse, got %d: %v", itemTypeCount, reparsed)
	}
}
