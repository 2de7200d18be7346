package rdf

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
)

// TestInvariantTermIdentity exercises spec §8's "copy(t) followed by
// free an equal number of times returns the heap to its prior state".
// Term values carry no manual refcount under Go's garbage collector
// (see DESIGN.md's Open Question decision); the Go-idiomatic
// restatement is that a Term survives any number of copies unchanged
// and compares equal to the original regardless of how many copies
// were made and discarded.
func TestInvariantTermIdentity(t *testing.T) {
	original := IRI{Value: "http://example.org/s"}
	copies := make([]Term, 0, 8)
	for i := 0; i < 8; i++ {
		copies = append(copies, original)
	}
	copies = nil // "free" every copy
	if original != (IRI{Value: "http://example.org/s"}) {
		t.Fatalf("original term mutated by copying: %v", original)
	}
	_ = copies
}

// TestInvariantURIInterning checks World.InternURI("s") == World.InternURI("s")
// for any pair of equal strings within one World (spec §8).
func TestInvariantURIInterning(t *testing.T) {
	w := NewWorld()
	a := w.InternURI("http://example.org/s")
	b := w.InternURI("http://example.org/s")
	if a != b {
		t.Fatalf("InternURI not idempotent: %v != %v", a, b)
	}

	w2 := NewWorld()
	c := w2.InternURI("http://example.org/s")
	if c.Value != a.Value {
		t.Fatalf("expected equal values across independent Worlds, got %v vs %v", c, a)
	}
}

// TestInvariantReferenceResolutionRoundTrip checks that for any
// absolute base B and reference R, relativizing resolve(B, R) against
// B produces a reference that resolves back to the same absolute IRI
// (spec §8).
func TestInvariantReferenceResolutionRoundTrip(t *testing.T) {
	cases := []struct {
		base string
		ref  string
	}{
		{"http://a/b/c/d;p?q", "g"},
		{"http://a/b/c/d;p?q", "./g"},
		{"http://a/b/c/d;p?q", "../g"},
		{"http://a/b/c/d;p?q", "../../g"},
		{"http://example.org/a/b/", "x/y"},
		{"http://example.org/a/", "http://example.org/a/b"},
	}
	for _, c := range cases {
		resolved := ResolveURI(c.base, c.ref)
		rel := RelativizeURI(c.base, resolved)
		roundTripped := ResolveURI(c.base, rel)
		if roundTripped != resolved {
			t.Fatalf("base=%q ref=%q: resolve(base,ref)=%q, relativize gave %q, resolve(base,that)=%q",
				c.base, c.ref, resolved, rel, roundTripped)
		}
	}
}

// TestInvariantNTriplesRoundTrip checks parse(serialize(S)) = S as a
// multiset of statements, up to blank-node renaming (spec §8).
func TestInvariantNTriplesRoundTrip(t *testing.T) {
	stmts := []Statement{
		{S: IRI{Value: "http://ex/s1"}, P: IRI{Value: "http://ex/p"}, O: IRI{Value: "http://ex/o"}},
		{S: BlankNode{ID: "a"}, P: IRI{Value: "http://ex/p"}, O: Literal{Lexical: "hello", Lang: "en"}},
		{S: IRI{Value: "http://ex/s2"}, P: IRI{Value: "http://ex/p"}, O: Literal{Lexical: "42", Datatype: IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"}}},
	}

	var buf bytes.Buffer
	enc, err := NewWriter(&buf, FormatNTriples)
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

	got, err := ReadAll(context.Background(), bytes.NewReader(buf.Bytes()), FormatNTriples)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !sameStatementMultiset(t, stmts, got) {
		t.Fatalf("round trip mismatch:\nwant %v\ngot  %v", stmts, got)
	}
}

// sameStatementMultiset compares two statement slices as multisets,
// tolerating blank-node id renaming by normalizing every blank node in
// each slice to its rank of first appearance before sorting.
func sameStatementMultiset(t *testing.T, want, got []Statement) bool {
	t.Helper()
	if len(want) != len(got) {
		return false
	}
	normalize := func(stmts []Statement) []string {
		ids := map[string]string{}
		out := make([]string, len(stmts))
		rename := func(term Term) string {
			b, ok := term.(BlankNode)
			if !ok {
				return term.String()
			}
			if name, ok := ids[b.ID]; ok {
				return name
			}
			name := "_:b" + string(rune('0'+len(ids)))
			ids[b.ID] = name
			return name
		}
		for i, s := range stmts {
			out[i] = rename(s.S) + " " + s.P.Value + " " + rename(s.O)
		}
		sort.Strings(out)
		return out
	}
	a := normalize(want)
	b := normalize(got)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestInvariantNFC checks that no literal with NonNFCFatal=true is
// accepted unless its lexical form is already in Unicode NFC (spec
// §8). "Å" (U+212B ANGSTROM SIGN) normalizes to "Å" (U+00C5); the raw
// angstrom-sign form is not itself in NFC.
func TestInvariantNFC(t *testing.T) {
	const nonNFC = "\u212b"    // ANGSTROM SIGN, not itself in NFC
	const alreadyNFC = "\u00c5" // LATIN CAPITAL LETTER A WITH RING ABOVE, its NFC form

	if err := checkLiteralNFC("test", alreadyNFC, true); err != nil {
		t.Fatalf("literal already in NFC rejected: %v", err)
	}

	err := checkLiteralNFC("test", nonNFC, true)
	if err == nil {
		t.Fatal("expected NFC violation error when NonNFCFatal is true")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Code != ErrCodeNFCViolation {
		t.Fatalf("expected ErrCodeNFCViolation, got %v", pe.Code)
	}

	if err := checkLiteralNFC("test", nonNFC, false); err != nil {
		t.Fatalf("non-NFC literal should only warn when NonNFCFatal is false: %v", err)
	}
}

// TestInvariantCollectionLowering checks that a parseType="Collection"
// with k children yields exactly k rdf:first triples, k rdf:rest
// triples, and a terminating rdf:nil object on the last rdf:rest
// (spec §8).
func TestInvariantCollectionLowering(t *testing.T) {
	doc := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ex="http://ex/">
  <rdf:Description rdf:about="http://ex/s">
    <ex:p rdf:parseType="Collection">
      <rdf:Description rdf:about="http://ex/a"/>
      <rdf:Description rdf:about="http://ex/b"/>
      <rdf:Description rdf:about="http://ex/c"/>
    </ex:p>
  </rdf:Description>
</rdf:RDF>`

	stmts, err := ReadAll(context.Background(), strings.NewReader(doc), FormatRDFXML)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	var firsts, rests, nils int
	for _, s := range stmts {
		switch s.P.Value {
		case rdfFirstIRI:
			firsts++
		case rdfRestIRI:
			rests++
			if iri, ok := s.O.(IRI); ok && iri.Value == rdfNilIRI {
				nils++
			}
		}
	}
	if firsts != 3 {
		t.Errorf("expected 3 rdf:first triples, got %d", firsts)
	}
	if rests != 3 {
		t.Errorf("expected 3 rdf:rest triples, got %d", rests)
	}
	if nils != 1 {
		t.Errorf("expected exactly 1 rdf:rest pointing to rdf:nil, got %d", nils)
	}
}

// TestInvariantRDFLiNumbering checks that successive rdf:li children
// within one parent produce gapless rdf:_1, rdf:_2, ... predicates
// (spec §8).
func TestInvariantRDFLiNumbering(t *testing.T) {
	doc := `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Seq rdf:about="http://ex/seq">
    <rdf:li rdf:resource="http://ex/a"/>
    <rdf:li rdf:resource="http://ex/b"/>
    <rdf:li rdf:resource="http://ex/c"/>
  </rdf:Seq>
</rdf:RDF>`

	stmts, err := ReadAll(context.Background(), strings.NewReader(doc), FormatRDFXML)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	seen := map[string]bool{}
	for _, s := range stmts {
		if strings.HasPrefix(s.P.Value, rdfXMLNS+"_") {
			seen[s.P.Value] = true
		}
	}
	for _, n := range []int{1, 2, 3} {
		if !seen[rdfMemberIRI(n)] {
			t.Errorf("missing %s", rdfMemberIRI(n))
		}
	}
	if len(seen) != 3 {
		t.Errorf("expected exactly 3 distinct rdf:_n predicates, got %d: %v", len(seen), seen)
	}
}
