// Package rdf parses and serializes RDF graphs across the syntaxes in
// common use on the web and on disk: RDF/XML, Turtle, TriG, N-Triples,
// N-Quads, and the RSS/Atom syndication dialects lowered to triples.
//
// A World is the process-scoped handle: it interns URIs, constructs
// Parsers and Serializers, and carries the default log sink. Consumers obtain a World, construct a Parser for a named syntax
// (or FormatGuess to auto-detect one from content), register a
// statement callback, and feed bytes with repeated calls to ParseChunk:
//
//	w := rdf.NewWorld()
//	p, err := w.NewParser(rdf.FormatTurtle, nil)
//	if err != nil {
//	    // handle error
//	}
//	p.SetStatementHandler(func(s rdf.Statement) error {
//	    fmt.Println(s)
//	    return nil
//	})
//	if err := p.ParseStart(""); err != nil {
//	    // handle error
//	}
//	if err := p.ParseChunk(data, true); err != nil {
//	    // handle error
//	}
//
// A Serializer is the mirror image: the embedder feeds statements and
// the serializer writes bytes to an IOStream.
//
// For callers who prefer Go's io.Reader/io.Writer idioms over the
// chunked embedder contract, NewReader/NewWriter and the Parse/ReadAll/
// WriteAll helpers drive the same format decoders and encoders directly,
// without going through a Parser or Serializer.
//
// Supported syntaxes: Turtle, TriG, N-Triples, N-Quads, RDF/XML,
// RSS 1.0/2.0 and Atom 1.0 (read-only, lowered to triples), plus an RSS
// 1.0 writer. JSON-LD, DOT, and RDFa are not implemented; GRDDL
// extraction and the Bison/Flex-driven N3/Turtle/mKR front ends are
// likewise out of scope.
package rdf
