package rdf

import (
	"bytes"
	"strings"
)

// parserFactory is one entry in the guess parser's registry (spec
// §4.6): a format the guess parser can recognize by MIME type, URL
// suffix, or content sniff.
type parserFactory struct {
	format    Format
	mimeTypes []string
	suffixes  []string
}

var guessRegistry = []parserFactory{
	{format: FormatTurtle, mimeTypes: []string{"text/turtle", "application/x-turtle"}, suffixes: []string{".ttl"}},
	{format: FormatTriG, mimeTypes: []string{"application/trig"}, suffixes: []string{".trig"}},
	{format: FormatNTriples, mimeTypes: []string{"application/n-triples"}, suffixes: []string{".nt"}},
	{format: FormatNQuads, mimeTypes: []string{"application/n-quads"}, suffixes: []string{".nq"}},
	{format: FormatRDFXML, mimeTypes: []string{"application/rdf+xml"}, suffixes: []string{".rdf"}},
	{format: FormatRSS2, mimeTypes: []string{"application/rss+xml"}, suffixes: []string{".rss"}},
	{format: FormatAtom, mimeTypes: []string{"application/atom+xml"}, suffixes: []string{".atom"}},
}

// GuessHint carries the out-of-band signals the guess parser scores
// alongside content sniffing (spec §4.6: score using "(a) the MIME
// type if known, (b) the URL suffix, (c) a content-sniffing scan").
type GuessHint struct {
	MIMEType  string
	URLSuffix string
}

// scoreFormat scores every registered factory against hint and head
// (the buffered start of the document) and returns the highest
// scorer. An explicit MIME type outweighs a URL suffix, which
// outweighs content sniffing, since a caller-supplied Content-Type is
// the most reliable of the three signals when present.
func scoreFormat(hint GuessHint, head []byte) (Format, bool) {
	mime := strings.ToLower(strings.TrimSpace(hint.MIMEType))
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	suffix := strings.ToLower(hint.URLSuffix)

	var best Format
	bestScore := 0
	for _, f := range guessRegistry {
		score := 0
		for _, m := range f.mimeTypes {
			if mime != "" && m == mime {
				score += 100
			}
		}
		for _, s := range f.suffixes {
			if suffix != "" && s == suffix {
				score += 10
			}
		}
		if score > bestScore {
			best, bestScore = f.format, score
		}
	}
	if bestScore > 0 {
		return best, true
	}

	if sniffed, ok := DetectFormatAuto(bytes.NewReader(head)); ok {
		return sniffed, true
	}
	return "", false
}
