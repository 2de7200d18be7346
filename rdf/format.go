package rdf

import "strings"

// Format identifies RDF serialization/feed formats.
type Format string

const (
	// FormatAuto requests syntax auto-detection (spec §4.6 guess parser).
	FormatAuto     Format = ""
	FormatGuess    Format = "guess"
	FormatTurtle   Format = "turtle"
	FormatTriG     Format = "trig"
	FormatNTriples Format = "ntriples"
	FormatNQuads   Format = "nquads"
	FormatRDFXML   Format = "rdfxml"
	FormatRSS1     Format = "rss1"
	FormatRSS2     Format = "rss2"
	FormatAtom     Format = "atom"
)

// ParseFormat normalizes a format string. JSON-LD, DOT, and RDFa are
// intentionally not recognized: see DESIGN.md.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return FormatAuto, true
	case "guess":
		return FormatGuess, true
	case "turtle", "ttl":
		return FormatTurtle, true
	case "trig":
		return FormatTriG, true
	case "ntriples", "nt":
		return FormatNTriples, true
	case "nquads", "nq":
		return FormatNQuads, true
	case "rdfxml", "rdf", "xml":
		return FormatRDFXML, true
	case "rss1", "rss1.0", "rdf/rss":
		return FormatRSS1, true
	case "rss2", "rss2.0", "rss":
		return FormatRSS2, true
	case "atom", "atom1.0":
		return FormatAtom, true
	default:
		return "", false
	}
}
