package rdf

import (
	"io"
	"strings"
)

// DetectFormat attempts to detect a triple-oriented RDF format from input
// by examining the first few bytes. It returns the detected format and
// whether detection was successful.
func DetectFormat(r io.Reader) (Format, bool) {
	buf := make([]byte, 512)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return "", false
	}
	sample := string(buf[:n])

	sample = strings.TrimSpace(sample)
	if len(sample) == 0 {
		return "", false
	}

	if strings.HasPrefix(sample, "<?xml") || strings.HasPrefix(sample, "<rdf:") || strings.HasPrefix(sample, "<rdf ") {
		return FormatRDFXML, true
	}

	if strings.Contains(sample, "<rss") {
		return FormatRSS2, true
	}
	if strings.Contains(sample, "<feed") {
		return FormatAtom, true
	}

	upper := strings.ToUpper(sample)
	if strings.HasPrefix(upper, "@PREFIX") || strings.HasPrefix(upper, "PREFIX") ||
		strings.HasPrefix(upper, "@BASE") || strings.HasPrefix(upper, "BASE") ||
		strings.HasPrefix(upper, "@VERSION") || strings.HasPrefix(upper, "VERSION") {
		return FormatTurtle, true
	}

	hasNTriplesPattern := (strings.HasPrefix(sample, "<") || strings.Contains(sample, " _:") || strings.HasPrefix(sample, "_:")) &&
		!strings.Contains(sample, "@prefix") && !strings.Contains(sample, "@base") &&
		!strings.Contains(upper, "PREFIX") && !strings.Contains(upper, "BASE") &&
		!strings.Contains(sample, "[") && !strings.Contains(sample, "(")

	if hasNTriplesPattern {
		angleCount := strings.Count(sample, "<")
		if angleCount >= 3 || strings.Contains(sample, " _:") || strings.HasPrefix(sample, "_:") {
			return FormatNTriples, true
		}
	}

	hasTurtlePattern := strings.Contains(sample, "@prefix") || strings.Contains(sample, "@base") ||
		strings.Contains(upper, "PREFIX") || strings.Contains(upper, "BASE") ||
		strings.Contains(sample, "[") || strings.Contains(sample, "(")

	if !hasTurtlePattern && strings.Contains(sample, ":") {
		parts := strings.Fields(sample)
		for _, part := range parts {
			if strings.Contains(part, ":") && !strings.HasPrefix(part, "_:") && !strings.HasPrefix(part, "<") {
				hasTurtlePattern = true
				break
			}
		}
	}

	if hasTurtlePattern {
		return FormatTurtle, true
	}

	return "", false
}

// DetectQuadFormat attempts to detect a quad-capable RDF format (TriG,
// N-Quads) from input.
func DetectQuadFormat(r io.Reader) (Format, bool) {
	buf := make([]byte, 512)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return "", false
	}
	sample := string(buf[:n])

	sample = strings.TrimSpace(sample)
	if len(sample) == 0 {
		return "", false
	}

	upper := strings.ToUpper(sample)
	if strings.Contains(upper, "GRAPH") || strings.Contains(sample, "{") {
		if strings.HasPrefix(upper, "@PREFIX") || strings.HasPrefix(upper, "PREFIX") ||
			strings.HasPrefix(upper, "@BASE") || strings.HasPrefix(upper, "BASE") {
			return FormatTriG, true
		}
		if strings.Contains(sample, "{") && (strings.Contains(sample, "<") || strings.Contains(sample, ":")) {
			return FormatTriG, true
		}
	}

	if strings.HasPrefix(sample, "<") {
		lines := strings.Split(sample, "\n")
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if strings.HasSuffix(line, ".") {
				totalAngles := strings.Count(line, "<")
				if totalAngles >= 4 {
					return FormatNQuads, true
				}
			}
		}
	}

	return "", false
}

// DetectFormatAuto detects either a triple or quad format, trying quad
// syntaxes first since they're more specific (spec §4.6 guess order).
// The reader position is advanced; callers that need to preserve it
// should buffer the input first (see detectFormat in api.go).
func DetectFormatAuto(r io.Reader) (Format, bool) {
	buf := make([]byte, 512)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return "", false
	}
	sample := buf[:n]

	if quadFormat, ok := DetectQuadFormat(strings.NewReader(string(sample))); ok {
		return quadFormat, true
	}
	if tripleFormat, ok := DetectFormat(strings.NewReader(string(sample))); ok {
		return tripleFormat, true
	}
	return "", false
}
