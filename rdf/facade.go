package rdf

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ResolveAnyFormat resolves a canonical format name into a Format,
// the single entry point path/content-type resolution and the CLI
// both go through.
func ResolveAnyFormat(name string) (Format, error) {
	format, ok := ParseFormat(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return format, nil
}

// ResolveAnyFormatFromPath infers a format from a filename extension.
func ResolveAnyFormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl":
		return FormatTurtle, nil
	case ".nt":
		return FormatNTriples, nil
	case ".trig":
		return FormatTriG, nil
	case ".nq":
		return FormatNQuads, nil
	case ".rdf", ".owl":
		return FormatRDFXML, nil
	case ".rss":
		return FormatRSS2, nil
	case ".atom":
		return FormatAtom, nil
	default:
		return "", fmt.Errorf("unknown format for path: %s", path)
	}
}

// ResolveAnyFormatFromContentType infers a format from a MIME content type.
func ResolveAnyFormatFromContentType(contentType string) (Format, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch mediaType {
	case "text/turtle":
		return FormatTurtle, nil
	case "application/n-triples":
		return FormatNTriples, nil
	case "application/trig":
		return FormatTriG, nil
	case "application/n-quads":
		return FormatNQuads, nil
	case "application/rdf+xml":
		return FormatRDFXML, nil
	case "application/rss+xml":
		return FormatRSS2, nil
	case "application/atom+xml":
		return FormatAtom, nil
	default:
		return "", fmt.Errorf("unknown content type: %s", contentType)
	}
}

// ParseAnyAuto parses input using a format inferred from a path or a
// content type, falling back to FormatGuess (spec §4.6) when neither
// resolves.
func ParseAnyAuto(ctx context.Context, r io.Reader, path string, contentType string, opts ...Option) ([]Statement, error) {
	format := FormatGuess
	if path != "" {
		if resolved, err := ResolveAnyFormatFromPath(path); err == nil {
			format = resolved
		}
	} else if contentType != "" {
		if resolved, err := ResolveAnyFormatFromContentType(contentType); err == nil {
			format = resolved
		}
	}
	return ReadAll(ctx, r, format, opts...)
}

// SerializeAnyAuto writes statements using a format inferred from a
// path or a content type; returns an error if neither resolves.
func SerializeAnyAuto(ctx context.Context, w io.Writer, path string, contentType string, stmts []Statement, opts ...Option) error {
	var format Format
	var err error
	if path != "" {
		format, err = ResolveAnyFormatFromPath(path)
	} else if contentType != "" {
		format, err = ResolveAnyFormatFromContentType(contentType)
	} else {
		return fmt.Errorf("unable to infer format")
	}
	if err != nil {
		return err
	}
	return WriteAll(ctx, w, format, stmts, opts...)
}

func hasNamedGraphs(stmts []Statement) bool {
	for _, s := range stmts {
		if s.G != nil {
			return true
		}
	}
	return false
}
