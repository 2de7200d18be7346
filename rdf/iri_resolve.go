package rdf

import (
	"net/url"
	"path/filepath"
	"strings"
)

// resolveIRI resolves a relative IRI against a base IRI according to RFC 3986.
func resolveIRI(baseStr, relative string) string {
	// Use Go's net/url for proper RFC 3986 resolution.
	baseURL, err := url.Parse(baseStr)
	if err != nil {
		// Fallback to simple concatenation if base is invalid.
		if strings.HasSuffix(baseStr, "/") {
			return baseStr + relative
		}
		lastSlash := strings.LastIndex(baseStr, "/")
		if lastSlash >= 0 {
			return baseStr[:lastSlash+1] + relative
		}
		return baseStr + "/" + relative
	}

	relURL, err := url.Parse(relative)
	if err != nil {
		// Fallback if relative is invalid.
		if strings.HasSuffix(baseStr, "/") {
			return baseStr + relative
		}
		lastSlash := strings.LastIndex(baseStr, "/")
		if lastSlash >= 0 {
			return baseStr[:lastSlash+1] + relative
		}
		return baseStr + "/" + relative
	}

	// If relative URL has a scheme, it's absolute - return as-is.
	if relURL.Scheme != "" {
		return relative
	}

	resolved := baseURL.ResolveReference(relURL)
	return resolved.String()
}

// ResolveURI is the public entry point to the URI engine's forward
// direction (spec §4.5): resolve reference against base per RFC 3986.
func ResolveURI(base, reference string) string {
	return resolveIRI(base, reference)
}

// RelativizeURI computes the minimal reference that, resolved against
// base, reproduces target (spec §4.5, and the spec §8 round-trip
// invariant this makes testable). If base and target don't share a
// scheme and authority there is no useful relative form, so target is
// returned unchanged - any non-empty reference resolves through an
// unrelated base to itself only when it already carries a scheme.
func RelativizeURI(base, target string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return target
	}
	targetURL, err := url.Parse(target)
	if err != nil {
		return target
	}
	if baseURL.Scheme != targetURL.Scheme || baseURL.Host != targetURL.Host {
		return target
	}

	baseDir := baseURL.Path
	if idx := strings.LastIndex(baseDir, "/"); idx >= 0 {
		baseDir = baseDir[:idx+1]
	} else {
		baseDir = ""
	}

	rel := relativizePath(baseDir, targetURL.Path)
	if rel == "" {
		rel = "."
	}
	if targetURL.RawQuery != "" {
		rel += "?" + targetURL.RawQuery
	}
	if targetURL.Fragment != "" {
		rel += "#" + targetURL.EscapedFragment()
	}
	return rel
}

// relativizePath walks up from baseDir ("/a/b/" style, trailing slash)
// to the common ancestor of targetPath and back down, the classic
// dot-segment relativization RFC 3986 describes resolve() inverting.
func relativizePath(baseDir, targetPath string) string {
	baseSegs := strings.Split(strings.Trim(baseDir, "/"), "/")
	if len(baseSegs) == 1 && baseSegs[0] == "" {
		baseSegs = nil
	}
	targetSegs := strings.Split(strings.TrimPrefix(targetPath, "/"), "/")

	var targetFile string
	if len(targetSegs) > 0 {
		targetFile = targetSegs[len(targetSegs)-1]
		targetSegs = targetSegs[:len(targetSegs)-1]
	}

	i := 0
	for i < len(baseSegs) && i < len(targetSegs) && baseSegs[i] == targetSegs[i] {
		i++
	}

	var parts []string
	for j := i; j < len(baseSegs); j++ {
		parts = append(parts, "..")
	}
	parts = append(parts, targetSegs[i:]...)
	parts = append(parts, targetFile)
	return strings.Join(parts, "/")
}

// FilenameToFileURI converts a local filesystem path to a file: URI
// (spec §4.5 "filename <-> file: URI conversions"), normalizing path
// separators and percent-encoding reserved characters the way
// net/url.URL.String already does for any path it holds.
func FilenameToFileURI(path string) string {
	slash := filepath.ToSlash(path)
	if !strings.HasPrefix(slash, "/") {
		slash = "/" + slash
	}
	u := url.URL{Scheme: "file", Path: slash}
	return u.String()
}

// FileURIToFilename reverses FilenameToFileURI, reporting false if uri
// is not a file: URI.
func FileURIToFilename(uri string) (string, bool) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}
