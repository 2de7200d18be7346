package rdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// StatementHandler processes one statement (triple or quad) at a time,
// the callback spec §6 calls "set callbacks: statement".
type StatementHandler func(Statement) error

// Parser is the chunked embedder contract spec §6 names as the
// primary public surface: construct by syntax (or guess), register a
// statement callback, call ParseStart once, then push bytes with
// ParseChunk, setting isEnd on the final call.
//
// Most Go callers are better served by NewReader/Parse/ReadAll
// (api.go), which use the same format decoders without this type;
// Parser exists for embedders that want push/pull chunk-at-a-time
// control instead of an io.Reader.
//
// RDF/XML, Turtle, and TriG only resolve once ParseChunk's isEnd is
// true: encoding/xml.Decoder (and this package's Turtle grammar) can't
// resume a partially-buffered token across a chunk boundary. N-Triples
// and N-Quads decode incrementally, one complete line at a time, as
// chunks arrive - the one family spec §4.3 describes as strictly
// line-oriented can actually honor the streaming contract at the
// statement level.
type Parser struct {
	world *World
	opts  DecodeOptions

	format  Format
	baseURI string
	hint    GuessHint

	started bool
	aborted bool
	failed  bool

	buf bytes.Buffer

	emitted     int64
	stmtHandler StatementHandler
	logHandler  LogHandler
}

// SetStatementHandler registers the callback invoked for every
// statement the parser produces.
func (p *Parser) SetStatementHandler(h StatementHandler) { p.stmtHandler = h }

// SetLogHandler overrides the World's log sink for this Parser only
// (spec §6: "optionally overridden per parser").
func (p *Parser) SetLogHandler(h LogHandler) { p.logHandler = h }

// SetGuessHint supplies the MIME type and/or URL suffix the guess
// parser (spec §4.6) scores alongside content sniffing when format is
// FormatGuess. Has no effect once the format has already resolved.
func (p *Parser) SetGuessHint(hint GuessHint) { p.hint = hint }

func (p *Parser) log(level Severity, text string) {
	m := LogMessage{Level: level, Locator: NewLocator(), Text: text}
	if p.logHandler != nil {
		p.logHandler(m)
		return
	}
	if p.world != nil {
		p.world.log(m)
	}
}

// Format reports the syntax the parser is using - the format passed to
// NewParser, or the one the guess parser dispatched to once enough
// bytes have been seen (spec §4.6: "replace self with that parser").
func (p *Parser) Format() Format { return p.format }

// Failed reports whether a fatal error occurred (spec §7: "parse_chunk
// return value is non-zero if any fatal occurred").
func (p *Parser) Failed() bool { return p.failed }

// ParseStart must be called before any ParseChunk call.
func (p *Parser) ParseStart(baseURI string) error {
	if p.started {
		return fmt.Errorf("rdf: ParseStart called twice")
	}
	p.started = true
	p.baseURI = baseURI
	if baseURI != "" {
		p.opts.BaseURI = baseURI
	}
	return nil
}

// ParseChunk pushes bytes into the parser. isEnd signals the final
// chunk.
func (p *Parser) ParseChunk(data []byte, isEnd bool) error {
	if !p.started {
		return fmt.Errorf("rdf: ParseChunk called before ParseStart")
	}
	if p.aborted {
		return fmt.Errorf("rdf: parser aborted")
	}
	p.buf.Write(data)

	if p.format == FormatAuto || p.format == FormatGuess {
		if p.buf.Len() < 64 && !isEnd {
			return nil // not enough bytes to score the guess parser reliably yet
		}
		detected, ok := scoreFormat(p.hint, p.buf.Bytes())
		if !ok {
			if !isEnd {
				return nil
			}
			p.failed = true
			return WrapParseError("guess", "", -1, fmt.Errorf("unable to detect RDF syntax"))
		}
		// replace self with the winning format (spec §4.6: "replace self
		// with that parser; forward all subsequent chunks") - the
		// existing buffered bytes fall straight into that format's branch
		// below since p.format now reads as the resolved format.
		p.format = detected
	}

	switch p.format {
	case FormatNTriples, FormatNQuads:
		return p.drainLines(isEnd)
	default:
		if !isEnd {
			return nil
		}
		return p.decodeAll()
	}
}

// ParseFile is the convenience spec §6 names ("parse_file(path,
// base_uri)"), driving ParseStart/ParseChunk over the file's contents
// in one shot.
func (p *Parser) ParseFile(path string, baseURI string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if baseURI == "" {
		baseURI = "file://" + path
	}
	if err := p.ParseStart(baseURI); err != nil {
		return err
	}
	return p.ParseChunk(data, true)
}

// Abort stops the parser; subsequent ParseChunk calls fail. Mirrors
// spec §6's "abort" operation. There is no parse_uri: HTTP/network
// retrieval is out of scope (spec §1 Non-goals, "treat as a pluggable
// byte source") - embedders fetch bytes themselves and call ParseChunk.
func (p *Parser) Abort() { p.aborted = true }

// drainLines decodes every complete line currently buffered, leaving a
// trailing partial line (if any) for the next chunk.
func (p *Parser) drainLines(isEnd bool) error {
	for {
		b := p.buf.Bytes()
		idx := bytes.IndexByte(b, '\n')
		if idx < 0 {
			if isEnd {
				trailing := strings.TrimSpace(string(b))
				p.buf.Reset()
				if trailing != "" {
					return p.decodeLine(trailing)
				}
			}
			return nil
		}
		line := string(b[:idx])
		p.buf.Next(idx + 1)
		if err := p.decodeLine(line); err != nil {
			return err
		}
	}
}

// decodeLine parses a single N-Triples/N-Quads line by reusing the
// same per-line grammar ntriples.go's own streaming decoder calls
// (parseNTTripleLine/parseNTQuadLine), rather than constructing a
// fresh decoder per line.
func (p *Parser) decodeLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	if p.format == FormatNQuads {
		q, err := parseNTQuadLine(line)
		if err != nil {
			p.failed = true
			return WrapParseError("nquads", line, -1, err)
		}
		return p.emit(q.ToStatement())
	}
	t, err := parseNTTripleLine(line)
	if err != nil {
		p.failed = true
		return WrapParseError("ntriples", line, -1, err)
	}
	return p.emit(t.ToQuad().ToStatement())
}

// decodeAll resolves the whole buffered document through the
// non-incremental decoders (Turtle, TriG, RDF/XML) - called only once
// ParseChunk has seen isEnd=true.
func (p *Parser) decodeAll() error {
	data := p.buf.Bytes()
	p.buf.Reset()

	switch p.format {
	case FormatTurtle, FormatRDFXML, FormatRSS1, FormatRSS2, FormatAtom:
		dec, err := newTripleDecoderWithOptions(bytes.NewReader(data), string(p.format), p.opts)
		if err != nil {
			p.failed = true
			return err
		}
		defer dec.Close()
		for {
			t, err := dec.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				p.failed = true
				return err
			}
			if err := p.emit(t.ToQuad().ToStatement()); err != nil {
				return err
			}
		}
	case FormatTriG:
		dec, err := newQuadDecoderWithOptions(bytes.NewReader(data), "trig", p.opts)
		if err != nil {
			p.failed = true
			return err
		}
		defer dec.Close()
		for {
			q, err := dec.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				p.failed = true
				return err
			}
			if err := p.emit(q.ToStatement()); err != nil {
				return err
			}
		}
	default:
		p.failed = true
		return WrapParseError(string(p.format), "", -1, ErrUnsupportedFormat)
	}
}

func (p *Parser) emit(s Statement) error {
	p.emitted++
	if p.opts.MaxTriples > 0 && p.emitted > p.opts.MaxTriples {
		p.failed = true
		return WrapParseError(string(p.format), "", -1, ErrTripleLimitExceeded)
	}
	if p.stmtHandler == nil {
		return nil
	}
	return p.stmtHandler(s)
}

// Serializer is the mirror image of Parser (spec §6 "Serializer public
// surface"): the embedder declares namespaces, calls SerializeStart,
// feeds statements with SerializeStatement, and calls SerializeEnd.
type Serializer struct {
	world  *World
	format Format

	stream     *IOStream
	writer     Writer // api.go's unified triple/quad Writer
	namespaces map[string]string
	started    bool
}

// DeclareNamespace registers a prefix -> URI mapping an encoder may use
// when abbreviating output (spec §6 "declare namespace (prefix, URI)").
func (s *Serializer) DeclareNamespace(prefix, uri string) {
	if s.namespaces == nil {
		s.namespaces = map[string]string{}
	}
	s.namespaces[prefix] = uri
}

// AttachIOStream attaches the byte sink the serializer writes to
// (spec §3 IOStream), wrapping w in an IOStream so every serializer
// counts bytes written the same way regardless of backend. Must be
// called before SerializeStart.
func (s *Serializer) AttachIOStream(w io.Writer) error {
	if s.writer != nil {
		return fmt.Errorf("rdf: serializer already attached to an IOStream")
	}
	stream := NewIOStream(w)
	writer, err := newEncoder(stream, s.format, defaultOptions())
	if err != nil {
		return err
	}
	s.stream = stream
	s.writer = writer
	return nil
}

// BytesWritten reports how many bytes this serializer has pushed
// through its attached IOStream so far.
func (s *Serializer) BytesWritten() int64 {
	if s.stream == nil {
		return 0
	}
	return s.stream.BytesWritten()
}

// SerializeStart begins a serialization run (spec §6
// "serialize_start(base_uri)"). baseURI is advisory: none of the wired
// encoders (N-Triples, Turtle, RDF/XML) relativize output against it.
func (s *Serializer) SerializeStart(baseURI string) error {
	if s.writer == nil {
		return fmt.Errorf("rdf: AttachIOStream must be called before SerializeStart")
	}
	s.started = true
	return nil
}

// SerializeStatement writes one statement.
func (s *Serializer) SerializeStatement(stmt Statement) error {
	if !s.started {
		return fmt.Errorf("rdf: SerializeStart must be called before SerializeStatement")
	}
	return s.writer.Write(stmt)
}

// SerializeEnd flushes and closes the underlying writer, then flushes
// the attached IOStream so every buffered byte actually reaches the
// backend.
func (s *Serializer) SerializeEnd() error {
	if s.writer == nil {
		return nil
	}
	if err := s.writer.Flush(); err != nil {
		return err
	}
	if err := s.writer.Close(); err != nil {
		return err
	}
	if s.stream == nil {
		return nil
	}
	return s.stream.Close()
}
