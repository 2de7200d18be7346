package rdf

import (
	"bufio"
	"io"
	"os"
)

// IOStream is the push/pull byte sink/source abstraction spec §2/§3
// name as their own component ("attach to IOStream / file / memory /
// filename"): one handle a Serializer writes through regardless of
// whether the backing destination is a file, an in-memory buffer, or
// an arbitrary io.Writer the embedder supplied. It also counts bytes
// written, the one piece of state every backend needs and none of
// io.Writer/bufio.Writer expose directly.
type IOStream struct {
	w       io.Writer
	buf     *bufio.Writer
	written int64
	closer  io.Closer
}

// NewIOStream wraps an existing io.Writer (spec: "attach to IOStream").
// The caller remains responsible for closing w.
func NewIOStream(w io.Writer) *IOStream {
	return &IOStream{w: w, buf: bufio.NewWriter(w)}
}

// NewFileIOStream opens path for writing and returns an IOStream that
// owns the file handle (spec: "attach to ... file / filename"); Close
// flushes and closes the file.
func NewFileIOStream(path string) (*IOStream, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &IOStream{w: f, buf: bufio.NewWriter(f), closer: f}, nil
}

// NewMemoryIOStream returns an IOStream backed by an in-memory
// StringBuffer (spec: "attach to IOStream ... memory"), along with the
// buffer so the caller can read back what was written without a
// separate flatten step.
func NewMemoryIOStream() (*IOStream, *StringBuffer) {
	sb := NewStringBuffer()
	return &IOStream{w: sb, buf: bufio.NewWriter(sb)}, sb
}

// Write implements io.Writer, buffering through bufio.
func (s *IOStream) Write(p []byte) (int, error) {
	n, err := s.buf.Write(p)
	s.written += int64(n)
	return n, err
}

// WriteString writes s without the []byte round trip bufio.Writer
// would otherwise force on every caller.
func (s *IOStream) WriteString(str string) (int, error) {
	n, err := s.buf.WriteString(str)
	s.written += int64(n)
	return n, err
}

// WriteByte writes a single byte.
func (s *IOStream) WriteByte(b byte) error {
	err := s.buf.WriteByte(b)
	if err == nil {
		s.written++
	}
	return err
}

// BytesWritten reports the total byte count pushed through this
// stream so far, flushed or not.
func (s *IOStream) BytesWritten() int64 { return s.written }

// Flush pushes any buffered bytes to the underlying writer.
func (s *IOStream) Flush() error { return s.buf.Flush() }

// Close flushes and, if this IOStream owns its backing handle (as
// NewFileIOStream does), closes it too.
func (s *IOStream) Close() error {
	if err := s.buf.Flush(); err != nil {
		return err
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
