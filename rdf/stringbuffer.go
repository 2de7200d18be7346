package rdf

// StringBuffer is a chunked appendable byte buffer with a single
// flatten operation (spec §3 "StringBuffer"): each Write only appends
// a chunk, and the chunks are concatenated once, lazily, the first
// time Bytes/String is called after a write - rather than
// re-concatenating on every append the way a naive string += would.
// The RSS/Atom parser uses one per element to accumulate CharData
// tokens that arrive split across multiple encoding/xml.Decoder reads
// (long <description>/<content:encoded> bodies, CDATA sections).
type StringBuffer struct {
	chunks [][]byte
	length int
	flat   []byte
}

// NewStringBuffer returns an empty buffer.
func NewStringBuffer() *StringBuffer {
	return &StringBuffer{}
}

// Write appends p, copying it so the caller can reuse its slice.
func (b *StringBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	chunk := make([]byte, len(p))
	copy(chunk, p)
	b.chunks = append(b.chunks, chunk)
	b.length += len(chunk)
	b.flat = nil
	return len(p), nil
}

// WriteString appends s.
func (b *StringBuffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Len returns the total number of bytes written so far.
func (b *StringBuffer) Len() int { return b.length }

// Bytes flattens the buffered chunks into one contiguous slice. The
// result is cached until the next Write.
func (b *StringBuffer) Bytes() []byte {
	if b.flat != nil || b.length == 0 {
		if b.flat == nil {
			return nil
		}
		return b.flat
	}
	flat := make([]byte, 0, b.length)
	for _, c := range b.chunks {
		flat = append(flat, c...)
	}
	b.flat = flat
	return flat
}

// String flattens and returns the buffered content as a string.
func (b *StringBuffer) String() string {
	return string(b.Bytes())
}

// Reset discards all buffered content.
func (b *StringBuffer) Reset() {
	b.chunks = nil
	b.length = 0
	b.flat = nil
}
