package pngme

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// A Chunk is one length prefixed, CRC checked section of a PNG file.
//
// The CRC is computed when the chunk is made and cannot be set on its own,
// so a Chunk always satisfies CRC() == CRC-32(Type() ++ Data()).
type Chunk struct {
	typ  ChunkType
	data []byte
	crc  uint32
}

// NewChunk returns a chunk of type t holding a copy of data.
func NewChunk(t ChunkType, data []byte) Chunk {
	d := make([]byte, len(data))
	copy(d, data)
	return Chunk{
		typ:  t,
		data: d,
		crc:  checksum(t.b, d),
	}
}

// Length returns the length of the chunk data, excluding type and CRC.
func (c Chunk) Length() uint32 { return uint32(len(c.data)) }

// Type returns the chunk type.
func (c Chunk) Type() ChunkType { return c.typ }

// Data returns a copy of the chunk data.
func (c Chunk) Data() []byte { return bytes.Clone(c.data) }

// CRC returns the CRC-32 of the chunk type and data.
func (c Chunk) CRC() uint32 { return c.crc }

// DataString returns the chunk data as text. It fails with ErrInvalidUTF8 if
// the data is not valid UTF-8.
func (c Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%s chunk: %w", c.typ, ErrInvalidUTF8)
	}
	return string(c.data), nil
}

// Bytes returns the chunk as it is stored in a file: big endian length, type,
// data and big endian CRC.
func (c Chunk) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(c.data)+chunkOverhead))
	// writes to a bytes.Buffer cannot fail
	_ = makeChunk(buf, c)
	return buf.Bytes()
}

// String returns the chunk data as text, or a short description of the chunk
// when its data is not UTF-8.
func (c Chunk) String() string {
	s, err := c.DataString()
	if err != nil {
		return fmt.Sprintf("<%s: %d bytes>", c.typ, len(c.data))
	}
	return s
}
