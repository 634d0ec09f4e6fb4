package pngme

import (
	"encoding/binary"
	"fmt"
	"io"
)

// A FormatError reports that the input is not a well formed chunk stream.
type FormatError string

func (e FormatError) Error() string { return "png: invalid format: " + string(e) }

// Is reports FormatError as ErrInvalidData.
func (e FormatError) Is(target error) bool { return target == ErrInvalidData }

var checksumError = FormatError("bad CRC")

type decoder struct {
	buf []byte
	off int
	png *Png
}

func (d *decoder) checkHeader() error {
	if len(d.buf) < len(Header) || string(d.buf[:len(Header)]) != Header {
		return ErrInvalidSignature
	}
	d.off = len(Header)
	return nil
}

// parseChunk parses the chunk that starts at the cursor and moves the cursor
// past it.
func (d *decoder) parseChunk() error {
	rest := d.buf[d.off:]
	n := len(rest)
	if n >= 4 {
		length := binary.BigEndian.Uint32(rest[:4])
		// A declared length that runs past the end of the input is left for
		// ParseChunk to report against everything that remains.
		if end := uint64(length) + chunkOverhead; end <= uint64(n) {
			n = int(end)
		}
	}
	c, err := ParseChunk(rest[:n])
	if err != nil {
		return err
	}
	d.png.chunks = append(d.png.chunks, c)
	d.off += n
	return nil
}

// ParseChunk parses a single chunk that occupies all of b. It is the inverse
// of Chunk.Bytes.
//
// The chunk type must be four ASCII letters, the declared length must match
// the data between the type and the trailing CRC, and the stored CRC must
// match the one computed over type and data.
func ParseChunk(b []byte) (Chunk, error) {
	if len(b) < 8 {
		return Chunk{}, FormatError(fmt.Sprintf("truncated chunk: %d bytes", len(b)))
	}
	length := binary.BigEndian.Uint32(b[:4])
	var typ [4]byte
	copy(typ[:], b[4:8])
	t, err := NewChunkType(typ)
	if err != nil {
		return Chunk{}, err
	}
	if len(b) < chunkOverhead {
		return Chunk{}, FormatError(fmt.Sprintf("truncated %s chunk: %d bytes", t, len(b)))
	}
	if length > maxChunkLength {
		return Chunk{}, FormatError(fmt.Sprintf("bad chunk length: %d", length))
	}
	data := b[8 : len(b)-4]
	if uint64(len(data)) != uint64(length) {
		return Chunk{}, FormatError(fmt.Sprintf("%s chunk declares %d bytes of data, found %d", t, length, len(data)))
	}
	c := NewChunk(t, data)
	if binary.BigEndian.Uint32(b[len(b)-4:]) != c.crc {
		return Chunk{}, checksumError
	}
	return c, nil
}

// Parse parses a whole PNG file held in b. Any malformed chunk fails the
// entire parse; the error names the chunk and its offset and matches the
// underlying kind with errors.Is.
func Parse(b []byte) (*Png, error) {
	d := &decoder{
		buf: b,
		png: New(),
	}
	if err := d.checkHeader(); err != nil {
		return nil, err
	}
	for d.off < len(d.buf) {
		off := d.off
		if err := d.parseChunk(); err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(d.png.chunks), off, err)
		}
	}
	return d.png, nil
}

// Decode reads a PNG file from r.
func Decode(r io.Reader) (*Png, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}
