package pngme

import "fmt"

// A Png is a PNG file seen as an ordered list of chunks. Several chunks may
// share a type; lookups and removals act on the first one.
type Png struct {
	chunks []Chunk
}

// New returns a Png holding chunks in the given order.
func New(chunks ...Chunk) *Png {
	p := &Png{chunks: make([]Chunk, 0, len(chunks))}
	p.chunks = append(p.chunks, chunks...)
	return p
}

// AppendChunk adds c after the last chunk.
func (p *Png) AppendChunk(c Chunk) {
	p.chunks = append(p.chunks, c)
}

// RemoveFirstChunk removes and returns the first chunk of type typ. It fails
// with ErrInvalidChunkType if typ is not a chunk type and with
// ErrChunkNotFound if no chunk has that type.
func (p *Png) RemoveFirstChunk(typ string) (Chunk, error) {
	t, err := ParseChunkType(typ)
	if err != nil {
		return Chunk{}, err
	}
	i := p.index(t)
	if i < 0 {
		return Chunk{}, fmt.Errorf("%s: %w", t, ErrChunkNotFound)
	}
	c := p.chunks[i]
	p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
	return c, nil
}

// ChunkByType returns the first chunk of type typ. The boolean is false when
// there is none, including when typ is not a valid chunk type.
func (p *Png) ChunkByType(typ string) (Chunk, bool) {
	t, err := ParseChunkType(typ)
	if err != nil {
		return Chunk{}, false
	}
	i := p.index(t)
	if i < 0 {
		return Chunk{}, false
	}
	return p.chunks[i], true
}

// Chunks returns the chunks in file order. The slice is a copy.
func (p *Png) Chunks() []Chunk {
	return append([]Chunk(nil), p.chunks...)
}

func (p *Png) index(t ChunkType) int {
	for i, c := range p.chunks {
		if c.typ == t {
			return i
		}
	}
	return -1
}

// Signature returns the 8 bytes every PNG file starts with.
func (p *Png) Signature() [8]byte {
	var h [8]byte
	copy(h[:], Header)
	return h
}
