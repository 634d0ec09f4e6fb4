package pngme

import (
	"bytes"
	"io"
)

// Encode writes p to w: the signature followed by every chunk in order.
func Encode(w io.Writer, p *Png) error {
	if _, err := io.WriteString(w, Header); err != nil {
		return err
	}
	for _, c := range p.chunks {
		if err := makeChunk(w, c); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns p as it is stored in a file.
func (p *Png) Bytes() []byte {
	n := len(Header)
	for _, c := range p.chunks {
		n += len(c.data) + chunkOverhead
	}
	buf := bytes.NewBuffer(make([]byte, 0, n))
	// writes to a bytes.Buffer cannot fail
	_ = Encode(buf, p)
	return buf.Bytes()
}
