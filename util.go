package pngme

import (
	"encoding/binary"
	"hash/crc32"
	"io"
)

// chunkOverhead is the number of bytes a chunk occupies besides its data:
// length, type and CRC.
const chunkOverhead = 12

// checksum returns the CRC-32 of a chunk, computed over its type and data.
func checksum(typ [4]byte, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(typ[:])
	crc.Write(data)
	return crc.Sum32()
}

func makeChunk(w io.Writer, c Chunk) error {
	chunkLength := c.Length()
	// write length
	if err := binary.Write(w, binary.BigEndian, &chunkLength); err != nil {
		return err
	}
	// write chunkType
	typ := c.typ.Bytes()
	if _, err := w.Write(typ[:]); err != nil {
		return err
	}
	// write chunkData
	if _, err := w.Write(c.data); err != nil {
		return err
	}
	// write chunkCRC
	chunkCRC := c.crc
	if err := binary.Write(w, binary.BigEndian, &chunkCRC); err != nil {
		return err
	}
	return nil
}
