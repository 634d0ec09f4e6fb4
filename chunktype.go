package pngme

import (
	"bytes"
	"fmt"
)

// caseBit is the ASCII bit that separates lowercase from uppercase letters.
// PNG gives it a meaning in each of the four bytes of a chunk type.
const caseBit = 1 << 5

// A ChunkType is the four letter code that names a chunk, such as "IHDR" or
// "teXt". Values are comparable with ==, and the comparison is case
// sensitive because the case of each letter carries meaning.
//
// See https://www.w3.org/TR/png/#5Chunk-naming-conventions
type ChunkType struct {
	b [4]byte
}

// A ChunkTypeError reports a chunk type that is not four ASCII letters.
type ChunkTypeError string

func (e ChunkTypeError) Error() string { return "png: invalid chunk type: " + string(e) }

// Is reports ChunkTypeError as ErrInvalidChunkType.
func (e ChunkTypeError) Is(target error) bool { return target == ErrInvalidChunkType }

// NewChunkType returns the chunk type made of b. Every byte must be an ASCII
// letter. A lowercase third letter is accepted; IsValid reports it.
func NewChunkType(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !isLetter(c) {
			return ChunkType{}, ChunkTypeError(fmt.Sprintf("%q", b[:]))
		}
	}
	return ChunkType{b: b}, nil
}

// ParseChunkType returns the chunk type spelled by s, which must be exactly
// four ASCII letters.
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, ChunkTypeError(fmt.Sprintf("%q is %d bytes long, want 4", s, len(s)))
	}
	var b [4]byte
	copy(b[:], s)
	return NewChunkType(b)
}

func isLetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

// Bytes returns the four bytes of the type.
func (t ChunkType) Bytes() [4]byte { return t.b }

// IsCritical reports whether a decoder must understand the chunk to display
// the image (first letter uppercase).
func (t ChunkType) IsCritical() bool { return t.b[0]&caseBit == 0 }

// IsPublic reports whether the type is part of the PNG specification or a
// registered extension (second letter uppercase).
func (t ChunkType) IsPublic() bool { return t.b[1]&caseBit == 0 }

// IsReservedBitValid reports whether the reserved bit is clear (third letter
// uppercase), as every current version of PNG requires.
func (t ChunkType) IsReservedBitValid() bool { return t.b[2]&caseBit == 0 }

// IsSafeToCopy reports whether editors that do not recognise the chunk may
// copy it into a modified file (fourth letter lowercase).
func (t ChunkType) IsSafeToCopy() bool { return t.b[3]&caseBit != 0 }

// IsValid reports whether the type is usable for general purposes.
func (t ChunkType) IsValid() bool { return t.IsReservedBitValid() }

// Compare orders chunk types byte by byte. The result is -1, 0 or +1.
func (t ChunkType) Compare(u ChunkType) int { return bytes.Compare(t.b[:], u.b[:]) }

func (t ChunkType) String() string { return string(t.b[:]) }
