// Package pngme reads and writes the chunk structure of PNG files so that
// arbitrary messages can be stored in, and recovered from, ancillary chunks.
//
// Image data is never decoded. A PNG is treated as its 8 byte signature
// followed by a list of length prefixed, CRC checked chunks, and every chunk
// survives a Parse/Bytes round trip byte for byte.
package pngme

import "errors"

// Header is the signature every PNG file starts with.
const Header = "\x89PNG\r\n\x1a\n"

// Error kinds. Errors returned by this package match exactly one of these
// with errors.Is.
var (
	ErrInvalidChunkType = errors.New("png: invalid chunk type")
	ErrInvalidData      = errors.New("png: invalid data")
	ErrInvalidSignature = errors.New("png: not a PNG file")
	ErrInvalidUTF8      = errors.New("png: chunk data is not valid UTF-8")
	ErrChunkNotFound    = errors.New("png: chunk not found")
)

// maxChunkLength is the largest length a chunk may declare.
// See https://www.w3.org/TR/png/#dfn-png-four-byte-unsigned-integer
const maxChunkLength = 0x7fffffff
