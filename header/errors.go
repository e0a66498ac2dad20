// Package header decodes the OpusHead and OpusTags metadata structs
// defined by RFC 7845, the little-endian byte layouts that precede an
// Opus-in-Ogg elementary stream.
package header

import "errors"

var (
	// ErrInvalidData covers truncated or internally inconsistent fields
	// (short buffers, channel-mapping table overruns, bad stream counts).
	ErrInvalidData = errors.New("header: invalid data")

	// ErrNotOpusHead is returned when the magic signature does not read
	// "OpusHead".
	ErrNotOpusHead = errors.New("header: not an OpusHead packet")

	// ErrNotOpusTags is returned when the magic signature does not read
	// "OpusTags".
	ErrNotOpusTags = errors.New("header: not an OpusTags packet")

	// ErrUnexpectedVersionNumber is returned when OpusHead's version byte
	// is not 1.
	ErrUnexpectedVersionNumber = errors.New("header: unexpected version number")

	// ErrNonUTF8 is returned when a vendor string or comment is not
	// valid UTF-8.
	ErrNonUTF8 = errors.New("header: non-UTF-8 string")
)
