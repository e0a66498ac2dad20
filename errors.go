// errors.go defines public error types for the opusgo package.

package opusgo

import "errors"

// Public error types for packet and TOC parsing.
var (
	// ErrPacketTooShort indicates a packet ended before a required field.
	ErrPacketTooShort = errors.New("opusgo: packet too short")

	// ErrInvalidFrameCount indicates a code 3 frame count byte encoded
	// M outside [1, 48].
	ErrInvalidFrameCount = errors.New("opusgo: invalid frame count (M must be 1-48)")

	// ErrInvalidPacket indicates a structurally inconsistent packet: an
	// odd remaining length for code 1, a frame length exceeding what
	// remains in the packet, or padding that overruns the packet.
	ErrInvalidPacket = errors.New("opusgo: invalid packet structure")

	// ErrFrameTooLarge indicates a single frame's declared length
	// exceeded MaxFrameBytes.
	ErrFrameTooLarge = errors.New("opusgo: frame length exceeds 1275 bytes")
)
