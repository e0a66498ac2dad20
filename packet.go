// packet.go implements TOC byte parsing and packet frame extraction per RFC 6716 Section 3.

package opusgo

// Mode represents the Opus coding mode.
type Mode uint8

const (
	ModeSILK   Mode = iota // SILK-only mode (configs 0-11)
	ModeHybrid             // Hybrid SILK+CELT (configs 12-15)
	ModeCELT               // CELT-only mode (configs 16-31)
)

// Bandwidth represents the audio bandwidth.
type Bandwidth uint8

const (
	BandwidthNarrowband    Bandwidth = iota // 4kHz audio, 8kHz sample rate
	BandwidthMediumband                     // 6kHz audio, 12kHz sample rate
	BandwidthWideband                       // 8kHz audio, 16kHz sample rate
	BandwidthSuperwideband                  // 12kHz audio, 24kHz sample rate
	BandwidthFullband                       // 20kHz audio, 48kHz sample rate
)

// celtBandCount maps a bandwidth to the number of CELT bands it decodes,
// RFC 6716 Section 4.3 Table 55's band_range end.
var celtBandCount = [5]int{
	BandwidthNarrowband:    13,
	BandwidthMediumband:    17,
	BandwidthWideband:      17,
	BandwidthSuperwideband: 19,
	BandwidthFullband:      21,
}

// CELTBandCount returns the number of CELT bands decoded for bw: the
// band_range end a CELT or Hybrid frame's control-plane schedule runs
// up to.
func (bw Bandwidth) CELTBandCount() int {
	return celtBandCount[bw]
}

// MaxFrameBytes is the largest size a single compressed frame may
// declare, per RFC 6716 Section 3.2 (two-byte length encoding tops out
// at 4*255+255).
const MaxFrameBytes = 1275

// MaxFrames is the largest number of frames a code-3 packet may pack.
const MaxFrames = 48

// TOC represents the parsed Table of Contents byte from an Opus packet.
type TOC struct {
	Config    uint8     // Configuration 0-31
	Mode      Mode      // Derived from config
	Bandwidth Bandwidth // Derived from config
	FrameSize int       // Frame size in samples at 48kHz
	Stereo    bool      // True if stereo
	FrameCode uint8     // Code 0-3
}

// configEntry holds the mode, bandwidth, and frame size for a configuration.
type configEntry struct {
	Mode      Mode
	Bandwidth Bandwidth
	FrameSize int // In samples at 48kHz
}

// configTable maps configuration indices 0-31 to their properties.
// Based on RFC 6716 Section 3.1 Table.
var configTable = [32]configEntry{
	// SILK-only NB: configs 0-3 (10/20/40/60ms)
	{ModeSILK, BandwidthNarrowband, 480},  // 0: 10ms
	{ModeSILK, BandwidthNarrowband, 960},  // 1: 20ms
	{ModeSILK, BandwidthNarrowband, 1920}, // 2: 40ms
	{ModeSILK, BandwidthNarrowband, 2880}, // 3: 60ms
	// SILK-only MB: configs 4-7
	{ModeSILK, BandwidthMediumband, 480},  // 4
	{ModeSILK, BandwidthMediumband, 960},  // 5
	{ModeSILK, BandwidthMediumband, 1920}, // 6
	{ModeSILK, BandwidthMediumband, 2880}, // 7
	// SILK-only WB: configs 8-11
	{ModeSILK, BandwidthWideband, 480},  // 8
	{ModeSILK, BandwidthWideband, 960},  // 9
	{ModeSILK, BandwidthWideband, 1920}, // 10
	{ModeSILK, BandwidthWideband, 2880}, // 11
	// Hybrid SWB: configs 12-13
	{ModeHybrid, BandwidthSuperwideband, 480}, // 12: 10ms
	{ModeHybrid, BandwidthSuperwideband, 960}, // 13: 20ms
	// Hybrid FB: configs 14-15
	{ModeHybrid, BandwidthFullband, 480}, // 14
	{ModeHybrid, BandwidthFullband, 960}, // 15
	// CELT NB: configs 16-19 (2.5/5/10/20ms)
	{ModeCELT, BandwidthNarrowband, 120}, // 16: 2.5ms
	{ModeCELT, BandwidthNarrowband, 240}, // 17: 5ms
	{ModeCELT, BandwidthNarrowband, 480}, // 18: 10ms
	{ModeCELT, BandwidthNarrowband, 960}, // 19: 20ms
	// CELT WB: configs 20-23
	{ModeCELT, BandwidthWideband, 120}, // 20
	{ModeCELT, BandwidthWideband, 240}, // 21
	{ModeCELT, BandwidthWideband, 480}, // 22
	{ModeCELT, BandwidthWideband, 960}, // 23
	// CELT SWB: configs 24-27
	{ModeCELT, BandwidthSuperwideband, 120}, // 24
	{ModeCELT, BandwidthSuperwideband, 240}, // 25
	{ModeCELT, BandwidthSuperwideband, 480}, // 26
	{ModeCELT, BandwidthSuperwideband, 960}, // 27
	// CELT FB: configs 28-31
	{ModeCELT, BandwidthFullband, 120}, // 28
	{ModeCELT, BandwidthFullband, 240}, // 29
	{ModeCELT, BandwidthFullband, 480}, // 30
	{ModeCELT, BandwidthFullband, 960}, // 31
}

// ParseTOC parses a TOC byte and returns the decoded fields.
func ParseTOC(b byte) TOC {
	config := b >> 3          // Top 5 bits
	stereo := (b & 0x04) != 0 // Bit 2
	frameCode := b & 0x03     // Bottom 2 bits

	entry := configTable[config]

	return TOC{
		Config:    config,
		Mode:      entry.Mode,
		Bandwidth: entry.Bandwidth,
		FrameSize: entry.FrameSize,
		Stereo:    stereo,
		FrameCode: frameCode,
	}
}

// PacketInfo is the result of demultiplexing a packet's frame-code byte
// and variable-length size fields into individual compressed frames.
type PacketInfo struct {
	TOC        TOC
	FrameCount int
	FrameSizes []int  // Length, in bytes, of each frame's compressed payload
	Frames     [][]byte
	Padding    int // Bytes of trailing padding stripped from a code-3 packet
}

// readFrameLength reads the one- or two-byte frame-length encoding at
// data[0:], returning the decoded length and the number of bytes
// consumed (1 or 2). A first byte 0-251 is the length verbatim; 252-255
// signals a second byte follows, with length = 4*second + first.
func readFrameLength(data []byte) (length, consumed int, err error) {
	if len(data) < 1 {
		return 0, 0, ErrPacketTooShort
	}
	first := int(data[0])
	if first < 252 {
		return first, 1, nil
	}
	if len(data) < 2 {
		return 0, 0, ErrPacketTooShort
	}
	second := int(data[1])
	return 4*second + first, 2, nil
}

// ParsePacket demultiplexes a raw Opus packet into its TOC and
// compressed frame payloads per RFC 6716 Section 3.2.
func ParsePacket(data []byte) (PacketInfo, error) {
	if len(data) < 1 {
		return PacketInfo{}, ErrPacketTooShort
	}

	toc := ParseTOC(data[0])
	rest := data[1:]

	switch toc.FrameCode {
	case 0:
		return parseCode0(toc, rest)
	case 1:
		return parseCode1(toc, rest)
	case 2:
		return parseCode2(toc, rest)
	default:
		return parseCode3(toc, rest)
	}
}

func parseCode0(toc TOC, rest []byte) (PacketInfo, error) {
	if len(rest) > MaxFrameBytes {
		return PacketInfo{}, ErrFrameTooLarge
	}
	return PacketInfo{
		TOC:        toc,
		FrameCount: 1,
		FrameSizes: []int{len(rest)},
		Frames:     [][]byte{rest},
	}, nil
}

func parseCode1(toc TOC, rest []byte) (PacketInfo, error) {
	if len(rest)%2 != 0 {
		return PacketInfo{}, ErrInvalidPacket
	}
	size := len(rest) / 2
	if size > MaxFrameBytes {
		return PacketInfo{}, ErrFrameTooLarge
	}
	return PacketInfo{
		TOC:        toc,
		FrameCount: 2,
		FrameSizes: []int{size, size},
		Frames:     [][]byte{rest[:size], rest[size:]},
	}, nil
}

func parseCode2(toc TOC, rest []byte) (PacketInfo, error) {
	size1, consumed, err := readFrameLength(rest)
	if err != nil {
		return PacketInfo{}, err
	}
	if size1 > MaxFrameBytes {
		return PacketInfo{}, ErrFrameTooLarge
	}
	rest = rest[consumed:]
	if size1 > len(rest) {
		return PacketInfo{}, ErrInvalidPacket
	}
	size2 := len(rest) - size1
	if size2 > MaxFrameBytes {
		return PacketInfo{}, ErrFrameTooLarge
	}
	return PacketInfo{
		TOC:        toc,
		FrameCount: 2,
		FrameSizes: []int{size1, size2},
		Frames:     [][]byte{rest[:size1], rest[size1:]},
	}, nil
}

// consumePadding strips a code-3 packet's chained padding-length bytes:
// each byte 255 adds 254 and continues; the first byte < 255 adds its
// value and terminates. Returns the total padding byte count and the
// number of length bytes consumed.
func consumePadding(rest []byte) (padding, consumed int, err error) {
	for {
		if consumed >= len(rest) {
			return 0, 0, ErrPacketTooShort
		}
		b := int(rest[consumed])
		consumed++
		if b == 255 {
			padding += 254
			continue
		}
		padding += b
		return padding, consumed, nil
	}
}

func parseCode3(toc TOC, rest []byte) (PacketInfo, error) {
	if len(rest) < 1 {
		return PacketInfo{}, ErrPacketTooShort
	}
	header := rest[0]
	rest = rest[1:]

	vbr := header&0x80 != 0
	hasPadding := header&0x40 != 0
	m := int(header & 0x3F)
	if m == 0 || m > MaxFrames {
		return PacketInfo{}, ErrInvalidFrameCount
	}

	padding := 0
	if hasPadding {
		p, consumed, err := consumePadding(rest)
		if err != nil {
			return PacketInfo{}, err
		}
		padding = p
		rest = rest[consumed:]
	}
	if padding > len(rest) {
		return PacketInfo{}, ErrInvalidPacket
	}
	rest = rest[:len(rest)-padding]

	if vbr {
		return parseCode3VBR(toc, rest, m, padding)
	}
	return parseCode3CBR(toc, rest, m, padding)
}

func parseCode3VBR(toc TOC, rest []byte, m, padding int) (PacketInfo, error) {
	sizes := make([]int, m)
	total := 0
	for i := 0; i < m-1; i++ {
		size, consumed, err := readFrameLength(rest)
		if err != nil {
			return PacketInfo{}, err
		}
		if size > MaxFrameBytes {
			return PacketInfo{}, ErrFrameTooLarge
		}
		rest = rest[consumed:]
		sizes[i] = size
		total += size
	}
	if total > len(rest) {
		return PacketInfo{}, ErrInvalidPacket
	}
	sizes[m-1] = len(rest) - total
	if sizes[m-1] > MaxFrameBytes {
		return PacketInfo{}, ErrFrameTooLarge
	}

	frames := make([][]byte, m)
	offset := 0
	for i, size := range sizes {
		frames[i] = rest[offset : offset+size]
		offset += size
	}

	return PacketInfo{
		TOC:        toc,
		FrameCount: m,
		FrameSizes: sizes,
		Frames:     frames,
		Padding:    padding,
	}, nil
}

func parseCode3CBR(toc TOC, rest []byte, m, padding int) (PacketInfo, error) {
	if len(rest)%m != 0 {
		return PacketInfo{}, ErrInvalidPacket
	}
	size := len(rest) / m
	if size > MaxFrameBytes {
		return PacketInfo{}, ErrFrameTooLarge
	}

	sizes := make([]int, m)
	frames := make([][]byte, m)
	for i := 0; i < m; i++ {
		sizes[i] = size
		frames[i] = rest[i*size : (i+1)*size]
	}

	return PacketInfo{
		TOC:        toc,
		FrameCount: m,
		FrameSizes: sizes,
		Frames:     frames,
		Padding:    padding,
	}, nil
}
