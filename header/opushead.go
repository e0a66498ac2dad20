package header

import "encoding/binary"

// Mapping family values per RFC 7845 Section 5.1.1.
const (
	MappingFamilyRTP        = 0
	MappingFamilyVorbis     = 1
	MappingFamilyAmbisonics = 2
	MappingFamilyProjection = 3
	MappingFamilyDiscrete   = 255
)

const (
	opusHeadMagic   = "OpusHead"
	opusHeadMinSize = 19
	opusHeadVersion = 1
)

// OpusHead is the identification header for an Opus-in-Ogg stream: the
// first packet of the logical bitstream, describing channel count,
// pre-skip, and channel mapping.
type OpusHead struct {
	Version       uint8
	Channels      uint8
	PreSkip       uint16
	SampleRate    uint32
	OutputGain    int16
	MappingFamily uint8

	// StreamCount, CoupledCount and ChannelMapping are only present for
	// MappingFamily != 0, including family 3 (Projection): RFC 8486 layers
	// its demixing matrix after the same channel mapping table every other
	// non-zero family carries, it does not replace it.
	StreamCount    uint8
	CoupledCount   uint8
	ChannelMapping []byte

	// DemixingMatrix carries RFC 8486 family-3 demixing coefficients,
	// S16LE, 2*Channels*(StreamCount+CoupledCount) bytes. Present only for
	// MappingFamilyProjection, immediately after ChannelMapping.
	DemixingMatrix []byte
}

func expectedDemixingMatrixSize(channels, streams, coupled uint8) int {
	return 2 * int(channels) * (int(streams) + int(coupled))
}

// ParseOpusHead decodes an OpusHead packet. output_gain is little-endian
// per RFC 7845 Section 5.1 — a field some draft decoders read
// big-endian, which desynchronizes gain for any stream with a nonzero
// gain value.
func ParseOpusHead(data []byte) (*OpusHead, error) {
	if len(data) < opusHeadMinSize {
		return nil, ErrInvalidData
	}
	if string(data[0:8]) != opusHeadMagic {
		return nil, ErrNotOpusHead
	}

	version := data[8]
	if version != opusHeadVersion {
		return nil, ErrUnexpectedVersionNumber
	}

	h := &OpusHead{
		Version:       version,
		Channels:      data[9],
		PreSkip:       binary.LittleEndian.Uint16(data[10:12]),
		SampleRate:    binary.LittleEndian.Uint32(data[12:16]),
		OutputGain:    int16(binary.LittleEndian.Uint16(data[16:18])),
		MappingFamily: data[18],
	}

	if h.Channels == 0 {
		return nil, ErrInvalidData
	}

	if h.MappingFamily == 0 {
		if h.Channels > 2 {
			return nil, ErrInvalidData
		}
		h.StreamCount = 1
		if h.Channels == 2 {
			h.CoupledCount = 1
		}
		return h, nil
	}

	if len(data) < 21 {
		return nil, ErrInvalidData
	}
	h.StreamCount = data[19]
	h.CoupledCount = data[20]
	if h.StreamCount == 0 || int(h.CoupledCount) > int(h.StreamCount) {
		return nil, ErrInvalidData
	}

	minSize := 21 + int(h.Channels)
	if len(data) < minSize {
		return nil, ErrInvalidData
	}
	h.ChannelMapping = append([]byte(nil), data[21:21+int(h.Channels)]...)

	maxStream := int(h.StreamCount) + int(h.CoupledCount)
	for _, m := range h.ChannelMapping {
		if int(m) >= maxStream && m != 255 {
			return nil, ErrInvalidData
		}
	}

	if h.MappingFamily == MappingFamilyProjection {
		matrixOffset := minSize
		size := expectedDemixingMatrixSize(h.Channels, h.StreamCount, h.CoupledCount)
		if len(data) < matrixOffset+size {
			return nil, ErrInvalidData
		}
		h.DemixingMatrix = append([]byte(nil), data[matrixOffset:matrixOffset+size]...)
	}

	return h, nil
}

// Encode serializes h back to its wire bytes.
func (h *OpusHead) Encode() []byte {
	head := func(size int) []byte {
		data := make([]byte, size)
		copy(data[0:8], opusHeadMagic)
		data[8] = h.Version
		data[9] = h.Channels
		binary.LittleEndian.PutUint16(data[10:12], h.PreSkip)
		binary.LittleEndian.PutUint32(data[12:16], h.SampleRate)
		binary.LittleEndian.PutUint16(data[16:18], uint16(h.OutputGain))
		data[18] = h.MappingFamily
		return data
	}

	if h.MappingFamily == 0 {
		return head(opusHeadMinSize)
	}

	if h.MappingFamily == MappingFamilyProjection {
		matrixOffset := 21 + len(h.ChannelMapping)
		data := head(matrixOffset + len(h.DemixingMatrix))
		data[19] = h.StreamCount
		data[20] = h.CoupledCount
		copy(data[21:], h.ChannelMapping)
		copy(data[matrixOffset:], h.DemixingMatrix)
		return data
	}

	data := head(21 + len(h.ChannelMapping))
	data[19] = h.StreamCount
	data[20] = h.CoupledCount
	copy(data[21:], h.ChannelMapping)
	return data
}
