// frame.go wires the range decoder and CELT frame controller together
// per RFC 6716 Section 4, and decodes the Hybrid/SILK redundancy flag
// that precedes a CELT payload in those modes.

package opusgo

import (
	"github.com/mycrl/opusgo/internal/celt"
	"github.com/mycrl/opusgo/internal/rangecoding"
)

// FrameResult carries the control-plane parameters recovered from a
// single compressed frame's payload.
type FrameResult struct {
	// HasRedundancy reports whether a Hybrid or SILK frame's bitstream
	// carries a redundant/LBRR payload before its main content. Decoding
	// that payload is out of scope (SILK/Hybrid back-ends are a
	// Non-goal); this flag is surfaced as data so a caller sizing the
	// CELT payload that follows it can skip over it.
	HasRedundancy bool

	// CELT is populated when toc.Mode is ModeCELT or ModeHybrid (the
	// CELT layer of a Hybrid frame). It is the zero value otherwise.
	CELT celt.FrameParams
}

// celtBandStart returns the first CELT band decoded for a frame of the
// given mode. Hybrid frames hand bands 0-16 to SILK and decode band 17
// up to Bandwidth.CELTBandCount() in CELT; CELT-only frames decode
// from band 0 up to the same bandwidth-dependent end.
func celtBandStart(mode Mode) int {
	if mode == ModeHybrid {
		return 17
	}
	return 0
}

// decodeRedundancyFlag ports the has_redundancy pre-check that RFC 6716
// Section 4.3 applies before reading the CELT-controlled bits of a
// Hybrid or SILK frame: Hybrid reads an explicit logp(12) flag if the
// remaining budget allows it; SILK's redundancy is implied whenever a
// trailing LBRR frame could fit, with no flag bit spent on it.
func decodeRedundancyFlag(dec *rangecoding.Decoder, mode Mode) bool {
	consumed := dec.Tell()
	total := dec.TotalBits()
	switch {
	case mode == ModeHybrid && consumed+37 <= total:
		return dec.Logp(12)
	case mode == ModeSILK && consumed+17 <= total:
		return true
	default:
		return false
	}
}

// DecodeFrame decodes a single compressed frame's control-plane
// parameters. state carries the CELT decoder's cross-frame energy and
// post-filter history and is updated in place; pass a fresh
// celt.State for the first frame of a stream.
func DecodeFrame(toc TOC, payload []byte, channels int, state *celt.State) (FrameResult, error) {
	var dec rangecoding.Decoder
	dec.Init(payload)

	result := FrameResult{
		HasRedundancy: decodeRedundancyFlag(&dec, toc.Mode),
	}

	if toc.Mode == ModeSILK {
		return result, nil
	}

	size := frameSizeEnum(toc.FrameSize)
	bandStart := celtBandStart(toc.Mode)
	bandEnd := toc.Bandwidth.CELTBandCount()

	fp, err := celt.Decode(&dec, state, size, channels, bandStart, bandEnd)
	if err != nil {
		return FrameResult{}, err
	}
	result.CELT = fp
	return result, nil
}

func frameSizeEnum(samples int) celt.FrameSize {
	switch {
	case samples <= 120:
		return celt.Size120
	case samples <= 240:
		return celt.Size240
	case samples <= 480:
		return celt.Size480
	default:
		return celt.Size960
	}
}
