package celt

import "github.com/mycrl/opusgo/internal/rangecoding"

// FrameParams is the full set of control-plane parameters the CELT
// decoder extracts from a frame's range-coded payload, in decode order.
// It is the controller's output to the (out-of-scope) PVQ/MDCT synthesis
// stage.
type FrameParams struct {
	Silence    bool
	Postfilter PostfilterParams
	Transient  bool
	Energy     [2][MaxBands]float32
	TFChange   [MaxBands]int
	Allocation Allocation
}

// Decode runs the strictly ordered six-step CELT frame schedule (RFC 6716
// Section 4.3) against dec: silence, post-filter, transient, coarse
// energy, time-frequency change, and bit allocation. size selects the
// frame's block-size table row; channels is 1 or 2; bandStart/bandEnd
// give the active band range (bandStart == 0 for CELT-only frames,
// bandStart == 17 for the CELT layer of a Hybrid frame). state carries
// cross-frame coarse-energy and post-filter memory and is updated in
// place.
func Decode(dec *rangecoding.Decoder, state *State, size FrameSize, channels int, bandStart, bandEnd int) (FrameParams, error) {
	if bandStart < 0 || bandEnd > MaxBands || bandStart > bandEnd {
		return FrameParams{}, ErrBandsOverflow
	}

	var fp FrameParams

	// 1. Silence flag.
	if dec.AvailableBits() > 0 {
		fp.Silence = dec.Logp(15)
	} else {
		fp.Silence = true
	}
	if fp.Silence {
		dec.ToEnd()
		return fp, nil
	}

	// 2. Post-filter — CELT-only frames starting at band 0.
	fp.Postfilter = decodePostfilter(dec, bandStart == 0)
	if fp.Postfilter.Active {
		state.PostfilterPeriod = fp.Postfilter.Period
		state.PostfilterGains = fp.Postfilter.Gains
		state.PostfilterTapset = fp.Postfilter.Tapset
	}

	// 3. Transient flag.
	if size > Size120 && dec.AvailableBits() >= 3 {
		fp.Transient = dec.Logp(3)
	}

	// 4. Coarse energy.
	decodeCoarseEnergy(dec, state, size, channels, bandStart, bandEnd)
	fp.Energy = state.PrevEnergy

	// 5. Time-frequency change.
	fp.TFChange = decodeTFChange(dec, size, fp.Transient, bandStart, bandEnd)

	// 6. Bit allocation.
	fp.Allocation = decodeBitAllocation(dec, size, channels, fp.Transient, bandStart, bandEnd, dec.TotalBits())

	return fp, nil
}
