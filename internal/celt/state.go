package celt

// State carries the cross-frame memory the CELT control-plane decoder
// needs to reproduce the encoder's 2D energy predictor: the final
// log-energy per band and channel from the previous frame. A caller
// decoding a logical stream of frames owns one State and threads it
// through successive Decode calls in order; frames must not be decoded
// out of order or concurrently (see spec.md's concurrency model).
type State struct {
	// PrevEnergy holds band log-energy[channel][band] carried from the
	// previous frame, updated in place by Decode.
	PrevEnergy [2][MaxBands]float32

	// PostfilterPeriod, PostfilterGains and PostfilterTapset are the
	// previous frame's post-filter parameters, needed to cross-fade into
	// a newly decoded post-filter at the synthesis stage (out of scope
	// here, but carried so callers have it).
	PostfilterPeriod int
	PostfilterGains  [3]float32
	PostfilterTapset int
}

// Reset clears all cross-frame memory, as if decoding the first frame of
// a fresh stream.
func (s *State) Reset() {
	*s = State{}
}
