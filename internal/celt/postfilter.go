package celt

import "github.com/mycrl/opusgo/internal/rangecoding"

// PostfilterParams is the decoded pitch post-filter configuration for a
// CELT-only frame, RFC 6716 Section 4.3.7.1.
type PostfilterParams struct {
	Active bool
	Period int
	Gain   float32
	Tapset int
	Gains  [3]float32
}

// decodePostfilter reads the post-filter flag and, if set, its
// parameters. It is only consulted for CELT-only frames (band_range
// starting at band 0) with enough bits left to afford the flag.
func decodePostfilter(dec *rangecoding.Decoder, celtOnly bool) PostfilterParams {
	if !celtOnly || dec.AvailableBits() < 16 || !dec.Logp(1) {
		return PostfilterParams{}
	}

	octave := dec.Uniform(6)
	period := int((16<<octave)+dec.Rawbits(4+octave)) - 1
	if period < postfilterMinPeriod {
		period = postfilterMinPeriod
	}
	if period > 1022 {
		period = 1022
	}

	gain := 0.09375 * float32(dec.Rawbits(3)+1)

	tapset := 0
	if dec.AvailableBits() >= 2 {
		tapset = dec.ICDF(tapsetICDF)
	}

	var gains [3]float32
	for i := range gains {
		gains[i] = gain * postfilterTaps[tapset][i]
	}

	return PostfilterParams{
		Active: true,
		Period: period,
		Gain:   gain,
		Tapset: tapset,
		Gains:  gains,
	}
}
