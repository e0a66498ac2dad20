package celt

import "github.com/mycrl/opusgo/internal/rangecoding"

// Allocation is the CELT bit-allocation stage's output: the per-band bit
// budget the (out-of-scope) PVQ/MDCT stage consumes, plus the stereo
// reservation decisions made along the way.
type Allocation struct {
	Spread               Spread
	AllocTrim            int
	AntiCollapseReserved bool
	SkipReserved         bool

	// IntensityReserved reports whether LOG2_FRAC[bandEnd-bandStart] bits
	// were reserved for an intensity-stereo cutoff band. This stage only
	// reserves that budget, per RFC 6716 Section 4.3.4.4 — it does not
	// decode the cutoff band itself, since that read is interleaved with
	// the (out-of-scope) per-band PVQ shape decode that consumes this
	// allocation's BandBits.
	IntensityReserved bool
	DualStereo        bool

	Caps     [MaxBands]int
	Boost    [MaxBands]int
	BandBits [MaxBands]int
}

// decodeBitAllocation runs the three ordered phases of RFC 6716 Section
// 4.3.4 — spread, static caps / band boosts / trim, and the bisection
// search over STATIC_ALLOC — for bands in [bandStart, bandEnd).
// totalBits is the frame's payload length in bits (dec.TotalBits()).
func decodeBitAllocation(dec *rangecoding.Decoder, size FrameSize, channels int, transient bool, bandStart, bandEnd, totalBits int) Allocation {
	var a Allocation

	// Spread.
	if dec.AvailableBits() > 4 {
		a.Spread = Spread(dec.ICDF(spreadICDF))
	} else {
		a.Spread = SpreadNormal
	}

	// Static caps.
	for i := 0; i < MaxBands; i++ {
		bits := (int(staticCaps[size][channels-1][i]) + 64) * int(freqRange[i])
		a.Caps[i] = bits << uint(channels-1) << uint(size) >> 2
	}

	// Band boosts (dynalloc).
	tbits8ths := totalBits<<3 - dec.TellFrac() - 1
	dynalloc := 6
	for i := bandStart; i < bandEnd; i++ {
		bandDynalloc := dynalloc

		it := int(freqRange[i]) << uint(channels-1) << uint(size)
		quanta := it << 3
		floor := it
		if floor < 48 {
			floor = 48
		}
		if floor < quanta {
			quanta = floor
		}

		for dec.TellFrac()+bandDynalloc<<3 < tbits8ths && a.Boost[i] < a.Caps[i] {
			if !dec.Logp(uint(bandDynalloc)) {
				break
			}
			a.Boost[i] += quanta
			tbits8ths -= quanta
			bandDynalloc = 1
		}

		if a.Boost[i] > 0 && dynalloc > 2 {
			dynalloc--
		}
	}

	// Allocation trim.
	if dec.TellFrac()+(6<<3) <= tbits8ths {
		a.AllocTrim = dec.ICDF(allocTrimICDF)
	} else {
		a.AllocTrim = 5
	}

	// Anti-collapse reservation.
	tbits8ths = totalBits<<3 - dec.TellFrac() - 1
	if transient && size >= 2 && tbits8ths >= (int(size)+2)<<3 {
		a.AntiCollapseReserved = true
		tbits8ths -= 1 << 3
	}

	// Skip reservation.
	if tbits8ths >= 1<<3 {
		a.SkipReserved = true
		tbits8ths -= 1 << 3
	}

	// Intensity / dual-stereo reservations. Order matters: skip, then
	// intensity, then dual-stereo, each guarded against underflow.
	if channels == 2 {
		bits := int(log2Frac[bandEnd-bandStart])
		if bits <= tbits8ths {
			tbits8ths -= bits
			a.IntensityReserved = true
			if tbits8ths >= 1<<3 {
				a.DualStereo = true
				tbits8ths -= 1 << 3
			}
		}
	}

	// Trim offsets and per-band PVQ-floor thresholds.
	var trimOffset, threshold [MaxBands]int
	for i := bandStart; i < bandEnd; i++ {
		trim := a.AllocTrim - 5 - int(size)
		band := int(freqRange[i]) * (bandEnd - i - 1)
		duration := int(size) + 3
		scale := duration + channels - 1

		th := (3 * int(freqRange[i]) << uint(duration)) >> 4
		if th < channels<<3 {
			th = channels << 3
		}
		threshold[i] = th

		trimOffset[i] = trim * (band << uint(scale)) >> 6
		if int(freqRange[i])<<uint(size) == 1 {
			trimOffset[i] -= channels << 3
		}
	}

	// bandTotals replays the reverse-order per-band accounting pass that
	// both the bisection search and the final allocation pass need: once
	// one band (scanned from the highest frequency down) clears its
	// threshold, every remaining (lower) band is funded too.
	bandTotals := func(level int) (perBand [MaxBands]int, total int) {
		done := false
		for i := bandEnd - 1; i >= bandStart; i-- {
			bandbits := (int(freqRange[i]) * int(staticAlloc[level][i])) << uint(channels-1) << uint(size) >> 2
			if bandbits > 0 {
				bandbits += trimOffset[i]
				if bandbits < 0 {
					bandbits = 0
				}
			}
			bandbits += a.Boost[i]

			switch {
			case bandbits >= threshold[i] || done:
				done = true
				if bandbits > a.Caps[i] {
					bandbits = a.Caps[i]
				}
				perBand[i] = bandbits
				total += bandbits
			case bandbits >= channels<<3:
				perBand[i] = channels << 3
				total += channels << 3
			default:
				perBand[i] = 0
			}
		}
		return perBand, total
	}

	lo, hi := 1, staticAllocVectors-1
	final := 0
	for lo <= hi {
		mid := (lo + hi) >> 1
		_, total := bandTotals(mid)
		if total <= tbits8ths {
			final = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	a.BandBits, _ = bandTotals(final)
	return a
}
