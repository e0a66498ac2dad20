package celt

import "github.com/mycrl/opusgo/internal/rangecoding"

// decodeCoarseEnergy decodes the per-band, per-channel coarse log-energy
// deltas (RFC 6716 Section 4.3.2.1) for bands in [bandStart, bandEnd),
// updating state.PrevEnergy in place. Bands outside the range are zeroed.
func decodeCoarseEnergy(dec *rangecoding.Decoder, state *State, size FrameSize, channels int, bandStart, bandEnd int) {
	intra := dec.AvailableBits() > 3 && dec.Logp(3)

	var alpha, beta float32
	var model [42]uint8
	if intra {
		alpha = intraAlpha
		beta = intraBeta
		model = coarseEnergyDict[size][1]
	} else {
		alpha = alphaCoef[size]
		beta = betaCoef[size]
		model = coarseEnergyDict[size][0]
	}

	var prev [2]float32
	for band := 0; band < MaxBands; band++ {
		for ch := 0; ch < channels; ch++ {
			if band < bandStart || band >= bandEnd {
				state.PrevEnergy[ch][band] = 0
				continue
			}

			var value float32
			switch available := dec.AvailableBits(); {
			case available >= 15:
				idx := band
				if idx > 20 {
					idx = 20
				}
				idx <<= 1
				fs0 := uint32(model[idx]) << 7
				decay := uint32(model[idx+1]) << 6
				value = float32(dec.Laplace(fs0, decay))
			case available >= 2:
				v := int32(dec.ICDF(tapsetICDF))
				value = float32((v >> 1) ^ -(v & 1))
			case available >= 1:
				if dec.Logp(1) {
					value = -1
				}
			default:
				value = -1
			}

			energy := state.PrevEnergy[ch][band]*alpha + prev[ch] + value
			if energy < -9 {
				energy = -9
			}
			state.PrevEnergy[ch][band] = energy
			prev[ch] += beta * value
		}
	}
}
