package celt

import "github.com/mycrl/opusgo/internal/rangecoding"

// decodeTFChange decodes the per-band time-frequency resolution change
// (RFC 6716 Section 4.3.3) for bands in [bandStart, bandEnd), returning
// the signed offset to apply per band.
func decodeTFChange(dec *rangecoding.Decoder, size FrameSize, transient bool, bandStart, bandEnd int) [MaxBands]int {
	bits := uint(4)
	if transient {
		bits = 2
	}
	selectBit := size != Size120 && dec.AvailableBits() > int(bits)

	var result [MaxBands]int
	var diff, change bool
	for i := bandStart; i < bandEnd; i++ {
		threshold := int(bits)
		if selectBit {
			threshold++
		}
		if dec.AvailableBits() > threshold {
			diff = diff != dec.Logp(bits)
			change = change || diff
		}

		if diff {
			result[i] = 1
		}

		bits = 5
		if transient {
			bits = 4
		}
	}

	transientIdx := 0
	if transient {
		transientIdx = 1
	}
	table := tfSelect[size][transientIdx]

	changeIdx := 0
	if change {
		changeIdx = 1
	}

	selectIdx := 0
	if selectBit && table[0][changeIdx] != table[1][changeIdx] {
		if dec.Logp(1) {
			selectIdx = 1
		}
	}

	for i := bandStart; i < bandEnd; i++ {
		result[i] = int(table[selectIdx][result[i]])
	}

	return result
}
