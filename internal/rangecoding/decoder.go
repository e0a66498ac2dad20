package rangecoding

// Decoder implements the Opus range decoder, RFC 6716 Section 4.1. It owns
// two independent views of the same frame buffer: a forward big-endian
// reader that feeds the probability-modelled symbol stream, and a reverse
// little-endian reader that feeds CELT's raw-bits channel. A Decoder is
// scoped to a single frame payload: construct one with Init per frame,
// consume symbols from it, then discard it.
type Decoder struct {
	forward forwardReader
	reverse reverseReader

	value uint32 // current position inside the interval
	rng   uint32 // width of the current interval; > 1<<23 after normalize

	totalBits    int // length of the payload in bits
	consumedBits int // bits conceptually consumed from the forward stream
	ended        bool
}

const (
	codeTop   = uint32(1) << 31 // 2^31, the encoder's upper limit value
	codeBot   = uint32(1) << 23 // 2^23, normalize threshold
	symbolMax = 0xFF            // mask applied to each incoming byte
)

// Init prepares d to decode buf from the beginning. buf is the compressed
// frame payload (the bytes after the TOC and any frame-length fields).
func (d *Decoder) Init(buf []byte) {
	d.forward = newForwardReader(buf)
	d.reverse = newReverseReader(buf)

	seven := d.forward.getBits(7)
	d.value = 127 - seven
	d.rng = 128
	d.totalBits = len(buf) * 8
	d.consumedBits = 9

	d.normalize()
}

// normalize restores the range-coder invariant rng > 1<<23 by pulling more
// bits from the forward stream, each XORed with 0xFF per RFC 6716 §4.1.1.
func (d *Decoder) normalize() {
	for d.rng <= codeBot {
		b := d.forward.getBits(8)
		d.value = ((d.value << 8) | (b ^ symbolMax)) & (codeTop - 1)
		d.rng <<= 8
		d.consumedBits += 8
	}
}

// getScaleSymbol locates the current value within a denominator-`total`
// interval, returning the per-unit scale and the inverse-mapped symbol
// index used by every narrowing decode.
func (d *Decoder) getScaleSymbol(total uint32) (scale, symbolIndex uint32) {
	scale = d.rng / total
	q := d.value/scale + 1
	if q > total {
		q = total
	}
	symbolIndex = total - q
	return
}

// updateRangeAndValue narrows (value, range) to the [lo, hi) sub-interval
// of a denominator-`total` distribution and renormalizes.
func (d *Decoder) updateRangeAndValue(scale, lo, hi, total uint32) {
	size := scale * (total - hi)
	d.value -= size
	if lo != 0 {
		d.rng = scale * (hi - lo)
	} else {
		d.rng -= size
	}
	d.normalize()
}

// Logp decodes a single bit whose "true" branch has probability 2^-p.
func (d *Decoder) Logp(p uint) bool {
	scale := d.rng >> p
	var result bool
	if scale > d.value {
		d.rng = scale
		result = true
	} else {
		d.rng -= scale
		d.value -= scale
		result = false
	}
	d.normalize()
	return result
}

// ICDF decodes a symbol from an ascending, non-decreasing cumulative
// frequency table whose last element is the distribution's total. It
// returns the index of the first entry in cdf that the current value
// falls under.
func (d *Decoder) ICDF(cdf []uint32) int {
	total := cdf[len(cdf)-1]
	scale, symbolIndex := d.getScaleSymbol(total)

	idx := 0
	for cdf[idx] <= symbolIndex {
		idx++
	}

	var lo uint32
	if idx > 0 {
		lo = cdf[idx-1]
	}
	hi := cdf[idx]

	d.updateRangeAndValue(scale, lo, hi, total)
	return idx
}

// Uniform decodes an integer uniformly distributed in [0, n). Values whose
// bit length exceeds 8 are split into an 8-bit coded head plus raw low
// bits drawn from the reverse reader.
func (d *Decoder) Uniform(n uint32) uint32 {
	if n < 2 {
		return 0
	}
	ft := n - 1
	bits := bitLength(ft)
	if bits <= 8 {
		scale, symbolIndex := d.getScaleSymbol(n)
		d.updateRangeAndValue(scale, symbolIndex, symbolIndex+1, n)
		return symbolIndex
	}

	bits -= 8
	total := (ft >> uint(bits)) + 1
	scale, symbolIndex := d.getScaleSymbol(total)
	d.updateRangeAndValue(scale, symbolIndex, symbolIndex+1, total)
	return (symbolIndex << uint(bits)) | d.Rawbits(uint32(bits))
}

// Laplace decodes a two-sided geometric (Laplace) variable centred at
// zero. fs0 is the frequency mass assigned to the zero symbol and decay
// (Q15) controls how quickly probability falls off with distance from
// zero.
func (d *Decoder) Laplace(fs0, decay uint32) int32 {
	scale := d.rng >> 15
	q := d.value/scale + 1
	if q > 32768 {
		q = 32768
	}
	center := uint32(32768) - q

	var value int32
	var lo uint32
	symbol := fs0

	if center >= symbol {
		value = 1
		lo = symbol
		symbol = 1 + ((32768-32-symbol)*(16384-decay))>>15

		for symbol > 1 && center >= lo+2*symbol {
			value++
			symbol *= 2
			lo += symbol
			symbol = (((symbol-2)*decay)>>15 + 1)
		}

		if symbol <= 1 {
			dist := (center - lo) >> 1
			value += int32(dist)
			lo += 2 * dist
		}

		if center < lo+symbol {
			value = -value
		} else {
			lo += symbol
		}
	}

	hi := lo + symbol
	if hi > 32768 {
		hi = 32768
	}
	d.updateRangeAndValue(scale, lo, hi, 32768)
	return value
}

// Step decodes a CELT pulse count using the asymmetric 3-per-k/1-per-k
// step distribution with denominator 4*k0+3.
func (d *Decoder) Step(k0 uint32) uint32 {
	k1 := 3 * (k0 + 1)
	total := 4*k0 + 3
	scale, symbolIndex := d.getScaleSymbol(total)

	var k, lo, hi uint32
	if symbolIndex < k1 {
		k = symbolIndex / 3
		lo, hi = 3*k, 3*(k+1)
	} else {
		k = symbolIndex - 2*(k0+1)
		lo = 3*(k0+1) + (k - 1 - k0)
		hi = 3*(k0+1) + (k - k0)
	}

	d.updateRangeAndValue(scale, lo, hi, total)
	return k
}

// Triangular decodes k in [0, qn] under a triangular PMF realised as a
// cumulative quadratic, resolved via integer square root.
func (d *Decoder) Triangular(qn uint32) uint32 {
	half := qn >> 1
	total := (half + 1) * (half + 1)
	scale, symbolIndex := d.getScaleSymbol(total)

	var k, lo, width uint32
	if symbolIndex < total>>1 {
		k = (isqrt(8*symbolIndex+1) - 1) >> 1
		lo = k * (k + 1) >> 1
		width = k + 1
	} else {
		k = (2*(qn+1) - isqrt(8*(total-symbolIndex-1)+1)) >> 1
		lo = total - ((qn+1-k)*(qn+2-k))>>1
		width = qn + 1 - k
	}

	d.updateRangeAndValue(scale, lo, lo+width, total)
	return k
}

// Rawbits reads n raw, unmodelled bits from the reverse (tail-end) stream.
// It advances bit accounting but never touches (value, range).
func (d *Decoder) Rawbits(n uint32) uint32 {
	d.consumedBits += int(n)
	return d.reverse.getBits(uint(n))
}

// ToEnd forces the decoder's consumed-bit count to the end of the payload,
// draining any residual bits. Used when a frame is declared silent.
func (d *Decoder) ToEnd() {
	d.consumedBits = d.totalBits
	d.ended = true
}

// Tell returns the number of bits consumed so far, rounded to a whole bit.
func (d *Decoder) Tell() int {
	if d.ended {
		return d.totalBits
	}
	return d.consumedBits - log2Floor(d.rng) - 1
}

// TellFrac returns the number of bits consumed in 1/8-bit units, using a
// three-iteration Newton refinement of log2(range) in Q15 fixed point.
func (d *Decoder) TellFrac() int {
	if d.ended {
		return d.totalBits * 8
	}

	log2Range := log2Floor(d.rng) + 1
	rangeQ15 := d.rng >> uint(log2Range-16)

	for i := 0; i < 3; i++ {
		rangeQ15 = (rangeQ15 * rangeQ15) >> 15
		lastBit := rangeQ15 >> 16
		log2Range = log2Range*2 | int(lastBit)
		rangeQ15 >>= lastBit
	}

	return d.consumedBits*8 - log2Range
}

// AvailableBits returns the number of whole bits remaining in the payload.
func (d *Decoder) AvailableBits() int {
	return d.totalBits - d.Tell()
}

// AvailableFrac returns the number of 1/8-bit units remaining.
func (d *Decoder) AvailableFrac() int {
	return 8*d.totalBits - d.TellFrac()
}

// TotalBits returns the payload length in bits.
func (d *Decoder) TotalBits() int {
	return d.totalBits
}

// bitLength returns the position of the highest set bit plus one (0 for
// x == 0) — the number of bits needed to represent x.
func bitLength(x uint32) int {
	n := 0
	if x >= 1<<16 {
		n += 16
		x >>= 16
	}
	if x >= 1<<8 {
		n += 8
		x >>= 8
	}
	if x >= 1<<4 {
		n += 4
		x >>= 4
	}
	if x >= 1<<2 {
		n += 2
		x >>= 2
	}
	if x >= 1<<1 {
		n += 1
		x >>= 1
	}
	return n + int(x)
}

// log2Floor returns floor(log2(x)) for x > 0.
func log2Floor(x uint32) int {
	return bitLength(x) - 1
}

// isqrt returns floor(sqrt(x)) using Newton's method over uint32.
func isqrt(x uint32) uint32 {
	if x == 0 {
		return 0
	}
	r := x
	for {
		next := (r + x/r) / 2
		if next >= r {
			return r
		}
		r = next
	}
}
