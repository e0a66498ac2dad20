// Package celt decodes the control-plane parameters of a CELT frame per
// RFC 6716 Section 4.3: silence, post-filter, transient, coarse energy,
// time-frequency change, and bit allocation. It stops at the per-band bit
// allotments; PVQ shape decoding and MDCT synthesis are out of scope.
package celt

// MaxBands is the number of CELT frequency bands (RFC 6716 Section 4.3,
// Table 55).
const MaxBands = 21

// FrameSize indexes the four CELT block sizes: 0 = 120 samples (2.5ms),
// 1 = 240 (5ms), 2 = 480 (10ms), 3 = 960 (20ms) at 48kHz.
type FrameSize int

const (
	Size120 FrameSize = iota
	Size240
	Size480
	Size960
)

// Spread is the decoded spreading-factor hint for PVQ shape coding.
type Spread int

const (
	SpreadNone Spread = iota
	SpreadLight
	SpreadNormal
	SpreadAggressive
)

// spreadICDF is the ascending cumulative table for the spread decision,
// RFC 6716 Section 4.3.4.3 (Table 56): {None, Light, Normal, Aggressive}
// with probabilities {7, 2, 21, 2}/32; see SPEC_FULL.md's icdf convention.
var spreadICDF = []uint32{7, 9, 30, 32}

// tapsetICDF is the ascending cumulative table {2,3,4}/4 shared by the
// post-filter tapset and the coarse-energy fallback decode.
var tapsetICDF = []uint32{2, 3, 4}

// allocTrimICDF is RFC 6716's ALLOC_TRIM_MODEL. Its last element equals
// the table's cumulative total (128), per the known-bug note in
// SPEC_FULL.md: some source drafts carry a leading duplicate total that
// must be dropped, not folded into the ascending entries.
var allocTrimICDF = []uint32{2, 4, 9, 19, 41, 87, 109, 119, 124, 126, 128}

// staticCaps is RFC 6716 Section 4.3.4.5's per-band bit cap table, indexed
// [FrameSize][channels-1][band].
var staticCaps = [4][2][MaxBands]uint8{
	{ // 120-sample
		{224, 224, 224, 224, 224, 224, 224, 224, 160, 160, 160, 160, 185, 185, 185, 178, 178, 168, 134, 61, 37},
		{224, 224, 224, 224, 224, 224, 224, 224, 240, 240, 240, 240, 207, 207, 207, 198, 198, 183, 144, 66, 40},
	},
	{ // 240-sample
		{160, 160, 160, 160, 160, 160, 160, 160, 185, 185, 185, 185, 193, 193, 193, 183, 183, 172, 138, 64, 38},
		{240, 240, 240, 240, 240, 240, 240, 240, 207, 207, 207, 207, 204, 204, 204, 193, 193, 180, 143, 66, 40},
	},
	{ // 480-sample
		{185, 185, 185, 185, 185, 185, 185, 185, 193, 193, 193, 193, 193, 193, 193, 183, 183, 172, 138, 65, 39},
		{207, 207, 207, 207, 207, 207, 207, 207, 204, 204, 204, 204, 201, 201, 201, 188, 188, 176, 141, 66, 40},
	},
	{ // 960-sample
		{193, 193, 193, 193, 193, 193, 193, 193, 193, 193, 193, 193, 194, 194, 194, 184, 184, 173, 139, 65, 39},
		{204, 204, 204, 204, 204, 204, 204, 204, 201, 201, 201, 201, 198, 198, 198, 187, 187, 175, 140, 66, 40},
	},
}

// logFreqRange is RFC 6716's LOG_FREQ_RANGE table, the log2 of each band's
// width in 1/8-bit (Q3) units, used by the encoder side; carried for completeness
// per SPEC_FULL.md's table-literacy requirement even though this core's
// decode path only consumes freqRange directly.
var logFreqRange = [MaxBands]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 8, 8, 8, 8, 16, 16, 16, 21, 21, 24, 29, 34, 36,
}

// freqRange is RFC 6716's FREQ_RANGE table: each band's width in units of
// 200Hz-ish quanta used throughout the allocation math.
var freqRange = [MaxBands]uint8{
	1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 6, 6, 8, 12, 18, 22,
}

// log2Frac is RFC 6716's LOG2_FRAC table, used to size the intensity
// stereo reservation from the number of active bands.
var log2Frac = [24]uint8{
	0, 8, 13, 16, 19, 21, 23, 24, 26, 27, 28, 29, 30, 31, 32, 32, 33, 34, 34, 35, 36, 36, 37, 37,
}

// staticAlloc is RFC 6716's 11-row STATIC_ALLOC table that the bisection
// search indexes into: STATIC_ALLOC[quality][band].
var staticAlloc = [11][MaxBands]uint8{
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{90, 80, 75, 69, 63, 56, 49, 40, 34, 29, 20, 18, 10, 0, 0, 0, 0, 0, 0, 0, 0},
	{110, 100, 90, 84, 78, 71, 65, 58, 51, 45, 39, 32, 26, 20, 12, 0, 0, 0, 0, 0, 0},
	{118, 110, 103, 93, 86, 80, 75, 70, 65, 59, 53, 47, 40, 31, 23, 15, 4, 0, 0, 0, 0},
	{126, 119, 112, 104, 95, 89, 83, 78, 72, 66, 60, 54, 47, 39, 32, 25, 17, 12, 1, 0, 0},
	{134, 127, 120, 114, 103, 97, 91, 85, 78, 72, 66, 60, 54, 47, 41, 35, 29, 23, 16, 10, 1},
	{144, 137, 130, 124, 113, 107, 101, 95, 88, 82, 76, 70, 64, 57, 51, 45, 39, 33, 26, 15, 1},
	{152, 145, 138, 132, 123, 117, 111, 105, 98, 92, 86, 80, 74, 67, 61, 55, 49, 43, 36, 20, 1},
	{162, 155, 148, 142, 133, 127, 121, 115, 108, 102, 96, 90, 84, 77, 71, 65, 59, 53, 46, 30, 1},
	{172, 165, 158, 152, 143, 137, 131, 125, 118, 112, 106, 100, 94, 87, 81, 75, 69, 63, 56, 45, 20},
	{200, 200, 200, 200, 200, 200, 200, 200, 198, 193, 188, 183, 178, 173, 168, 163, 158, 153, 148, 129, 104},
}

// staticAllocVectors is the number of rows in staticAlloc; the bisection
// search's high bound starts at staticAllocVectors-1.
const staticAllocVectors = 11

// coarseEnergyDict is RFC 6716's per-(size, intra/inter, band) Laplace
// (fs0, decay) pair table, packed as 42 bytes (21 bands * 2 values) per
// [FrameSize][0=inter,1=intra].
var coarseEnergyDict = [4][2][42]uint8{
	{
		{ // 120-sample inter
			72, 127, 65, 129, 66, 128, 65, 128, 64, 128, 62, 128, 64, 128, 64, 128, 92, 78, 92, 79,
			92, 78, 90, 79, 116, 41, 115, 40, 114, 40, 132, 26, 132, 26, 145, 17, 161, 12, 176, 10,
			177, 11,
		},
		{ // 120-sample intra
			24, 179, 48, 138, 54, 135, 54, 132, 53, 134, 56, 133, 55, 132, 55, 132, 61, 114, 70, 96,
			74, 88, 75, 88, 87, 74, 89, 66, 91, 67, 100, 59, 108, 50, 120, 40, 122, 37, 97, 43, 78,
			50,
		},
	},
	{
		{ // 240-sample inter
			83, 78, 84, 81, 88, 75, 86, 74, 87, 71, 90, 73, 93, 74, 93, 74, 109, 40, 114, 36, 117,
			34, 117, 34, 143, 17, 145, 18, 146, 19, 162, 12, 165, 10, 178, 7, 189, 6, 190, 8, 177,
			9,
		},
		{ // 240-sample intra
			23, 178, 54, 115, 63, 102, 66, 98, 69, 99, 74, 89, 71, 91, 73, 91, 78, 89, 86, 80, 92,
			66, 93, 64, 102, 59, 103, 60, 104, 60, 117, 52, 123, 44, 138, 35, 133, 31, 97, 38, 77,
			45,
		},
	},
	{
		{ // 480-sample inter
			61, 90, 93, 60, 105, 42, 107, 41, 110, 45, 116, 38, 113, 38, 112, 38, 124, 26, 132, 27,
			136, 19, 140, 20, 155, 14, 159, 16, 158, 18, 170, 13, 177, 10, 187, 8, 192, 6, 175, 9,
			159, 10,
		},
		{ // 480-sample intra
			21, 178, 59, 110, 71, 86, 75, 85, 84, 83, 91, 66, 88, 73, 87, 72, 92, 75, 98, 72, 105,
			58, 107, 54, 115, 52, 114, 55, 112, 56, 129, 51, 132, 40, 150, 33, 140, 29, 98, 35, 77,
			42,
		},
	},
	{
		{ // 960-sample inter
			42, 121, 96, 66, 108, 43, 111, 40, 117, 44, 123, 32, 120, 36, 119, 33, 127, 33, 134, 34,
			139, 21, 147, 23, 152, 20, 158, 25, 154, 26, 166, 21, 173, 16, 184, 13, 184, 10, 150,
			13, 139, 15,
		},
		{ // 960-sample intra
			22, 178, 63, 114, 74, 82, 84, 83, 92, 82, 103, 62, 96, 72, 96, 67, 101, 73, 107, 72,
			113, 55, 118, 52, 125, 52, 118, 52, 117, 55, 135, 49, 137, 39, 157, 32, 145, 29, 97,
			33, 77, 40,
		},
	},
}

// alphaCoef, betaCoef are RFC 6716's 2D-predictor coefficients for the
// inter-frame coarse energy update, Q15 scaled into float32.
var alphaCoef = [4]float32{
	29440.0 / 32768.0,
	26112.0 / 32768.0,
	21248.0 / 32768.0,
	16384.0 / 32768.0,
}

var betaCoef = [4]float32{
	1.0 - 30147.0/32768.0,
	1.0 - 22282.0/32768.0,
	1.0 - 12124.0/32768.0,
	1.0 - 6554.0/32768.0,
}

// intraAlpha, intraBeta are the fixed coefficients used when the
// intra-frame coding mode is selected instead of the size-indexed tables.
const (
	intraAlpha = 0.0
	intraBeta  = 1.0 - 4915.0/32768.0
)

// tfSelect is RFC 6716's TF_SELECT table, indexed
// [FrameSize][transient][selectBit][changeFlag], giving the signed
// time-frequency resolution offset to apply.
var tfSelect = [4][2][2][2]int8{
	{{{0, -1}, {0, -1}}, {{0, -1}, {0, -1}}},
	{{{0, -1}, {0, -2}}, {{1, 0}, {1, -1}}},
	{{{0, -2}, {0, -3}}, {{2, 0}, {1, -1}}},
	{{{0, -2}, {0, -3}}, {{3, 0}, {1, -1}}},
}

// postfilterMinPeriod is the smallest legal post-filter pitch period.
const postfilterMinPeriod = 15

// postfilterTaps is RFC 6716 Section 4.3.7.1's three tapsets, each a
// 3-tap comb filter coefficient set.
var postfilterTaps = [3][3]float32{
	{0.3066406250, 0.2170410156, 0.1296386719},
	{0.4638671875, 0.2680664062, 0.0},
	{0.7998046875, 0.1000976562, 0.0},
}
