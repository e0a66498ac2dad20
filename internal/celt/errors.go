package celt

import "errors"

// ErrBandsOverflow is returned when a requested band range falls outside
// [0, MaxBands).
var ErrBandsOverflow = errors.New("celt: band range overflows MaxBands")
