// Package opusgo implements the control-plane decoder core of the Opus
// audio codec in pure Go.
//
// Opus is a lossy audio codec designed for interactive speech and music
// transmission, standardized as RFC 6716. This package decodes the
// packet framing and CELT frame control-plane parameters of an Opus
// bitstream: the range-coded symbol schedule that every CELT frame
// follows before PVQ shape decoding and MDCT synthesis take over.
//
// Encoding, SILK/Hybrid signal back-ends, PVQ/MDCT synthesis math, Ogg
// page framing, resampling, and SIMD are out of scope; see SPEC_FULL.md
// for the full boundary.
//
// # Opus Modes
//
// Opus operates in three modes:
//   - SILK: speech-optimized, Narrowband to Wideband (8-16 kHz sample rate)
//   - CELT: audio-optimized, full 48 kHz bandwidth
//   - Hybrid: SILK for low frequencies + CELT for high frequencies
//
// The mode is determined by the TOC byte in each packet.
//
// # Packet Structure
//
// Each Opus packet starts with a TOC (Table of Contents) byte:
//   - Bits 7-3: Configuration (0-31)
//   - Bit 2: Stereo flag
//   - Bits 1-0: Frame count code (0-3)
//
// Use ParseTOC to extract these fields, ParsePacket to determine the
// frame boundaries within a packet, and DecodeFrame to run a single
// frame's range-coded control-plane schedule.
//
// # Sub-packages
//
// internal/rangecoding implements the dual bit readers and the
// range/arithmetic entropy decoder (RFC 6716 Section 4.1). internal/celt
// implements the CELT frame controller's six-step symbol schedule (RFC
// 6716 Section 4.3). header decodes the OpusHead/OpusTags metadata
// packets defined by RFC 7845.
package opusgo
