package header

import "testing"

func TestParseOpusHeadMinimal(t *testing.T) {
	// Seed scenario: OpusHead minimal bytes.
	data := []byte{
		'O', 'p', 'u', 's', 'H', 'e', 'a', 'd', // magic
		0x01,       // version
		0x02,       // channels
		0x38, 0x00, // pre_skip = 0x0038 LE
		0x80, 0xBB, 0x00, 0x00, // sample_rate = 48000 LE
		0x00, 0x00, // output_gain = 0
		0x00, // mapping_family = 0 (RTP/Normal)
	}

	h, err := ParseOpusHead(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Channels != 2 {
		t.Errorf("Channels = %d, want 2", h.Channels)
	}
	if h.PreSkip != 0x0038 {
		t.Errorf("PreSkip = %#x, want 0x38", h.PreSkip)
	}
	if h.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", h.SampleRate)
	}
	if h.OutputGain != 0 {
		t.Errorf("OutputGain = %d, want 0", h.OutputGain)
	}
	if h.MappingFamily != MappingFamilyRTP {
		t.Errorf("MappingFamily = %d, want RTP", h.MappingFamily)
	}
	if h.StreamCount != 1 || h.CoupledCount != 1 {
		t.Errorf("derived stream/coupled = %d/%d, want 1/1", h.StreamCount, h.CoupledCount)
	}
}

func TestParseOpusHeadOutputGainLittleEndian(t *testing.T) {
	// A negative gain (-256, 0xFF00) must decode little-endian: bytes
	// [0x00, 0xFF] -> int16(0xFF00) = -256. A decoder that reads this
	// field big-endian would instead read the same bytes as 0x00FF = +255.
	data := []byte{
		'O', 'p', 'u', 's', 'H', 'e', 'a', 'd',
		0x01, 0x01,
		0x00, 0x00,
		0x80, 0xBB, 0x00, 0x00,
		0x00, 0xFF, // output_gain LE = -256
		0x00,
	}
	h, err := ParseOpusHead(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.OutputGain != -256 {
		t.Errorf("OutputGain = %d, want -256", h.OutputGain)
	}
}

func TestParseOpusHeadRejectsBadMagic(t *testing.T) {
	data := make([]byte, opusHeadMinSize)
	copy(data, "NotOpusH")
	if _, err := ParseOpusHead(data); err != ErrNotOpusHead {
		t.Fatalf("err = %v, want ErrNotOpusHead", err)
	}
}

func TestParseOpusHeadRejectsBadVersion(t *testing.T) {
	data := []byte{
		'O', 'p', 'u', 's', 'H', 'e', 'a', 'd',
		0x02, // unsupported version
		0x01,
		0x00, 0x00,
		0x80, 0xBB, 0x00, 0x00,
		0x00, 0x00,
		0x00,
	}
	if _, err := ParseOpusHead(data); err != ErrUnexpectedVersionNumber {
		t.Fatalf("err = %v, want ErrUnexpectedVersionNumber", err)
	}
}

func TestParseOpusHeadTruncated(t *testing.T) {
	data := []byte("OpusHead\x01\x02")
	if _, err := ParseOpusHead(data); err != ErrInvalidData {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestOpusHeadRoundTrip(t *testing.T) {
	h := &OpusHead{
		Version:       1,
		Channels:      2,
		PreSkip:       312,
		SampleRate:    48000,
		OutputGain:    -128,
		MappingFamily: 0,
		StreamCount:   1,
		CoupledCount:  1,
	}
	encoded := h.Encode()
	decoded, err := ParseOpusHead(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Channels != h.Channels || decoded.PreSkip != h.PreSkip ||
		decoded.SampleRate != h.SampleRate || decoded.OutputGain != h.OutputGain ||
		decoded.StreamCount != h.StreamCount || decoded.CoupledCount != h.CoupledCount {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, h)
	}
}

func TestOpusHeadMultistreamMapping(t *testing.T) {
	h := &OpusHead{
		Version:        1,
		Channels:       4,
		SampleRate:     48000,
		MappingFamily:  1,
		StreamCount:    2,
		CoupledCount:   2,
		ChannelMapping: []byte{0, 1, 2, 3},
	}
	encoded := h.Encode()
	decoded, err := ParseOpusHead(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded.ChannelMapping) != 4 {
		t.Fatalf("ChannelMapping len = %d, want 4", len(decoded.ChannelMapping))
	}
}

func TestOpusHeadProjectionMappingRoundTrip(t *testing.T) {
	// RFC 8486 family-3: a channel mapping table (length Channels) precedes
	// the demixing matrix, same as family 1/2 — it is not replaced by it.
	h := &OpusHead{
		Version:        1,
		Channels:       2,
		SampleRate:     48000,
		MappingFamily:  MappingFamilyProjection,
		StreamCount:    2,
		CoupledCount:   0,
		ChannelMapping: []byte{0, 1},
		DemixingMatrix: []byte{
			0xAB, 0xCD, 0x00, 0x00,
			0x00, 0x00, 0xAB, 0xCD,
		},
	}
	encoded := h.Encode()
	decoded, err := ParseOpusHead(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded.ChannelMapping) != 2 || decoded.ChannelMapping[0] != 0 || decoded.ChannelMapping[1] != 1 {
		t.Fatalf("ChannelMapping = %v, want [0 1]", decoded.ChannelMapping)
	}
	if len(decoded.DemixingMatrix) != len(h.DemixingMatrix) || decoded.DemixingMatrix[0] != 0xAB {
		t.Fatalf("DemixingMatrix = %v, want %v", decoded.DemixingMatrix, h.DemixingMatrix)
	}
}

func TestParseOpusHeadProjectionMatrixSizeNoOverflow(t *testing.T) {
	// StreamCount=200, CoupledCount=100 sums to 300, which overflows
	// uint8 if added before widening to int. expectedDemixingMatrixSize
	// must use the full 300, not the wrapped 44.
	channels := uint8(2)
	streamCount := uint8(200)
	coupledCount := uint8(100)

	data := make([]byte, opusHeadMinSize)
	copy(data, "OpusHead\x01")
	data[9] = channels
	data[18] = MappingFamilyProjection
	data = append(data, streamCount, coupledCount)
	data = append(data, make([]byte, int(channels))...) // ChannelMapping

	wantSize := 2 * int(channels) * (int(streamCount) + int(coupledCount))
	data = append(data, make([]byte, wantSize-1)...) // one byte short

	if _, err := ParseOpusHead(data); err != ErrInvalidData {
		t.Fatalf("err = %v, want ErrInvalidData for truncated demixing matrix", err)
	}

	data = append(data, 0) // now exactly wantSize bytes
	h, err := ParseOpusHead(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.DemixingMatrix) != wantSize {
		t.Fatalf("DemixingMatrix len = %d, want %d", len(h.DemixingMatrix), wantSize)
	}
}

func TestParseOpusTagsNoComments(t *testing.T) {
	// Seed scenario: vendor "libopus 1.3", zero comments.
	tags := &OpusTags{Vendor: "libopus 1.3"}
	encoded := tags.Encode()

	decoded, err := ParseOpusTags(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Vendor != "libopus 1.3" {
		t.Errorf("Vendor = %q, want %q", decoded.Vendor, "libopus 1.3")
	}
	if len(decoded.Comments) != 0 {
		t.Errorf("Comments = %v, want empty", decoded.Comments)
	}
}

func TestParseOpusTagsPreservesOrderAndDuplicateKeys(t *testing.T) {
	tags := &OpusTags{
		Vendor: "libopus 1.3",
		Comments: []Comment{
			{Key: "ARTIST", Value: "first"},
			{Key: "ARTIST", Value: "second"},
			{Key: "TITLE", Value: "a song"},
		},
	}
	encoded := tags.Encode()

	decoded, err := ParseOpusTags(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded.Comments) != 3 {
		t.Fatalf("Comments len = %d, want 3", len(decoded.Comments))
	}
	if decoded.Comments[0].Value != "first" || decoded.Comments[1].Value != "second" {
		t.Errorf("comment order not preserved: %+v", decoded.Comments)
	}
	if decoded.Comments[2].Key != "TITLE" || decoded.Comments[2].Value != "a song" {
		t.Errorf("got %+v", decoded.Comments[2])
	}
}

func TestParseOpusTagsRejectsBadMagic(t *testing.T) {
	data := []byte("NotOpusTags\x00\x00\x00\x00\x00\x00\x00\x00")
	if _, err := ParseOpusTags(data); err != ErrNotOpusTags {
		t.Fatalf("err = %v, want ErrNotOpusTags", err)
	}
}

func TestParseOpusTagsRejectsNonUTF8(t *testing.T) {
	tags := &OpusTags{Vendor: "libopus"}
	encoded := tags.Encode()
	// Corrupt a byte inside the vendor string to an invalid UTF-8 lead byte.
	encoded[12] = 0xFF

	if _, err := ParseOpusTags(encoded); err != ErrNonUTF8 {
		t.Fatalf("err = %v, want ErrNonUTF8", err)
	}
}
