package opusgo

import "testing"

func TestParseTOC(t *testing.T) {
	tests := []struct {
		name      string
		toc       byte
		config    uint8
		mode      Mode
		bandwidth Bandwidth
		frameSize int
		stereo    bool
		frameCode uint8
	}{
		{"config0_mono_code0", 0x00, 0, ModeSILK, BandwidthNarrowband, 480, false, 0},
		{"config0_stereo_code0", 0x04, 0, ModeSILK, BandwidthNarrowband, 480, true, 0},
		{"silk_nb_60ms", 0x18, 3, ModeSILK, BandwidthNarrowband, 2880, false, 0},
		{"hybrid_swb_10ms", 0x60, 12, ModeHybrid, BandwidthSuperwideband, 480, false, 0},
		{"hybrid_fb_20ms", 0x78, 15, ModeHybrid, BandwidthFullband, 960, false, 0},
		{"celt_nb_2.5ms", 0x80, 16, ModeCELT, BandwidthNarrowband, 120, false, 0},
		{"celt_fb_20ms", 0xF8, 31, ModeCELT, BandwidthFullband, 960, false, 0},
		{"config31_stereo_code3", 0xFF, 31, ModeCELT, BandwidthFullband, 960, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toc := ParseTOC(tt.toc)
			if toc.Config != tt.config {
				t.Errorf("Config: got %d, want %d", toc.Config, tt.config)
			}
			if toc.Mode != tt.mode {
				t.Errorf("Mode: got %d, want %d", toc.Mode, tt.mode)
			}
			if toc.Bandwidth != tt.bandwidth {
				t.Errorf("Bandwidth: got %d, want %d", toc.Bandwidth, tt.bandwidth)
			}
			if toc.FrameSize != tt.frameSize {
				t.Errorf("FrameSize: got %d, want %d", toc.FrameSize, tt.frameSize)
			}
			if toc.Stereo != tt.stereo {
				t.Errorf("Stereo: got %v, want %v", toc.Stereo, tt.stereo)
			}
			if toc.FrameCode != tt.frameCode {
				t.Errorf("FrameCode: got %d, want %d", toc.FrameCode, tt.frameCode)
			}
		})
	}
}

func TestParsePacketCode0(t *testing.T) {
	data := append([]byte{0x00}, make([]byte, 100)...)
	info, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.FrameCount != 1 || info.FrameSizes[0] != 100 {
		t.Fatalf("got %+v", info)
	}
}

func TestParsePacketCode1(t *testing.T) {
	data := append([]byte{0x01}, make([]byte, 20)...)
	info, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.FrameCount != 2 || info.FrameSizes[0] != 10 || info.FrameSizes[1] != 10 {
		t.Fatalf("got %+v", info)
	}

	if _, err := ParsePacket([]byte{0x01, 0xAA, 0xBB, 0xCC}); err == nil {
		t.Fatalf("expected error for odd-length code-1 remainder")
	}
}

func TestParsePacketCode2TwoByteLength(t *testing.T) {
	// frame1 length 300 encoded as [252, 12]: 4*12+252 = 300.
	data := append([]byte{0x02, 252, 12}, make([]byte, 300+50)...)
	info, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.FrameCount != 2 || info.FrameSizes[0] != 300 || info.FrameSizes[1] != 50 {
		t.Fatalf("got %+v", info)
	}
}

func TestParsePacketVBRMultipleThreeFrames(t *testing.T) {
	// Seed scenario: TOC=Multiple, flag=0x83 (VBR, no pad, M=3),
	// L1=251 (single byte), L2=300 (encoded as 252,12), remainder L3.
	const remainder = 64
	header := []byte{0xFB, 0x83, 251, 252, 12} // TOC frame code 3 (Multiple)
	data := append(append([]byte{}, header...), make([]byte, 251+300+remainder)...)

	info, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.FrameCount != 3 {
		t.Fatalf("FrameCount = %d, want 3", info.FrameCount)
	}
	want := []int{251, 300, remainder}
	for i, w := range want {
		if info.FrameSizes[i] != w {
			t.Fatalf("FrameSizes[%d] = %d, want %d", i, info.FrameSizes[i], w)
		}
	}
}

func TestParsePacketCode3CBR(t *testing.T) {
	data := append([]byte{0x03, 0x02}, make([]byte, 100)...)
	info, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.FrameCount != 2 || info.Padding != 0 {
		t.Fatalf("got %+v", info)
	}
	for _, size := range info.FrameSizes {
		if size != 50 {
			t.Fatalf("frame size %d, want 50", size)
		}
	}
}

func TestParsePacketCode3CBRWithPadding(t *testing.T) {
	// frameCount=0x42: CBR(bit6 clear VBR, bit6 set padding), M=2.
	data := append([]byte{0x03, 0x42, 10}, make([]byte, 110)...)
	info, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.FrameCount != 2 || info.Padding != 10 {
		t.Fatalf("got %+v", info)
	}
	for _, size := range info.FrameSizes {
		if size != 50 {
			t.Fatalf("frame size %d, want 50", size)
		}
	}
}

func TestParsePacketCode3VBR(t *testing.T) {
	// M=3, two explicit lengths (20, 30), third is remainder.
	data := append([]byte{0x03, 0x83, 20, 30}, make([]byte, 100)...)
	info, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{20, 30, 50}
	if info.FrameCount != 3 {
		t.Fatalf("FrameCount = %d, want 3", info.FrameCount)
	}
	for i, w := range want {
		if info.FrameSizes[i] != w {
			t.Fatalf("FrameSizes[%d] = %d, want %d", i, info.FrameSizes[i], w)
		}
	}
}

func TestParsePacketCode3VBRWithPadding(t *testing.T) {
	// M=2, VBR+padding: header 0xC2, padding length 5, then frame1 len 30.
	data := append([]byte{0x03, 0xC2, 5, 30}, make([]byte, 85)...)
	info, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.FrameCount != 2 || info.Padding != 5 {
		t.Fatalf("got %+v", info)
	}
	if info.FrameSizes[0] != 30 || info.FrameSizes[1] != 50 {
		t.Fatalf("got %+v", info.FrameSizes)
	}
}

func TestParsePacketInvalidFrameCount(t *testing.T) {
	data := append([]byte{0x03, 0x00}, make([]byte, 10)...)
	if _, err := ParsePacket(data); err != ErrInvalidFrameCount {
		t.Fatalf("err = %v, want ErrInvalidFrameCount", err)
	}

	data = append([]byte{0x03, 49}, make([]byte, 10)...)
	if _, err := ParsePacket(data); err != ErrInvalidFrameCount {
		t.Fatalf("err = %v, want ErrInvalidFrameCount", err)
	}
}

func TestParsePacketChainedPadding(t *testing.T) {
	// padding length 254+10 = 264, chain byte 255 then 10.
	header := []byte{0x03, 0x42, 255, 10}
	data := append(append([]byte{}, header...), make([]byte, 264+50)...)
	info, err := ParsePacket(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Padding != 264 {
		t.Fatalf("Padding = %d, want 264", info.Padding)
	}
}

func TestParsePacketTOCSilence(t *testing.T) {
	// Seed scenario: TOC = 0x00 parses as SILK config 0.
	toc := ParseTOC(0x00)
	if toc.Mode != ModeSILK || toc.Config != 0 {
		t.Fatalf("got %+v", toc)
	}
}

func TestParsePacketTOCMax(t *testing.T) {
	// Seed scenario: TOC = 0xFF parses as CELT config 31, stereo, code 3.
	toc := ParseTOC(0xFF)
	if toc.Mode != ModeCELT || toc.Config != 31 || !toc.Stereo || toc.FrameCode != 3 {
		t.Fatalf("got %+v", toc)
	}
}
