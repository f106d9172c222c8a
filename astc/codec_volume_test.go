package astc_test

import (
	"bytes"
	"testing"

	"github.com/go-astc/astcencoder/astc"
)

func TestDecodeRGBA8Volume_3D_ConstBlock(t *testing.T) {
	h := astc.Header{
		BlockX: 4,
		BlockY: 4,
		BlockZ: 4,
		SizeX:  4,
		SizeY:  4,
		SizeZ:  4,
	}
	hdr, err := astc.MarshalHeader(h)
	if err != nil {
		t.Fatalf("MarshalHeader: %v", err)
	}
	block := astc.EncodeConstBlockRGBA8(10, 20, 30, 40)
	astcData := append(hdr[:], block[:]...)

	pix, w, h2, d, err := astc.DecodeRGBA8VolumeWithProfile(astcData, astc.ProfileLDR)
	if err != nil {
		t.Fatalf("DecodeRGBA8VolumeWithProfile: %v", err)
	}
	if w != 4 || h2 != 4 || d != 4 {
		t.Fatalf("unexpected dimensions: %dx%dx%d", w, h2, d)
	}
	if len(pix) != w*h2*d*4 {
		t.Fatalf("unexpected pix length: %d", len(pix))
	}

	samples := [][3]int{
		{0, 0, 0},
		{3, 0, 0},
		{0, 3, 0},
		{3, 3, 0},
		{0, 0, 3},
		{3, 3, 3},
		{2, 1, 3},
	}
	for _, s := range samples {
		x, y, z := s[0], s[1], s[2]
		off := ((z*h2+y)*w + x) * 4
		if pix[off+0] != 10 || pix[off+1] != 20 || pix[off+2] != 30 || pix[off+3] != 40 {
			t.Fatalf("pixel (%d,%d,%d) mismatch: got (%d,%d,%d,%d) want (10,20,30,40)",
				x, y, z,
				pix[off+0], pix[off+1], pix[off+2], pix[off+3])
		}
	}

	// The 2D API should reject 3D images.
	if _, _, _, err := astc.DecodeRGBA8WithProfile(astcData, astc.ProfileLDR); err == nil {
		t.Fatalf("DecodeRGBA8WithProfile unexpectedly accepted a 3D image")
	}
}

func TestDecodeRGBA8VolumeFromParsedWithProfileInto_MatchesDecode(t *testing.T) {
	h := astc.Header{
		BlockX: 4,
		BlockY: 4,
		BlockZ: 4,
		SizeX:  4,
		SizeY:  4,
		SizeZ:  4,
	}
	hdr, err := astc.MarshalHeader(h)
	if err != nil {
		t.Fatalf("MarshalHeader: %v", err)
	}
	block := astc.EncodeConstBlockRGBA8(10, 20, 30, 40)
	astcData := append(hdr[:], block[:]...)

	parsedH, blocks, err := astc.ParseFile(astcData)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	dst1 := make([]byte, 4*4*4*4)
	if _, _, _, err := astc.DecodeRGBA8VolumeWithProfileInto(astcData, astc.ProfileLDR, dst1); err != nil {
		t.Fatalf("DecodeRGBA8VolumeWithProfileInto: %v", err)
	}

	dst2 := make([]byte, len(dst1))
	if err := astc.DecodeRGBA8VolumeFromParsedWithProfileInto(astc.ProfileLDR, parsedH, blocks, dst2); err != nil {
		t.Fatalf("DecodeRGBA8VolumeFromParsedWithProfileInto: %v", err)
	}

	if !bytes.Equal(dst1, dst2) {
		t.Fatalf("decoded output mismatch")
	}
}

