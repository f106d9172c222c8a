package astc

import "errors"

// DecodeRGBA8 decodes a .astc file into an RGBA8 pixel buffer.
func DecodeRGBA8(astcData []byte) (pix []byte, width, height int, err error) {
	return DecodeRGBA8WithProfile(astcData, ProfileLDR)
}

// DecodeRGBA8WithProfile decodes a .astc file into an RGBA8 pixel buffer.
//
// Limitations:
//   - Only 2D images (SizeZ==1, BlockZ==1).
//   - Only LDR profiles (ProfileLDR, ProfileLDRSRGB).
func DecodeRGBA8WithProfile(astcData []byte, profile Profile) (pix []byte, width, height int, err error) {
	pix, width, height, depth, err := DecodeRGBA8VolumeWithProfile(astcData, profile)
	if err != nil {
		return nil, 0, 0, err
	}
	if depth != 1 {
		return nil, 0, 0, errors.New("astc: DecodeRGBA8WithProfile only supports 2D images (z==1); use DecodeRGBA8VolumeWithProfile")
	}
	return pix, width, height, nil
}
