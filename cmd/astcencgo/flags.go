package main

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/gift"

	"github.com/go-astc/astcencoder/astc"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func parseBlock(s string) (x, y int, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --block %q (want like 4x4)", s)
	}
	_, err = fmt.Sscanf(s, "%dx%d", &x, &y)
	if err != nil || x <= 0 || y <= 0 || x > 255 || y > 255 {
		return 0, 0, fmt.Errorf("invalid --block %q (want like 4x4)", s)
	}
	return x, y, nil
}

func parseProfile(s string) (astc.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ldr":
		return astc.ProfileLDR, nil
	case "srgb", "ldr-srgb":
		return astc.ProfileLDRSRGB, nil
	case "hdr", "hdr-rgba":
		return astc.ProfileHDR, nil
	case "hdr-rgb-ldr-a", "hdr-rgb-ldr-alpha":
		return astc.ProfileHDRRGBLDRAlpha, nil
	default:
		return 0, fmt.Errorf("invalid --profile %q (want ldr|srgb|hdr|hdr-rgb-ldr-a)", s)
	}
}

// parseQuality accepts an astcenc preset name or a number in [0,100].
func parseQuality(s string) (float32, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fastest":
		return 0, nil
	case "fast":
		return 10, nil
	case "medium":
		return 60, nil
	case "thorough":
		return 98, nil
	case "verythorough", "very-thorough":
		return 99, nil
	case "exhaustive":
		return 100, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil || v < 0 || v > 100 {
		return 0, fmt.Errorf("invalid --quality %q (want 0-100 or fastest|fast|medium|thorough|verythorough|exhaustive)", s)
	}
	return float32(v), nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// fitImage downscales img so that neither side exceeds maxDim. maxDim <= 0 disables it.
func fitImage(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	if maxDim <= 0 || (b.Dx() <= maxDim && b.Dy() <= maxDim) {
		return img
	}
	g := gift.New(gift.ResizeToFit(maxDim, maxDim, gift.LanczosResampling))
	dst := image.NewNRGBA(g.Bounds(b))
	g.Draw(dst, img)
	return dst
}
