package main

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-astc/astcencoder/astc"
	"github.com/go-astc/astcencoder/internal/astcfile"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode an .astc or .astc.zst container to PNG",
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringP("input", "i", "", "Input .astc file")
	decodeCmd.Flags().StringP("output", "o", "", "Output PNG")
	decodeCmd.Flags().String("profile", "ldr", "Decode profile: ldr|srgb|hdr|hdr-rgb-ldr-a")
	decodeCmd.MarkFlagRequired("input")
	decodeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	profileStr, _ := cmd.Flags().GetString("profile")

	profile, err := parseProfile(profileStr)
	if err != nil {
		return err
	}
	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	f, err := astcfile.Read(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	if f.Header.SizeZ != 1 {
		return fmt.Errorf("3D images are not supported by this command (z=%d)", f.Header.SizeZ)
	}

	img, err := decodeImage(f, profile)
	if err != nil {
		return err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	return out.Close()
}

func decodeImage(f *astcfile.File, profile astc.Profile) (image.Image, error) {
	rect := image.Rect(0, 0, int(f.Header.SizeX), int(f.Header.SizeY))
	if profile == astc.ProfileLDR || profile == astc.ProfileLDRSRGB {
		pix, err := f.DecodeRGBA8(profile)
		if err != nil {
			return nil, err
		}
		return &image.NRGBA{Pix: pix, Stride: rect.Dx() * 4, Rect: rect}, nil
	}

	pix, err := f.DecodeRGBAF32(profile)
	if err != nil {
		return nil, err
	}
	img := image.NewNRGBA64(rect)
	for i, v := range pix {
		if !(v >= 0) {
			v = 0
		} else if v > 1 {
			v = 1
		}
		binary.BigEndian.PutUint16(img.Pix[i*2:], uint16(v*math.MaxUint16+0.5))
	}
	return img, nil
}
