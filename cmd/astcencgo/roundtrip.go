package main

import (
	"fmt"
	"image/png"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-astc/astcencoder/astcimage"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Compress and decompress an image and write the decoded result as PNG",
	RunE:  runRoundtrip,
}

func init() {
	roundtripCmd.Flags().StringP("input", "i", "", "Input image")
	roundtripCmd.Flags().StringP("output", "o", "", "Output PNG")
	addEncodeFlags(roundtripCmd)
	roundtripCmd.MarkFlagRequired("input")
	roundtripCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(roundtripCmd)
}

func runRoundtrip(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	quiet, _ := cmd.Flags().GetBool("quiet")

	raw, comp, err := compressFile(cmd, inputPath)
	if err != nil {
		return err
	}
	defer raw.Release()
	defer comp.Release()

	var w astcimage.Worker
	opts := astcimage.DecompressOptions{}
	if !quiet {
		opts.UserInfo = "decompress"
		opts.Progress = printProgress
	}
	decoded, err := w.Decompress(comp, opts)
	if err != nil {
		return fmt.Errorf("decompressing: %w", err)
	}
	defer decoded.Release()

	img, err := decoded.Image()
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
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Printf("%s: %s blocks, rgb psnr %.2f dB\n", outputPath, comp.BlockFootprint(), psnrRGB(raw.Data(), decoded.Data()))
	return nil
}

// psnrRGB compares the colour channels of two RGBA8 buffers. Alpha is skipped because the
// encoder stores it as opaque.
func psnrRGB(a, b []byte) float64 {
	n := min(len(a), len(b))
	var sum float64
	var count int
	for i := 0; i+3 < n; i += 4 {
		for c := 0; c < 3; c++ {
			d := float64(a[i+c]) - float64(b[i+c])
			sum += d * d
		}
		count += 3
	}
	if count == 0 || sum == 0 {
		return math.Inf(1)
	}
	mse := sum / float64(count)
	return 10 * math.Log10(255*255/mse)
}
