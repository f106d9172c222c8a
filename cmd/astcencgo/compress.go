package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-astc/astcencoder/astcimage"
	"github.com/go-astc/astcencoder/internal/astcfile"
)

var compressCmd = &cobra.Command{
	Use:   "compress",
	Short: "Compress an image to an .astc container",
	RunE:  runCompress,
}

func init() {
	compressCmd.Flags().StringP("input", "i", "", "Input image (png, jpeg, gif, bmp, tiff, webp)")
	compressCmd.Flags().StringP("output", "o", "", "Output .astc file")
	addEncodeFlags(compressCmd)
	compressCmd.Flags().Bool("zstd", false, "Wrap the container in a zstd frame")
	compressCmd.MarkFlagRequired("input")
	compressCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(compressCmd)
}

func addEncodeFlags(cmd *cobra.Command) {
	cmd.Flags().String("block", "4x4", "Block footprint")
	cmd.Flags().String("quality", "medium", "Quality: 0-100 or a preset name")
	cmd.Flags().Bool("linear", false, "Mark the source as linear color")
	cmd.Flags().Int("max-dim", 0, "Downscale so neither side exceeds this many pixels (0 keeps the source size)")
	cmd.Flags().Bool("quiet", false, "Do not print progress")
}

func encodeOptions(cmd *cobra.Command) (astcimage.CompressOptions, error) {
	blockStr, _ := cmd.Flags().GetString("block")
	qualityStr, _ := cmd.Flags().GetString("quality")
	quiet, _ := cmd.Flags().GetBool("quiet")

	bx, by, err := parseBlock(blockStr)
	if err != nil {
		return astcimage.CompressOptions{}, err
	}
	q, err := parseQuality(qualityStr)
	if err != nil {
		return astcimage.CompressOptions{}, err
	}
	opts := astcimage.CompressOptions{BlockWidth: bx, BlockHeight: by, Quality: astcimage.Quality(q)}
	if !quiet {
		opts.UserInfo = "compress"
		opts.Progress = printProgress
	}
	return opts, nil
}

func printProgress(userInfo any, p float32) bool {
	fmt.Fprintf(os.Stderr, "\r%s %5.1f%%", userInfo, p*100)
	if p >= 1 {
		fmt.Fprintln(os.Stderr)
	}
	return false
}

// compressFile loads path and encodes it with the command's flags.
func compressFile(cmd *cobra.Command, path string) (*astcimage.RawImage, *astcimage.CompressedImage, error) {
	linear, _ := cmd.Flags().GetBool("linear")
	opts, err := encodeOptions(cmd)
	if err != nil {
		return nil, nil, err
	}

	maxDim, _ := cmd.Flags().GetInt("max-dim")

	img, err := loadImage(path)
	if err != nil {
		return nil, nil, err
	}
	img = fitImage(img, maxDim)
	raw, err := astcimage.NewRawImageFromImage(img, linear)
	if err != nil {
		return nil, nil, fmt.Errorf("preparing %s: %w", path, err)
	}

	var w astcimage.Worker
	comp, err := w.Compress(cmd.Context(), raw, opts)
	if err != nil {
		raw.Release()
		return nil, nil, fmt.Errorf("compressing %s (%s): %w", path, astcimage.KindOf(err), err)
	}
	return raw, comp, nil
}

func runCompress(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	useZstd, _ := cmd.Flags().GetBool("zstd")

	start := time.Now()
	raw, comp, err := compressFile(cmd, inputPath)
	if err != nil {
		return err
	}
	defer raw.Release()
	defer comp.Release()

	data, err := astcfile.Marshal(comp, astcfile.Options{Zstd: useZstd})
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fp := comp.BlockFootprint()
	fmt.Printf("%s: %dx%d -> %s blocks %dx%d, %d bytes in %v\n",
		outputPath, comp.Width(), comp.Height(), fp, comp.NumBlocks().Width, comp.NumBlocks().Height,
		len(data), time.Since(start).Round(time.Millisecond))
	return nil
}
