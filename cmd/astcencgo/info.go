package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-astc/astcencoder/astc"
	"github.com/go-astc/astcencoder/internal/astcfile"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.astc>",
	Short: "Print the header and block grid of an .astc container",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().Bool("dump-first-block", false, "Print the first block payload as hex")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	dumpBlock, _ := cmd.Flags().GetBool("dump-first-block")

	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	f, err := astcfile.Read(in)
	if err != nil {
		return err
	}
	info, err := f.Info()
	if err != nil {
		return err
	}

	fmt.Println(info.Header.String())
	fmt.Printf("blocks: %dx%dx%d (%d total)\n", info.BlocksX, info.BlocksY, info.BlocksZ, info.TotalBlocks)
	fmt.Printf("rate: %.2f bpp\n", info.BitsPerTexel)
	fmt.Printf("stored: %d bytes (zstd=%t)\n", info.StoredSize, info.Zstd)
	if dumpBlock {
		if len(f.Blocks) < astc.BlockBytes {
			return fmt.Errorf("missing first block")
		}
		fmt.Println(hex.EncodeToString(f.Blocks[:astc.BlockBytes]))
	}
	return nil
}
