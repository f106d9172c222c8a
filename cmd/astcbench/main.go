package main

import (
	"context"
	"flag"
	"fmt"
	"hash/fnv"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/pflag"

	"github.com/go-astc/astcencoder/astcimage"
)

type benchConfig struct {
	width, height int
	blockX        int
	blockY        int
	quality       float32
	componentSize int
	workers       int
	iters         int
	decompress    bool
}

type workerResult struct {
	compressed   time.Duration
	decompressed time.Duration
	checksum     uint64
	err          error
}

func main() {
	var (
		cfg        benchConfig
		block      string
		cpuprofile string
	)
	pflag.IntVarP(&cfg.width, "width", "w", 512, "image width")
	pflag.IntVarP(&cfg.height, "height", "h", 512, "image height")
	pflag.StringVar(&block, "block", "4x4", "block footprint")
	pflag.Float32Var(&cfg.quality, "quality", astcimage.DefaultQuality, "quality 0-100")
	pflag.IntVar(&cfg.componentSize, "component-size", 1, "bytes per sample: 1, 2 or 4")
	pflag.IntVar(&cfg.workers, "workers", runtime.GOMAXPROCS(0), "parallel workers")
	pflag.IntVar(&cfg.iters, "iters", 4, "iterations per worker")
	pflag.BoolVar(&cfg.decompress, "decompress", true, "also decompress each result")
	pflag.StringVar(&cpuprofile, "cpuprofile", "", "optional CPU profile output path")
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()
	_ = flag.CommandLine.Parse(nil)
	defer glog.Flush()

	if _, err := fmt.Sscanf(block, "%dx%d", &cfg.blockX, &cfg.blockY); err != nil {
		fmt.Fprintf(os.Stderr, "invalid --block %q (want like 4x4)\n", block)
		os.Exit(2)
	}
	if cfg.workers <= 0 || cfg.iters <= 0 {
		fmt.Fprintln(os.Stderr, "workers and iters must be > 0")
		os.Exit(2)
	}

	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg benchConfig) error {
	raw, err := syntheticImage(cfg.width, cfg.height, cfg.componentSize)
	if err != nil {
		return err
	}
	defer raw.Release()

	results := make([]workerResult, cfg.workers)
	var wg sync.WaitGroup
	start := time.Now()
	for i := range results {
		wg.Add(1)
		go func(img *astcimage.RawImage, res *workerResult) {
			defer wg.Done()
			defer img.Release()
			*res = benchWorker(ctx, img, cfg)
		}(raw.Retain(), &results[i])
	}
	wg.Wait()
	elapsed := time.Since(start)

	var compressTime, decompressTime time.Duration
	var checksum uint64
	for i, r := range results {
		if r.err != nil {
			return fmt.Errorf("worker %d: %w", i, r.err)
		}
		compressTime += r.compressed
		decompressTime += r.decompressed
		if i == 0 {
			checksum = r.checksum
		} else if r.checksum != checksum {
			return fmt.Errorf("worker %d: output checksum %016x differs from %016x", i, r.checksum, checksum)
		}
	}

	images := cfg.workers * cfg.iters
	mpix := float64(cfg.width*cfg.height*images) / 1e6
	fmt.Printf("%dx%d cs=%d block=%dx%d q=%.0f workers=%d iters=%d\n",
		cfg.width, cfg.height, cfg.componentSize, cfg.blockX, cfg.blockY, cfg.quality, cfg.workers, cfg.iters)
	fmt.Printf("wall %v, %.2f MPix/s aggregate\n", elapsed.Round(time.Millisecond), mpix/elapsed.Seconds())
	fmt.Printf("compress %.2f MPix/s per worker\n", mpix/compressTime.Seconds())
	if cfg.decompress {
		fmt.Printf("decompress %.2f MPix/s per worker\n", mpix/decompressTime.Seconds())
	}
	fmt.Printf("checksum %016x\n", checksum)
	return nil
}

// benchWorker compresses img cfg.iters times on its own Worker.
func benchWorker(ctx context.Context, img *astcimage.RawImage, cfg benchConfig) workerResult {
	var (
		w   astcimage.Worker
		res workerResult
	)
	opts := astcimage.CompressOptions{BlockWidth: cfg.blockX, BlockHeight: cfg.blockY, Quality: astcimage.Quality(cfg.quality)}
	for i := 0; i < cfg.iters; i++ {
		t0 := time.Now()
		comp, err := w.Compress(ctx, img, opts)
		if err != nil {
			res.err = err
			return res
		}
		res.compressed += time.Since(t0)

		h := fnv.New64a()
		_, _ = h.Write(comp.Data())
		res.checksum = h.Sum64()

		if cfg.decompress {
			t0 = time.Now()
			out, err := w.Decompress(comp, astcimage.DecompressOptions{})
			if err != nil {
				comp.Release()
				res.err = err
				return res
			}
			res.decompressed += time.Since(t0)
			out.Release()
		}
		comp.Release()
	}
	return res
}
