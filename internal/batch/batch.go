// Package batch generates many markers in parallel and records them in a
// manifest next to the image files.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/mrsinham/markerforge/internal/export"
	"github.com/mrsinham/markerforge/internal/marker"
)

// MaxDrawAttempts bounds how many times a colliding seed is redrawn.
const MaxDrawAttempts = 100

// Options contains all parameters needed to generate a batch of markers.
type Options struct {
	Count     int     // Number of markers (0 = len(Seeds), or 1 when no seeds are given)
	Seeds     []int32 // Explicit seeds; drawn from Generator when empty
	Kind      marker.Kind
	Size      int    // Output side length (0 = marker.DefaultSize, clamped to marker.MaxSize)
	Label     string // Label template, may reference {id}
	Format    export.Format
	Quality   int // JPEG quality (0 = export.DefaultJPEGQuality)
	OutputDir string
	Workers   int // Number of parallel workers (0 = auto-detect based on CPU cores)

	// Generator draws seeds and renders markers (nil = process-wide generator).
	Generator *marker.Generator

	// Output control
	Quiet            bool                     // Suppress progress output (for TUI integration)
	ProgressCallback func(current, total int) // Optional callback for progress updates
}

// Result describes one written marker.
type Result struct {
	Seed  int32
	Path  string
	Bytes int64
}

type task struct {
	index int
	seed  int32
}

type taskResult struct {
	index int
	res   Result
	err   error
}

// normalize applies defaults and validates opts.
func (o Options) normalize() (Options, error) {
	if o.Count < 0 {
		return o, fmt.Errorf("count must be >= 0, got %d", o.Count)
	}
	if len(o.Seeds) > 0 {
		if o.Count == 0 {
			o.Count = len(o.Seeds)
		}
		if o.Count != len(o.Seeds) {
			return o, fmt.Errorf("count %d does not match the %d seeds given", o.Count, len(o.Seeds))
		}
		seen := make(map[int32]bool, len(o.Seeds))
		for _, s := range o.Seeds {
			if seen[s] {
				return o, fmt.Errorf("duplicate seed %d", s)
			}
			seen[s] = true
		}
	}
	if o.Count == 0 {
		o.Count = 1
	}

	kind, err := marker.ParseKind(string(o.Kind))
	if err != nil {
		return o, err
	}
	o.Kind = kind

	if o.Size == 0 {
		o.Size = marker.DefaultSize
	}
	if o.Size < 1 {
		return o, fmt.Errorf("%w: size %d must be >= 1", marker.ErrInvalidSize, o.Size)
	}
	o.Size = marker.ClampSize(o.Size)

	if o.Format == "" {
		o.Format = export.PNG
	}
	if o.Quality < 0 || o.Quality > 100 {
		return o, fmt.Errorf("invalid JPEG quality %d (valid: 1-100)", o.Quality)
	}
	if o.OutputDir == "" {
		return o, errors.New("output directory is required")
	}
	if o.Generator == nil {
		o.Generator = marker.NewGenerator(nil)
	}
	return o, nil
}

// drawSeeds returns count distinct seeds from g. A colliding draw is
// retried up to MaxDrawAttempts times.
func drawSeeds(g *marker.Generator, count int) ([]int32, error) {
	seeds := make([]int32, 0, count)
	seen := make(map[int32]bool, count)
	for len(seeds) < count {
		var s int32
		for attempt := 0; ; attempt++ {
			if attempt == MaxDrawAttempts {
				return nil, fmt.Errorf("could not draw a unique seed after %d attempts", MaxDrawAttempts)
			}
			var err error
			s, err = g.NextSeed()
			if err != nil {
				return nil, fmt.Errorf("draw seed %d: %w", len(seeds)+1, err)
			}
			if !seen[s] {
				break
			}
		}
		seen[s] = true
		seeds = append(seeds, s)
	}
	return seeds, nil
}

// Generate renders and writes Count markers into OutputDir, then writes the
// manifest. Results are returned in seed order.
func Generate(ctx context.Context, opts Options) ([]Result, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	seeds := opts.Seeds
	if len(seeds) == 0 {
		seeds, err = drawSeeds(opts.Generator, opts.Count)
		if err != nil {
			return nil, err
		}
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	// Don't use more workers than tasks
	if numWorkers > len(seeds) {
		numWorkers = len(seeds)
	}

	if !opts.Quiet {
		fmt.Printf("Generating %d %s markers (%dx%d, %s) with %d parallel workers...\n",
			len(seeds), opts.Kind, opts.Size, opts.Size, opts.Format, numWorkers)
	}

	encodeOpts := export.Options{Format: opts.Format, Quality: opts.Quality}
	taskChan := make(chan task, len(seeds))
	resultChan := make(chan taskResult, len(seeds))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskChan {
				if err := ctx.Err(); err != nil {
					resultChan <- taskResult{index: t.index, err: err}
					continue
				}
				res, err := generateOne(opts, encodeOpts, t.seed)
				resultChan <- taskResult{index: t.index, res: res, err: err}
			}
		}()
	}

	for i, s := range seeds {
		taskChan <- task{index: i, seed: s}
	}
	close(taskChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, len(seeds))
	completed := 0
	var firstErr error
	for r := range resultChan {
		if r.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("generate marker %d: %w", seeds[r.index], r.err)
		}
		results[r.index] = r.res
		completed++
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(completed, len(seeds))
		}
		if !opts.Quiet && (completed%10 == 0 || completed == len(seeds)) {
			progress := float64(completed) / float64(len(seeds)) * 100
			fmt.Printf("  Progress: %d/%d (%.0f%%)\n", completed, len(seeds), progress)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestName)
	if err := WriteManifest(manifestPath, NewManifest(opts, results)); err != nil {
		return nil, err
	}

	if !opts.Quiet {
		var total uint64
		for _, r := range results {
			total += uint64(r.Bytes)
		}
		fmt.Printf("\n✓ %d markers created in: %s/ (%s)\n", len(results), opts.OutputDir, humanize.Bytes(total))
	}

	return results, nil
}

func generateOne(opts Options, encodeOpts export.Options, seed int32) (Result, error) {
	m, err := opts.Generator.GenerateMarker(&seed, opts.Size, opts.Label, opts.Kind)
	if err != nil {
		return Result{}, err
	}
	path, size, err := export.WriteFile(opts.OutputDir, m, encodeOpts)
	if err != nil {
		return Result{}, err
	}
	return Result{Seed: seed, Path: path, Bytes: size}, nil
}
