package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"runtime"

	"github.com/mrsinham/markerforge/cmd/markerforge/wizard"
	"github.com/mrsinham/markerforge/internal/batch"
	"github.com/mrsinham/markerforge/internal/export"
	"github.com/mrsinham/markerforge/internal/marker"
)

// version is set at build time via -ldflags
var version = "dev"

// maxListedSeeds bounds the per-marker lines printed after a run.
const maxListedSeeds = 10

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "wizard":
			// Extract --from flag if present
			var fromConfig string
			for i, arg := range os.Args[2:] {
				if (arg == "--from" || arg == "-from") && i+3 < len(os.Args) {
					fromConfig = os.Args[i+3]
				}
			}
			if err := wizard.Run(fromConfig); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			os.Exit(0)
		case "id":
			seed, err := marker.NextSeed()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(seed)
			os.Exit(0)
		}
	}

	seed := flag.Int64("seed", 0, "Seed of a single marker to reproduce (random if not specified)")
	seedList := flag.String("seeds", "", "Comma-separated seeds, one marker per seed")
	size := flag.Int("size", marker.DefaultSize, fmt.Sprintf("Output side length in pixels (max %d)", marker.MaxSize))
	label := flag.String("label", "", "Label template drawn in the top strip, e.g. 'ID: {id}'")
	kind := flag.String("kind", string(marker.Vuforia), fmt.Sprintf("Marker kind: %v", marker.AllKinds()))
	format := flag.String("format", string(export.PNG), fmt.Sprintf("Output format: %v", export.AllFormats()))
	quality := flag.Int("quality", 0, fmt.Sprintf("JPEG quality 1-100 (default: %d)", export.DefaultJPEGQuality))
	outputDir := flag.String("output", wizard.DefaultOutputDir, "Output directory")
	count := flag.Int("count", 1, "Number of markers to generate with random seeds")
	workers := flag.Int("workers", 0, fmt.Sprintf("Number of parallel workers (default: %d = CPU cores)", runtime.NumCPU()))
	quiet := flag.Bool("quiet", false, "Suppress progress output")

	// Interactive wizard and config options
	interactive := flag.Bool("interactive", false, "Launch interactive wizard")
	flag.BoolVar(interactive, "i", false, "Launch interactive wizard (shortcut)")
	configFile := flag.String("config", "", "Load configuration from YAML file")
	saveConfig := flag.String("save-config", "", "Save configuration to YAML file (after generation)")

	help := flag.Bool("help", false, "Show help message")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *interactive {
		if err := wizard.Run(""); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("markerforge %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *configFile != "" {
		state, err := wizard.LoadFromYAML(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		opts, err := wizard.ToBatchOptions(state)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting config: %v\n", err)
			os.Exit(1)
		}
		opts.Quiet = *quiet

		printBanner(*quiet)
		if !*quiet {
			fmt.Printf("Loading config from %s\n\n", *configFile)
		}

		if err := run(ctx, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating markers: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Validate arguments
	parsedKind, err := marker.ParseKind(*kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	parsedFormat, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *size < 1 {
		fmt.Fprintf(os.Stderr, "Error: --size must be > 0\n")
		printUsage()
		os.Exit(1)
	}

	if *quality < 0 || *quality > 100 {
		fmt.Fprintf(os.Stderr, "Error: --quality must be between 1 and 100\n")
		os.Exit(1)
	}

	if *count <= 0 {
		fmt.Fprintf(os.Stderr, "Error: --count must be > 0\n")
		printUsage()
		os.Exit(1)
	}

	if set["seed"] && set["seeds"] {
		fmt.Fprintf(os.Stderr, "Error: --seed and --seeds cannot be used together\n")
		os.Exit(1)
	}

	var seeds []int32
	switch {
	case set["seed"]:
		if *seed < math.MinInt32 || *seed > math.MaxInt32 {
			fmt.Fprintf(os.Stderr, "Error: --seed %d does not fit in 32 bits\n", *seed)
			os.Exit(1)
		}
		seeds = []int32{int32(*seed)}
	case set["seeds"]:
		seeds, err = batch.ParseSeeds(*seedList)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	opts := batch.Options{
		Count:     *count,
		Seeds:     seeds,
		Kind:      parsedKind,
		Size:      *size,
		Label:     *label,
		Format:    parsedFormat,
		Quality:   *quality,
		OutputDir: *outputDir,
		Workers:   *workers,
		Quiet:     *quiet,
	}
	// Explicit seeds decide the count unless --count was given too.
	if len(seeds) > 0 && !set["count"] {
		opts.Count = 0
	}

	printBanner(*quiet)

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating markers: %v\n", err)
		os.Exit(1)
	}

	if *saveConfig != "" {
		state := wizard.FromBatchOptions(opts)
		if err := wizard.SaveToYAML(state, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		} else if !*quiet {
			fmt.Printf("Configuration saved to %s\n", *saveConfig)
		}
	}
}

// run generates the batch and prints where each marker went.
func run(ctx context.Context, opts batch.Options) error {
	results, err := batch.Generate(ctx, opts)
	if err != nil {
		return err
	}

	if opts.Quiet {
		return nil
	}

	fmt.Println()
	for i, r := range results {
		if i == maxListedSeeds {
			fmt.Printf("  ... and %d more (see %s)\n", len(results)-maxListedSeeds, batch.ManifestName)
			break
		}
		fmt.Printf("  seed %-11d -> %s\n", r.Seed, r.Path)
	}

	fmt.Println("\n✓ Generation complete!")
	fmt.Printf("  Output directory: %s\n", opts.OutputDir)
	return nil
}

func printBanner(quiet bool) {
	if quiet {
		return
	}
	fmt.Println("markerforge")
	fmt.Println("===========")
	fmt.Println()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  markerforge [options]")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
}

func printHelp() {
	fmt.Println("markerforge")
	fmt.Println("===========")
	fmt.Println()
	fmt.Println("Generate fiducial marker images for augmented reality tracking.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  markerforge [options]")
	fmt.Println("  markerforge id                  Print a fresh random seed")
	fmt.Println("  markerforge wizard [--from F]   Interactive configuration")
	fmt.Println()
	fmt.Println("Marker options:")
	fmt.Println("  --kind <KIND>         Marker kind: vuforia, artoolkit (default: vuforia)")
	fmt.Printf("  --size <N>            Output side length in pixels (default: %d, max: %d)\n", marker.DefaultSize, marker.MaxSize)
	fmt.Println("  --label <TEMPLATE>    Label drawn in the top strip; {id} is replaced by the seed")
	fmt.Println("  --seed <N>            Reproduce the marker with this seed")
	fmt.Println("  --seeds <LIST>        Comma-separated seeds, one marker per seed")
	fmt.Println("  --count <N>           Number of markers with fresh random seeds (default: 1)")
	fmt.Println()
	fmt.Println("Output options:")
	fmt.Println("  --output <DIR>        Output directory (default: 'markers')")
	fmt.Println("  --format <FORMAT>     png, jpeg or dicom (default: png)")
	fmt.Printf("  --quality <N>         JPEG quality 1-100 (default: %d)\n", export.DefaultJPEGQuality)
	fmt.Printf("  --workers <N>         Number of parallel workers (default: %d = CPU cores)\n", runtime.NumCPU())
	fmt.Println("  --quiet               Suppress progress output")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  -i, --interactive     Launch interactive wizard")
	fmt.Println("  --config <FILE>       Load configuration from YAML file")
	fmt.Println("  --save-config <FILE>  Save configuration to YAML file (after generation)")
	fmt.Println()
	fmt.Println("  --version             Show version")
	fmt.Println("  --help                Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # One random Vuforia marker, 1024x1024 PNG")
	fmt.Println("  markerforge")
	fmt.Println()
	fmt.Println("  # Reproduce a marker and label it with its seed")
	fmt.Println("  markerforge --seed 42 --label 'ID: {id}'")
	fmt.Println()
	fmt.Println("  # 20 ARToolkit markers at 512px as JPEG")
	fmt.Println("  markerforge --kind artoolkit --size 512 --count 20 --format jpeg")
	fmt.Println()
	fmt.Println("  # DICOM Secondary Capture objects for known seeds")
	fmt.Println("  markerforge --seeds 1,2,3 --format dicom --output dcm_markers")
	fmt.Println()
	fmt.Println("Output:")
	fmt.Println("  Files are named marker_<kind>_<seed>.<ext> (negative seeds as n<abs>).")
	fmt.Println("  manifest.yaml lists every marker with its seed and size in bytes.")
	fmt.Println()
	fmt.Println("Reproducibility:")
	fmt.Println("  The same seed, kind, size and label always produce identical pixels.")
}
