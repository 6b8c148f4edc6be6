// Package marker synthesizes square fiducial marker images from integer seeds.
//
// A marker is built in three steps: Synthesize draws a small black and white
// base bitmap whose interior is fully determined by the seed, Resize scales
// it with nearest-neighbour sampling so edges stay sharp, and Compose writes
// an optional text label in the top strip.
package marker

import (
	"fmt"
	"strings"
)

const (
	// MaxSize is the largest output side length; larger requests are clamped.
	MaxSize = 2048
	// DefaultSize is the output side length used when none is requested.
	DefaultSize = 1024
)

// Marker is a generated marker image and the seed that reproduces it.
type Marker struct {
	Seed  int32
	Kind  Kind
	Label string // expanded label text, empty when none was drawn
	Image *Bitmap
}

// Generator runs the marker pipeline. It is safe for concurrent use.
type Generator struct {
	seeds *SeedSource
}

// NewGenerator returns a generator drawing missing seeds from seeds, or from
// a crypto/rand backed source when seeds is nil.
func NewGenerator(seeds *SeedSource) *Generator {
	if seeds == nil {
		seeds = NewSeedSource(nil)
	}
	return &Generator{seeds: seeds}
}

var defaultGenerator = NewGenerator(nil)

// NextSeed draws a fresh seed from the process-wide seed source.
func NextSeed() (int32, error) {
	return defaultGenerator.NextSeed()
}

// GenerateMarker runs the pipeline with the process-wide generator.
func GenerateMarker(seed *int32, size int, label string, kind Kind) (Marker, error) {
	return defaultGenerator.GenerateMarker(seed, size, label, kind)
}

// NextSeed draws a fresh seed.
func (g *Generator) NextSeed() (int32, error) {
	return g.seeds.NextSeed()
}

// ClampSize limits size to MaxSize.
func ClampSize(size int) int {
	if size > MaxSize {
		return MaxSize
	}
	return size
}

// GenerateMarker builds a marker of the given kind. A nil seed draws a new
// one. size is clamped to MaxSize and must be at least 1. label is a
// template that may reference {id}.
func (g *Generator) GenerateMarker(seed *int32, size int, label string, kind Kind) (Marker, error) {
	size = ClampSize(size)
	if size < 1 {
		return Marker{}, fmt.Errorf("%w: size %d must be >= 1", ErrInvalidSize, size)
	}

	var s int32
	if seed != nil {
		s = *seed
	} else {
		var err error
		s, err = g.seeds.NextSeed()
		if err != nil {
			return Marker{}, fmt.Errorf("draw seed: %w", err)
		}
	}

	kind = kind.orDefault()
	base, err := Synthesize(s, ProfileFor(kind))
	if err != nil {
		return Marker{}, fmt.Errorf("synthesize %s marker: %w", kind, err)
	}

	img, err := Resize(base, size)
	if err != nil {
		return Marker{}, fmt.Errorf("resize marker to %d: %w", size, err)
	}

	params := SystemParams(s)
	Compose(img, label, params)

	m := Marker{Seed: s, Kind: kind, Image: img}
	if strings.TrimSpace(label) != "" {
		m.Label = ExpandTemplate(label, params)
	}
	return m, nil
}
