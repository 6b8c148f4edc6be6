// Package types holds the wizard state shared by the wizard and its screens.
package types

// MarkerConfig holds what each marker looks like.
type MarkerConfig struct {
	Kind  string
	Size  int
	Label string
	Seeds []int32 // empty = draw fresh seeds
}

// OutputConfig holds where and how the markers are written.
type OutputConfig struct {
	Dir     string
	Format  string
	Quality int
	Count   int
	Workers int
}
