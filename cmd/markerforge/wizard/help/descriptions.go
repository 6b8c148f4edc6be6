package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for all wizard fields
var Texts = map[string]HelpText{
	"kind": {
		Title:       "MARKER KIND",
		Description: "Tracking system the marker is designed for.",
		Details: `vuforia   - 64x64 base grid, 4px black border, 3px white padding
artoolkit - 32x32 base grid, 8px black border, 1px white padding`,
	},
	"size": {
		Title:       "SIZE",
		Description: "Side length of the square output image in pixels.",
		Details:     "Values above 2048 are clamped to 2048. Edges stay sharp at any size.",
	},
	"seeds": {
		Title:       "SEEDS",
		Description: "Comma-separated seeds to reproduce existing markers.",
		Details: `Leave empty to draw fresh random seeds.
The same seed, kind and size always produce the same image.
Example: 42,-7,1024`,
	},
	"label": {
		Title:       "LABEL",
		Description: "Text drawn in the top strip of each marker.",
		Details: `{id} is replaced by the marker seed.
Example: "ID: {id}" renders as "ID: 42". Leave empty for no label.`,
	},
	"count": {
		Title:       "COUNT",
		Description: "Number of markers to generate.",
		Details:     "Ignored when seeds are given: one marker is written per seed.",
	},
	"format": {
		Title:       "FORMAT",
		Description: "Output file format.",
		Details: `png   - lossless, keeps pure black and white
jpeg  - smaller files, adds compression artifacts
dicom - Secondary Capture object (RGB, 8-bit)`,
	},
	"quality": {
		Title:       "JPEG QUALITY",
		Description: "Compression quality for JPEG output (1-100).",
		Details:     "0 uses the default of 92. Ignored for PNG and DICOM.",
	},
	"output": {
		Title:       "OUTPUT DIRECTORY",
		Description: "Directory where marker files will be created.",
		Details:     "Will be created if it doesn't exist. A manifest.yaml lists every marker and its seed.",
	},
	"workers": {
		Title:       "WORKERS",
		Description: "Number of parallel workers.",
		Details:     "0 uses one worker per CPU core.",
	},
}
