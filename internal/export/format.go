// Package export encodes generated markers to image files.
package export

import (
	"fmt"
	"strings"

	"github.com/mrsinham/markerforge/internal/util"
)

// Format is an output file format.
type Format string

const (
	PNG   Format = "png"   // lossless, the default
	JPEG  Format = "jpeg"  // lossy, smaller files
	DICOM Format = "dicom" // Secondary Capture object
)

// DefaultJPEGQuality is used when Options.Quality is zero.
const DefaultJPEGQuality = 92

// AllFormats returns all supported formats.
func AllFormats() []Format {
	return []Format{PNG, JPEG, DICOM}
}

// ParseFormat parses a format name case-insensitively. "jpg" and "dcm" are
// accepted as aliases; an empty string selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "dicom", "dcm":
		return DICOM, nil
	default:
		if hint := util.Suggest(s, []string{"png", "jpeg", "jpg", "dicom", "dcm"}); hint != "" {
			return PNG, fmt.Errorf("invalid format %q, did you mean %q? valid options: %v", s, hint, AllFormats())
		}
		return PNG, fmt.Errorf("invalid format %q, valid options: %v", s, AllFormats())
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return ".jpg"
	case DICOM:
		return ".dcm"
	default:
		return ".png"
	}
}

// Options controls encoding.
type Options struct {
	Format  Format
	Quality int // JPEG quality 1-100, 0 selects DefaultJPEGQuality
}

func (o Options) jpegQuality() (int, error) {
	switch {
	case o.Quality == 0:
		return DefaultJPEGQuality, nil
	case o.Quality < 1 || o.Quality > 100:
		return 0, fmt.Errorf("invalid JPEG quality %d (valid: 1-100)", o.Quality)
	default:
		return o.Quality, nil
	}
}
