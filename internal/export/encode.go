package export

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/mrsinham/markerforge/internal/marker"
)

// Encode writes m to w in the format selected by opts.
func Encode(w io.Writer, m marker.Marker, opts Options) error {
	if m.Image == nil {
		return fmt.Errorf("marker %d has no image", m.Seed)
	}

	switch opts.Format {
	case JPEG:
		quality, err := opts.jpegQuality()
		if err != nil {
			return err
		}
		return jpeg.Encode(w, m.Image, &jpeg.Options{Quality: quality})
	case DICOM:
		return encodeDICOM(w, m)
	case PNG, "":
		return png.Encode(w, m.Image)
	default:
		return fmt.Errorf("unsupported format %q", opts.Format)
	}
}

// EncodeBytes encodes m into memory.
func EncodeBytes(m marker.Marker, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName returns the file name used for m, e.g. marker_vuforia_42.png.
// Negative seeds are written as n<abs>.
func FileName(m marker.Marker, f Format) string {
	seed := fmt.Sprintf("%d", m.Seed)
	if m.Seed < 0 {
		seed = fmt.Sprintf("n%d", -int64(m.Seed))
	}
	return fmt.Sprintf("marker_%s_%s%s", m.Kind, seed, f.Extension())
}

// WriteFile encodes m into dir, creating dir if needed. It returns the path
// of the new file and its size in bytes. Nothing is left on disk when encoding
// or writing fails.
func WriteFile(dir string, m marker.Marker, opts Options) (string, int64, error) {
	path := filepath.Join(dir, FileName(m, opts.Format))
	data, err := EncodeBytes(m, opts)
	if err != nil {
		return "", 0, fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write %s: %w", path, err)
	}
	return path, int64(len(data)), nil
}
