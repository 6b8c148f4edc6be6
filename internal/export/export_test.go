package export

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrsinham/markerforge/internal/marker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

func testMarker(t *testing.T, seed int32, size int, label string) marker.Marker {
	t.Helper()
	m, err := marker.GenerateMarker(&seed, size, label, marker.Vuforia)
	require.NoError(t, err, "failed to generate marker")
	return m
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", PNG, false},
		{"png", PNG, false},
		{"PNG", PNG, false},
		{"jpg", JPEG, false},
		{"jpeg", JPEG, false},
		{"dcm", DICOM, false},
		{"Dicom", DICOM, false},
		{"gif", PNG, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat_Suggestion(t *testing.T) {
	_, err := ParseFormat("dicm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "dicom"`)
}

func TestFileName(t *testing.T) {
	m := marker.Marker{Seed: 42, Kind: marker.Vuforia}
	assert.Equal(t, "marker_vuforia_42.png", FileName(m, PNG))

	m = marker.Marker{Seed: -2147483648, Kind: marker.ARToolkit}
	assert.Equal(t, "marker_artoolkit_n2147483648.dcm", FileName(m, DICOM))
}

func TestEncode_PNGIsLossless(t *testing.T) {
	m := testMarker(t, 42, 256, "ID: {id}")

	data, err := EncodeBytes(m, Options{Format: PNG})
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	require.Equal(t, m.Image.Bounds(), decoded.Bounds())

	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			r1, g1, b1, _ := m.Image.At(x, y).RGBA()
			r2, g2, b2, _ := decoded.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 {
				t.Fatalf("pixel (%d,%d) differs after PNG round trip", x, y)
			}
		}
	}
}

func TestEncode_JPEG(t *testing.T) {
	m := testMarker(t, 7, 128, "")

	t.Run("default quality", func(t *testing.T) {
		data, err := EncodeBytes(m, Options{Format: JPEG})
		require.NoError(t, err)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 128, cfg.Width)
		assert.Equal(t, 128, cfg.Height)
	})

	t.Run("quality changes size", func(t *testing.T) {
		high, err := EncodeBytes(m, Options{Format: JPEG, Quality: 100})
		require.NoError(t, err)
		low, err := EncodeBytes(m, Options{Format: JPEG, Quality: 10})
		require.NoError(t, err)
		assert.Less(t, len(low), len(high))
	})

	t.Run("invalid quality", func(t *testing.T) {
		_, err := EncodeBytes(m, Options{Format: JPEG, Quality: 101})
		assert.Error(t, err)
	})
}

func TestEncode_Errors(t *testing.T) {
	_, err := EncodeBytes(marker.Marker{Seed: 1}, Options{Format: PNG})
	assert.Error(t, err, "marker without image")

	m := testMarker(t, 1, 16, "")
	_, err = EncodeBytes(m, Options{Format: Format("tiff")})
	assert.Error(t, err, "unknown format")
}

func TestWriteFile_EncodeErrorLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	m := testMarker(t, 1, 16, "")

	_, _, err := WriteFile(dir, m, Options{Format: JPEG, Quality: 150})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "marker_vuforia_1.jpg"))
	assert.True(t, os.IsNotExist(statErr), "failed encode must not leave a file behind")
}

func TestWriteFile_DICOM(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	m := testMarker(t, 1234, 64, "ID: {id}")

	path, size, err := WriteFile(dir, m, Options{Format: DICOM})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "marker_vuforia_1234.dcm"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), size)

	ds, err := dicom.ParseFile(path, nil)
	require.NoError(t, err, "generated file should parse")

	stringTags := []struct {
		tag  tag.Tag
		want string
	}{
		{tag.SOPClassUID, secondaryCaptureSOPClassUID},
		{tag.Modality, "OT"},
		{tag.PhotometricInterpretation, "RGB"},
		{tag.PatientID, "1234"},
		{tag.ImageComments, "ID: 1234"},
	}
	for _, st := range stringTags {
		elem, err := ds.FindElementByTag(st.tag)
		require.NoError(t, err, "tag %v should exist", st.tag)
		val := elem.Value.GetValue().([]string)[0]
		assert.Equal(t, st.want, strings.TrimRight(val, " \x00"), "tag %v", st.tag)
	}

	intTags := []struct {
		tag  tag.Tag
		want int
	}{
		{tag.Rows, 64},
		{tag.Columns, 64},
		{tag.SamplesPerPixel, 3},
		{tag.BitsAllocated, 8},
	}
	for _, it := range intTags {
		elem, err := ds.FindElementByTag(it.tag)
		require.NoError(t, err, "tag %v should exist", it.tag)
		assert.Equal(t, []int{it.want}, elem.Value.GetValue().([]int), "tag %v", it.tag)
	}

	pixelElem, err := ds.FindElementByTag(tag.PixelData)
	require.NoError(t, err)
	info2 := dicom.MustGetPixelDataInfo(pixelElem.Value)
	require.Len(t, info2.Frames, 1)
	assert.False(t, info2.Frames[0].Encapsulated)
}

func TestWriteFile_DICOMDeterministicUIDs(t *testing.T) {
	m := testMarker(t, 99, 32, "")

	a, err := EncodeBytes(m, Options{Format: DICOM})
	require.NoError(t, err)
	b, err := EncodeBytes(m, Options{Format: DICOM})
	require.NoError(t, err)
	assert.Equal(t, a, b, "same marker should encode to identical DICOM bytes")
}

func TestDeterministicUID(t *testing.T) {
	a := deterministicUID("markerforge_vuforia_1_64_study")
	b := deterministicUID("markerforge_vuforia_1_64_study")
	c := deterministicUID("markerforge_vuforia_2_64_study")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "2.25."))
	assert.LessOrEqual(t, len(a), 64, "UIDs are limited to 64 characters")
}
