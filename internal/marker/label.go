package marker

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// labelStripRatio is the height of the label strip relative to the image side.
const labelStripRatio = 0.0625

var labelFont = mustParseFont(gomono.TTF)

// mustParseFont parses an embedded font, panicking on error.
func mustParseFont(ttf []byte) *opentype.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		panic(fmt.Sprintf("failed to parse label font: %v", err))
	}
	return f
}

// Param is a named value available to label templates.
type Param struct {
	Name  string
	Value string
}

// Params is an ordered set of template parameters.
type Params []Param

// Lookup finds name case-insensitively. The first match wins.
func (p Params) Lookup(name string) (string, bool) {
	for _, kv := range p {
		if strings.EqualFold(kv.Name, name) {
			return kv.Value, true
		}
	}
	return "", false
}

// SystemParams returns the parameters every label can reference.
func SystemParams(seed int32) Params {
	return Params{
		{Name: "id", Value: strconv.FormatInt(int64(seed), 10)},
	}
}

// ExpandTemplate replaces each {name} in tmpl, where name is one or more
// ASCII letters or digits, with its value from params. Unknown names expand
// to the bare name. Any other text, including stray braces, is kept as is.
func ExpandTemplate(tmpl string, params Params) string {
	var sb strings.Builder
	sb.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		if tmpl[i] == '{' {
			j := i + 1
			for j < len(tmpl) && isAlnum(tmpl[j]) {
				j++
			}
			if j > i+1 && j < len(tmpl) && tmpl[j] == '}' {
				name := tmpl[i+1 : j]
				if v, ok := params.Lookup(name); ok {
					sb.WriteString(v)
				} else {
					sb.WriteString(name)
				}
				i = j + 1
				continue
			}
		}
		sb.WriteByte(tmpl[i])
		i++
	}

	return sb.String()
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// LabelStrip returns the band at the top of a size x size image reserved for
// the label.
func LabelStrip(size int) image.Rectangle {
	h := int(math.RoundToEven(float64(size) * labelStripRatio))
	return image.Rect(0, 0, size, h)
}

// Compose expands tmpl and draws it in white, centred in the label strip of
// img. Only strip pixels are touched. Blank templates and strips too thin for
// a one-pixel font leave img unchanged. img is returned for chaining.
func Compose(img *Bitmap, tmpl string, params Params) *Bitmap {
	if img == nil || strings.TrimSpace(tmpl) == "" {
		return img
	}

	strip := LabelStrip(img.Rect.Dx()).Add(img.Rect.Min)
	fontPx := strip.Dy() / 3
	if fontPx < 1 {
		return img
	}

	face, err := opentype.NewFace(labelFont, &opentype.FaceOptions{
		Size:    float64(fontPx),
		DPI:     72,
		Hinting: font.HintingNone, // keep glyph edges anti-aliased
	})
	if err != nil {
		return img
	}
	defer func() { _ = face.Close() }()

	text := ExpandTemplate(tmpl, params)
	metrics := face.Metrics()
	width := font.MeasureString(face, text)

	dot := fixed.Point26_6{
		X: fixed.I(strip.Min.X) + (fixed.I(strip.Dx())-width)/2,
		Y: fixed.I(strip.Min.Y) + (fixed.I(strip.Dy())+metrics.Ascent-metrics.Descent)/2,
	}

	drawer := &font.Drawer{
		Dst:  img.sub(strip),
		Src:  image.White,
		Face: face,
		Dot:  dot,
	}
	drawer.DrawString(text)

	return img
}
