package marker

import (
	"fmt"
	"image"
	"strings"

	"github.com/mrsinham/markerforge/internal/util"
)

// Kind selects a marker family.
type Kind string

const (
	Vuforia   Kind = "vuforia"   // 64px base, 4px border, 3px padding
	ARToolkit Kind = "artoolkit" // 32px base, 8px border, 1px padding
)

// AllKinds returns all supported marker kinds.
func AllKinds() []Kind {
	return []Kind{Vuforia, ARToolkit}
}

// IsValid checks if a kind string names a supported kind exactly.
func IsValid(k string) bool {
	for _, valid := range AllKinds() {
		if string(valid) == k {
			return true
		}
	}
	return false
}

// ParseKind parses a kind name case-insensitively. The numeric aliases "1"
// (Vuforia) and "2" (ARToolkit) are accepted. An empty string selects Vuforia.
func ParseKind(s string) (Kind, error) {
	if IsValid(s) {
		return Kind(s), nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vuforia", "1":
		return Vuforia, nil
	case "artoolkit", "2":
		return ARToolkit, nil
	default:
		names := make([]string, 0, len(AllKinds()))
		for _, k := range AllKinds() {
			names = append(names, string(k))
		}
		if hint := util.Suggest(s, names); hint != "" {
			return Vuforia, fmt.Errorf("invalid kind %q, did you mean %q? valid options: %v", s, hint, AllKinds())
		}
		return Vuforia, fmt.Errorf("invalid kind %q, valid options: %v", s, AllKinds())
	}
}

// Profile is the geometry of a marker family, in base pixels.
type Profile struct {
	BaseSize        int
	BorderThickness int
	BorderPadding   int
}

// ProfileFor returns the profile of kind k. Unknown kinds get the Vuforia profile.
func ProfileFor(k Kind) Profile {
	switch k {
	case ARToolkit:
		return Profile{BaseSize: 32, BorderThickness: 8, BorderPadding: 1}
	case Vuforia:
		fallthrough
	default:
		return Profile{BaseSize: 64, BorderThickness: 4, BorderPadding: 3}
	}
}

// Validate rejects profiles that cannot describe a bitmap.
func (p Profile) Validate() error {
	if p.BaseSize <= 0 {
		return fmt.Errorf("invalid profile: base size %d must be > 0", p.BaseSize)
	}
	if p.BorderThickness < 0 || p.BorderPadding < 0 {
		return fmt.Errorf("invalid profile: border %d and padding %d must be >= 0", p.BorderThickness, p.BorderPadding)
	}
	return nil
}

// Interior returns the seeded region: everything inside border and padding.
// The rectangle is empty when border and padding fill the whole bitmap.
func (p Profile) Interior() image.Rectangle {
	inset := p.BorderThickness + p.BorderPadding
	end := p.BaseSize - inset
	if end <= inset {
		return image.Rectangle{}
	}
	return image.Rect(inset, inset, end, end)
}

func (k Kind) orDefault() Kind {
	if k == ARToolkit {
		return k
	}
	return Vuforia
}
