package batch

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSeeds parses a comma-separated list of 32-bit seeds, e.g. "1,-7,42".
// Whitespace around entries is ignored and an empty string yields no seeds.
func ParseSeeds(s string) ([]int32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	seeds := make([]int32, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("invalid seed list %q: empty entry", s)
		}
		n, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: must be a 32-bit integer", p)
		}
		seeds = append(seeds, int32(n))
	}
	return seeds, nil
}

// FormatSeeds is the inverse of ParseSeeds.
func FormatSeeds(seeds []int32) string {
	parts := make([]string, len(seeds))
	for i, s := range seeds {
		parts[i] = strconv.FormatInt(int64(s), 10)
	}
	return strings.Join(parts, ",")
}
