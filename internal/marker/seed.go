package marker

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrEntropy reports that the seed source could not supply random bytes.
var ErrEntropy = errors.New("entropy source exhausted")

// SeedSource issues unpredictable 32-bit seeds. It is safe for concurrent use.
type SeedSource struct {
	mu  sync.Mutex
	r   io.Reader
	buf [4]byte
}

// NewSeedSource returns a source reading from r, or from crypto/rand when r is nil.
func NewSeedSource(r io.Reader) *SeedSource {
	if r == nil {
		r = rand.Reader
	}
	return &SeedSource{r: r}
}

// NextSeed returns a seed uniformly distributed over the whole int32 range.
func (s *SeedSource) NextSeed() (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEntropy, err)
	}
	return int32(binary.LittleEndian.Uint32(s.buf[:])), nil
}
