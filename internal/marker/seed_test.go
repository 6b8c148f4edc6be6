package marker

import (
	"bytes"
	"errors"
	"io"
	"math"
	"sync"
	"testing"
)

func TestSeedSource_Uniqueness(t *testing.T) {
	src := NewSeedSource(nil)
	const n = 10000

	seen := make(map[int32]struct{}, n)
	collisions := 0
	for i := 0; i < n; i++ {
		s, err := src.NextSeed()
		if err != nil {
			t.Fatalf("NextSeed failed: %v", err)
		}
		if _, dup := seen[s]; dup {
			collisions++
		}
		seen[s] = struct{}{}
	}

	// Expected collisions for uniform 32-bit draws: n^2 / 2^33 ≈ 0.012.
	if collisions > 2 {
		t.Errorf("Got %d collisions in %d seeds, far above uniform sampling", collisions, n)
	}
}

func TestSeedSource_FullRange(t *testing.T) {
	src := NewSeedSource(nil)
	var neg, pos bool
	for i := 0; i < 200 && !(neg && pos); i++ {
		s, _ := src.NextSeed()
		if s < 0 {
			neg = true
		} else {
			pos = true
		}
	}
	if !neg || !pos {
		t.Errorf("Expected both signs across 200 seeds (negative=%v, positive=%v)", neg, pos)
	}
}

func TestSeedSource_Conversion(t *testing.T) {
	src := NewSeedSource(bytes.NewReader([]byte{
		0x01, 0x00, 0x00, 0x00,
		0xff, 0xff, 0xff, 0xff,
		0x00, 0x00, 0x00, 0x80,
		0xff, 0xff, 0xff, 0x7f,
	}))

	for _, want := range []int32{1, -1, math.MinInt32, math.MaxInt32} {
		got, err := src.NextSeed()
		if err != nil {
			t.Fatalf("NextSeed failed: %v", err)
		}
		if got != want {
			t.Errorf("NextSeed() = %d, want %d", got, want)
		}
	}
}

func TestSeedSource_Exhausted(t *testing.T) {
	tests := []struct {
		name string
		r    io.Reader
	}{
		{"empty reader", bytes.NewReader(nil)},
		{"short read", bytes.NewReader([]byte{1, 2})},
		{"failing reader", failingReader{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeedSource(tt.r).NextSeed()
			if !errors.Is(err, ErrEntropy) {
				t.Errorf("Expected ErrEntropy, got %v", err)
			}
		})
	}
}

func TestSeedSource_Concurrent(t *testing.T) {
	src := NewSeedSource(nil)
	const workers, perWorker = 8, 250

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := src.NextSeed(); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("NextSeed failed under concurrency: %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device unavailable")
}
