// Package skipper decides which payload units of a carrier are used and which
// are left alone, so that a short payload is spread over the whole carrier
// instead of being packed at its start.
//
// The schedule depends only on (seed, contentUnits, capacityUnits), so a
// decoder that learns the seed from the frame header replays it exactly.
package skipper

import (
	"math"

	"github.com/Beastly713/pixelstash/pkg/seeded"
)

// BlockSize is the number of units sampled together.
const BlockSize = 1024

// Skipper yields one skip/use decision per unit, in unit order.
type Skipper struct {
	random   *seeded.Random
	content  int
	capacity int
	consumed int // units covered by generated blocks in the current cycle

	flags []bool
	next  int
}

// New builds a Skipper for contentUnits payload units spread over capacityUnits.
func New(seed uint8, contentUnits, capacityUnits int) *Skipper {
	if contentUnits < 0 {
		contentUnits = 0
	}
	if capacityUnits < 0 {
		capacityUnits = 0
	}
	return &Skipper{
		random:   seeded.New(int64(seed)),
		content:  contentUnits,
		capacity: capacityUnits,
	}
}

// ShouldSkip reports whether the next unit must be skipped.
func (s *Skipper) ShouldSkip() bool {
	if s.capacity == 0 {
		return true
	}
	if s.next >= len(s.flags) {
		s.fill()
	}
	used := s.flags[s.next]
	s.next++
	return !used
}

// fill generates the flags for the next block. Flags are indexed by position
// and consumed in ascending order on both sides.
func (s *Skipper) fill() {
	if s.consumed >= s.capacity {
		s.consumed = 0
	}
	size := BlockSize
	if rest := s.capacity - s.consumed; rest < size {
		size = rest
	}
	s.consumed += size

	used := UsedInBlock(s.content, s.capacity, size)

	if cap(s.flags) < size {
		s.flags = make([]bool, size)
	}
	s.flags = s.flags[:size]
	for i := range s.flags {
		s.flags[i] = false
	}

	available := make([]int, size)
	for i := range available {
		available[i] = i
	}
	for i := 0; i < used; i++ {
		pick := s.random.Intn(len(available))
		s.flags[available[pick]] = true
		last := len(available) - 1
		available[pick] = available[last]
		available = available[:last]
	}
	s.next = 0
}

// UsedInBlock returns how many units of a block of size n carry payload for
// the given content and capacity.
func UsedInBlock(contentUnits, capacityUnits, n int) int {
	if capacityUnits <= 0 {
		return 0
	}
	ratio := math.Min(float64(contentUnits)/float64(capacityUnits), 1)
	return int(math.Ceil(ratio * float64(n)))
}
