package skipper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s *Skipper, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = s.ShouldSkip()
	}
	return out
}

func TestDeterministicSchedule(t *testing.T) {
	cases := []struct {
		seed              uint8
		content, capacity int
	}{
		{0, 10, 100},
		{17, 500, 3000},
		{255, 1024, 1024},
		{9, 1, 2049},
		{200, 4000, 5000},
	}

	for _, tc := range cases {
		a := New(tc.seed, tc.content, tc.capacity)
		b := New(tc.seed, tc.content, tc.capacity)
		assert.Equal(t, drain(a, 2*tc.capacity), drain(b, 2*tc.capacity),
			"seed=%d content=%d capacity=%d", tc.seed, tc.content, tc.capacity)
	}
}

func TestUsedCountPerBlock(t *testing.T) {
	content, capacity := 300, 2500
	s := New(5, content, capacity)
	flags := drain(s, capacity)

	blocks := []int{1024, 1024, 452}
	offset := 0
	total := 0
	for _, size := range blocks {
		used := 0
		for _, skip := range flags[offset : offset+size] {
			if !skip {
				used++
			}
		}
		assert.Equal(t, UsedInBlock(content, capacity, size), used, "block at %d", offset)
		offset += size
		total += used
	}
	assert.GreaterOrEqual(t, total, content, "schedule must leave room for all content")
}

func TestZeroCapacityAlwaysSkips(t *testing.T) {
	s := New(1, 10, 0)
	for _, skip := range drain(s, 50) {
		require.True(t, skip)
	}
}

func TestContentAboveCapacityNeverSkips(t *testing.T) {
	s := New(1, 5000, 1500)
	for _, skip := range drain(s, 3000) {
		require.False(t, skip)
	}
}

func TestZeroContentAlwaysSkips(t *testing.T) {
	s := New(1, 0, 1500)
	for _, skip := range drain(s, 1500) {
		require.True(t, skip)
	}
}

func TestSeedChangesSchedule(t *testing.T) {
	a := drain(New(1, 100, 1024), 1024)
	b := drain(New(2, 100, 1024), 1024)
	assert.NotEqual(t, a, b)
}
