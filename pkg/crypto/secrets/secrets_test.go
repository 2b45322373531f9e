package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDestroyZeroesBacking(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	s := WrapSecret(raw)
	assert.Equal(t, 4, s.Len())

	s.Destroy()
	assert.Equal(t, []byte{0, 0, 0, 0}, raw)
	assert.Nil(t, s.Bytes())

	// second call is harmless
	s.Destroy()
	assert.Equal(t, 0, s.Len())
}
