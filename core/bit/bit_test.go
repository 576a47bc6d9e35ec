package bit_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mr-shifu/dolev-strong/core/bit"
)

func TestValid(t *testing.T) {
	assert.True(t, bit.Zero.Valid())
	assert.True(t, bit.One.Valid())
	assert.False(t, bit.Bit(2).Valid())
}

func TestString(t *testing.T) {
	assert.Equal(t, "0", bit.Zero.String())
	assert.Equal(t, "1", bit.One.String())
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[bit.Bit]int)
	for i := 0; i < 100; i++ {
		b := bit.Random(rng)
		assert.True(t, b.Valid())
		seen[b]++
	}
	assert.Len(t, seen, 2, "100 draws should produce both domain values")
}
