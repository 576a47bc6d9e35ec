package bit

import "math/rand"

// Bit is the two-element value domain participants agree on.
type Bit uint8

const (
	Zero Bit = iota
	One
)

// Valid reports whether b is one of the two domain values.
func (b Bit) Valid() bool {
	return b == Zero || b == One
}

func (b Bit) String() string {
	if b == One {
		return "1"
	}
	return "0"
}

// Random draws a uniform bit from rng.
func Random(rng *rand.Rand) Bit {
	return Bit(rng.Intn(2))
}
