package game

import (
	"math"

	"lukechampine.com/frand"
)

// NewSeed returns a fresh non-zero seed from the system CSPRNG.
func NewSeed() int64 {
	return int64(frand.Uint64n(math.MaxInt64-1)) + 1
}
