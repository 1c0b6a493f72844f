// Package game holds the pure game engines and their shared randomness source.
package game

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// NewRand returns a PCG source seeded from the OS CSPRNG. Engines take the
// returned *rand.Rand as a parameter so tests can substitute a fixed seed
// or a prepared shoe.
func NewRand() *rand.Rand {
	var seed [16]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		// crypto/rand never fails on supported platforms. Refusing to run
		// beats dealing from a predictable shoe.
		panic("game: crypto/rand unavailable: " + err.Error())
	}
	hi := binary.LittleEndian.Uint64(seed[:8])
	lo := binary.LittleEndian.Uint64(seed[8:])
	return rand.New(rand.NewPCG(hi, lo))
}
