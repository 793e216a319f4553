package pattern

import (
	"math"
	"math/rand/v2"
)

// RowWidth is the number of fractions in each rArrs row.
const RowWidth = 7

// Source supplies uniform fractions in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// globalSource draws from the concurrency-safe math/rand/v2 top-level source.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Generator draws random descriptor fields from a Source.
type Generator struct {
	src Source
}

// NewGenerator returns a Generator reading from src.
// A nil src selects the global random source.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

// NewSeededGenerator returns a deterministic Generator. Two generators built
// from the same seed produce the same descriptors in the same order.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0xdeadbeef)))
}

var defaultGenerator = NewGenerator(nil)

// FractionToBool interprets a fraction as a coin flip: true iff x < 0.5.
// The renderer applies it to stored rArrs fractions, so the threshold must
// stay identical to the one used for fresh draws.
func FractionToBool(x float64) bool {
	return x < 0.5
}

// FractionToInt maps a fraction to max(floor(u*hi), lo). Draws that floor
// below lo collapse onto lo rather than being redrawn.
func FractionToInt(u float64, hi, lo int) int {
	return max(int(math.Floor(u*float64(hi))), lo)
}

// RoundFraction rounds x to two decimal places.
func RoundFraction(x float64) float64 {
	return math.Round(x*100) / 100
}

// Bool draws a fresh coin flip.
func (g *Generator) Bool() bool {
	return FractionToBool(g.src.Float64())
}

// Int draws max(floor(U*hi), lo). With hi > lo the result lies in [lo, hi).
func (g *Generator) Int(hi, lo int) int {
	return FractionToInt(g.src.Float64(), hi, lo)
}

// Fractions draws n fractions, each rounded to two decimal places.
func (g *Generator) Fractions(n int) []float64 {
	fs := make([]float64, n)
	for i := range fs {
		fs[i] = RoundFraction(g.src.Float64())
	}
	return fs
}

// FractionMatrix draws count rows of RowWidth fractions.
func (g *Generator) FractionMatrix(count int) [][]float64 {
	rows := make([][]float64, count)
	for i := range rows {
		rows[i] = g.Fractions(RowWidth)
	}
	return rows
}

// RandomBool draws a coin flip from the global source.
func RandomBool() bool { return defaultGenerator.Bool() }

// RandomInt draws max(floor(U*hi), lo) from the global source.
func RandomInt(hi, lo int) int { return defaultGenerator.Int(hi, lo) }
