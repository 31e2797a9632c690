package attention

import "math/rand"

// embedScale keeps initial embedding magnitudes small so raw dot products
// stay in a reasonable range before the explicit sqrt(dim) scaling step.
const embedScale = 0.1

// Initializer fills one n-length vector. It is called once per embedding row
// and once for the initial query vector, sharing a single rng so a fixed seed
// reproduces the whole table. Swap it via WithInitializer to plug in a
// pretrained-vector source without touching the attention contract.
type Initializer func(rng *rand.Rand, n int) []float64

// gaussianInit draws small-magnitude values from a standard normal scaled by
// embedScale, standing in for pretrained vectors.
func gaussianInit(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64() * embedScale
	}
	return v
}

// newTable allocates a rows×cols embedding matrix filled by init.
func newTable(rng *rand.Rand, init Initializer, rows, cols int) [][]float64 {
	t := make([][]float64, rows)
	for i := range t {
		t[i] = init(rng, cols)
	}
	return t
}

// lookup returns one embedding row per index, preserving order. Indices are
// always in range because Tokenize reduces them modulo the vocabulary size.
func (r *Ranker) lookup(ids []int) [][]float64 {
	rows := make([][]float64, len(ids))
	for i, id := range ids {
		rows[i] = r.embeddings[id]
	}
	return rows
}
