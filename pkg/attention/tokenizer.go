package attention

import (
	"hash/fnv"
	"strings"
)

// Tokenize maps text to vocabulary indices: lowercase, split on whitespace,
// hash each word with FNV-1a and reduce modulo the vocabulary size. The hash
// is fixed (not seeded per process) so indices, and every score derived from
// them, are stable across runs and platforms. Empty text yields an empty
// slice; there are no error conditions.
func (r *Ranker) Tokenize(text string) []int {
	words := strings.Fields(strings.ToLower(text))
	ids := make([]int, len(words))
	for i, w := range words {
		ids[i] = int(hashWord(w) % uint64(r.vocabSize))
	}
	return ids
}

// hashWord returns the FNV-1a hash of the word. The unsigned modulo in
// Tokenize keeps every index non-negative by construction.
func hashWord(w string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(w))
	return h.Sum64()
}
