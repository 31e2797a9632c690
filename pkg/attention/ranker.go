// Package attention scores free-form text against an adjustable interest
// profile using single-head scaled dot-product attention over hashed word
// embeddings. It exposes per-token attention weights alongside each score so
// a presentation layer can explain why a text ranked where it did.
package attention

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"
)

var (
	// ErrInvalidDimension is returned by New when the vocabulary size or
	// embedding dimension is not positive.
	ErrInvalidDimension = errors.New("vocabulary size and embedding dimension must be positive")

	// ErrEmptyInput is returned when a computation would reduce an empty
	// token sequence (text with no words, or interests with no usable text).
	ErrEmptyInput = errors.New("no tokens to attend over")
)

// Ranker holds the embedding table and the current interest query vector.
// The table is immutable after New. The query vector is process state shared
// by every scoring call and replaced only by UpdateInterests; a scoring or
// ranking pass holds the read lock end to end so it observes one consistent
// query vector, never a torn one.
type Ranker struct {
	mu sync.RWMutex

	vocabSize int
	embedDim  int
	scale     float64 // sqrt(embedDim), fixed at construction

	embeddings [][]float64 // vocabSize×embedDim, read-only after New
	query      []float64   // embedDim, guarded by mu
}

// RankedPost pairs a post with its relevance score and per-word attention
// weights. Weights line up 1:1 with the whitespace-split words of Post, so
// callers can zip words with weights for display.
type RankedPost struct {
	Post    string
	Score   float64
	Weights []float64
}

type rankerConfig struct {
	seed int64
	init Initializer
}

// Option configures a Ranker at construction.
type Option func(*rankerConfig)

// WithSeed pins the pseudo-random source that fills the embedding table and
// initial query vector, making every downstream score reproducible.
func WithSeed(seed int64) Option {
	return func(cfg *rankerConfig) { cfg.seed = seed }
}

// WithInitializer substitutes the vector initializer, e.g. to load
// pretrained embeddings instead of random placeholders.
func WithInitializer(init Initializer) Option {
	return func(cfg *rankerConfig) { cfg.init = init }
}

// New creates a Ranker with a vocabSize×embedDim embedding table and a fresh
// query vector. Without WithSeed the table differs per process, matching the
// placeholder-for-pretrained design. Fails with ErrInvalidDimension if either
// dimension is not positive.
func New(vocabSize, embedDim int, opts ...Option) (*Ranker, error) {
	if vocabSize <= 0 || embedDim <= 0 {
		return nil, fmt.Errorf("new ranker (vocab %d, dim %d): %w", vocabSize, embedDim, ErrInvalidDimension)
	}

	cfg := rankerConfig{
		seed: time.Now().UnixNano(),
		init: gaussianInit,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	rng := rand.New(rand.NewSource(cfg.seed)) //nolint:gosec // reproducibility matters here, not unpredictability
	return &Ranker{
		vocabSize:  vocabSize,
		embedDim:   embedDim,
		scale:      math.Sqrt(float64(embedDim)),
		embeddings: newTable(rng, cfg.init, vocabSize, embedDim),
		query:      cfg.init(rng, embedDim),
	}, nil
}

// VocabSize returns the vocabulary size fixed at construction.
func (r *Ranker) VocabSize() int { return r.vocabSize }

// EmbedDim returns the embedding dimension fixed at construction.
func (r *Ranker) EmbedDim() int { return r.embedDim }

// UpdateInterests replaces the query vector with the mean of the per-text
// mean embeddings of interestTexts (mean of means, not a global token mean).
// Texts that tokenize to nothing are skipped; if no usable text remains it
// fails with ErrEmptyInput and leaves the query vector untouched. This is
// the only mutation point for shared state in the whole pipeline.
func (r *Ranker) UpdateInterests(interestTexts []string) error {
	summaries := make([][]float64, 0, len(interestTexts))
	for _, text := range interestTexts {
		ids := r.Tokenize(text)
		if len(ids) == 0 {
			continue
		}
		summaries = append(summaries, meanRows(r.lookup(ids)))
	}
	if len(summaries) == 0 {
		return fmt.Errorf("update interests: %w", ErrEmptyInput)
	}
	next := meanRows(summaries)

	r.mu.Lock()
	r.query = next
	r.mu.Unlock()
	return nil
}

// meanRows averages rows elementwise. rows must be non-empty.
func meanRows(rows [][]float64) []float64 {
	mean := make([]float64, len(rows[0]))
	for _, row := range rows {
		for j, x := range row {
			mean[j] += x
		}
	}
	inv := 1.0 / float64(len(rows))
	for j := range mean {
		mean[j] *= inv
	}
	return mean
}

// ScoreContent scores one text against the current interests. It returns the
// cosine similarity between the attention context and the query vector, plus
// one attention weight per word of text. A text with no words fails with
// ErrEmptyInput rather than propagating NaN.
func (r *Ranker) ScoreContent(text string) (float64, []float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scoreLocked(text)
}

// scoreLocked runs the tokenize → embed → attend → score pipeline.
// Callers hold at least the read lock.
func (r *Ranker) scoreLocked(text string) (float64, []float64, error) {
	rows := r.lookup(r.Tokenize(text))
	weights, context, err := computeAttention(rows, r.query, r.scale)
	if err != nil {
		return 0, nil, fmt.Errorf("score content: %w", err)
	}
	return cosine(context, r.query), weights, nil
}

// RankPosts scores every post and returns those with score >= threshold,
// sorted by score descending; ties keep input order. No post clearing the
// threshold yields an empty result, not an error. A post with no words fails
// the whole batch; no partial results are returned on error.
func (r *Ranker) RankPosts(posts []string, threshold float64) ([]RankedPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ranked := make([]RankedPost, 0, len(posts))
	for i, post := range posts {
		score, weights, err := r.scoreLocked(post)
		if err != nil {
			return nil, fmt.Errorf("rank post %d: %w", i, err)
		}
		if score >= threshold {
			ranked = append(ranked, RankedPost{Post: post, Score: score, Weights: weights})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}
