package attention //nolint:testpackage // white-box tests read the query vector and embedding table

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"
)

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name  string
		vocab int
		dim   int
	}{
		{"zero vocab", 0, 16},
		{"negative vocab", -1, 16},
		{"zero dim", 100, 0},
		{"negative dim", 100, -8},
		{"both invalid", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.vocab, tt.dim)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimension", tt.vocab, tt.dim, err)
			}
			if r != nil {
				t.Errorf("New returned a partial ranker on error")
			}
		})
	}
}

func TestNew_TableShape(t *testing.T) {
	r := newTestRanker(t, 50, 16)
	if len(r.embeddings) != 50 {
		t.Fatalf("table rows = %d, want 50", len(r.embeddings))
	}
	for i, row := range r.embeddings {
		if len(row) != 16 {
			t.Fatalf("row %d has %d columns, want 16", i, len(row))
		}
	}
	if len(r.query) != 16 {
		t.Errorf("query len = %d, want 16", len(r.query))
	}
	if want := math.Sqrt(16); r.scale != want {
		t.Errorf("scale = %f, want %f", r.scale, want)
	}
}

func TestNew_SeedReproducible(t *testing.T) {
	a := newTestRanker(t, 200, 32)
	b := newTestRanker(t, 200, 32)

	scoreA, _, err := a.ScoreContent("reinforcement learning from human feedback")
	if err != nil {
		t.Fatalf("ScoreContent: %v", err)
	}
	scoreB, _, err := b.ScoreContent("reinforcement learning from human feedback")
	if err != nil {
		t.Fatalf("ScoreContent: %v", err)
	}
	if scoreA != scoreB {
		t.Errorf("same seed, same text: scores %v vs %v, want identical", scoreA, scoreB)
	}
}

func TestWithInitializer(t *testing.T) {
	// A constant initializer makes every embedding and the query identical,
	// so any non-empty text must score ~1.
	r, err := New(10, 4, WithInitializer(func(_ *rand.Rand, n int) []float64 {
		v := make([]float64, n)
		for i := range v {
			v[i] = 0.5
		}
		return v
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	score, _, err := r.ScoreContent("anything at all")
	if err != nil {
		t.Fatalf("ScoreContent: %v", err)
	}
	if math.Abs(score-1.0) > 1e-6 {
		t.Errorf("constant-initializer score = %f, want ~1.0", score)
	}
}

func TestScoreContent_Properties(t *testing.T) {
	r := newTestRanker(t, 5000, 128)

	text := "new paper on transformer attention mechanisms"
	score, weights, err := r.ScoreContent(text)
	if err != nil {
		t.Fatalf("ScoreContent: %v", err)
	}
	if score < -1-1e-9 || score > 1+1e-9 {
		t.Errorf("score = %f, outside [-1, 1]", score)
	}
	if want := 6; len(weights) != want {
		t.Errorf("len(weights) = %d, want word count %d", len(weights), want)
	}
	assertWeightsNormalized(t, weights)
}

func TestScoreContent_EmptyInput(t *testing.T) {
	r := newTestRanker(t, 100, 8)
	for _, input := range []string{"", "   ", "\t\n"} {
		_, _, err := r.ScoreContent(input)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("ScoreContent(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestUpdateInterests_MeanOfMeans(t *testing.T) {
	r := newTestRanker(t, 5000, 16)

	if err := r.UpdateInterests([]string{"alpha", "alpha beta"}); err != nil {
		t.Fatalf("UpdateInterests: %v", err)
	}

	// Expected: mean( emb[alpha], mean(emb[alpha], emb[beta]) ), which is
	// 0.75*emb[alpha] + 0.25*emb[beta]. A global token mean would give
	// 2/3 and 1/3 instead, so the test distinguishes the two.
	alpha := r.embeddings[r.Tokenize("alpha")[0]]
	beta := r.embeddings[r.Tokenize("beta")[0]]
	for j := range r.query {
		want := 0.75*alpha[j] + 0.25*beta[j]
		if math.Abs(r.query[j]-want) > 1e-12 {
			t.Fatalf("query[%d] = %v, want %v (mean of per-text means)", j, r.query[j], want)
		}
	}
}

func TestUpdateInterests_SkipsEmptyTexts(t *testing.T) {
	r := newTestRanker(t, 5000, 16)

	if err := r.UpdateInterests([]string{"", "machine learning", "  "}); err != nil {
		t.Fatalf("UpdateInterests with one usable text: %v", err)
	}

	want := meanRows(r.lookup(r.Tokenize("machine learning")))
	for j := range r.query {
		if math.Abs(r.query[j]-want[j]) > 1e-12 {
			t.Fatalf("query[%d] = %v, want %v", j, r.query[j], want[j])
		}
	}
}

func TestUpdateInterests_EmptyInput(t *testing.T) {
	r := newTestRanker(t, 100, 8)
	before := append([]float64(nil), r.query...)

	tests := []struct {
		name  string
		texts []string
	}{
		{"nil slice", nil},
		{"empty slice", []string{}},
		{"only empty texts", []string{"", "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.UpdateInterests(tt.texts)
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("UpdateInterests(%v) error = %v, want ErrEmptyInput", tt.texts, err)
			}
		})
	}

	// Failed updates must not touch the query vector.
	for j := range before {
		if r.query[j] != before[j] {
			t.Fatalf("query[%d] changed after failed update", j)
		}
	}
}

func TestRankPosts_SortedAndFiltered(t *testing.T) {
	r := newTestRanker(t, 5000, 64)
	if err := r.UpdateInterests([]string{"machine learning research"}); err != nil {
		t.Fatalf("UpdateInterests: %v", err)
	}

	posts := []string{
		"new paper on transformer attention mechanisms",
		"check out this cute cat video",
		"breakthrough in reinforcement learning from human feedback",
		"my lunch today was amazing",
	}

	ranked, err := r.RankPosts(posts, -1.0)
	if err != nil {
		t.Fatalf("RankPosts: %v", err)
	}
	// Threshold -1.0 admits every post (cosine >= -1).
	if len(ranked) != len(posts) {
		t.Fatalf("len(ranked) = %d, want %d", len(ranked), len(posts))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("ranked[%d].Score %f > ranked[%d].Score %f, want descending", i, ranked[i].Score, i-1, ranked[i-1].Score)
		}
	}

	// Output is a permutation of the input.
	seen := make(map[string]bool, len(posts))
	for _, rp := range ranked {
		seen[rp.Post] = true
	}
	for _, p := range posts {
		if !seen[p] {
			t.Errorf("post %q missing from ranked output", p)
		}
	}

	// Every returned post clears a tighter threshold, and none below it appear.
	mid := ranked[len(ranked)/2].Score
	tighter, err := r.RankPosts(posts, mid)
	if err != nil {
		t.Fatalf("RankPosts: %v", err)
	}
	for _, rp := range tighter {
		if rp.Score < mid {
			t.Errorf("post %q score %f below threshold %f", rp.Post, rp.Score, mid)
		}
	}
}

func TestRankPosts_ThresholdExcludesAll(t *testing.T) {
	r := newTestRanker(t, 5000, 32)
	ranked, err := r.RankPosts([]string{"hello world"}, 2.0)
	if err != nil {
		t.Fatalf("RankPosts: %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("len(ranked) = %d, want 0 (threshold above cosine range)", len(ranked))
	}
}

func TestRankPosts_TiesKeepInputOrder(t *testing.T) {
	r := newTestRanker(t, 5000, 32)
	// Identical texts score identically; stable sort keeps input order.
	posts := []string{"same words here", "same words here", "same words here"}
	ranked, err := r.RankPosts(posts, -1.0)
	if err != nil {
		t.Fatalf("RankPosts: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("len(ranked) = %d, want 3", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score != ranked[0].Score {
			t.Fatalf("identical posts scored differently: %v vs %v", ranked[i].Score, ranked[0].Score)
		}
	}
}

func TestRankPosts_EmptyPostFailsBatch(t *testing.T) {
	r := newTestRanker(t, 100, 8)
	ranked, err := r.RankPosts([]string{"fine", "", "also fine"}, -1.0)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("RankPosts with empty post: error = %v, want ErrEmptyInput", err)
	}
	if ranked != nil {
		t.Errorf("RankPosts returned partial results on error")
	}
}

func TestRankPosts_WeightsMatchWordCounts(t *testing.T) {
	r := newTestRanker(t, 5000, 64)
	posts := []string{"one", "two words", "now three words"}
	ranked, err := r.RankPosts(posts, -1.0)
	if err != nil {
		t.Fatalf("RankPosts: %v", err)
	}
	for _, rp := range ranked {
		words := len(r.Tokenize(rp.Post))
		if len(rp.Weights) != words {
			t.Errorf("post %q: %d weights for %d words", rp.Post, len(rp.Weights), words)
		}
		assertWeightsNormalized(t, rp.Weights)
	}
}

func TestRanker_ConcurrentUpdateAndRank(t *testing.T) {
	r := newTestRanker(t, 1000, 32)
	posts := []string{"alpha beta", "gamma delta", "epsilon zeta"}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := r.RankPosts(posts, -1.0); err != nil {
					t.Errorf("RankPosts: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if err := r.UpdateInterests([]string{"alpha", "gamma"}); err != nil {
					t.Errorf("UpdateInterests: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
