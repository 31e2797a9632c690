package attention

import "math"

// cosineEps guards the cosine denominator when either vector is exactly zero.
const cosineEps = 1e-8

// computeAttention runs single-head scaled dot-product attention of query
// over rows. Weights are a softmax of dot(row, query)/scale; context is the
// weight-weighted sum of rows (a convex combination, so it stays in the span
// of the inputs). The softmax shifts by the max score before exponentiating
// to avoid overflow. An empty row sequence fails with ErrEmptyInput before
// any reduction runs.
func computeAttention(rows [][]float64, query []float64, scale float64) (weights, context []float64, err error) {
	if len(rows) == 0 {
		return nil, nil, ErrEmptyInput
	}

	scores := make([]float64, len(rows))
	maxScore := math.Inf(-1)
	for i, row := range rows {
		s := dot(row, query) / scale
		scores[i] = s
		if s > maxScore {
			maxScore = s
		}
	}

	weights = make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		w := math.Exp(s - maxScore)
		weights[i] = w
		sum += w
	}
	for i := range weights {
		weights[i] /= sum
	}

	context = make([]float64, len(query))
	for i, row := range rows {
		w := weights[i]
		for j, x := range row {
			context[j] += w * x
		}
	}
	return weights, context, nil
}

// cosine returns the cosine similarity of two equal-length vectors,
// bounded to [-1, 1] up to floating-point slack.
func cosine(a, b []float64) float64 {
	var dotAB, normA, normB float64
	for i, av := range a {
		bv := b[i]
		dotAB += av * bv
		normA += av * av
		normB += bv * bv
	}
	return dotAB / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEps)
}

// dot returns the dot product of two equal-length vectors.
func dot(a, b []float64) float64 {
	var s float64
	for i, av := range a {
		s += av * b[i]
	}
	return s
}
