package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentvault-ai-go/internal/types"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
		{"empty", nil, nil, 0.0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"python", "go"}, []string{"python", "go"}, 1.0},
		{"disjoint", []string{"python"}, []string{"rust"}, 0.0},
		{"partial", []string{"python", "go", "sql"}, []string{"python", "rust"}, 0.25},
		{"case insensitive", []string{"Python", "GO"}, []string{"python", "go"}, 1.0},
		{"empty a", nil, []string{"python"}, 0.0},
		{"empty b", []string{"python"}, nil, 0.0},
		{"duplicates collapse", []string{"go", "go", "go"}, []string{"go"}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, JaccardSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestScoreDense(t *testing.T) {
	query := &types.Representation{Kind: types.RepresentationDense, Vector: []float64{1, 0}}
	cand := &types.Representation{Kind: types.RepresentationDense, Vector: []float64{1, 0}}

	score, err := Score(query, cand)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestScoreKindMismatch(t *testing.T) {
	query := &types.Representation{Kind: types.RepresentationDense, Vector: []float64{1, 0}}
	cand := &types.Representation{Kind: types.RepresentationFeature, Features: []string{"go"}}

	_, err := Score(query, cand)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestScoreDimensionMismatch(t *testing.T) {
	query := &types.Representation{Kind: types.RepresentationDense, Vector: []float64{1, 0}}
	cand := &types.Representation{Kind: types.RepresentationDense, Vector: []float64{1, 0, 0}}

	_, err := Score(query, cand)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestRank(t *testing.T) {
	query := &types.Representation{Kind: types.RepresentationFeature, Features: []string{"go", "python"}}
	candidates := []Candidate{
		{ID: "c1", Representation: &types.Representation{Kind: types.RepresentationFeature, Features: []string{"go", "python"}, Text: "golang dev"}},
		{ID: "c2", Representation: &types.Representation{Kind: types.RepresentationFeature, Features: []string{"cobol", "fortran", "ada", "go"}, Text: "legacy dev"}},
		{ID: "c3", Representation: &types.Representation{Kind: types.RepresentationFeature, Features: []string{"go", "python", "sql"}, Text: "data dev"}},
	}

	// 分数: c1=1.0, c2=0.2, c3≈0.67；阈值0.3，topK=2 → [c1, c3]
	ranker := NewRanker(0.3, 2, nil)
	results, err := ranker.Rank(query, candidates)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "c1", results[0].CandidateID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, "c3", results[1].CandidateID)
	assert.Equal(t, "data dev", results[1].TextPreview)
}

func TestRankTieBreaksByID(t *testing.T) {
	query := &types.Representation{Kind: types.RepresentationFeature, Features: []string{"go"}}
	candidates := []Candidate{
		{ID: "zeta", Representation: &types.Representation{Kind: types.RepresentationFeature, Features: []string{"go"}}},
		{ID: "alpha", Representation: &types.Representation{Kind: types.RepresentationFeature, Features: []string{"go"}}},
	}

	ranker := NewRanker(0.3, 0, nil)
	results, err := ranker.Rank(query, candidates)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "alpha", results[0].CandidateID)
	assert.Equal(t, "zeta", results[1].CandidateID)
}

func TestRankSkipsDimensionMismatch(t *testing.T) {
	query := &types.Representation{Kind: types.RepresentationDense, Vector: []float64{1, 0, 0}}
	candidates := []Candidate{
		{ID: "ok", Representation: &types.Representation{Kind: types.RepresentationDense, Vector: []float64{1, 0, 0}}},
		{ID: "bad", Representation: &types.Representation{Kind: types.RepresentationDense, Vector: []float64{1, 0}}},
	}

	ranker := NewRanker(0.1, 0, nil)
	results, err := ranker.Rank(query, candidates)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "ok", results[0].CandidateID)
}

func TestRankKindMismatchIsError(t *testing.T) {
	query := &types.Representation{Kind: types.RepresentationDense, Vector: []float64{1}}
	candidates := []Candidate{
		{ID: "c1", Representation: &types.Representation{Kind: types.RepresentationFeature, Features: []string{"go"}}},
	}

	ranker := NewRanker(0.1, 0, nil)
	_, err := ranker.Rank(query, candidates)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestRankThresholdFilters(t *testing.T) {
	query := &types.Representation{Kind: types.RepresentationFeature, Features: []string{"a", "b", "c", "d", "e"}}
	candidates := []Candidate{
		{ID: "low", Representation: &types.Representation{Kind: types.RepresentationFeature, Features: []string{"a", "x", "y", "z", "w"}}},
	}

	// Jaccard = 1/9 ≈ 0.11 < 0.3
	ranker := NewRanker(0.3, 0, nil)
	results, err := ranker.Rank(query, candidates)
	require.NoError(t, err)
	assert.Empty(t, results)
}
