package search

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"talentvault-ai-go/internal/types"
)

var (
	// ErrKindMismatch 查询与候选人的表示类型不一致
	ErrKindMismatch = errors.New("representation kind mismatch")
	// ErrDimensionMismatch 稠密向量维度不一致，该候选人应被跳过
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// CosineSimilarity 计算两个向量的余弦相似度
// 任一向量为零向量时返回0
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// JaccardSimilarity 计算两个特征集合的Jaccard相似度
// 比较前统一转小写；任一集合为空时返回0
func JaccardSimilarity(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for k := range setA {
		if _, ok := setB[k]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(strings.ToLower(item))
		if item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}

// Score 计算查询表示与候选人表示的相似度
// 类型不一致返回ErrKindMismatch；稠密向量维度不一致返回ErrDimensionMismatch
func Score(query, candidate *types.Representation) (float64, error) {
	if query == nil || candidate == nil {
		return 0, fmt.Errorf("%w: nil representation", ErrKindMismatch)
	}
	if query.Kind != candidate.Kind {
		return 0, fmt.Errorf("%w: query=%s candidate=%s", ErrKindMismatch, query.Kind, candidate.Kind)
	}

	switch query.Kind {
	case types.RepresentationDense:
		if len(query.Vector) != len(candidate.Vector) {
			return 0, fmt.Errorf("%w: query=%d candidate=%d", ErrDimensionMismatch, len(query.Vector), len(candidate.Vector))
		}
		return CosineSimilarity(query.Vector, candidate.Vector), nil
	case types.RepresentationFeature:
		return JaccardSimilarity(query.Features, candidate.Features), nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %s", ErrKindMismatch, query.Kind)
	}
}
