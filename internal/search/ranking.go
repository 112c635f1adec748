package search

import (
	"errors"
	"log"
	"os"
	"sort"

	"talentvault-ai-go/internal/constants"
	"talentvault-ai-go/internal/types"
)

// Candidate 参与排序的候选人表示
type Candidate struct {
	ID             string
	Representation *types.Representation
}

// Result 一条排序结果，TextPreview为候选人文本的前若干字符
type Result struct {
	CandidateID string
	Score       float64
	TextPreview string
}

// Ranker scores candidates against a query representation, drops everything
// below the similarity threshold, and keeps the topK highest scores.
type Ranker struct {
	threshold float64
	topK      int
	logger    *log.Logger
}

// NewRanker 创建排序器。topK<=0时不限制返回数量。
func NewRanker(threshold float64, topK int, logger *log.Logger) *Ranker {
	if logger == nil {
		logger = log.New(os.Stderr, "[Ranker] ", log.LstdFlags)
	}
	return &Ranker{threshold: threshold, topK: topK, logger: logger}
}

// Rank 对候选人打分并排序
// 维度不一致的候选人跳过；类型不一致说明配置错误，直接返回错误。
// 结果按分数降序，同分时按候选人ID升序保证稳定输出。
func (r *Ranker) Rank(query *types.Representation, candidates []Candidate) ([]Result, error) {
	var results []Result
	for _, cand := range candidates {
		score, err := Score(query, cand.Representation)
		if err != nil {
			if errors.Is(err, ErrDimensionMismatch) {
				r.logger.Printf("skipping candidate %s: %v", cand.ID, err)
				continue
			}
			return nil, err
		}
		if score < r.threshold {
			continue
		}
		results = append(results, Result{
			CandidateID: cand.ID,
			Score:       score,
			TextPreview: preview(cand.Representation.Text),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CandidateID < results[j].CandidateID
	})

	if r.topK > 0 && len(results) > r.topK {
		results = results[:r.topK]
	}
	return results, nil
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= constants.TextPreviewLength {
		return text
	}
	return string(runes[:constants.TextPreviewLength])
}
