package processor

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"talentvault-ai-go/internal/constants"
	"talentvault-ai-go/internal/embedding"
	"talentvault-ai-go/internal/search"
	"talentvault-ai-go/internal/storage"
	"talentvault-ai-go/internal/types"
)

// DocumentFetcher 下载简历文档
type DocumentFetcher interface {
	Fetch(ctx context.Context, resumeURL string) ([]byte, error)
}

// TextExtractor 从文档字节中提取纯文本
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, filename string) (string, error)
}

// FieldExtractor 从纯文本中抽取结构化字段
type FieldExtractor interface {
	ExtractAll(text string) types.ParsedResume
}

// Summarizer 生成候选人摘要
type Summarizer interface {
	Generate(ctx context.Context, resumeText string, skills []string, experienceYears int) string
}

// Components 简历处理服务的依赖组件
type Components struct {
	Fetcher    DocumentFetcher
	Extractor  TextExtractor
	Fields     FieldExtractor
	Backend    embedding.Backend
	Summarizer Summarizer
	Storage    *storage.Storage
}

// Settings 简历处理服务的行为参数
type Settings struct {
	MaxTextLength       int     // 响应中保留的最大文本长度
	ChunkSize           int     // 送入表示后端的文本上限
	SimilarityThreshold float64 // 搜索结果的最低相似度
	MaxResults          int     // 搜索结果条数上限
	Logger              *log.Logger
}

// ResumeService wires fetch, extraction, representation, search and summary
// into the operations the HTTP layer exposes. One instance serves the whole
// process; all state lives in Storage.
type ResumeService struct {
	components Components
	settings   Settings
	ranker     *search.Ranker
	logger     *log.Logger
}

// NewResumeService 创建简历处理服务
func NewResumeService(components Components, settings Settings) (*ResumeService, error) {
	if components.Fetcher == nil || components.Extractor == nil || components.Fields == nil {
		return nil, fmt.Errorf("fetcher, extractor and field extractor are required")
	}
	if components.Backend == nil {
		return nil, fmt.Errorf("representation backend is required")
	}
	if components.Summarizer == nil {
		return nil, fmt.Errorf("summarizer is required")
	}
	if components.Storage == nil {
		return nil, fmt.Errorf("storage is required")
	}

	if settings.MaxTextLength <= 0 {
		settings.MaxTextLength = 10000
	}
	if settings.ChunkSize <= 0 {
		settings.ChunkSize = 5000
	}
	if settings.MaxResults <= 0 {
		settings.MaxResults = 20
	}
	if settings.Logger == nil {
		settings.Logger = log.New(os.Stderr, "[ResumeService] ", log.LstdFlags)
	}

	return &ResumeService{
		components: components,
		settings:   settings,
		ranker:     search.NewRanker(settings.SimilarityThreshold, settings.MaxResults, settings.Logger),
		logger:     settings.Logger,
	}, nil
}

// ParseResume 下载简历、提取文本与字段、生成摘要与表示
// 新表示以随机ID写入缓存，响应返回该ID供后续搜索引用
func (s *ResumeService) ParseResume(ctx context.Context, req types.ParseResumeRequest) (*types.ParseResumeResponse, error) {
	data, err := s.components.Fetcher.Fetch(ctx, req.ResumeURL)
	if err != nil {
		return nil, newProcessError("download", err, req.ResumeURL)
	}

	text, err := s.components.Extractor.ExtractText(ctx, data, req.Filename)
	if err != nil {
		return nil, newProcessError("extract", err, req.Filename)
	}

	text = strings.TrimSpace(text)
	if len([]rune(text)) < constants.MinExtractedTextLength {
		return nil, newProcessError("extract", ErrInsufficientContent,
			fmt.Sprintf("%d chars from %s", len([]rune(text)), req.Filename))
	}
	text = truncateRunes(text, s.settings.MaxTextLength)

	parsed := s.components.Fields.ExtractAll(text)
	if len(parsed.Languages) == 0 {
		parsed.Languages = []string{"English"}
	}

	summary := s.components.Summarizer.Generate(ctx, text, parsed.Skills, parsed.ExperienceYears)

	embeddingID := uuid.NewString()
	rep, err := s.components.Backend.Represent(ctx, s.embeddingInput(parsed.Skills, text))
	if err != nil {
		// 表示生成失败不应阻塞解析结果；记录返回的ID，后续搜索
		// 对该ID只会得到占位结果
		s.logger.Printf("representation failed for %s, embedding_id %s is not cached: %v",
			req.Filename, embeddingID, err)
	} else {
		s.components.Storage.Representations.Put(embeddingID, rep)
	}

	s.logger.Printf("parsed %s: %d chars, %d skills, %d years",
		req.Filename, len(text), len(parsed.Skills), parsed.ExperienceYears)

	return &types.ParseResumeResponse{
		ExtractedText:   text,
		Summary:         summary,
		Skills:          parsed.Skills,
		ExperienceYears: parsed.ExperienceYears,
		Education:       parsed.Education,
		Certifications:  parsed.Certifications,
		Languages:       parsed.Languages,
		EmbeddingID:     embeddingID,
	}, nil
}

// embeddingInput 组装送入表示后端的文本：技能列表 + 原文节选
func (s *ResumeService) embeddingInput(skills []string, text string) string {
	excerpt := truncateRunes(text, constants.EmbeddingExcerptLength)
	if len(skills) == 0 {
		return excerpt
	}
	return strings.Join(skills, " ") + "\n" + excerpt
}

// GenerateEmbedding 为任意文本生成表示并缓存
// 表示ID由内容哈希决定，相同文本幂等复用同一ID
func (s *ResumeService) GenerateEmbedding(ctx context.Context, req types.EmbeddingRequest) (*types.EmbeddingResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, newProcessError("embed", embedding.ErrEmptyInput, "")
	}
	// ID对完整输入取哈希，截断只影响送入后端的文本
	embeddingID := embedding.ContentID(text)
	text = truncateRunes(text, s.settings.ChunkSize)

	rep, err := s.components.Backend.Represent(ctx, text)
	if err != nil {
		return nil, newProcessError("embed", err, "")
	}
	s.components.Storage.Representations.Put(embeddingID, rep)

	return &types.EmbeddingResponse{
		Embedding:   rep.Payload(),
		EmbeddingID: embeddingID,
	}, nil
}

// SemanticSearch 对缓存中的候选人表示执行相似度搜索
// 请求的候选人都不在缓存中时，返回占位结果而不是空列表
func (s *ResumeService) SemanticSearch(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, newProcessError("search", fmt.Errorf("query is empty"), "")
	}

	cached := s.components.Storage.Representations.Snapshot(req.CandidateIDs)
	if len(cached) == 0 {
		return &types.SearchResponse{
			Query:   query,
			Results: s.placeholderResults(query, req.CandidateIDs),
		}, nil
	}

	queryRep, err := s.components.Backend.RepresentQuery(ctx, query)
	if err != nil {
		return nil, newProcessError("search", err, "query representation")
	}

	candidates := make([]search.Candidate, 0, len(cached))
	for id, rep := range cached {
		candidates = append(candidates, search.Candidate{ID: id, Representation: rep})
	}

	ranked, err := s.ranker.Rank(queryRep, candidates)
	if err != nil {
		return nil, newProcessError("search", err, "")
	}

	results := make([]types.SearchResult, 0, len(ranked))
	for _, r := range ranked {
		reason := fmt.Sprintf("Similarity score: %.2f", r.Score)
		if r.TextPreview != "" {
			reason = fmt.Sprintf("%s - %s", reason, r.TextPreview)
		}
		results = append(results, types.SearchResult{
			CandidateID: r.CandidateID,
			Score:       r.Score,
			Reason:      reason,
		})
	}

	s.logger.Printf("search %q matched %d/%d candidates", query, len(results), len(cached))
	return &types.SearchResponse{Query: query, Results: results}, nil
}

// placeholderResults 缓存未命中时的占位结果，分数固定且标注原因
func (s *ResumeService) placeholderResults(query string, candidateIDs []string) []types.SearchResult {
	results := make([]types.SearchResult, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if id == "" {
			continue
		}
		if len(results) >= s.settings.MaxResults {
			break
		}
		results = append(results, types.SearchResult{
			CandidateID: id,
			Score:       constants.PlaceholderScore,
			Reason:      fmt.Sprintf("no stored representation; default relevance for query: %s", query),
		})
	}
	return results
}

// Summarize 为给定文本生成摘要
func (s *ResumeService) Summarize(ctx context.Context, req types.SummaryRequest) (*types.SummaryResponse, error) {
	if strings.TrimSpace(req.ResumeText) == "" && len(req.Skills) == 0 {
		return nil, newProcessError("summarize", fmt.Errorf("resume_text and skills are both empty"), "")
	}

	summary := s.components.Summarizer.Generate(ctx, req.ResumeText, req.Skills, req.Experience)
	return &types.SummaryResponse{Summary: summary}, nil
}

// ModelLoaded 表示后端是否可用（健康检查）
func (s *ResumeService) ModelLoaded() bool {
	return s.components.Backend.Loaded()
}

// truncateRunes 按rune截断到max长度
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
