package types

// RepresentationKind distinguishes the two candidate representation forms.
type RepresentationKind string

const (
	// RepresentationDense is a fixed-length numeric vector from an embedding model.
	RepresentationDense RepresentationKind = "dense"
	// RepresentationFeature is a sparse set of extracted keyword strings.
	RepresentationFeature RepresentationKind = "feature"
)

// Representation is the searchable form of a candidate's text. Exactly one of
// Vector or Features is populated, according to Kind. Model and Dimensions
// record which backend produced it so that representations from different
// models are never compared.
type Representation struct {
	Kind       RepresentationKind
	Vector     []float64
	Features   []string
	Text       string
	Model      string
	Dimensions int
}

// Payload returns the wire form of the representation: the vector for the
// dense kind, the feature list otherwise.
func (r *Representation) Payload() interface{} {
	if r.Kind == RepresentationDense {
		return r.Vector
	}
	return r.Features
}

// Education 教育经历条目
type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution"`
	Year        int    `json:"year,omitempty"`
}

// Certification 证书条目
type Certification struct {
	Name string `json:"name"`
	Year int    `json:"year,omitempty"`
}

// ParsedResume holds everything the field extractor pulled out of one resume.
// Request-scoped; the caller owns any longer-lived storage.
type ParsedResume struct {
	Text            string          `json:"extracted_text"`
	Skills          []string        `json:"skills"`
	Education       []Education     `json:"education"`
	Certifications  []Certification `json:"certifications"`
	ExperienceYears int             `json:"experience_years"`
	Languages       []string        `json:"languages"`
}

// ParseResumeRequest 简历解析请求
type ParseResumeRequest struct {
	ResumeURL string `json:"resume_url"`
	Filename  string `json:"filename"`
}

// ParseResumeResponse 简历解析响应
type ParseResumeResponse struct {
	ExtractedText   string          `json:"extracted_text"`
	Summary         string          `json:"summary"`
	Skills          []string        `json:"skills"`
	ExperienceYears int             `json:"experience_years"`
	Education       []Education     `json:"education"`
	Certifications  []Certification `json:"certifications"`
	Languages       []string        `json:"languages"`
	EmbeddingID     string          `json:"embedding_id"`
}

// EmbeddingRequest 生成表示请求
type EmbeddingRequest struct {
	Text string `json:"text"`
}

// EmbeddingResponse carries either a numeric vector or a keyword list,
// depending on the configured backend.
type EmbeddingResponse struct {
	Embedding   interface{} `json:"embedding"`
	EmbeddingID string      `json:"embedding_id"`
}

// SearchRequest 语义搜索请求
type SearchRequest struct {
	Query        string   `json:"query"`
	CandidateIDs []string `json:"candidate_ids"`
}

// SearchResult 单条搜索结果
type SearchResult struct {
	CandidateID string  `json:"candidate_id"`
	Score       float64 `json:"score"`
	Reason      string  `json:"reason"`
}

// SearchResponse 语义搜索响应
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// SummaryRequest 摘要生成请求
type SummaryRequest struct {
	ResumeText string   `json:"resume_text"`
	Skills     []string `json:"skills"`
	Experience int      `json:"experience"`
}

// SummaryResponse 摘要生成响应
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Version     string `json:"version"`
}

// ErrorResponse is the single error shape every failed request returns.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
