package constants

const (
	// ServiceName 服务名称
	ServiceName = "talentvault-ai"
	// ServiceVersion 对外报告的版本号
	ServiceVersion = "1.0.0"

	// MinExtractedTextLength 解析文本的最小有效长度
	MinExtractedTextLength = 50

	// MaxSummaryLength LLM摘要的最大长度
	MaxSummaryLength = 250
	// MaxTemplateSummaryLength 模板摘要的最大长度
	MaxTemplateSummaryLength = 200

	// TextPreviewLength 搜索结果中文本预览的长度
	TextPreviewLength = 200

	// SummaryExcerptLength 送入摘要prompt的简历文本长度
	SummaryExcerptLength = 2000
	// SummaryMaxSkills 摘要prompt中携带的技能数量上限
	SummaryMaxSkills = 10

	// EmbeddingExcerptLength 简历解析时参与表示生成的文本长度
	EmbeddingExcerptLength = 1000

	// MaxEducationEntries 教育经历条目上限
	MaxEducationEntries = 3
	// MaxCertificationEntries 证书条目上限
	MaxCertificationEntries = 5

	// MaxExperienceYears 经验年限推断的封顶值
	MaxExperienceYears = 30

	// PlaceholderScore is returned for every requested candidate when no
	// stored representation exists; paired with a reason string so callers
	// can tell placeholder rows from genuine similarity results.
	PlaceholderScore = 0.7
)
