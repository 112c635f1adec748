package summary

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"talentvault-ai-go/internal/constants"
)

const summarySystemPrompt = "You are a professional resume summarizer. Write a concise 2-3 sentence professional summary. Return only the summary text."

// chatClient go-openai客户端中摘要生成用到的部分
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator writes candidate summaries. It prefers the chat model and falls
// back to a deterministic template whenever the model is unavailable, so the
// endpoint always returns something useful.
type Generator struct {
	client     chatClient
	model      string
	maxRetries int
	timeout    time.Duration
	logger     *log.Logger
}

// GeneratorConfig 摘要生成器配置
type GeneratorConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

// NewGenerator 创建摘要生成器。APIKey为空时不配置客户端，始终走模板。
func NewGenerator(cfg GeneratorConfig, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(os.Stderr, "[Summary] ", log.LstdFlags)
	}

	g := &Generator{
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		timeout:    cfg.Timeout,
		logger:     logger,
	}
	if g.timeout <= 0 {
		g.timeout = 30 * time.Second
	}

	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		g.client = openai.NewClientWithConfig(clientCfg)
	} else {
		logger.Printf("no API key configured, summaries use the template")
	}

	return g
}

// Generate 生成候选人摘要
// 模型不可用或调用失败时降级为模板摘要，永不返回错误
func (g *Generator) Generate(ctx context.Context, resumeText string, skills []string, experienceYears int) string {
	if g.client != nil {
		summary, err := g.generateWithLLM(ctx, resumeText, skills, experienceYears)
		if err == nil {
			return summary
		}
		g.logger.Printf("LLM summary failed, using template: %v", err)
	}
	return TemplateSummary(resumeText, skills, experienceYears)
}

func (g *Generator) generateWithLLM(ctx context.Context, resumeText string, skills []string, experienceYears int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := buildPrompt(resumeText, skills, experienceYears)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("empty summary in response")
	}
	return truncate(summary, constants.MaxSummaryLength), nil
}

// buildPrompt 构建摘要提示词：文本节选 + 部分技能 + 经验年限
func buildPrompt(resumeText string, skills []string, experienceYears int) string {
	excerpt := resumeText
	if runes := []rune(excerpt); len(runes) > constants.SummaryExcerptLength {
		excerpt = string(runes[:constants.SummaryExcerptLength])
	}

	promptSkills := skills
	if len(promptSkills) > constants.SummaryMaxSkills {
		promptSkills = promptSkills[:constants.SummaryMaxSkills]
	}

	var sb strings.Builder
	sb.WriteString("Resume excerpt:\n")
	sb.WriteString(excerpt)
	sb.WriteString("\n\nKey skills: ")
	sb.WriteString(strings.Join(promptSkills, ", "))
	fmt.Fprintf(&sb, "\nYears of experience: %d", experienceYears)
	return sb.String()
}

// truncate 超长时截断到max个字符，末尾带省略号
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// contextualPhrases 模板摘要的补充短语，按简历原文命中顺序最多取两条
var contextualPhrases = []struct {
	keyword string
	phrase  string
}{
	{"startup", "startup experience"},
	{"lead", "leadership background"},
	{"architect", "architecture experience"},
	{"mentor", "mentoring experience"},
	{"open source", "open source contributor"},
}

// TemplateSummary builds the deterministic fallback summary from the resume
// text, skill list and experience years.
func TemplateSummary(resumeText string, skills []string, experienceYears int) string {
	var parts []string

	if experienceYears == 0 {
		parts = append(parts, "Skilled professional")
	} else {
		plus := ""
		if experienceYears >= 10 {
			plus = "+"
		}
		parts = append(parts, fmt.Sprintf("Experienced professional with %d%s years of expertise", experienceYears, plus))
	}

	if len(skills) > 0 {
		shown := skills
		if len(shown) > 3 {
			shown = shown[:3]
		}
		skillPart := "in " + strings.Join(shown, ", ")
		if extra := len(skills) - 3; extra > 0 {
			skillPart += fmt.Sprintf(", and %d more technologies", extra)
		}
		parts = append(parts, skillPart)
	}

	lowerText := strings.ToLower(resumeText)
	phrases := 0
	for _, cp := range contextualPhrases {
		if phrases >= 2 {
			break
		}
		if strings.Contains(lowerText, cp.keyword) {
			parts = append(parts, cp.phrase)
			phrases++
		}
	}

	summary := strings.Join(parts, ". ") + "."
	return truncate(summary, constants.MaxTemplateSummaryLength)
}
