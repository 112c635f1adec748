package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"talentvault-ai-go/internal/constants"
	"talentvault-ai-go/internal/types"
)

// skillCategory 技能类别及其匹配模式
type skillCategory struct {
	name     string
	patterns []*regexp.Regexp
}

func compileSkills(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		out = append(out, regexp.MustCompile(`\b`+w+`\b`))
	}
	return out
}

// 技能匹配表按类别组织，匹配时对小写文本执行
var skillCategories = []skillCategory{
	{name: "programming", patterns: compileSkills([]string{
		`python`, `java`, `javascript`, `typescript`, `c\+\+`, `c#`, `ruby`, `php`,
		`go`, `rust`, `swift`, `kotlin`, `scala`, `r`, `matlab`,
	})},
	{name: "web", patterns: compileSkills([]string{
		`react`, `vue`, `angular`, `node\.js`, `express`, `django`, `flask`,
		`fastapi`, `spring`, `asp\.net`, `html`, `css`, `tailwind`, `bootstrap`,
	})},
	{name: "data", patterns: compileSkills([]string{
		`sql`, `postgresql`, `mysql`, `mongodb`, `redis`, `elasticsearch`,
		`pandas`, `numpy`, `tensorflow`, `pytorch`, `scikit-learn`, `spark`,
	})},
	{name: "cloud", patterns: compileSkills([]string{
		`aws`, `azure`, `gcp`, `docker`, `kubernetes`, `terraform`, `jenkins`,
		`gitlab`, `github actions`, `ci/cd`,
	})},
	{name: "tools", patterns: compileSkills([]string{
		`git`, `linux`, `bash`, `rest api`, `graphql`, `microservices`,
		`agile`, `scrum`, `jira`, `confluence`,
	})},
}

var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(bachelor|b\.?s\.?|b\.?a\.?|b\.?tech|b\.?e\.?)`),
	regexp.MustCompile(`(?i)(master|m\.?s\.?|m\.?a\.?|m\.?tech|mba)`),
	regexp.MustCompile(`(?i)(ph\.?d\.?|doctorate|doctoral)`),
	regexp.MustCompile(`(?i)(associate|a\.?s\.?|diploma)`),
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s+of\s+experience`),
	regexp.MustCompile(`experience\s*:\s*(\d+)\+?\s*years?`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s+in`),
}

var yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// firstYear 返回行内首个四位年份，没有则返回0
func firstYear(line string) int {
	tok := yearPattern.FindString(line)
	if tok == "" {
		return 0
	}
	year, err := strconv.Atoi(tok)
	if err != nil {
		return 0
	}
	return year
}

var knownLanguages = []string{
	"english", "spanish", "french", "german", "chinese", "mandarin",
	"hindi", "arabic", "portuguese", "russian", "japanese", "korean",
	"italian", "dutch", "swedish", "polish", "turkish", "vietnamese",
}

var languagePatterns = compileSkills(knownLanguages)

// FieldExtractor 从简历纯文本中抽取结构化字段
// 所有匹配基于正则，不依赖外部模型
type FieldExtractor struct {
	now func() time.Time // 注入时钟，经验年限推断使用当前年份
}

// FieldExtractorOption FieldExtractor的配置选项
type FieldExtractorOption func(*FieldExtractor)

// WithClock 替换用于年份推断的时钟（测试用）
func WithClock(now func() time.Time) FieldExtractorOption {
	return func(fe *FieldExtractor) {
		fe.now = now
	}
}

// NewFieldExtractor 创建字段提取器
func NewFieldExtractor(options ...FieldExtractorOption) *FieldExtractor {
	fe := &FieldExtractor{now: time.Now}
	for _, option := range options {
		option(fe)
	}
	return fe
}

// ExtractSkills 提取技能列表，按类别扫描后统一规范化并排序去重
func (fe *FieldExtractor) ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	for _, cat := range skillCategories {
		for _, p := range cat.patterns {
			if match := p.FindString(lower); match != "" {
				seen[normalizeSkill(p.String())] = struct{}{}
			}
		}
	}

	skills := make([]string, 0, len(seen))
	for s := range seen {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// normalizeSkill 从正则模式还原技能展示名：去掉转义、边界标记与点号后标题化
func normalizeSkill(pattern string) string {
	s := strings.TrimPrefix(pattern, `\b`)
	s = strings.TrimSuffix(s, `\b`)
	s = strings.ReplaceAll(s, `\`, "")
	s = strings.ReplaceAll(s, ".", "")
	return titleCase(s)
}

// titleCase 按Python str.title()语义：非字母后的首个字母大写
func titleCase(s string) string {
	runes := []rune(s)
	prevLetter := false
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if prevLetter {
				runes[i] = unicode.ToLower(r)
			} else {
				runes[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(runes)
}

// ExtractEducation 提取学历条目，最多保留前几条
// 学位所在行的下一行作为院校名，年份取该行首个四位年份
func (fe *FieldExtractor) ExtractEducation(text string) []types.Education {
	lines := strings.Split(text, "\n")
	var entries []types.Education
	for i, line := range lines {
		if len(entries) >= constants.MaxEducationEntries {
			break
		}
		for _, p := range degreePatterns {
			if !p.MatchString(line) {
				continue
			}

			// 学位字段保留整行，行内通常带有专业方向等上下文
			entry := types.Education{Degree: strings.TrimSpace(line)}
			// 院校名取学位行之后的第一个非空行
			for j := i + 1; j < len(lines); j++ {
				if next := strings.TrimSpace(lines[j]); next != "" {
					entry.Institution = next
					break
				}
			}
			if year := firstYear(line); year > 0 {
				entry.Year = year
			}
			entries = append(entries, entry)
			break
		}
	}
	return entries
}

// ExtractCertifications 提取认证条目：包含认证关键词的行，最多保留前几条
func (fe *FieldExtractor) ExtractCertifications(text string) []types.Certification {
	var certs []types.Certification
	for _, line := range strings.Split(text, "\n") {
		if len(certs) >= constants.MaxCertificationEntries {
			break
		}
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "certified") &&
			!strings.Contains(lower, "certification") &&
			!strings.Contains(lower, "certificate") {
			continue
		}
		cert := types.Certification{Name: strings.TrimSpace(line)}
		if year := firstYear(line); year > 0 {
			cert.Year = year
		}
		certs = append(certs, cert)
	}
	return certs
}

// ExtractExperienceYears 推断经验年限
// 优先匹配显式声明（取最大值），否则用最早出现的年份与当前年份之差，上限30年
func (fe *FieldExtractor) ExtractExperienceYears(text string) int {
	lower := strings.ToLower(text)

	maxYears := 0
	found := false
	for _, p := range experiencePatterns {
		for _, m := range p.FindAllStringSubmatch(lower, -1) {
			if years, err := strconv.Atoi(m[1]); err == nil {
				found = true
				if years > maxYears {
					maxYears = years
				}
			}
		}
	}
	if found {
		return maxYears
	}

	// 没有显式声明时，从文本中出现的年份推断；至少需要两个不同年份
	distinct := make(map[int]struct{})
	earliest := 0
	for _, tok := range yearPattern.FindAllString(text, -1) {
		year, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		distinct[year] = struct{}{}
		if earliest == 0 || year < earliest {
			earliest = year
		}
	}
	if len(distinct) < 2 {
		return 0
	}

	years := fe.now().Year() - earliest
	if years < 0 {
		years = 0
	}
	if years > constants.MaxExperienceYears {
		years = constants.MaxExperienceYears
	}
	return years
}

// ExtractLanguages 提取语言列表，按已知语言词表匹配，结果按名称排序
func (fe *FieldExtractor) ExtractLanguages(text string) []string {
	lower := strings.ToLower(text)
	var languages []string
	for i, p := range languagePatterns {
		if p.MatchString(lower) {
			languages = append(languages, titleCase(knownLanguages[i]))
		}
	}
	sort.Strings(languages)
	return languages
}

// ExtractAll 执行全部字段提取
func (fe *FieldExtractor) ExtractAll(text string) types.ParsedResume {
	return types.ParsedResume{
		Skills:          fe.ExtractSkills(text),
		Education:       fe.ExtractEducation(text),
		Certifications:  fe.ExtractCertifications(text),
		ExperienceYears: fe.ExtractExperienceYears(text),
		Languages:       fe.ExtractLanguages(text),
	}
}
