package handler

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"talentvault-ai-go/internal/config"
	"talentvault-ai-go/internal/constants"
	"talentvault-ai-go/internal/logger"
	"talentvault-ai-go/internal/processor"
	"talentvault-ai-go/internal/types"
)

// AIHandler 简历智能服务的HTTP处理器
type AIHandler struct {
	cfg *config.Config
	svc *processor.ResumeService
}

// NewAIHandler 创建处理器
func NewAIHandler(cfg *config.Config, svc *processor.ResumeService) *AIHandler {
	return &AIHandler{cfg: cfg, svc: svc}
}

// HandleRoot 服务标识
func (h *AIHandler) HandleRoot(_ context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{
		"service": constants.ServiceName,
		"version": constants.ServiceVersion,
		"status":  "running",
		"endpoints": []string{
			"/health",
			"/parse-resume",
			"/generate-embeddings",
			"/semantic-search",
			"/generate-summary",
		},
	})
}

// HandleHealth 健康检查
func (h *AIHandler) HandleHealth(_ context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, types.HealthResponse{
		Status:      "healthy",
		ModelLoaded: h.svc.ModelLoaded(),
		Version:     constants.ServiceVersion,
	})
}

// HandleParseResume 处理简历解析请求
func (h *AIHandler) HandleParseResume(ctx context.Context, c *app.RequestContext) {
	var req types.ParseResumeRequest
	if !h.bind(c, &req) {
		return
	}
	if req.ResumeURL == "" || req.Filename == "" {
		badRequest(c, "resume_url and filename are required")
		return
	}

	resp, err := h.svc.ParseResume(ctx, req)
	if err != nil {
		h.fail(c, "parse-resume", err)
		return
	}
	c.JSON(consts.StatusOK, resp)
}

// HandleGenerateEmbeddings 处理表示生成请求
func (h *AIHandler) HandleGenerateEmbeddings(ctx context.Context, c *app.RequestContext) {
	var req types.EmbeddingRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Text == "" {
		badRequest(c, "text is required")
		return
	}

	resp, err := h.svc.GenerateEmbedding(ctx, req)
	if err != nil {
		h.fail(c, "generate-embeddings", err)
		return
	}
	c.JSON(consts.StatusOK, resp)
}

// HandleSemanticSearch 处理语义搜索请求
func (h *AIHandler) HandleSemanticSearch(ctx context.Context, c *app.RequestContext) {
	var req types.SearchRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Query == "" {
		badRequest(c, "query is required")
		return
	}

	resp, err := h.svc.SemanticSearch(ctx, req)
	if err != nil {
		h.fail(c, "semantic-search", err)
		return
	}
	c.JSON(consts.StatusOK, resp)
}

// HandleGenerateSummary 处理摘要生成请求
func (h *AIHandler) HandleGenerateSummary(ctx context.Context, c *app.RequestContext) {
	var req types.SummaryRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.Summarize(ctx, req)
	if err != nil {
		h.fail(c, "generate-summary", err)
		return
	}
	c.JSON(consts.StatusOK, resp)
}

// bind 解析JSON请求体，失败时直接写入400响应
func (h *AIHandler) bind(c *app.RequestContext, out interface{}) bool {
	if err := json.Unmarshal(c.Request.Body(), out); err != nil {
		badRequest(c, "invalid JSON request body: "+err.Error())
		return false
	}
	return true
}

// fail 将业务错误映射为HTTP响应
// 流水线中的任何失败统一返回500，错误信息原样放入detail
func (h *AIHandler) fail(c *app.RequestContext, op string, err error) {
	logger.Error().Err(err).Str("op", op).Msg("request failed")
	c.JSON(consts.StatusInternalServerError, types.ErrorResponse{Detail: err.Error()})
}

func badRequest(c *app.RequestContext, detail string) {
	c.JSON(consts.StatusBadRequest, types.ErrorResponse{Detail: detail})
}
