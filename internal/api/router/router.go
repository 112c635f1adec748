package router

import (
	"talentvault-ai-go/internal/api/handler"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// RegisterRoutes 注册 API 路由
// 路由挂在根路径下，与上游调用方的既有路径保持一致
func RegisterRoutes(h *server.Hertz, ai *handler.AIHandler) {
	h.GET("/", ai.HandleRoot)
	h.GET("/health", ai.HandleHealth)
	h.POST("/parse-resume", ai.HandleParseResume)
	h.POST("/generate-embeddings", ai.HandleGenerateEmbeddings)
	h.POST("/semantic-search", ai.HandleSemanticSearch)
	h.POST("/generate-summary", ai.HandleGenerateSummary)
}
