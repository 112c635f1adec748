package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"talentvault-ai-go/internal/api/handler"
	"talentvault-ai-go/internal/api/router"
	"talentvault-ai-go/internal/config"
	"talentvault-ai-go/internal/embedding"
	appCoreLogger "talentvault-ai-go/internal/logger"
	"talentvault-ai-go/internal/parser"
	"talentvault-ai-go/internal/processor"
	"talentvault-ai-go/internal/storage"
	"talentvault-ai-go/internal/summary"

	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
)

func main() {
	// .env仅用于本地开发，不存在时静默跳过
	_ = godotenv.Load()

	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置校验失败: %v", err)
	}

	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	glog.SetLogger(hertzadapter.From(appCoreLogger.Logger))
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageManager, err := storage.NewStorage(cfg, nil)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	glog.Info("存储服务初始化成功")

	// 表示后端按配置二选一：dense走embeddings接口，feature走聊天模型
	var backend embedding.Backend
	switch cfg.AI.Backend {
	case "dense":
		backend, err = embedding.NewDenseBackend(embedding.DenseConfig{
			BaseURL:    cfg.AI.BaseURL,
			APIKey:     cfg.AI.APIKey,
			Model:      cfg.AI.EmbeddingModel,
			Dimensions: cfg.AI.Dimensions,
			MaxRetries: cfg.AI.MaxRetries,
			Timeout:    cfg.AI.Timeout(),
		}, nil)
		if err != nil {
			glog.Fatalf("初始化稠密表示后端失败: %v", err)
		}
		glog.Infof("稠密表示后端初始化成功 (model=%s)", cfg.AI.EmbeddingModel)
	case "feature":
		backend = embedding.NewFeatureBackend(embedding.FeatureConfig{
			BaseURL:    cfg.AI.BaseURL,
			APIKey:     cfg.AI.APIKey,
			Model:      cfg.AI.ChatModel,
			MaxRetries: cfg.AI.MaxRetries,
			Timeout:    cfg.AI.Timeout(),
		}, nil)
		glog.Infof("特征表示后端初始化成功 (model=%s)", cfg.AI.ChatModel)
	}

	summarizer := summary.NewGenerator(summary.GeneratorConfig{
		BaseURL:    cfg.AI.BaseURL,
		APIKey:     cfg.AI.APIKey,
		Model:      cfg.AI.ChatModel,
		MaxRetries: cfg.AI.MaxRetries,
		Timeout:    cfg.AI.Timeout(),
	}, nil)
	glog.Info("摘要生成器初始化成功")

	einoExtractor, err := parser.NewEinoPDFExtractor(ctx,
		parser.WithEinoLogger(log.New(os.Stderr, "[EinoPDFMain] ", log.LstdFlags)))
	if err != nil {
		glog.Fatalf("创建Eino PDF提取器失败: %v", err)
	}
	simpleExtractor := parser.NewSimplePDFExtractor(nil)
	docExtractor := parser.NewDocumentExtractor(einoExtractor, simpleExtractor, nil)
	glog.Info("文档提取器初始化成功")

	fetcherOptions := []parser.FetcherOption{}
	if storageManager.MinIO != nil {
		fetcherOptions = append(fetcherOptions, parser.WithObjectFetcher(storageManager.MinIO))
	}
	fetcher := parser.NewFetcher(cfg.Processing.DownloadTimeout(), fetcherOptions...)

	svc, err := processor.NewResumeService(processor.Components{
		Fetcher:    fetcher,
		Extractor:  docExtractor,
		Fields:     parser.NewFieldExtractor(),
		Backend:    backend,
		Summarizer: summarizer,
		Storage:    storageManager,
	}, processor.Settings{
		MaxTextLength:       cfg.Processing.MaxTextLength,
		ChunkSize:           cfg.Processing.ChunkSize,
		SimilarityThreshold: cfg.Search.SimilarityThreshold,
		MaxResults:          cfg.Search.MaxResults,
		Logger:              log.New(appCoreLogger.Logger, "[ResumeService] ", log.LstdFlags),
	})
	if err != nil {
		glog.Fatalf("初始化简历处理服务失败: %v", err)
	}
	glog.Info("简历处理服务初始化成功")

	h := server.New(
		server.WithHostPorts(cfg.Server.Addr()),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, handler.NewAIHandler(cfg, svc))
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Addr())
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}
