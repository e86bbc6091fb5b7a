package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/api/router"
	"resume-match-go/internal/config"
	applogger "resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/taxonomy"
	"resume-match-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "config.yaml", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}

	// 日志初始化后把 Hertz 的全局日志也切到 zerolog
	applogger.Init(cfg.Logger)
	glog.SetLogger(hertzadapter.From(applogger.Logger))
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 链路追踪可选，初始化失败不影响服务启动
	if cfg.Tracing.Enabled {
		shutdownTracing, err := tracing.InitProvider(ctx,
			cfg.Tracing.Endpoint, cfg.Tracing.ServiceName, cfg.Tracing.SampleRate)
		if err != nil {
			glog.Warnf("初始化链路追踪失败，追踪关闭: %v", err)
		} else {
			defer func() {
				flushCtx, cancelFlush := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancelFlush()
				if err := shutdownTracing(flushCtx); err != nil {
					glog.Warnf("关闭链路追踪失败: %v", err)
				}
			}()
			glog.Infof("链路追踪已启用，上报端点: %s", cfg.Tracing.Endpoint)
		}
	}

	// 技能词典是硬依赖，缺失直接退出
	tax, err := taxonomy.Load(cfg.Taxonomy.SkillsFile, cfg.Taxonomy.RegionSkillsFile)
	if err != nil {
		glog.Fatalf("加载技能词典失败: %v", err)
	}
	glog.Infof("技能词典加载成功，硬技能分类数: %d", len(tax.HardCategories()))

	// 向量化客户端，Redis 可用时套一层单位向量缓存
	var embedder parser.TextEmbedder
	aliyunEmbedder, err := parser.NewAliyunEmbedder(cfg.Aliyun.APIKey, cfg.Aliyun.Embedding)
	if err != nil {
		glog.Fatalf("初始化阿里云Embedder失败: %v", err)
	}
	embedder = aliyunEmbedder
	glog.Infof("阿里云Embedder初始化成功，向量维度: %d", aliyunEmbedder.GetDimensions())

	var redisStore *storage.Redis
	if cfg.Redis.Enabled {
		redisStore, err = storage.NewRedis(ctx, &cfg.Redis)
		if err != nil {
			glog.Warnf("初始化Redis失败，向量缓存关闭: %v", err)
		} else {
			defer redisStore.Close()
			embedder = parser.NewCachedEmbedder(aliyunEmbedder, redisStore, cfg.Aliyun.Embedding.Model)
			glog.Info("Redis向量缓存已启用")
		}
	}

	// 文档解析器
	pdfExtractor, err := parser.NewEinoPDFExtractor(ctx)
	if err != nil {
		glog.Fatalf("初始化PDF解析器失败: %v", err)
	}
	docExtractor := parser.NewDocumentExtractor(pdfExtractor, parser.NewDocxExtractor())
	glog.Info("文档解析器初始化成功")

	// 业务组件
	splitter := parser.NewHeuristicSplitter()
	keywordExtractor := parser.NewFrequencyKeywordExtractor()

	resumeProcessor := processor.NewResumeProcessor(splitter)
	jdProcessor := processor.NewJDProcessor(splitter, keywordExtractor, cfg.Matcher.KeywordTopK)
	skillExtractor := processor.NewSkillExtractor(tax, splitter)
	missingDetector := processor.NewMissingSkillDetector(tax)
	matcher := processor.NewMatcher(embedder, cfg.Matcher)
	glog.Info("业务处理器初始化成功")

	analyzeHandler := handler.NewAnalyzeHandler(cfg, docExtractor,
		resumeProcessor, jdProcessor, skillExtractor, missingDetector, matcher)
	matchHandler := handler.NewMatchHandler(matcher)

	tracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, cfg, analyzeHandler, matchHandler)
	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)

	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(),
		config.GetDuration(cfg.Server.ShutdownTimeout, 5*time.Second))
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}
