package router

import (
	"context"
	"errors"
	"io"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/config"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
	"go.opentelemetry.io/otel/trace"
)

// RegisterRoutes 注册 API 路由
// cfg.Server.APIKey 非空时 /api/v1 下的接口启用 X-API-Key 鉴权
func RegisterRoutes(h *server.Hertz, cfg *config.Config, analyzeHandler *handler.AnalyzeHandler, matchHandler *handler.MatchHandler) {
	// 健康检查不走鉴权
	h.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	api := h.Group("/api/v1")
	if cfg.Server.APIKey != "" {
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-API-Key", ""),
			keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
				return key == cfg.Server.APIKey, nil
			}),
			keyauth.WithErrorHandler(func(c context.Context, ctx *app.RequestContext, err error) {
				ctx.JSON(consts.StatusUnauthorized, utils.H{"error": "无效的API密钥"})
				ctx.Abort()
			}),
		))
	}

	api.POST("/analyze", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("resume_file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "简历文件未找到"})
			return
		}
		jobDescription := ctx.PostForm("job_description")
		if jobDescription == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "岗位描述不能为空"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		fileData, err := io.ReadAll(file)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
			return
		}

		resp, err := analyzeHandler.HandleAnalyze(c, fileData, fileHeader.Filename, jobDescription)
		if err != nil {
			switch {
			case errors.Is(err, parser.ErrUnsupportedFormat):
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": "不支持的文件格式，仅支持 PDF 与 DOCX"})
			case errors.Is(err, parser.ErrEmbeddingUnavailable):
				ctx.JSON(consts.StatusBadGateway, utils.H{"error": "向量服务暂不可用"})
			default:
				tracing.RecordError(trace.SpanFromContext(c), err, tracing.ErrorTypeInternal)
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			}
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/match", func(c context.Context, ctx *app.RequestContext) {
		var req handler.MatchRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}

		report, err := matchHandler.HandleMatch(c, &req)
		if err != nil {
			switch {
			case errors.Is(err, handler.ErrInvalidMatchRequest):
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
			case errors.Is(err, parser.ErrEmbeddingUnavailable):
				ctx.JSON(consts.StatusBadGateway, utils.H{"error": "向量服务暂不可用"})
			default:
				tracing.RecordError(trace.SpanFromContext(c), err, tracing.ErrorTypeInternal)
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			}
			return
		}
		ctx.JSON(consts.StatusOK, report)
	})
}
