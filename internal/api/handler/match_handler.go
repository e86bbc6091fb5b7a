package handler

import (
	"context"
	"errors"
	"strings"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/types"
)

// 请求校验错误，由路由层转 400
var ErrInvalidMatchRequest = errors.New("简历文本与岗位文本均不能为空")

// MatchHandler 纯文本匹配处理器，不涉及文件解析
type MatchHandler struct {
	matcher *processor.Matcher
}

// NewMatchHandler 创建匹配处理器
func NewMatchHandler(matcher *processor.Matcher) *MatchHandler {
	return &MatchHandler{matcher: matcher}
}

// MatchRequest 匹配请求
// 权重为指针类型以区分"未传"和"传了0"：未传时使用配置默认值
type MatchRequest struct {
	ResumeText        string   `json:"resume_text"`
	JobText           string   `json:"job_text"`
	ResumeSkills      []string `json:"resume_skills"`
	JobRequiredSkills []string `json:"job_required_skills"`
	SemanticWeight    *float64 `json:"semantic_weight"`
	KeywordWeight     *float64 `json:"keyword_weight"`
}

// HandleMatch 执行一次文本对文本的匹配
func (h *MatchHandler) HandleMatch(ctx context.Context, req *MatchRequest) (*types.MatchReport, error) {
	if strings.TrimSpace(req.ResumeText) == "" || strings.TrimSpace(req.JobText) == "" {
		return nil, ErrInvalidMatchRequest
	}

	sw, kw := h.matcher.DefaultWeights()
	if req.SemanticWeight != nil {
		sw = *req.SemanticWeight
	}
	if req.KeywordWeight != nil {
		kw = *req.KeywordWeight
	}

	report, err := h.matcher.Match(ctx, req.ResumeText, req.JobText,
		req.ResumeSkills, req.JobRequiredSkills, sw, kw)
	if err != nil {
		logger.Error().Err(err).Msg("匹配请求处理失败")
		return nil, err
	}
	return report, nil
}
