package handler

import (
	"context"
	"fmt"
	"strings"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/types"

	"github.com/gofrs/uuid/v5"
)

// AnalyzeHandler 一站式分析处理器
// 负责串联 文件解析 -> 简历结构化 -> 岗位解析 -> 技能抽取 ->
// 缺失技能分析 -> 匹配打分 的完整流水线
type AnalyzeHandler struct {
	cfg       *config.Config
	extractor *parser.DocumentExtractor
	resume    *processor.ResumeProcessor
	job       *processor.JDProcessor
	skills    *processor.SkillExtractor
	missing   *processor.MissingSkillDetector
	matcher   *processor.Matcher
}

// NewAnalyzeHandler 创建分析处理器
func NewAnalyzeHandler(
	cfg *config.Config,
	extractor *parser.DocumentExtractor,
	resume *processor.ResumeProcessor,
	job *processor.JDProcessor,
	skills *processor.SkillExtractor,
	missing *processor.MissingSkillDetector,
	matcher *processor.Matcher,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		cfg:       cfg,
		extractor: extractor,
		resume:    resume,
		job:       job,
		skills:    skills,
		missing:   missing,
		matcher:   matcher,
	}
}

// AnalyzeResponse 一站式分析响应
type AnalyzeResponse struct {
	RequestID     string                     `json:"request_id"`
	Resume        *types.ParsedResume        `json:"resume"`
	Job           *types.ParsedJob           `json:"job"`
	ResumeSkills  types.SkillSet             `json:"resume_skills"`
	JobSkills     types.SkillSet             `json:"job_skills"`
	MissingSkills *types.MissingSkillsReport `json:"missing_skills"`
	Match         *types.MatchReport         `json:"match"`
}

// HandleAnalyze 执行完整分析流水线
// fileData 为简历原始文件内容，filename 用于按扩展名分派解析器
// 文件格式不支持时返回 parser.ErrUnsupportedFormat，由路由层转 400
func (h *AnalyzeHandler) HandleAnalyze(ctx context.Context, fileData []byte, filename, jobDescription string) (*AnalyzeResponse, error) {
	requestID := newRequestID()
	log := logger.Logger.With().Str("request_id", requestID).Logger()

	// 1. 简历文件抽取纯文本
	resumeText, err := h.extractor.ExtractText(ctx, fileData, filename)
	if err != nil {
		return nil, fmt.Errorf("简历文件解析失败: %w", err)
	}

	// 2. 简历与岗位结构化
	structuredResume := h.resume.BuildStructuredResume(resumeText)
	parsedJob := h.job.ParseJobText(jobDescription)

	// 3. 两侧技能抽取（在归一化文本上做）
	resumeSkills := h.skills.Extract(structuredResume.CleanText)
	jobSkills := h.skills.Extract(parsedJob.CleanText)

	// 岗位侧的必备技能以结构化解析出的 tools_and_tech 为准，统一小写
	jobRequired := make([]string, 0, len(parsedJob.ToolsAndTech))
	for _, t := range parsedJob.ToolsAndTech {
		jobRequired = append(jobRequired, strings.ToLower(t))
	}

	// 4. 缺失技能分析
	missingReport := h.missing.Detect(resumeSkills.All(), jobRequired)

	// 5. 匹配打分，权重取配置默认值
	sw, kw := h.matcher.DefaultWeights()
	matchReport, err := h.matcher.Match(ctx,
		structuredResume.CleanText, parsedJob.CleanText,
		resumeSkills.All(), jobRequired, sw, kw)
	if err != nil {
		log.Error().Err(err).Msg("匹配打分失败")
		return nil, err
	}

	log.Info().
		Str("filename", filename).
		Float64("final_score", matchReport.FinalScore).
		Int("missing_hard", len(missingReport.MissingHard)).
		Msg("分析流水线完成")

	return &AnalyzeResponse{
		RequestID:     requestID,
		Resume:        structuredResume,
		Job:           parsedJob,
		ResumeSkills:  resumeSkills,
		JobSkills:     jobSkills,
		MissingSkills: missingReport,
		Match:         matchReport,
	}, nil
}

// newRequestID 生成请求标识，UUIDv7 失败时退回 v4
func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.Must(uuid.NewV4()).String()
}
