package tracing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTruncate(t *testing.T) {
	t.Run("短字符串原样返回", func(t *testing.T) {
		assert.Equal(t, "short", Truncate("short", DefaultMaxLength))
	})

	t.Run("超长字符串以省略号截断", func(t *testing.T) {
		long := strings.Repeat("a", MaxTextLength+50)
		got := Truncate(long, MaxTextLength)
		assert.Len(t, got, MaxTextLength)
		assert.True(t, strings.HasSuffix(got, "..."), "截断结果应以省略号结尾")
	})

	t.Run("非法maxLen退回默认值", func(t *testing.T) {
		long := strings.Repeat("b", DefaultMaxLength+10)
		assert.Len(t, Truncate(long, 0), DefaultMaxLength)
	})
}

func recordedAttributes(span sdktrace.ReadOnlySpan) map[string]string {
	attrs := make(map[string]string)
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	return attrs
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	t.Run("附加错误类型与详情", func(t *testing.T) {
		_, span := tracer.Start(context.Background(), "op")
		RecordError(span, errors.New("连接超时"), ErrorTypeRedis)
		span.End()

		spans := recorder.Ended()
		require.NotEmpty(t, spans)
		attrs := recordedAttributes(spans[len(spans)-1])
		assert.Equal(t, "redis", attrs["error.type"])
		assert.Equal(t, "连接超时", attrs["error.message"])
	})

	t.Run("额外属性一并记录", func(t *testing.T) {
		_, span := tracer.Start(context.Background(), "op")
		RecordErrorWithInfo(span, errors.New("解码失败"), ErrorTypeDecode,
			attribute.String("doc.format", "pdf"))
		span.End()

		spans := recorder.Ended()
		require.NotEmpty(t, spans)
		attrs := recordedAttributes(spans[len(spans)-1])
		assert.Equal(t, "decode", attrs["error.type"])
		assert.Equal(t, "pdf", attrs["doc.format"])
	})

	t.Run("空span与空错误安全跳过", func(t *testing.T) {
		assert.NotPanics(t, func() {
			RecordError(nil, errors.New("x"), ErrorTypeInternal)
		})
		_, span := tracer.Start(context.Background(), "op")
		assert.NotPanics(t, func() {
			RecordError(span, nil, ErrorTypeInternal)
		})
		span.End()
	})
}

func TestInitProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	shutdown, err := InitProvider(context.Background(), "localhost:4317", "test-service", 1.0)
	require.NoError(t, err, "exporter为懒连接，初始化不应失败")
	require.NotNil(t, shutdown)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok, "全局TracerProvider应替换为SDK实现")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = shutdown(ctx) // 无collector时刷新失败属预期
}
