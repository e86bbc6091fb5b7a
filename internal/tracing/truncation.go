package tracing

const (
	// DefaultMaxLength 追踪属性默认最大长度
	DefaultMaxLength = 200

	// MaxRedisLength Redis键值最大长度
	MaxRedisLength = 100

	// MaxTextLength 文档文本属性最大长度
	MaxTextLength = 150
)

// Truncate 将字符串截断到 maxLen，超长时以省略号结尾
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
