package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	"resume-match-go/internal/tracing"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ErrNotFound 键不存在，包装底层的 redis.Nil 以做抽象
var ErrNotFound = redis.Nil

// Redis操作专用tracer
var redisTracer = otel.Tracer("resume-match-go/storage/redis")

// Redis 封装Redis客户端，当前仅承担单元向量缓存
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedis 创建Redis连接并验证连通性
func NewRedis(ctx context.Context, cfg *config.RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis失败 (%s): %w", cfg.Address, err)
	}

	// OpenTelemetry命令追踪钩子
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("安装Redis追踪钩子失败: %w", err)
	}

	return &Redis{Client: client, config: cfg}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	return r.Client.Close()
}

// unitVectorKey 生成向量缓存键：前缀 + MD5(模型|文本)
func unitVectorKey(model, text string) string {
	sum := md5.Sum([]byte(model + "|" + text))
	return constants.UnitVectorCachePrefix + hex.EncodeToString(sum[:])
}

// GetUnitVector 读取缓存的单元向量；未命中返回 ErrNotFound
func (r *Redis) GetUnitVector(ctx context.Context, model, text string) ([]float64, error) {
	key := unitVectorKey(model, text)

	ctx, span := redisTracer.Start(ctx, "redis.GetUnitVector")
	defer span.End()
	span.SetAttributes(attribute.String("redis.key", tracing.Truncate(key, tracing.MaxRedisLength)))

	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		}
		return nil, err
	}

	var vector []float64
	if err := json.Unmarshal(data, &vector); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return nil, fmt.Errorf("反序列化缓存向量失败: %w", err)
	}
	return vector, nil
}

// SetUnitVector 写入单元向量缓存，过期时间见 constants
func (r *Redis) SetUnitVector(ctx context.Context, model, text string, vector []float64) error {
	key := unitVectorKey(model, text)

	ctx, span := redisTracer.Start(ctx, "redis.SetUnitVector")
	defer span.End()
	span.SetAttributes(
		attribute.String("redis.key", tracing.Truncate(key, tracing.MaxRedisLength)),
		attribute.Int("vector.dim", len(vector)),
	)

	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("序列化向量失败: %w", err)
	}

	if err := r.Client.Set(ctx, key, data, constants.UnitVectorCacheDuration).Err(); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return fmt.Errorf("写入向量缓存失败: %w", err)
	}
	return nil
}
