package database

import (
	"ai4local/pkg/config"
	"ai4local/pkg/logger"
	"ai4local/pkg/queue"
)

// NewDispatchQueue 按配置创建派发队列，未启用 Redis 时退化为进程内队列
func NewDispatchQueue(cfg *config.RedisConfig) queue.Queue {
	if !cfg.Enabled {
		logger.GetLogger().Warn("Redis disabled, campaign dispatch uses in-memory queue")
		return queue.NewMemoryQueue()
	}

	return queue.NewRedisQueue(&queue.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
		Prefix:   cfg.Prefix,
	})
}
