package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisQueue Redis队列实现
type RedisQueue struct {
	client *redis.Client
	prefix string
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisQueue 创建Redis队列实例
func NewRedisQueue(config *Config) *RedisQueue {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	return newRedisQueue(client, config.Prefix)
}

func newRedisQueue(client *redis.Client, prefix string) *RedisQueue {
	if prefix == "" {
		prefix = "ai4local:queue"
	}
	return &RedisQueue{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// Ping 测试Redis连接
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Enqueue 将派发消息加入队列（左侧入队，消费者右侧出队）
func (q *RedisQueue) Enqueue(ctx context.Context, msg DispatchMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode dispatch message: %w", err)
	}

	if err := q.client.LPush(ctx, q.DispatchKey(), data).Err(); err != nil {
		return fmt.Errorf("enqueue campaign %d: %w", msg.CampaignID, err)
	}
	return nil
}

// DispatchKey 派发队列键名
func (q *RedisQueue) DispatchKey() string {
	return q.prefix + ":dispatch"
}
