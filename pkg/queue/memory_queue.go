package queue

import (
	"context"
	"sync"
)

// MemoryQueue 进程内队列，未启用Redis时使用
type MemoryQueue struct {
	mu       sync.Mutex
	messages []DispatchMessage
	failWith error
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, msg DispatchMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.failWith != nil {
		return q.failWith
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	q.messages = append(q.messages, msg)
	return nil
}

func (q *MemoryQueue) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (q *MemoryQueue) Close() error {
	return nil
}

// Drain 取出并清空已入队消息
func (q *MemoryQueue) Drain() []DispatchMessage {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.messages
	q.messages = nil
	return out
}

// FailWith 之后的 Enqueue 返回 err；传 nil 恢复
func (q *MemoryQueue) FailWith(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.failWith = err
}
