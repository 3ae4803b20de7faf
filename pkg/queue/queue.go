package queue

import (
	"context"
	"time"
)

// DispatchMessage 活动派发消息，由下游发送通道消费
type DispatchMessage struct {
	CampaignID     uint      `json:"campaign_id"`
	OrganizationID uint      `json:"organization_id"`
	Type           string    `json:"type"`
	Content        string    `json:"content"`
	TargetTags     []string  `json:"target_tags"`
	SentAt         time.Time `json:"sent_at"`
}

// Queue 派发队列
type Queue interface {
	Enqueue(ctx context.Context, msg DispatchMessage) error
	Ping(ctx context.Context) error
	Close() error
}
