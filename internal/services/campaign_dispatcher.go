package services

import (
	"context"
	"fmt"
	"time"

	"ai4local/internal/models"
	"ai4local/internal/repository"
	"ai4local/pkg/queue"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	// dispatchBatchSize 单次扫描处理的最大活动数
	dispatchBatchSize = 100
	// revertTimeout 回滚不受本轮扫描超时影响
	revertTimeout = 5 * time.Second
)

// CampaignDispatcher 将到期的 scheduled 活动标记为 sent 并投递到派发队列
type CampaignDispatcher struct {
	campaigns repository.CampaignRepository
	queue     queue.Queue
	spec      string
	cron      *cron.Cron
	running   bool
	log       logrus.FieldLogger
	now       func() time.Time
}

// DispatchResult 单次扫描结果
type DispatchResult struct {
	Dispatched int
	Skipped    int
	Failed     int
}

func NewCampaignDispatcher(campaigns repository.CampaignRepository, q queue.Queue, spec string, log logrus.FieldLogger) *CampaignDispatcher {
	return &CampaignDispatcher{
		campaigns: campaigns,
		queue:     q,
		spec:      spec,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:       log,
		now:       time.Now,
	}
}

// Start 启动调度器
func (d *CampaignDispatcher) Start() error {
	if d.running {
		return fmt.Errorf("dispatcher already running")
	}

	_, err := d.cron.AddFunc(d.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := d.DispatchDue(ctx, d.now().UTC()); err != nil {
			d.log.WithError(err).Error("campaign dispatch failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid dispatch schedule %q: %w", d.spec, err)
	}

	d.cron.Start()
	d.running = true
	d.log.Infof("Campaign dispatcher started (%s)", d.spec)
	return nil
}

// Stop 停止调度器并等待进行中的任务结束
func (d *CampaignDispatcher) Stop() {
	if !d.running {
		return
	}
	<-d.cron.Stop().Done()
	d.running = false
	d.log.Info("Campaign dispatcher stopped")
}

// DispatchDue 处理 scheduled_at <= now 的 scheduled 活动
func (d *CampaignDispatcher) DispatchDue(ctx context.Context, now time.Time) (*DispatchResult, error) {
	due, err := d.campaigns.FindDue(ctx, now, dispatchBatchSize)
	if err != nil {
		return nil, fmt.Errorf("load due campaigns: %w", err)
	}

	result := &DispatchResult{}
	for i := range due {
		campaign := &due[i]
		entry := d.log.WithField("campaign_id", campaign.ID)

		claimed, err := d.campaigns.ClaimScheduled(ctx, campaign.ID, now)
		if err != nil {
			entry.WithError(err).Error("claim campaign failed")
			result.Failed++
			continue
		}
		if !claimed {
			result.Skipped++
			continue
		}

		msg := queue.DispatchMessage{
			CampaignID:     campaign.ID,
			OrganizationID: campaign.OrganizationID,
			Type:           campaign.Type,
			Content:        campaign.Content,
			TargetTags:     campaign.TargetTags,
			SentAt:         now,
		}
		if err := d.queue.Enqueue(ctx, msg); err != nil {
			entry.WithError(err).Error("enqueue campaign failed, reverting to scheduled")
			if rerr := d.revert(ctx, campaign.ID); rerr != nil {
				entry.WithError(rerr).Error("revert campaign claim failed")
			}
			result.Failed++
			continue
		}

		entry.WithField("status", models.CampaignStatusSent).Info("campaign dispatched")
		result.Dispatched++
	}
	return result, nil
}

func (d *CampaignDispatcher) revert(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), revertTimeout)
	defer cancel()
	return d.campaigns.RevertClaim(ctx, id)
}
