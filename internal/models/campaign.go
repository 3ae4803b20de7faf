package models

import (
	"time"

	"gorm.io/datatypes"
)

// Campaign 营销活动模型，隶属于一个组织
type Campaign struct {
	BaseModel
	OrganizationID uint                       `json:"organization_id" gorm:"not null;index"`
	Name           string                     `json:"name" gorm:"not null;size:200"`
	Description    *string                    `json:"description" gorm:"type:text"`
	Type           string                     `json:"type" gorm:"not null;size:20;index"` // sms、email、social，不做枚举约束
	Content        string                     `json:"content" gorm:"type:text"`
	TargetTags     datatypes.JSONSlice[string] `json:"target_tags"`
	Status         string                     `json:"status" gorm:"default:'draft';size:20;index"`
	ScheduledAt    *time.Time                 `json:"scheduled_at"`
	SentAt         *time.Time                 `json:"sent_at"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

// TableName 表名
func (c *Campaign) TableName() string {
	return "campaigns"
}

// 活动状态常量
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusSent      = "sent"
	CampaignStatusCancelled = "cancelled"
)

// 合法的状态流转：draft -> scheduled -> sent，draft/scheduled -> cancelled
var campaignTransitions = map[string][]string{
	CampaignStatusDraft:     {CampaignStatusScheduled, CampaignStatusCancelled},
	CampaignStatusScheduled: {CampaignStatusSent, CampaignStatusCancelled},
}

// CanTransitionCampaign 判断状态流转是否合法，相同状态视为合法
func CanTransitionCampaign(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range campaignTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
