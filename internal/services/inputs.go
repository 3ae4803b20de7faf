package services

import (
	"strings"
	"time"

	"ai4local/pkg/patch"
)

// ========== 认证 ==========

type RegisterInput struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ========== 组织 ==========

type CreateOrganizationInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
}

type UpdateOrganizationInput struct {
	Name        patch.Field[string] `json:"name"`
	Description patch.Field[string] `json:"description"`
	Website     patch.Field[string] `json:"website"`
	Phone       patch.Field[string] `json:"phone"`
	Address     patch.Field[string] `json:"address"`
	Status      patch.Field[string] `json:"status"`
}

// ========== 客户 ==========

type CreateCustomerInput struct {
	OrganizationID uint     `json:"organization_id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	Tags           []string `json:"tags"`
	Notes          *string  `json:"notes"`
	Status         string   `json:"status"`
}

type UpdateCustomerInput struct {
	Name    patch.Field[string]   `json:"name"`
	Email   patch.Field[string]   `json:"email"`
	Phone   patch.Field[string]   `json:"phone"`
	Address patch.Field[string]   `json:"address"`
	Tags    patch.Field[[]string] `json:"tags"`
	Notes   patch.Field[string]   `json:"notes"`
	Status  patch.Field[string]   `json:"status"`
}

// ========== 活动 ==========

type CreateCampaignInput struct {
	OrganizationID uint       `json:"organization_id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	Type           string     `json:"type"`
	Content        string     `json:"content"`
	TargetTags     []string   `json:"target_tags"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
}

// UpdateCampaignInput 未出现的字段保持不变，显式 null 清空可空字段
type UpdateCampaignInput struct {
	OrganizationID patch.Field[uint]      `json:"organization_id"`
	Name           patch.Field[string]    `json:"name"`
	Description    patch.Field[string]    `json:"description"`
	Type           patch.Field[string]    `json:"type"`
	Content        patch.Field[string]    `json:"content"`
	TargetTags     patch.Field[[]string]  `json:"target_tags"`
	Status         patch.Field[string]    `json:"status"`
	ScheduledAt    patch.Field[time.Time] `json:"scheduled_at"`
	SentAt         patch.Field[time.Time] `json:"sent_at"`
}

type GenerateContentInput struct {
	Prompt string `json:"prompt"`
	Type   string `json:"type"`
}

// NormalizeEmail 去空格并转小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeTags 去空格、去空值、去重，保留首次出现的顺序
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
