package models

import "gorm.io/datatypes"

// Customer 客户模型，隶属于一个组织
type Customer struct {
	BaseModel
	OrganizationID uint                       `json:"organization_id" gorm:"not null;index"`
	Name           string                     `json:"name" gorm:"not null;size:100"`
	Email          string                     `json:"email" gorm:"not null;size:120;index"`
	Phone          *string                    `json:"phone" gorm:"size:20"`
	Address        *string                    `json:"address" gorm:"size:255"`
	Tags           datatypes.JSONSlice[string] `json:"tags"`
	Notes          *string                    `json:"notes" gorm:"type:text"`
	Status         string                     `json:"status" gorm:"default:'active';size:20"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

// TableName 表名
func (c *Customer) TableName() string {
	return "customers"
}

// 客户状态常量
const (
	CustomerStatusActive = "active"
)

// HasAllTags 客户是否包含全部指定标签
func (c *Customer) HasAllTags(tags []string) bool {
	owned := make(map[string]struct{}, len(c.Tags))
	for _, t := range c.Tags {
		owned[t] = struct{}{}
	}
	for _, t := range tags {
		if _, ok := owned[t]; !ok {
			return false
		}
	}
	return true
}
