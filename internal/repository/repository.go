// Package repository 持久化层，查不到记录时返回 (nil, nil)
package repository

import (
	"errors"

	"ai4local/internal/models"
	"ai4local/pkg/pagination"

	"gorm.io/gorm"
)

// ListOptions 列表查询的分页参数，PageSize 为 0 时不分页
type ListOptions struct {
	Page     int
	PageSize int
}

func (o ListOptions) apply(q *gorm.DB) *gorm.DB {
	if o.PageSize <= 0 {
		return q
	}
	p := pagination.Normalize(o.Page, o.PageSize)
	return q.Offset(p.GetOffset()).Limit(p.GetLimit())
}

// 统一处理 First 的未找到
func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// ownedOrganizations 某用户名下的组织ID子查询
func ownedOrganizations(db *gorm.DB, ownerID uint) *gorm.DB {
	return db.Table("organizations").Select("id").Where("owner_id = ?", ownerID)
}

// slice 对已在内存中的结果分页
func (o ListOptions) slice(items []models.Customer) []models.Customer {
	if o.PageSize <= 0 {
		return items
	}
	p := pagination.Normalize(o.Page, o.PageSize)
	start := p.GetOffset()
	if start >= len(items) {
		return []models.Customer{}
	}
	end := start + p.GetLimit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
