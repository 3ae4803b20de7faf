package repository

import (
	"context"
	"time"

	"ai4local/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CampaignFilter 活动列表过滤条件，零值字段不参与过滤
type CampaignFilter struct {
	OrganizationID uint
	OwnerID        uint
	Status         string
	Type           string
	ListOptions
}

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByID(ctx context.Context, id uint) (*models.Campaign, error)
	List(ctx context.Context, filter CampaignFilter) ([]models.Campaign, int64, error)
	Save(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, id uint) (bool, error)
	FindDue(ctx context.Context, now time.Time, limit int) ([]models.Campaign, error)
	ClaimScheduled(ctx context.Context, id uint, sentAt time.Time) (bool, error)
	RevertClaim(ctx context.Context, id uint) error
}

type GormCampaignRepository struct {
	db *gorm.DB
}

func NewGormCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

func (r *GormCampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(campaign).Error
}

func (r *GormCampaignRepository) FindByID(ctx context.Context, id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.WithContext(ctx).First(&campaign, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &campaign, nil
}

func (r *GormCampaignRepository) List(ctx context.Context, filter CampaignFilter) ([]models.Campaign, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Campaign{})

	if filter.OrganizationID != 0 {
		query = query.Where("organization_id = ?", filter.OrganizationID)
	}
	if filter.OwnerID != 0 {
		query = query.Where("organization_id IN (?)", ownedOrganizations(r.db, filter.OwnerID))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []models.Campaign
	if err := filter.apply(query.Order("created_at DESC, id DESC")).Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// Save 整行写回，并发更新为后写者胜
func (r *GormCampaignRepository) Save(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(campaign).Error
}

func (r *GormCampaignRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Campaign{}, id)
	return result.RowsAffected > 0, result.Error
}

// FindDue 到期待发送的活动
func (r *GormCampaignRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	query := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", models.CampaignStatusScheduled, now).
		Order("scheduled_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&campaigns).Error
	return campaigns, err
}

// ClaimScheduled 条件更新 scheduled -> sent，多实例下只有一个能抢到
func (r *GormCampaignRepository) ClaimScheduled(ctx context.Context, id uint, sentAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ? AND status = ?", id, models.CampaignStatusScheduled).
		Updates(map[string]interface{}{
			"status":  models.CampaignStatusSent,
			"sent_at": sentAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// RevertClaim 入队失败时回滚为 scheduled
func (r *GormCampaignRepository) RevertClaim(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ? AND status = ?", id, models.CampaignStatusSent).
		Updates(map[string]interface{}{
			"status":  models.CampaignStatusScheduled,
			"sent_at": nil,
		}).Error
}
