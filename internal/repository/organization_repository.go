package repository

import (
	"context"

	"ai4local/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	FindByID(ctx context.Context, id uint) (*models.Organization, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]models.Organization, error)
	Save(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, id uint) (bool, error)
	CountChildren(ctx context.Context, id uint) (int64, error)
}

type GormOrganizationRepository struct {
	db *gorm.DB
}

func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

func (r *GormOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uint) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &org, nil
}

func (r *GormOrganizationRepository) FindByOwner(ctx context.Context, ownerID uint) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id ASC").Find(&orgs).Error
	return orgs, err
}

func (r *GormOrganizationRepository) Save(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(org).Error
}

// Delete 返回是否删除了记录
func (r *GormOrganizationRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Organization{}, id)
	return result.RowsAffected > 0, result.Error
}

// CountChildren 组织下客户与活动的总数
func (r *GormOrganizationRepository) CountChildren(ctx context.Context, id uint) (int64, error) {
	var customers, campaigns int64
	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("organization_id = ?", id).Count(&customers).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Campaign{}).Where("organization_id = ?", id).Count(&campaigns).Error; err != nil {
		return 0, err
	}
	return customers + campaigns, nil
}
