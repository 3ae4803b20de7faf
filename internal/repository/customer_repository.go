package repository

import (
	"context"
	"strings"

	"ai4local/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerFilter 客户列表过滤条件，零值字段不参与过滤
type CustomerFilter struct {
	OrganizationID uint
	OwnerID        uint
	Search         string
	Tags           []string // 必须全部包含
	ListOptions
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]models.Customer, int64, error)
	Save(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(customer).Error
}

func (r *GormCustomerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &customer, nil
}

// List 标签为 JSON 列，标签过滤在内存中完成后再分页
func (r *GormCustomerRepository) List(ctx context.Context, filter CustomerFilter) ([]models.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Customer{})

	if filter.OrganizationID != 0 {
		query = query.Where("organization_id = ?", filter.OrganizationID)
	}
	if filter.OwnerID != 0 {
		query = query.Where("organization_id IN (?)", ownedOrganizations(r.db, filter.OwnerID))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}
	query = query.Order("id ASC")

	if len(filter.Tags) == 0 {
		var total int64
		if err := query.Count(&total).Error; err != nil {
			return nil, 0, err
		}
		var customers []models.Customer
		if err := filter.apply(query).Find(&customers).Error; err != nil {
			return nil, 0, err
		}
		return customers, total, nil
	}

	var all []models.Customer
	if err := query.Find(&all).Error; err != nil {
		return nil, 0, err
	}
	matched := make([]models.Customer, 0, len(all))
	for _, c := range all {
		if c.HasAllTags(filter.Tags) {
			matched = append(matched, c)
		}
	}
	return filter.slice(matched), int64(len(matched)), nil
}

func (r *GormCustomerRepository) Save(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(customer).Error
}

func (r *GormCustomerRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Customer{}, id)
	return result.RowsAffected > 0, result.Error
}
