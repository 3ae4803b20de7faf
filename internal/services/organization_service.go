package services

import (
	"context"

	"ai4local/internal/models"
	"ai4local/internal/repository"
	"ai4local/pkg/errors"
)

type OrganizationService struct {
	orgs repository.OrganizationRepository
}

func NewOrganizationService(orgs repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{orgs: orgs}
}

// Create 创建组织，调用者即所有者
func (s *OrganizationService) Create(ctx context.Context, ownerID uint, input CreateOrganizationInput) (*models.Organization, error) {
	org := &models.Organization{
		Name:        input.Name,
		Description: input.Description,
		Website:     input.Website,
		Phone:       input.Phone,
		Address:     input.Address,
		Status:      models.OrganizationStatusActive,
		OwnerID:     ownerID,
	}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) FindByOwner(ctx context.Context, ownerID uint) ([]models.Organization, error) {
	return s.orgs.FindByOwner(ctx, ownerID)
}

func (s *OrganizationService) FindOne(ctx context.Context, id uint) (*models.Organization, error) {
	org, err := s.orgs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, errors.NotFound("Organization", id)
	}
	return org, nil
}

// Authorize 组织存在且属于该用户
func (s *OrganizationService) Authorize(ctx context.Context, orgID, userID uint) (*models.Organization, error) {
	org, err := s.FindOne(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org.OwnerID != userID {
		return nil, errors.Forbidden(errors.MsgOrganizationDenied)
	}
	return org, nil
}

func (s *OrganizationService) Update(ctx context.Context, id uint, input UpdateOrganizationInput) (*models.Organization, error) {
	org, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	input.Name.Apply(&org.Name)
	input.Description.ApplyPtr(&org.Description)
	input.Website.ApplyPtr(&org.Website)
	input.Phone.ApplyPtr(&org.Phone)
	input.Address.ApplyPtr(&org.Address)
	input.Status.Apply(&org.Status)

	if err := s.orgs.Save(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// Remove 组织下仍有客户或活动时拒绝删除
func (s *OrganizationService) Remove(ctx context.Context, id uint) (bool, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return false, err
	}

	children, err := s.orgs.CountChildren(ctx, id)
	if err != nil {
		return false, err
	}
	if children > 0 {
		return false, errors.Conflict(errors.MsgOrganizationInUse)
	}

	deleted, err := s.orgs.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, errors.NotFound("Organization", id)
	}
	return true, nil
}
