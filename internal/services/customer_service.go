package services

import (
	"context"
	"strings"

	"ai4local/internal/models"
	"ai4local/internal/repository"
	"ai4local/pkg/errors"
)

type CustomerService struct {
	customers repository.CustomerRepository
	orgs      repository.OrganizationRepository
}

func NewCustomerService(customers repository.CustomerRepository, orgs repository.OrganizationRepository) *CustomerService {
	return &CustomerService{
		customers: customers,
		orgs:      orgs,
	}
}

func (s *CustomerService) FindAll(ctx context.Context, filter repository.CustomerFilter) ([]models.Customer, int64, error) {
	filter.Tags = NormalizeTags(filter.Tags)
	return s.customers.List(ctx, filter)
}

func (s *CustomerService) FindByOrganization(ctx context.Context, orgID uint, filter repository.CustomerFilter) ([]models.Customer, int64, error) {
	if err := s.requireOrganization(ctx, orgID); err != nil {
		return nil, 0, err
	}
	filter.OrganizationID = orgID
	return s.FindAll(ctx, filter)
}

func (s *CustomerService) FindOne(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.NotFound("Customer", id)
	}
	return customer, nil
}

// Create 写库前校验组织存在
func (s *CustomerService) Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, error) {
	if err := s.requireOrganization(ctx, input.OrganizationID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.CustomerStatusActive
	}

	customer := &models.Customer{
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Email:          strings.TrimSpace(input.Email),
		Phone:          input.Phone,
		Address:        input.Address,
		Tags:           NormalizeTags(input.Tags),
		Notes:          input.Notes,
		Status:         status,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	input.Name.Apply(&customer.Name)
	if input.Email.Valid {
		customer.Email = strings.TrimSpace(input.Email.Value)
	}
	input.Phone.ApplyPtr(&customer.Phone)
	input.Address.ApplyPtr(&customer.Address)
	if input.Tags.Set {
		customer.Tags = NormalizeTags(input.Tags.Value)
	}
	input.Notes.ApplyPtr(&customer.Notes)
	input.Status.Apply(&customer.Status)

	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Remove(ctx context.Context, id uint) (bool, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return false, err
	}
	deleted, err := s.customers.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, errors.NotFound("Customer", id)
	}
	return true, nil
}

func (s *CustomerService) requireOrganization(ctx context.Context, orgID uint) error {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org == nil {
		return errors.NotFound("Organization", orgID)
	}
	return nil
}
