package services

import (
	"context"
	"testing"

	"ai4local/internal/models"
	"ai4local/internal/repository"
	"ai4local/pkg/errors"
	"ai4local/pkg/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_CreateRequiresOrganization(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCustomerService(env.customers, env.orgs)

	_, err := svc.Create(context.Background(), CreateCustomerInput{OrganizationID: 999999, Name: "Koto", Email: "koto@example.mg"})
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.EqualError(t, err, "Organization with ID 999999 not found")
	assert.Zero(t, env.count(t, &models.Customer{}))
}

func TestCustomerService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	owner, org := env.seedOrganization(t, "owner@example.mg")
	svc := NewCustomerService(env.customers, env.orgs)
	ctx := context.Background()

	phone := "+261340000000"
	notes := "client fidèle"
	customer, err := svc.Create(ctx, CreateCustomerInput{
		OrganizationID: org.ID,
		Name:           "Koto",
		Email:          " koto@example.mg ",
		Phone:          &phone,
		Notes:          &notes,
		Tags:           []string{"vip", "vip", " tana"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.CustomerStatusActive, customer.Status)
	assert.Equal(t, "koto@example.mg", customer.Email)
	assert.Equal(t, []string{"vip", "tana"}, []string(customer.Tags))

	updated, err := svc.Update(ctx, customer.ID, UpdateCustomerInput{
		Name:  patch.Of("Koto R."),
		Notes: patch.Null[string](),
	})
	require.NoError(t, err)
	assert.Equal(t, "Koto R.", updated.Name)
	assert.Nil(t, updated.Notes)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	assert.Equal(t, []string{"vip", "tana"}, []string(updated.Tags))

	list, total, err := svc.FindAll(ctx, repository.CustomerFilter{OwnerID: owner.ID, Tags: []string{" tana "}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	_, _, err = svc.FindByOrganization(ctx, 999999, repository.CustomerFilter{})
	assert.ErrorIs(t, err, errors.ErrNotFound)

	ok, err := svc.Remove(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.FindOne(ctx, customer.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.EqualError(t, err, "Customer with ID 1 not found")
	_, err = svc.Remove(ctx, customer.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
