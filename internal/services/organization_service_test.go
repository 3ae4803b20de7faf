package services

import (
	"context"
	"testing"

	"ai4local/internal/models"
	"ai4local/pkg/errors"
	"ai4local/pkg/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizationService_CRUD(t *testing.T) {
	env := newTestEnv(t)
	svc := NewOrganizationService(env.orgs)
	owner, _ := env.seedOrganization(t, "owner@example.mg")
	ctx := context.Background()

	website := "https://boutique.mg"
	org, err := svc.Create(ctx, owner.ID, CreateOrganizationInput{Name: "Boutique", Website: &website})
	require.NoError(t, err)
	assert.Equal(t, models.OrganizationStatusActive, org.Status)
	assert.Equal(t, owner.ID, org.OwnerID)

	orgs, err := svc.FindByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, orgs, 2)

	updated, err := svc.Update(ctx, org.ID, UpdateOrganizationInput{Website: patch.Null[string](), Name: patch.Of("Boutique Tana")})
	require.NoError(t, err)
	assert.Nil(t, updated.Website)
	assert.Equal(t, "Boutique Tana", updated.Name)

	ok, err := svc.Remove(ctx, org.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.FindOne(ctx, org.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestOrganizationService_RemoveRestrictsWithChildren(t *testing.T) {
	env := newTestEnv(t)
	svc := NewOrganizationService(env.orgs)
	_, org := env.seedOrganization(t, "owner@example.mg")
	ctx := context.Background()

	campaign := &models.Campaign{OrganizationID: org.ID, Name: "c", Type: "sms", Status: models.CampaignStatusDraft}
	require.NoError(t, env.campaigns.Create(ctx, campaign))

	_, err := svc.Remove(ctx, org.ID)
	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.EqualError(t, err, errors.MsgOrganizationInUse)
	assert.Equal(t, int64(1), env.count(t, &models.Organization{}))

	_, err = env.campaigns.Delete(ctx, campaign.ID)
	require.NoError(t, err)
	ok, err := svc.Remove(ctx, org.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOrganizationService_Authorize(t *testing.T) {
	env := newTestEnv(t)
	svc := NewOrganizationService(env.orgs)
	owner, org := env.seedOrganization(t, "owner@example.mg")
	intruder, _ := env.seedOrganization(t, "intruder@example.mg")
	ctx := context.Background()

	got, err := svc.Authorize(ctx, org.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, org.ID, got.ID)

	_, err = svc.Authorize(ctx, org.ID, intruder.ID)
	assert.ErrorIs(t, err, errors.ErrForbidden)

	_, err = svc.Authorize(ctx, 999999, owner.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
