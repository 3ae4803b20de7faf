package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_PasswordHashing(t *testing.T) {
	password := "s3cret-pass"

	a := &User{}
	require.NoError(t, a.SetPassword(password))
	b := &User{}
	require.NoError(t, b.SetPassword(password))

	assert.NotEqual(t, password, a.PasswordHash)
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash, "hashes must be salted")
	assert.True(t, a.CheckPassword(password))
	assert.True(t, b.CheckPassword(password))
	assert.False(t, a.CheckPassword("wrong-pass"))
}

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	u := &User{Email: "a@example.mg", FirstName: "Hery"}
	require.NoError(t, u.SetPassword("s3cret-pass"))

	out, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(out), u.PasswordHash)
	assert.NotContains(t, string(out), "password")
}

func TestCanTransitionCampaign(t *testing.T) {
	allowed := [][2]string{
		{CampaignStatusDraft, CampaignStatusScheduled},
		{CampaignStatusScheduled, CampaignStatusSent},
		{CampaignStatusDraft, CampaignStatusCancelled},
		{CampaignStatusScheduled, CampaignStatusCancelled},
		{CampaignStatusSent, CampaignStatusSent},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransitionCampaign(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]string{
		{CampaignStatusSent, CampaignStatusDraft},
		{CampaignStatusCancelled, CampaignStatusScheduled},
		{CampaignStatusDraft, CampaignStatusSent},
		{CampaignStatusDraft, "archived"},
	}
	for _, tr := range denied {
		assert.False(t, CanTransitionCampaign(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestCustomer_HasAllTags(t *testing.T) {
	c := &Customer{Tags: []string{"vip", "tana", "sms"}}

	assert.True(t, c.HasAllTags(nil))
	assert.True(t, c.HasAllTags([]string{"sms", "vip"}))
	assert.False(t, c.HasAllTags([]string{"vip", "majunga"}))
}
