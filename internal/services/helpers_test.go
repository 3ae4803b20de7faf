package services

import (
	"context"
	"testing"

	"ai4local/internal/database"
	"ai4local/internal/models"
	"ai4local/internal/repository"
	"ai4local/pkg/config"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	users     *repository.GormUserRepository
	orgs      *repository.GormOrganizationRepository
	customers *repository.GormCustomerRepository
	campaigns *repository.GormCampaignRepository
	log       *logrus.Logger
	hook      *test.Hook
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}, "warn")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log, hook := test.NewNullLogger()
	return &testEnv{
		db:        db,
		users:     repository.NewGormUserRepository(db),
		orgs:      repository.NewGormOrganizationRepository(db),
		customers: repository.NewGormCustomerRepository(db),
		campaigns: repository.NewGormCampaignRepository(db),
		log:       log,
		hook:      hook,
	}
}

// seedOrganization 创建一个用户及其名下组织
func (e *testEnv) seedOrganization(t *testing.T, email string) (*models.User, *models.Organization) {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hash", FirstName: "Fara", LastName: "Rabe"}
	require.NoError(t, e.db.Create(user).Error)
	org := &models.Organization{Name: "Org", OwnerID: user.ID, Status: models.OrganizationStatusActive}
	require.NoError(t, e.db.Create(org).Error)
	return user, org
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, maxTokens)
	return args.String(0), args.Error(1)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) GenerateToken(userID uint, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
