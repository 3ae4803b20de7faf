package database

import (
	"testing"

	"ai4local/internal/models"
	"ai4local/pkg/config"
	"ai4local/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpen_SQLiteMigrate(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}, "info")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"users", "organizations", "customers", "campaigns"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	u := &models.User{Email: "dup@example.mg", FirstName: "A", LastName: "B", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	err = db.Create(&models.User{Email: "dup@example.mg", FirstName: "C", LastName: "D", PasswordHash: "y"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, "info")
	assert.Error(t, err)
}

func TestNewDispatchQueue(t *testing.T) {
	q := NewDispatchQueue(&config.RedisConfig{Enabled: false})
	_, ok := q.(*queue.MemoryQueue)
	assert.True(t, ok)

	q = NewDispatchQueue(&config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 6379})
	defer q.Close()
	_, ok = q.(*queue.RedisQueue)
	assert.True(t, ok)
}
