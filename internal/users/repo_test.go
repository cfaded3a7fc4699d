package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campusmart/storefront/pkg/db"
	"github.com/campusmart/storefront/pkg/db/dbtest"
	"github.com/campusmart/storefront/pkg/enums"
)

func TestRepositoryLifecycle(t *testing.T) {
	client := dbtest.NewSQLite(t, "users")
	repo := NewRepository(client.DB())
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, enums.RoleCustomer, created.Role)
	assert.True(t, created.IsActive)

	_, err = repo.Create(ctx, CreateUserDTO{Name: "Ada 2", Email: "ada@example.com", PasswordHash: "hash"})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))

	found, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, created.ID, at))
	require.NoError(t, repo.UpdateRole(ctx, created.ID, enums.RoleAdmin))

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.RoleAdmin, byID.Role)
	require.NotNil(t, byID.LastLoginAt)
	assert.True(t, at.Equal(byID.LastLoginAt.UTC()))

	dto := FromModel(byID)
	assert.Equal(t, "Ada", dto.Name)
	assert.Nil(t, FromModel(nil))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCreateKeepsInactiveFlag(t *testing.T) {
	client := dbtest.NewSQLite(t, "users_inactive")
	repo := NewRepository(client.DB())
	ctx := context.Background()

	inactive := false
	created, err := repo.Create(ctx, CreateUserDTO{Name: "Bola", Email: "bola@example.com", PasswordHash: "hash", IsActive: &inactive})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}
