package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-rest-service/internal/domain/user"
	apperrors "user-rest-service/pkg/errors"
)

func setupTestRepo(t *testing.T) *UserRepo {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	return NewUserRepo(db, zaptest.NewLogger(t))
}

func TestUserRepo_CreateAndGetByID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &user.User{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@example.com", got.Email)
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &user.User{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &user.User{Name: "Other Ana", Email: "ana@example.com"})
	require.Error(t, err)

	var existsErr *apperrors.AlreadyExistsError
	require.True(t, errors.As(err, &existsErr))
	assert.Equal(t, "email already registered", err.Error())

	// Only the first insert landed.
	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetByID(context.Background(), 42)
	require.Error(t, err)

	var notFoundErr *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
}

func TestUserRepo_List_Empty(t *testing.T) {
	repo := setupTestRepo(t)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepo_List_InsertionOrder(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, u := range []user.User{
		{Name: "Ana", Email: "ana@example.com"},
		{Name: "Bruno", Email: "bruno@example.com"},
		{Name: "Carla", Email: "carla@example.com"},
	} {
		_, err := repo.Create(ctx, &user.User{Name: u.Name, Email: u.Email})
		require.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Ana", users[0].Name)
	assert.Equal(t, "Bruno", users[1].Name)
	assert.Equal(t, "Carla", users[2].Name)
	assert.Less(t, users[0].ID, users[1].ID)
	assert.Less(t, users[1].ID, users[2].ID)
}

func TestUserRepo_Update(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &user.User{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	err = repo.Update(ctx, &user.User{ID: id, Name: "Ana B", Email: "anab@example.com"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana B", got.Name)
	assert.Equal(t, "anab@example.com", got.Email)
}

func TestUserRepo_Update_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.Update(context.Background(), &user.User{ID: 42, Name: "Ghost", Email: "ghost@example.com"})
	require.Error(t, err)

	var notFoundErr *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
}

func TestUserRepo_Update_DuplicateEmail(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &user.User{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	id, err := repo.Create(ctx, &user.User{Name: "Bruno", Email: "bruno@example.com"})
	require.NoError(t, err)

	err = repo.Update(ctx, &user.User{ID: id, Name: "Bruno", Email: "ana@example.com"})
	require.Error(t, err)

	var existsErr *apperrors.AlreadyExistsError
	assert.True(t, errors.As(err, &existsErr))
}

func TestUserRepo_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &user.User{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.GetByID(ctx, id)
	var notFoundErr *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))

	// Deleting the same id again reports not found.
	err = repo.Delete(ctx, id)
	assert.True(t, errors.As(err, &notFoundErr))
}
