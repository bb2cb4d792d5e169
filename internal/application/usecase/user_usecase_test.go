package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/usecase"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/infrastructure/memory"
)

const (
	aliceID = "2b1f0f8e-8d43-4c1e-9a57-0c7a7b3c1a01"
	bobID   = "2b1f0f8e-8d43-4c1e-9a57-0c7a7b3c1a02"
	ghostID = "2b1f0f8e-8d43-4c1e-9a57-0c7a7b3c1aff"
)

func ptr[T any](v T) *T { return &v }

func seedUsers(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, s.Users().Create(ctx, &entity.User{
		ID: aliceID, Email: "alice@factory.io", Name: "Alice", Role: entity.RoleManager,
		IsActive: false, LastLogin: entity.FormatLastLogin(now.AddDate(0, 0, -10)),
	}))
	require.NoError(t, s.Users().Create(ctx, &entity.User{
		ID: bobID, Email: "bob@factory.io", Name: "Bob", Role: entity.RoleProducer,
		IsActive: true, LastLogin: entity.FormatLastLogin(now.AddDate(0, 0, -40)),
	}))
	return s
}

func TestUserUseCase_ListRecalculaActivo(t *testing.T) {
	s := seedUsers(t)
	require.NoError(t, s.Users().Create(context.Background(), &entity.User{
		ID: "legacy", Email: "old@factory.io", Role: entity.RoleAssembler, IsActive: true, LastLogin: "garbage",
	}))
	uc := usecase.NewUserUseCase(s.Users(), 30*24*time.Hour)

	out, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)

	active := map[string]bool{}
	for _, u := range out.Items {
		active[u.Email] = u.IsActive
	}
	assert.True(t, active["alice@factory.io"], "login hace 10 días")
	assert.False(t, active["bob@factory.io"], "login hace 40 días")
	assert.True(t, active["old@factory.io"], "last_login no parseable conserva el valor")
	assert.Equal(t, 100, out.Page.Limit)
}

func TestUserUseCase_Manage(t *testing.T) {
	s := seedUsers(t)
	uc := usecase.NewUserUseCase(s.Users(), 30*24*time.Hour)
	ctx := context.Background()

	out, err := uc.Manage(ctx, bobID, dto.UpdateUserRequest{Role: ptr("assembler"), Name: ptr("Robert")})
	require.NoError(t, err)
	assert.Equal(t, "assembler", out.Role)
	assert.Equal(t, "Robert", out.Name)

	stored, _ := s.Users().GetByID(ctx, bobID)
	assert.Equal(t, "assembler", stored.Role)

	// sin cambios devuelve el registro existente
	out, err = uc.Manage(ctx, bobID, dto.UpdateUserRequest{Name: ptr("Robert")})
	require.NoError(t, err)
	assert.Equal(t, "Robert", out.Name)

	out, err = uc.Manage(ctx, bobID, dto.UpdateUserRequest{})
	require.NoError(t, err)
	assert.Equal(t, bobID, out.ID)
}

func TestUserUseCase_ManageErrores(t *testing.T) {
	uc := usecase.NewUserUseCase(seedUsers(t).Users(), 30*24*time.Hour)
	ctx := context.Background()

	_, err := uc.Manage(ctx, ghostID, dto.UpdateUserRequest{Name: ptr("x")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.Manage(ctx, "not-a-uuid", dto.UpdateUserRequest{Name: ptr("x")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.Manage(ctx, bobID, dto.UpdateUserRequest{Role: ptr("admin")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Manage(ctx, bobID, dto.UpdateUserRequest{LastLogin: ptr("2024-01-01")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Manage(ctx, bobID, dto.UpdateUserRequest{Email: ptr("alice@factory.io")})
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestUserUseCase_Delete(t *testing.T) {
	uc := usecase.NewUserUseCase(seedUsers(t).Users(), 30*24*time.Hour)
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, bobID))
	assert.True(t, errors.Is(uc.Delete(ctx, bobID), domain.ErrNotFound))
	assert.True(t, errors.Is(uc.Delete(ctx, "nope"), domain.ErrNotFound))
}

func TestUserUseCase_Current(t *testing.T) {
	uc := usecase.NewUserUseCase(seedUsers(t).Users(), 30*24*time.Hour)

	out, err := uc.Current(context.Background(), aliceID)
	require.NoError(t, err)
	assert.Equal(t, "alice@factory.io", out.Email)

	_, err = uc.Current(context.Background(), ghostID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
