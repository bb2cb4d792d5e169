package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo         repository.UserRepository
	activeWindow time.Duration
	now          func() time.Time
}

// NewUserUseCase construye el caso de uso. activeWindow define cuándo un usuario cuenta como activo.
func NewUserUseCase(repo repository.UserRepository, activeWindow time.Duration) *UserUseCase {
	return &UserUseCase{repo: repo, activeWindow: activeWindow, now: time.Now}
}

// List lista usuarios recalculando is_active en cada fila.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	users, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		u.RecomputeActive(now, uc.activeWindow)
		items = append(items, *UserToResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Current devuelve el registro del usuario autenticado.
func (uc *UserUseCase) Current(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "user with id: %s not found", id)
	}
	return UserToResponse(user), nil
}

// Manage aplica un patch de manager. Si nada cambia devuelve el registro existente.
func (uc *UserUseCase) Manage(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil && *in.Role != "" && !entity.IsValidRole(*in.Role) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "role must be one of manager, producer, assembler, got %q", *in.Role)
	}
	if in.LastLogin != nil && *in.LastLogin != "" {
		if _, err := time.Parse(entity.LastLoginLayout, *in.LastLogin); err != nil {
			return nil, domain.Errorf(domain.ErrInvalidInput, "last_login must use format mm/dd/yy hh:mm:ss, got %q", *in.LastLogin)
		}
	}

	changed := false
	setString := func(dst *string, v *string) {
		if v != nil && *v != "" && *dst != *v {
			*dst = *v
			changed = true
		}
	}
	setString(&user.Email, in.Email)
	setString(&user.Name, in.Name)
	setString(&user.Role, in.Role)
	setString(&user.LastLogin, in.LastLogin)
	if in.IsActive != nil && user.IsActive != *in.IsActive {
		user.IsActive = *in.IsActive
		changed = true
	}
	if !changed {
		return UserToResponse(user), nil
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return UserToResponse(user), nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.Errorf(domain.ErrNotFound, "user with id: %s not found", id)
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.Errorf(domain.ErrNotFound, "user with id: %s not found", id)
	}
	return nil
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, domain.Errorf(domain.ErrNotFound, "user with id: %s not found", id)
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "user with id: %s not found", id)
	}
	return user, nil
}

// validID los ids son UUID; cualquier otro valor no puede existir.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// UserToResponse mapea la entidad a la salida pública (sin hash).
func UserToResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
