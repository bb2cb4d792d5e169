package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/usecase"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/pkg/jwt"
	"github.com/jhoicas/factory-api/pkg/logger"
	"github.com/jhoicas/factory-api/pkg/metrics"
	"github.com/jhoicas/factory-api/pkg/password"
)

// TokenType valor de token_type en la respuesta de login.
const TokenType = "bearer"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Limiter limita intentos de login por clave. Allow devuelve false si se superó el límite.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AuthUseCase casos de uso de autenticación: registro, login e identificación por token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	limiter  Limiter
	metrics  *metrics.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. limiter, m y log pueden ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, limiter Limiter, m *metrics.Metrics, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		limiter:  limiter,
		metrics:  m,
		log:      log.Named("auth"),
		now:      time.Now,
	}
}

// Register crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe (comparación exacta).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if !entity.IsValidRole(in.Role) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "role must be one of manager, producer, assembler, got %q", in.Role)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.ErrEmailAlreadyExists, "user with email %s already exists", in.Email)
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "password: %v", err)
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		IsActive:     true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return usecase.UserToResponse(user), nil
}

// Login verifica usuario/password, registra last_login y emite el token.
// clientKey identifica al cliente (IP) para el limitador.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, clientKey string) (*dto.TokenResponse, error) {
	if uc.limiter != nil {
		ok, err := uc.limiter.Allow(ctx, "login:"+in.Username+":"+clientKey)
		if err != nil {
			return nil, fmt.Errorf("login limiter: %w", err)
		}
		if !ok {
			uc.metrics.Login("limited")
			return nil, domain.Errorf(domain.ErrRateLimited, "too many login attempts, try again later")
		}
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(in.Password, user.PasswordHash) {
		uc.metrics.Login("invalid")
		return nil, domain.Errorf(domain.ErrUnauthorized, "incorrect username or password")
	}

	now := uc.now()
	user.LastLogin = entity.FormatLastLogin(now)
	user.IsActive = true
	user.UpdatedAt = now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.metrics.Login("ok")
	return &dto.TokenResponse{AccessToken: token, TokenType: TokenType}, nil
}

// Identify valida el token y devuelve el usuario al que pertenece.
func (uc *AuthUseCase) Identify(ctx context.Context, token string) (*entity.User, error) {
	email, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.Errorf(domain.ErrUnauthorized, "could not validate credentials")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Errorf(domain.ErrUnauthorized, "could not validate credentials")
	}
	return user, nil
}
