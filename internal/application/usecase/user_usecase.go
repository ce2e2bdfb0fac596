package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para el directorio de usuarios.
// Eliminar un usuario no toca sus ventas ni gastos. Los snapshots resuelven
// nombres de vendedores, por eso altas y bajas invalidan el caché.
type UserUseCase struct {
	repo  repository.UserRepository
	cache inventory.CacheInvalidator
	log   zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia. cache puede ser nil.
func NewUserUseCase(repo repository.UserRepository, cache inventory.CacheInvalidator, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, cache: cache, log: log}
}

// Create da de alta un usuario. Email único (sin distinguir mayúsculas).
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if _, err := mail.ParseAddress(email); err != nil || name == "" || !entity.IsValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Role:      in.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// GetByEmail obtiene un usuario por email (usado por `ledgerctl token`).
func (uc *UserUseCase) GetByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// List lista el directorio.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

// Delete elimina un usuario; sus ventas y gastos quedan con referencia "Unknown".
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("user_id", id).Msg("usuario eliminado")
	return nil
}

func (uc *UserUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el caché de snapshots")
	}
}
