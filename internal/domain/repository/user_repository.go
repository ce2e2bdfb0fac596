package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

//go:generate mockgen -source=user_repository.go -destination=mock/user_repository_mock.go -package=mock

// UserRepository define el puerto del directorio de usuarios (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
