package repository

import (
	"context"

	"github.com/jhoicas/FarmaPOS-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, f ScopeFilter, limit, offset int) ([]*entity.User, error)
	// Delete elimina un solo usuario; no cascadea (los recursos conservan
	// referencias colgantes seguras y dejan de ser asignables).
	Delete(ctx context.Context, id string) error
}
