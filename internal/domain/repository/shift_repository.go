package repository

import (
	"context"

	"github.com/jhoicas/FarmaPOS-api/internal/domain/entity"
)

// ShiftRepository define el puerto de persistencia para Shift (DIP).
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id string) (*entity.Shift, error)
	Update(ctx context.Context, shift *entity.Shift) error
	List(ctx context.Context, f ScopeFilter, limit, offset int) ([]*entity.Shift, error)
	Delete(ctx context.Context, id string) error
}
