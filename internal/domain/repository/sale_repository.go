package repository

import (
	"context"

	"github.com/jhoicas/FarmaPOS-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, f ScopeFilter, limit, offset int) ([]*entity.Sale, error)
}
