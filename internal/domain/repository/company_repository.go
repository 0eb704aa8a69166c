package repository

import (
	"context"

	"github.com/jhoicas/FarmaPOS-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	// List lista las empresas visibles según el filtro de alcance.
	List(ctx context.Context, f ScopeFilter, limit, offset int) ([]*entity.Company, error)
}
