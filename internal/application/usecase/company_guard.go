package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/repository"
)

// requireConfiguredCompany corta las escrituras operativas (sucursales,
// cuentas, turnos, ventas) sobre empresas que aún no definieron su tipo de
// negocio. Hasta configurarse, una empresa solo admite su propia edición.
func requireConfiguredCompany(ctx context.Context, companies repository.CompanyRepository, companyID string) error {
	company, err := companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
	}
	if !company.Configured() {
		return fmt.Errorf("%w: defina el tipo de negocio antes de operar", domain.ErrCompanyNotConfigured)
	}
	return nil
}
