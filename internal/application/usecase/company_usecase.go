package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/FarmaPOS-api/internal/application/dto"
	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/entity"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/repository"
	"github.com/jhoicas/FarmaPOS-api/pkg/logger"
)

// CompanyUseCase aplica reglas de negocio para empresas. Toda operación pasa
// por el evaluador de políticas antes de tocar persistencia.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	eval     *authz.Evaluator
	planner  *authz.Planner
	executor authz.PlanExecutor
	log      *logger.Logger
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia,
// el motor de autorización y el ejecutor de planes de borrado.
func NewCompanyUseCase(repo repository.CompanyRepository, eval *authz.Evaluator, planner *authz.Planner, executor authz.PlanExecutor, log *logger.Logger) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, eval: eval, planner: planner, executor: executor, log: log}
}

// Create crea una empresa propiedad del admin autenticado. Es la operación de
// onboarding: un admin sin empresa la invoca para salir del estado
// needs_onboarding. Solo el rol admin puede crear empresas; el dueño es
// siempre quien crea.
func (uc *CompanyUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if id.Role != authz.RoleAdmin {
		d := authz.Deny(authz.ReasonOutOfScope)
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionCreate, authz.KindCompany, "", d))
		return nil, d.Err()
	}
	now := time.Now()
	company := &entity.Company{
		ID:           uuid.New().String(),
		Name:         in.Name,
		OwnerAdminID: id.UserID,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.BusinessType != "" {
		bt := in.BusinessType
		company.BusinessType = &bt
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID si está dentro del alcance del llamador.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id authz.Identity, companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionRead, authz.KindCompany, &authz.ResourceTenancy{CompanyID: company.ID})
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionRead, authz.KindCompany, companyID, d))
		return nil, d.Err()
	}
	return entityToCompanyResponse(company), nil
}

// Update actualiza nombre y tipo de negocio. Completar el tipo de negocio es
// el segundo paso del onboarding; el dueño nunca cambia por esta vía.
func (uc *CompanyUseCase) Update(ctx context.Context, id authz.Identity, companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionUpdate, authz.KindCompany, &authz.ResourceTenancy{CompanyID: company.ID})
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionUpdate, authz.KindCompany, companyID, d))
		return nil, d.Err()
	}
	if in.Name != "" {
		company.Name = in.Name
	}
	if in.BusinessType != "" {
		bt := in.BusinessType
		company.BusinessType = &bt
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista las empresas visibles según el predicado resuelto. Un admin sin
// empresa propia recibe domain.ErrNeedsOnboarding en lugar de lista vacía:
// el cliente debe redirigir a crear empresa, no mostrar "sin resultados".
func (uc *CompanyUseCase) List(ctx context.Context, id authz.Identity, limit, offset int) (*dto.CompanyListResponse, error) {
	scope, err := uc.eval.Checker(id).Scope(ctx, authz.KindCompany)
	if err != nil {
		return nil, err
	}
	if scope.State == authz.ScopeNeedsOnboarding {
		return nil, domain.ErrNeedsOnboarding
	}
	page := dto.PageResponse{Limit: limit, Offset: offset}
	f, ok := repository.FilterFromScope(scope)
	if !ok {
		return &dto.CompanyListResponse{Items: []dto.CompanyResponse{}, Page: page, ScopeState: markerState(scope)}, nil
	}
	list, err := uc.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items, Page: page}, nil
}

// Delete elimina una empresa y todo su contenido en cascada: ventas, turnos,
// lotes, productos, clientes, usuarios, sucursales y finalmente la empresa,
// en ese orden y dentro de una sola transacción. El dueño (admin) no se borra.
func (uc *CompanyUseCase) Delete(ctx context.Context, id authz.Identity, companyID string) error {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionDelete, authz.KindCompany, &authz.ResourceTenancy{CompanyID: company.ID})
	if err != nil {
		return err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionDelete, authz.KindCompany, companyID, d))
		return d.Err()
	}
	steps, err := uc.planner.PlanDeletion(ctx, authz.KindCompany, companyID)
	if err != nil {
		return err
	}
	auditPlan(uc.log, id, authz.KindCompany, companyID, steps)
	return uc.executor.ApplyDeletionPlan(ctx, steps)
}

// markerState devuelve el estado del predicado cuando es un marcador no-error
// que el cliente debe distinguir de una lista vacía normal.
func markerState(s authz.Scope) string {
	if s.State == authz.ScopeUnassigned {
		return string(s.State)
	}
	return ""
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	resp := &dto.CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		OwnerAdminID: c.OwnerAdminID,
		Configured:   c.Configured(),
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.BusinessType != nil {
		resp.BusinessType = *c.BusinessType
	}
	return resp
}
