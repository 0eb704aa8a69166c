package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/FarmaPOS-api/internal/application/dto"
	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/entity"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/repository"
	"github.com/jhoicas/FarmaPOS-api/pkg/logger"
)

// SaleUseCase aplica reglas de negocio para ventas. Las ventas no son
// autoasignables: cualquier cajero de la sucursal las ve todas.
type SaleUseCase struct {
	repo      repository.SaleRepository
	shifts    repository.ShiftRepository
	companies repository.CompanyRepository
	graph     authz.TenancyGraph
	eval      *authz.Evaluator
	log       *logger.Logger
}

// NewSaleUseCase construye el caso de uso de ventas.
func NewSaleUseCase(repo repository.SaleRepository, shifts repository.ShiftRepository, companies repository.CompanyRepository, graph authz.TenancyGraph, eval *authz.Evaluator, log *logger.Logger) *SaleUseCase {
	return &SaleUseCase{repo: repo, shifts: shifts, companies: companies, graph: graph, eval: eval, log: log}
}

// Create registra una venta en una sucursal del alcance del llamador. Si
// llega shift_id debe ser un turno abierto de esa misma sucursal.
func (uc *SaleUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.Total.IsNegative() {
		return nil, fmt.Errorf("%w: total negativo", domain.ErrInvalidInput)
	}
	companyID, err := uc.graph.CompanyOfBranch(ctx, in.BranchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: la sucursal %s no existe", domain.ErrInvalidInput, in.BranchID)
		}
		return nil, err
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionCreate, authz.KindSale, &authz.ResourceTenancy{CompanyID: companyID, BranchID: in.BranchID})
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionCreate, authz.KindSale, "", d))
		return nil, d.Err()
	}
	if err := requireConfiguredCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		BranchID:  in.BranchID,
		Total:     in.Total,
		CreatedBy: id.UserID,
		CreatedAt: time.Now(),
	}
	if in.ShiftID != "" {
		shift, err := uc.shifts.GetByID(ctx, in.ShiftID)
		if err != nil {
			return nil, err
		}
		if shift == nil || shift.BranchID != in.BranchID {
			return nil, fmt.Errorf("%w: turno %s inválido para la sucursal", domain.ErrInvalidInput, in.ShiftID)
		}
		if shift.Status != entity.ShiftStatusOpen {
			return nil, fmt.Errorf("%w: el turno no está abierto", domain.ErrConflict)
		}
		sid := in.ShiftID
		sale.ShiftID = &sid
	}
	if err := uc.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return entityToSaleResponse(sale), nil
}

// GetByID obtiene una venta si cae dentro del alcance del llamador.
func (uc *SaleUseCase) GetByID(ctx context.Context, id authz.Identity, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	companyID, err := uc.graph.CompanyOfBranch(ctx, sale.BranchID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionRead, authz.KindSale, &authz.ResourceTenancy{CompanyID: companyID, BranchID: sale.BranchID})
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionRead, authz.KindSale, saleID, d))
		return nil, d.Err()
	}
	return entityToSaleResponse(sale), nil
}

// List lista las ventas visibles según el predicado resuelto.
func (uc *SaleUseCase) List(ctx context.Context, id authz.Identity, limit, offset int) (*dto.SaleListResponse, error) {
	scope, err := uc.eval.Checker(id).Scope(ctx, authz.KindSale)
	if err != nil {
		return nil, err
	}
	if scope.State == authz.ScopeNeedsOnboarding {
		return nil, domain.ErrNeedsOnboarding
	}
	page := dto.PageResponse{Limit: limit, Offset: offset}
	f, ok := repository.FilterFromScope(scope)
	if !ok {
		return &dto.SaleListResponse{Items: []dto.SaleResponse{}, Page: page, ScopeState: markerState(scope)}, nil
	}
	list, err := uc.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *entityToSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: page}, nil
}

func entityToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	resp := &dto.SaleResponse{
		ID:        s.ID,
		BranchID:  s.BranchID,
		Total:     s.Total,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
	}
	if s.ShiftID != nil {
		resp.ShiftID = *s.ShiftID
	}
	return resp
}
