package usecase

import (
	"context"
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

// BranchUseCase aplica reglas de negocio para sucursales, incluida la
// asignación de gerente.
type BranchUseCase struct {
	repo      repository.BranchRepository
	users     repository.UserRepository
	companies repository.CompanyRepository
	eval      *authz.Evaluator
	log       *logger.Logger
}

// NewBranchUseCase construye el caso de uso de sucursales.
func NewBranchUseCase(repo repository.BranchRepository, users repository.UserRepository, companies repository.CompanyRepository, eval *authz.Evaluator, log *logger.Logger) *BranchUseCase {
	return &BranchUseCase{repo: repo, users: users, companies: companies, eval: eval, log: log}
}

// Create crea una sucursal dentro de una empresa del alcance del llamador.
// La empresa debe estar configurada (tipo de negocio definido).
func (uc *BranchUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	d, err := uc.eval.Authorize(ctx, id, authz.ActionCreate, authz.KindBranch, &authz.ResourceTenancy{CompanyID: in.CompanyID})
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionCreate, authz.KindBranch, "", d))
		return nil, d.Err()
	}
	if err := requireConfiguredCompany(ctx, uc.companies, in.CompanyID); err != nil {
		return nil, err
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		CompanyID: in.CompanyID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return entityToBranchResponse(branch), nil
}

// GetByID obtiene una sucursal por ID si cae dentro del alcance del llamador.
func (uc *BranchUseCase) GetByID(ctx context.Context, id authz.Identity, branchID string) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, nil
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionRead, authz.KindBranch, branchTenancy(branch))
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionRead, authz.KindBranch, branchID, d))
		return nil, d.Err()
	}
	return entityToBranchResponse(branch), nil
}

// Update actualiza datos de la sucursal y, si llega manager_id, reasigna el
// gerente. El gerente debe ser una cuenta con rol manager de la misma
// empresa; manager_id vacío (cadena "") quita al gerente actual.
func (uc *BranchUseCase) Update(ctx context.Context, id authz.Identity, branchID string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := uc.repo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, nil
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionUpdate, authz.KindBranch, branchTenancy(branch))
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionUpdate, authz.KindBranch, branchID, d))
		return nil, d.Err()
	}
	if in.Name != "" {
		branch.Name = in.Name
	}
	if in.Address != "" {
		branch.Address = in.Address
	}
	if in.ManagerID != nil {
		if *in.ManagerID == "" {
			branch.ManagerID = nil
		} else {
			manager, err := uc.users.GetByID(ctx, *in.ManagerID)
			if err != nil {
				return nil, err
			}
			if manager == nil {
				return nil, fmt.Errorf("%w: gerente %s no existe", domain.ErrInvalidInput, *in.ManagerID)
			}
			if manager.Role != authz.RoleManager {
				return nil, fmt.Errorf("%w: el usuario %s no tiene rol manager", domain.ErrInvalidInput, manager.ID)
			}
			if manager.CompanyID != branch.CompanyID {
				return nil, fmt.Errorf("%w: el gerente pertenece a otra empresa", domain.ErrInvalidInput)
			}
			branch.ManagerID = in.ManagerID
		}
	}
	branch.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return entityToBranchResponse(branch), nil
}

// List lista las sucursales visibles según el predicado resuelto.
func (uc *BranchUseCase) List(ctx context.Context, id authz.Identity, limit, offset int) (*dto.BranchListResponse, error) {
	scope, err := uc.eval.Checker(id).Scope(ctx, authz.KindBranch)
	if err != nil {
		return nil, err
	}
	if scope.State == authz.ScopeNeedsOnboarding {
		return nil, domain.ErrNeedsOnboarding
	}
	page := dto.PageResponse{Limit: limit, Offset: offset}
	f, ok := repository.FilterFromScope(scope)
	if !ok {
		return &dto.BranchListResponse{Items: []dto.BranchResponse{}, Page: page, ScopeState: markerState(scope)}, nil
	}
	list, err := uc.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *entityToBranchResponse(b))
	}
	return &dto.BranchListResponse{Items: items, Page: page}, nil
}

func branchTenancy(b *entity.Branch) *authz.ResourceTenancy {
	return &authz.ResourceTenancy{CompanyID: b.CompanyID, BranchID: b.ID}
}

func entityToBranchResponse(b *entity.Branch) *dto.BranchResponse {
	if b == nil {
		return nil
	}
	resp := &dto.BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		Address:   b.Address,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.ManagerID != nil {
		resp.ManagerID = *b.ManagerID
	}
	return resp
}
