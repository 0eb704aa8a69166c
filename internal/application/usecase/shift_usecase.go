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

// ShiftUseCase aplica reglas de negocio para turnos de caja. Los turnos son
// el único recurso autoasignable: cajeros y farmacéuticos solo ven turnos de
// su sucursal donde además aparecen asignados.
type ShiftUseCase struct {
	repo      repository.ShiftRepository
	companies repository.CompanyRepository
	graph     authz.TenancyGraph
	eval      *authz.Evaluator
	log       *logger.Logger
}

// NewShiftUseCase construye el caso de uso de turnos.
func NewShiftUseCase(repo repository.ShiftRepository, companies repository.CompanyRepository, graph authz.TenancyGraph, eval *authz.Evaluator, log *logger.Logger) *ShiftUseCase {
	return &ShiftUseCase{repo: repo, companies: companies, graph: graph, eval: eval, log: log}
}

// Create abre un turno programado en una sucursal del alcance del llamador.
func (uc *ShiftUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	if !in.EndsAt.After(in.StartsAt) {
		return nil, fmt.Errorf("%w: el turno termina antes de empezar", domain.ErrInvalidInput)
	}
	tenancy, err := uc.shiftTenancyForBranch(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionCreate, authz.KindShift, tenancy)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionCreate, authz.KindShift, "", d))
		return nil, d.Err()
	}
	if err := requireConfiguredCompany(ctx, uc.companies, tenancy.CompanyID); err != nil {
		return nil, err
	}
	now := time.Now()
	shift := &entity.Shift{
		ID:              uuid.New().String(),
		BranchID:        in.BranchID,
		AssignedUserIDs: in.AssignedUserIDs,
		StartsAt:        in.StartsAt,
		EndsAt:          in.EndsAt,
		Status:          entity.ShiftStatusScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, shift); err != nil {
		return nil, err
	}
	return entityToShiftResponse(shift), nil
}

// GetByID obtiene un turno si cae dentro del alcance del llamador. Para
// personal de sucursal el alcance incluye la condición de asignación.
func (uc *ShiftUseCase) GetByID(ctx context.Context, id authz.Identity, shiftID string) (*dto.ShiftResponse, error) {
	shift, err := uc.repo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, nil
	}
	tenancy, err := uc.shiftTenancy(ctx, shift)
	if err != nil {
		return nil, err
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionRead, authz.KindShift, tenancy)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionRead, authz.KindShift, shiftID, d))
		return nil, d.Err()
	}
	return entityToShiftResponse(shift), nil
}

// Update reasigna personal o cambia el estado del turno (scheduled → open →
// closed). Reasignar a un usuario inexistente no es error aquí: la
// referencia colgante simplemente no da visibilidad a nadie.
func (uc *ShiftUseCase) Update(ctx context.Context, id authz.Identity, shiftID string, in dto.UpdateShiftRequest) (*dto.ShiftResponse, error) {
	shift, err := uc.repo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, nil
	}
	tenancy, err := uc.shiftTenancy(ctx, shift)
	if err != nil {
		return nil, err
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionUpdate, authz.KindShift, tenancy)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionUpdate, authz.KindShift, shiftID, d))
		return nil, d.Err()
	}
	if in.AssignedUserIDs != nil {
		shift.AssignedUserIDs = in.AssignedUserIDs
	}
	if in.Status != "" {
		if shift.Status == entity.ShiftStatusClosed {
			return nil, fmt.Errorf("%w: el turno ya está cerrado", domain.ErrConflict)
		}
		shift.Status = in.Status
	}
	shift.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, shift); err != nil {
		return nil, err
	}
	return entityToShiftResponse(shift), nil
}

// Delete elimina un turno. No arrastra ventas: las ventas asociadas conservan
// su shift_id colgante, la cascada solo existe al borrar empresas o admins.
func (uc *ShiftUseCase) Delete(ctx context.Context, id authz.Identity, shiftID string) error {
	shift, err := uc.repo.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if shift == nil {
		return domain.ErrNotFound
	}
	tenancy, err := uc.shiftTenancy(ctx, shift)
	if err != nil {
		return err
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionDelete, authz.KindShift, tenancy)
	if err != nil {
		return err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionDelete, authz.KindShift, shiftID, d))
		return d.Err()
	}
	return uc.repo.Delete(ctx, shiftID)
}

// List lista los turnos visibles. Para cajeros y farmacéuticos el filtro
// incluye la pertenencia al arreglo de asignados del turno.
func (uc *ShiftUseCase) List(ctx context.Context, id authz.Identity, limit, offset int) (*dto.ShiftListResponse, error) {
	scope, err := uc.eval.Checker(id).Scope(ctx, authz.KindShift)
	if err != nil {
		return nil, err
	}
	if scope.State == authz.ScopeNeedsOnboarding {
		return nil, domain.ErrNeedsOnboarding
	}
	page := dto.PageResponse{Limit: limit, Offset: offset}
	f, ok := repository.FilterFromScope(scope)
	if !ok {
		return &dto.ShiftListResponse{Items: []dto.ShiftResponse{}, Page: page, ScopeState: markerState(scope)}, nil
	}
	list, err := uc.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShiftResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *entityToShiftResponse(s))
	}
	return &dto.ShiftListResponse{Items: items, Page: page}, nil
}

// shiftTenancy proyecta las coordenadas de tenencia de un turno, incluida la
// lista de asignados para el predicado de autoasignación.
func (uc *ShiftUseCase) shiftTenancy(ctx context.Context, s *entity.Shift) (*authz.ResourceTenancy, error) {
	t, err := uc.shiftTenancyForBranch(ctx, s.BranchID)
	if err != nil {
		return nil, err
	}
	t.AssignedUserIDs = s.AssignedUserIDs
	return t, nil
}

func (uc *ShiftUseCase) shiftTenancyForBranch(ctx context.Context, branchID string) (*authz.ResourceTenancy, error) {
	companyID, err := uc.graph.CompanyOfBranch(ctx, branchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: la sucursal %s no existe", domain.ErrInvalidInput, branchID)
		}
		return nil, err
	}
	return &authz.ResourceTenancy{CompanyID: companyID, BranchID: branchID}, nil
}

func entityToShiftResponse(s *entity.Shift) *dto.ShiftResponse {
	if s == nil {
		return nil
	}
	assigned := s.AssignedUserIDs
	if assigned == nil {
		assigned = []string{}
	}
	return &dto.ShiftResponse{
		ID:              s.ID,
		BranchID:        s.BranchID,
		AssignedUserIDs: assigned,
		StartsAt:        s.StartsAt,
		EndsAt:          s.EndsAt,
		Status:          s.Status,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
