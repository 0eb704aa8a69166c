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
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase aplica reglas de negocio para cuentas de usuario, incluida la
// creación con verificación de asignación de rol y el borrado en cascada de
// admins (solo superadmin).
type UserUseCase struct {
	repo      repository.UserRepository
	companies repository.CompanyRepository
	graph     authz.TenancyGraph
	eval      *authz.Evaluator
	planner   *authz.Planner
	executor  authz.PlanExecutor
	log       *logger.Logger
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(repo repository.UserRepository, companies repository.CompanyRepository, graph authz.TenancyGraph, eval *authz.Evaluator, planner *authz.Planner, executor authz.PlanExecutor, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, companies: companies, graph: graph, eval: eval, planner: planner, executor: executor, log: log}
}

// Create crea una cuenta. El evaluador verifica la tabla de asignación de
// roles y, para roles operativos, que la sucursal exista y caiga dentro del
// alcance del creador. La denegación llega con código de razón
// (INVALID_ROLE_ASSIGNMENT o MISSING_BRANCH) para que el cliente la corrija.
func (uc *UserUseCase) Create(ctx context.Context, id authz.Identity, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := authz.Role(in.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	d, err := uc.eval.AuthorizeCreateUser(ctx, id, authz.CreateUserTarget{Role: role, BranchID: in.BranchID})
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionCreate, authz.KindUser, "", d))
		return nil, d.Err()
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	// Las coordenadas de tenencia se derivan de la sucursal: los roles
	// operativos heredan la empresa de su sucursal; admin y product_owner
	// nacen sin empresa (el admin la obtiene al crear la suya).
	var companyID string
	if role.RequiresBranch() {
		companyID, err = uc.graph.CompanyOfBranch(ctx, in.BranchID)
		if err != nil {
			return nil, err
		}
		// El personal operativo solo se contrata en empresas configuradas.
		if err := requireConfiguredCompany(ctx, uc.companies, companyID); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Role:         role,
		CompanyID:    companyID,
		BranchID:     in.BranchID,
		CreatedBy:    id.UserID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID si está dentro del alcance del llamador.
func (uc *UserUseCase) GetByID(ctx context.Context, id authz.Identity, userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionRead, authz.KindUser, userTenancy(user))
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionRead, authz.KindUser, userID, d))
		return nil, d.Err()
	}
	return entityToUserResponse(user), nil
}

// List lista los usuarios visibles según el predicado resuelto.
func (uc *UserUseCase) List(ctx context.Context, id authz.Identity, limit, offset int) (*dto.UserListResponse, error) {
	scope, err := uc.eval.Checker(id).Scope(ctx, authz.KindUser)
	if err != nil {
		return nil, err
	}
	if scope.State == authz.ScopeNeedsOnboarding {
		return nil, domain.ErrNeedsOnboarding
	}
	page := dto.PageResponse{Limit: limit, Offset: offset}
	f, ok := repository.FilterFromScope(scope)
	if !ok {
		return &dto.UserListResponse{Items: []dto.UserResponse{}, Page: page, ScopeState: markerState(scope)}, nil
	}
	list, err := uc.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: page}, nil
}

// SetStatus activa o desactiva una cuenta sin borrarla. Desactivar corta el
// login pero conserva el historial del usuario.
func (uc *UserUseCase) SetStatus(ctx context.Context, id authz.Identity, userID string, active bool) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionActivate, authz.KindUser, userTenancy(user))
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionActivate, authz.KindUser, userID, d))
		return nil, d.Err()
	}
	if active {
		user.Status = entity.UserStatusActive
	} else {
		user.Status = entity.UserStatusInactive
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Delete borra una cuenta no-admin. Nunca cascada: las referencias del
// usuario en turnos quedan colgantes sin efecto. Para admins usar
// DeleteAdmin, que sí arrastra sus empresas.
func (uc *UserUseCase) Delete(ctx context.Context, id authz.Identity, userID string) error {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.Role == authz.RoleAdmin {
		return fmt.Errorf("%w: un admin se elimina con su cascada", domain.ErrConflict)
	}
	d, err := uc.eval.Authorize(ctx, id, authz.ActionDelete, authz.KindUser, userTenancy(user))
	if err != nil {
		return err
	}
	if !d.Allowed {
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionDelete, authz.KindUser, userID, d))
		return d.Err()
	}
	return uc.repo.Delete(ctx, userID)
}

// DeleteAdmin elimina un admin junto con todas sus empresas y el contenido de
// estas, en un único plan atómico hojas-primero. Reservado a superadmin.
func (uc *UserUseCase) DeleteAdmin(ctx context.Context, id authz.Identity, adminID string) error {
	if id.Role != authz.RoleSuperAdmin {
		d := authz.Deny(authz.ReasonOutOfScope)
		auditDecision(uc.log, authz.NewEvent(id, authz.ActionDelete, authz.KindUser, adminID, d))
		return d.Err()
	}
	user, err := uc.repo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.Role != authz.RoleAdmin {
		return fmt.Errorf("%w: el usuario %s no es admin", domain.ErrInvalidInput, adminID)
	}
	steps, err := uc.planner.PlanDeletion(ctx, authz.KindUser, adminID)
	if err != nil {
		return err
	}
	auditPlan(uc.log, id, authz.KindUser, adminID, steps)
	return uc.executor.ApplyDeletionPlan(ctx, steps)
}

// userTenancy proyecta las coordenadas de tenencia de una cuenta para el
// evaluador. Superadmin y product_owner no tienen coordenadas; sobre ellos
// solo decide el predicado administrativo.
func userTenancy(u *entity.User) *authz.ResourceTenancy {
	return &authz.ResourceTenancy{CompanyID: u.CompanyID, BranchID: u.BranchID}
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
		BranchID:  u.BranchID,
		CreatedBy: u.CreatedBy,
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
