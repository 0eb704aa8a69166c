package authz

import (
	"context"
	"errors"
	"slices"

	"github.com/jhoicas/FarmaPOS-api/internal/domain"
)

// ScopeState clasifica el predicado de visibilidad resuelto.
type ScopeState string

const (
	// ScopeAllowAll visibilidad global (solo superadmin sin override).
	ScopeAllowAll ScopeState = "allow_all"
	// ScopeCompanyIn restringido a un conjunto de empresas.
	ScopeCompanyIn ScopeState = "company_in"
	// ScopeBranchIn restringido a un conjunto de sucursales (y opcionalmente
	// a la asignación del propio usuario, ver Scope.AssignedTo).
	ScopeBranchIn ScopeState = "branch_in"
	// ScopeDenyAll sin visibilidad alguna.
	ScopeDenyAll ScopeState = "deny_all"
	// ScopeNeedsOnboarding estado legítimo, NO un error: admin autenticado sin
	// empresa propia todavía. El llamador debe redirigir a crear empresa, no
	// mostrar una lista vacía ni un "acceso denegado".
	ScopeNeedsOnboarding ScopeState = "needs_onboarding"
	// ScopeUnassigned estado legítimo, distinto de DenyAll: manager o personal
	// sin sucursal asignada. La UI muestra "sin sucursal", no "acceso denegado".
	ScopeUnassigned ScopeState = "unassigned"
)

// Scope es el predicado de visibilidad que toda consulta de listado debe
// aplicar al almacenamiento, y contra el que se verifica cada registro en
// operaciones de un solo recurso.
type Scope struct {
	State      ScopeState
	CompanyIDs []string
	BranchIDs  []string
	// AssignedTo, si no está vacío, exige además que el recurso tenga a este
	// usuario entre sus asignados ("asignado a mí Y dentro de mi sucursal").
	AssignedTo string
}

// AllowAll predicado global.
func AllowAll() Scope { return Scope{State: ScopeAllowAll} }

// DenyAll predicado vacío.
func DenyAll() Scope { return Scope{State: ScopeDenyAll} }

// CompanyIn predicado por empresas.
func CompanyIn(companyIDs ...string) Scope {
	return Scope{State: ScopeCompanyIn, CompanyIDs: companyIDs}
}

// BranchIn predicado por sucursales.
func BranchIn(branchIDs ...string) Scope {
	return Scope{State: ScopeBranchIn, BranchIDs: branchIDs}
}

// NeedsOnboarding marcador de onboarding pendiente.
func NeedsOnboarding() Scope { return Scope{State: ScopeNeedsOnboarding} }

// Unassigned marcador de usuario sin sucursal.
func Unassigned() Scope { return Scope{State: ScopeUnassigned} }

// Empty indica si el predicado no da visibilidad sobre ningún registro.
func (s Scope) Empty() bool {
	switch s.State {
	case ScopeDenyAll, ScopeNeedsOnboarding, ScopeUnassigned:
		return true
	case ScopeCompanyIn:
		return len(s.CompanyIDs) == 0
	case ScopeBranchIn:
		return len(s.BranchIDs) == 0
	default:
		return false
	}
}

// Matches verifica si un registro concreto satisface el predicado.
func (s Scope) Matches(t ResourceTenancy) bool {
	switch s.State {
	case ScopeAllowAll:
		return true
	case ScopeCompanyIn:
		return slices.Contains(s.CompanyIDs, t.CompanyID)
	case ScopeBranchIn:
		if !slices.Contains(s.BranchIDs, t.BranchID) {
			return false
		}
		if s.AssignedTo == "" {
			return true
		}
		return slices.Contains(t.AssignedUserIDs, s.AssignedTo)
	default:
		return false
	}
}

// Resolver calcula el predicado de visibilidad de una identidad para un tipo
// de recurso. Es el ÚNICO lugar donde se computan predicados de alcance; todo
// listado debe pasar por aquí.
type Resolver struct {
	graph TenancyGraph
}

// NewResolver construye el resolutor sobre el grafo de tenencia.
func NewResolver(graph TenancyGraph) *Resolver {
	return &Resolver{graph: graph}
}

// Resolve aplica el algoritmo de resolución en orden de prioridad (la primera
// regla que aplica gana). Es una función pura de sus argumentos más lecturas
// del grafo: sin estado entre llamadas, sin caché entre peticiones.
func (r *Resolver) Resolve(ctx context.Context, id Identity, kind ResourceKind) (Scope, error) {
	switch id.Role {
	case RoleSuperAdmin:
		return r.resolveSuperAdmin(ctx, id)
	case RoleProductOwner:
		// Product owner administra la plataforma, no la operación de sucursal.
		if kind.Administrative() {
			return AllowAll(), nil
		}
		return DenyAll(), nil
	case RoleAdmin:
		return r.resolveAdmin(ctx, id)
	case RoleManager:
		// Un manager nunca obtiene acceso por empresa: aunque su sucursal
		// pertenezca a una empresa con más sucursales, no ve las hermanas.
		branches, err := r.graph.BranchesManagedBy(ctx, id.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return DenyAll(), nil
			}
			return DenyAll(), err
		}
		if len(branches) == 0 {
			return Unassigned(), nil
		}
		return BranchIn(branches...), nil
	case RoleCashier, RolePharmacist:
		if id.BranchID == "" {
			return Unassigned(), nil
		}
		scope := BranchIn(id.BranchID)
		if kind.SelfAssignable() {
			scope.AssignedTo = id.UserID
		}
		return scope, nil
	default:
		return DenyAll(), nil
	}
}

// resolveSuperAdmin: acceso global, con acotado opcional vía override.
// Superadmin posee todo, así que cualquier override es subconjunto válido.
func (r *Resolver) resolveSuperAdmin(ctx context.Context, id Identity) (Scope, error) {
	if !id.HasOverride() {
		return AllowAll(), nil
	}
	if id.ActingBranchID != "" {
		return BranchIn(id.ActingBranchID), nil
	}
	return CompanyIn(id.ActingCompanyID), nil
}

// resolveAdmin: empresas propias, con verificación estricta del override.
func (r *Resolver) resolveAdmin(ctx context.Context, id Identity) (Scope, error) {
	owned, err := r.graph.CompaniesOwnedBy(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return DenyAll(), nil
		}
		return DenyAll(), err
	}

	if id.ActingBranchID != "" {
		companyID, err := r.graph.CompanyOfBranch(ctx, id.ActingBranchID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return DenyAll(), nil
			}
			return DenyAll(), err
		}
		if !slices.Contains(owned, companyID) {
			return DenyAll(), nil
		}
		return BranchIn(id.ActingBranchID), nil
	}

	if id.ActingCompanyID != "" {
		if !slices.Contains(owned, id.ActingCompanyID) {
			return DenyAll(), nil
		}
		return CompanyIn(id.ActingCompanyID), nil
	}

	if len(owned) == 0 {
		return NeedsOnboarding(), nil
	}
	return CompanyIn(owned...), nil
}
