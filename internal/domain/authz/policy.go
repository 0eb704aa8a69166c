package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/FarmaPOS-api/internal/domain"
)

// Action es la operación solicitada sobre un recurso.
type Action string

const (
	ActionRead     Action = "read"
	ActionList     Action = "list"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionActivate Action = "activate"
)

// Reason código de razón de una denegación.
type Reason string

const (
	ReasonNone Reason = ""
	// ReasonOutOfScope el registro no satisface el predicado de visibilidad.
	ReasonOutOfScope Reason = "OUT_OF_SCOPE"
	// ReasonInvalidRoleAssignment el creador no puede crear cuentas del rol
	// pedido. Fallo de validación corregible por el usuario, no incidente.
	ReasonInvalidRoleAssignment Reason = "INVALID_ROLE_ASSIGNMENT"
	// ReasonMissingBranch la cuenta a crear requiere una sucursal válida y
	// dentro del alcance del creador. También corregible por el usuario.
	ReasonMissingBranch Reason = "MISSING_BRANCH"
)

// Decision resultado de una evaluación de política.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow decisión afirmativa.
func Allow() Decision { return Decision{Allowed: true} }

// Deny decisión negativa con código de razón.
func Deny(reason Reason) Decision { return Decision{Allowed: false, Reason: reason} }

// DeniedError transporta una denegación como error para las capas superiores.
// Envuelve domain.ErrForbidden para que errors.Is siga funcionando.
type DeniedError struct {
	Reason Reason
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("acceso denegado: %s", e.Reason)
}

// Unwrap permite errors.Is(err, domain.ErrForbidden).
func (e *DeniedError) Unwrap() error { return domain.ErrForbidden }

// Err convierte la decisión en error (*DeniedError) si fue denegada; nil si no.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Reason: d.Reason}
}

// Evaluator decide si una identidad puede ejecutar una acción sobre un tipo de
// recurso y, para operaciones de registro único, sobre un registro concreto.
// Sin estado mutable: cada llamada es una función pura de sus argumentos más
// lecturas al grafo de tenencia.
type Evaluator struct {
	resolver *Resolver
	graph    TenancyGraph
}

// NewEvaluator construye el evaluador sobre el resolutor de alcance.
func NewEvaluator(resolver *Resolver, graph TenancyGraph) *Evaluator {
	return &Evaluator{resolver: resolver, graph: graph}
}

// Authorize evalúa una acción. Para list no hay Deny: el resultado se acota
// con el predicado y a lo sumo queda vacío. Para operaciones sobre un registro
// concreto, target debe satisfacer el predicado resuelto.
func (e *Evaluator) Authorize(ctx context.Context, id Identity, action Action, kind ResourceKind, target *ResourceTenancy) (Decision, error) {
	scope, err := e.resolver.Resolve(ctx, id, kind)
	if err != nil {
		return Deny(ReasonOutOfScope), err
	}
	return decideWithScope(scope, action, target), nil
}

// decideWithScope aplica el predicado ya resuelto a una acción concreta.
func decideWithScope(scope Scope, action Action, target *ResourceTenancy) Decision {
	if action == ActionList {
		return Allow()
	}
	if target == nil {
		return Deny(ReasonOutOfScope)
	}
	if scope.Matches(*target) {
		return Allow()
	}
	return Deny(ReasonOutOfScope)
}

// CreateUserTarget describe la cuenta que se quiere crear.
type CreateUserTarget struct {
	Role     Role
	BranchID string // vacío cuando el rol no requiere sucursal
}

// AuthorizeCreateUser aplica las dos verificaciones adicionales de creación de
// cuentas además de la pertenencia al alcance:
//
//  1. Asignación de rol: solo roles estrictamente inferiores, y solo
//     superadmin crea admins (tabla creatableRoles).
//  2. Sucursal: crear admin nunca requiere sucursal; crear manager o personal
//     requiere una sucursal que resuelva a una empresa dentro del alcance del
//     creador.
func (e *Evaluator) AuthorizeCreateUser(ctx context.Context, id Identity, target CreateUserTarget) (Decision, error) {
	if !id.Role.CanCreate(target.Role) {
		return Deny(ReasonInvalidRoleAssignment), nil
	}
	if !target.Role.RequiresBranch() {
		// admin / product_owner: sin sucursal; la tabla ya garantizó que solo
		// superadmin llega aquí.
		return Allow(), nil
	}
	if target.BranchID == "" {
		return Deny(ReasonMissingBranch), nil
	}
	companyID, err := e.graph.CompanyOfBranch(ctx, target.BranchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Sucursal inexistente: sin acceso, nunca un crash.
			return Deny(ReasonMissingBranch), nil
		}
		return Deny(ReasonMissingBranch), err
	}
	scope, err := e.resolver.Resolve(ctx, id, KindUser)
	if err != nil {
		return Deny(ReasonMissingBranch), err
	}
	if !scope.Matches(ResourceTenancy{CompanyID: companyID, BranchID: target.BranchID}) {
		return Deny(ReasonMissingBranch), nil
	}
	return Allow(), nil
}

// Checker memoiza el predicado por tipo de recurso DENTRO de una misma
// petición (útil en lotes list-then-filter que autorizan varios registros).
// No debe sobrevivir a la petición: los hechos de tenencia pueden cambiar
// entre peticiones y cachear decisiones produciría privilegios rancios.
type Checker struct {
	eval   *Evaluator
	id     Identity
	scopes map[ResourceKind]Scope
}

// Checker crea un verificador memoizante atado a una identidad.
func (e *Evaluator) Checker(id Identity) *Checker {
	return &Checker{eval: e, id: id, scopes: make(map[ResourceKind]Scope)}
}

// Scope devuelve el predicado para el tipo, resolviéndolo a lo sumo una vez.
func (c *Checker) Scope(ctx context.Context, kind ResourceKind) (Scope, error) {
	if scope, ok := c.scopes[kind]; ok {
		return scope, nil
	}
	scope, err := c.eval.resolver.Resolve(ctx, c.id, kind)
	if err != nil {
		return scope, err
	}
	c.scopes[kind] = scope
	return scope, nil
}

// Authorize evalúa una acción reutilizando el predicado memoizado.
func (c *Checker) Authorize(ctx context.Context, action Action, kind ResourceKind, target *ResourceTenancy) (Decision, error) {
	scope, err := c.Scope(ctx, kind)
	if err != nil {
		return Deny(ReasonOutOfScope), err
	}
	return decideWithScope(scope, action, target), nil
}
