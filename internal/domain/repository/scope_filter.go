package repository

import "github.com/jhoicas/FarmaPOS-api/internal/domain/authz"

// ScopeFilter es la traducción del predicado del motor a un filtro de consulta
// que los adaptadores de persistencia saben aplicar. Exactamente uno de los
// modos está activo: All, CompanyIDs o BranchIDs.
type ScopeFilter struct {
	All        bool
	CompanyIDs []string
	BranchIDs  []string
	// AssignedTo, si no está vacío, exige pertenencia al arreglo de asignados
	// del recurso (solo turnos en este dominio).
	AssignedTo string
}

// FilterFromScope convierte un Scope en filtro de consulta. El segundo valor
// es false cuando el predicado no da visibilidad (deny, onboarding pendiente,
// sin sucursal): el llamador responde con lista vacía sin tocar la DB.
func FilterFromScope(s authz.Scope) (ScopeFilter, bool) {
	if s.Empty() {
		return ScopeFilter{}, false
	}
	switch s.State {
	case authz.ScopeAllowAll:
		return ScopeFilter{All: true}, true
	case authz.ScopeCompanyIn:
		return ScopeFilter{CompanyIDs: s.CompanyIDs}, true
	case authz.ScopeBranchIn:
		return ScopeFilter{BranchIDs: s.BranchIDs, AssignedTo: s.AssignedTo}, true
	default:
		return ScopeFilter{}, false
	}
}
