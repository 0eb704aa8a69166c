package authz

// ResourceKind identifica el tipo de recurso sobre el que se decide.
type ResourceKind string

const (
	KindCompany  ResourceKind = "company"
	KindBranch   ResourceKind = "branch"
	KindUser     ResourceKind = "user"
	KindShift    ResourceKind = "shift"
	KindSale     ResourceKind = "sale"
	KindProduct  ResourceKind = "product"
	KindBatch    ResourceKind = "batch"
	KindCustomer ResourceKind = "customer"
)

// SelfAssignable indica si la visibilidad del recurso se acota además por
// asignación de usuarios. Shift es el único en este dominio: un cajero ve
// solo los turnos asignados a él, no todos los de su sucursal.
func (k ResourceKind) SelfAssignable() bool {
	return k == KindShift
}

// Administrative distingue los recursos de administración de plataforma
// (empresas y cuentas) de los operativos (ventas, turnos, inventario).
// Product owner administra la plataforma, no la operación de sucursal.
func (k ResourceKind) Administrative() bool {
	return k == KindCompany || k == KindUser
}

// ResourceTenancy son los campos de tenencia de un registro concreto, lo único
// que el evaluador necesita del recurso para decidir sobre él.
type ResourceTenancy struct {
	CompanyID       string
	BranchID        string
	AssignedUserIDs []string // solo relevante para recursos SelfAssignable
}
