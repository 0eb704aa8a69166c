package authz

import "context"

// TenancyGraph es el puerto de solo lectura sobre las aristas de propiedad
// Company → Branch → User. El motor razona sobre estos hechos; nunca escribe.
//
// Un id inexistente produce domain.ErrNotFound, que los componentes del motor
// tratan como "sin acceso", jamás como una excepción que aborte la petición.
type TenancyGraph interface {
	BranchesOfCompany(ctx context.Context, companyID string) ([]string, error)
	CompanyOfBranch(ctx context.Context, branchID string) (string, error)
	ManagerOfBranch(ctx context.Context, branchID string) (string, error) // "" si no hay gerente
	BranchesManagedBy(ctx context.Context, userID string) ([]string, error)
	CompaniesOwnedBy(ctx context.Context, adminID string) ([]string, error)
}

// ResourceIndex enumera los ids de recursos que cuelgan de una sucursal.
// Lo consume el planificador de borrado en cascada para cerrar la clausura.
type ResourceIndex interface {
	ResourceIDsOfBranch(ctx context.Context, kind ResourceKind, branchID string) ([]string, error)
}

// PlanExecutor aplica un plan de borrado completo dentro de UNA transacción
// atómica del almacenamiento. Si cualquier paso falla, nada queda aplicado.
type PlanExecutor interface {
	ApplyDeletionPlan(ctx context.Context, steps []DeletionStep) error
}
