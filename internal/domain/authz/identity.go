package authz

// Identity describe al solicitante de una petición: rol, identidad y
// coordenadas de tenencia. Se construye una vez por petición (token + headers
// de override) y se pasa explícitamente a cada llamada del motor; ninguna
// función del motor lee un "usuario actual" ambiental.
//
// ActingCompanyID / ActingBranchID son el override opcional con el que un
// admin o superadmin acota su propia vista. El override debe ser subconjunto
// de lo que el solicitante posee: seleccionar una empresa ajena produce Deny,
// nunca un no-op silencioso.
type Identity struct {
	UserID          string
	Role            Role
	CompanyID       string // vacío para superadmin / product_owner
	BranchID        string // vacío para admin
	ActingCompanyID string
	ActingBranchID  string
}

// HasOverride indica si la identidad trae un override de empresa o sucursal.
func (id Identity) HasOverride() bool {
	return id.ActingCompanyID != "" || id.ActingBranchID != ""
}
