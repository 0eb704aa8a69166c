package postgres

import (
	"fmt"

	"github.com/jhoicas/FarmaPOS-api/internal/domain/repository"
)

// appendArg añade un argumento posicional y devuelve su placeholder ($n).
func appendArg(args *[]any, v any) string {
	*args = append(*args, v)
	return fmt.Sprintf("$%d", len(*args))
}

// branchScopedCond condición de visibilidad para tablas con columna branch_id
// (shifts, sales, products, batches, customers). La restricción por empresa
// se resuelve vía subconsulta sobre branches: los recursos solo llevan el id
// de su sucursal y heredan la empresa transitivamente.
func branchScopedCond(f repository.ScopeFilter, args *[]any) string {
	switch {
	case f.All:
		return ""
	case len(f.BranchIDs) > 0:
		return fmt.Sprintf("branch_id = ANY(%s)", appendArg(args, f.BranchIDs))
	case len(f.CompanyIDs) > 0:
		return fmt.Sprintf("branch_id IN (SELECT id FROM branches WHERE company_id = ANY(%s))", appendArg(args, f.CompanyIDs))
	default:
		return "FALSE"
	}
}

// companyScopedCond condición para tablas con columna company_id (branches, users).
func companyScopedCond(f repository.ScopeFilter, args *[]any, branchColumn string) string {
	switch {
	case f.All:
		return ""
	case len(f.BranchIDs) > 0:
		return fmt.Sprintf("%s = ANY(%s)", branchColumn, appendArg(args, f.BranchIDs))
	case len(f.CompanyIDs) > 0:
		return fmt.Sprintf("company_id = ANY(%s)", appendArg(args, f.CompanyIDs))
	default:
		return "FALSE"
	}
}
