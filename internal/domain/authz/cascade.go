package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/FarmaPOS-api/internal/domain"
)

// DeletionStep nombra un tipo de entidad y el conjunto de ids a eliminar.
// Los pasos van ordenados hojas-primero: ningún paso elimina un padre
// mientras un hijo todavía lo referencia, sin depender de cascadas de la DB.
type DeletionStep struct {
	Kind ResourceKind
	IDs  []string
}

// cascadeResourceOrder orden fijo de recursos hoja dentro de una sucursal.
var cascadeResourceOrder = []ResourceKind{
	KindSale,
	KindShift,
	KindBatch,
	KindProduct,
	KindCustomer,
}

// Planner calcula la clausura ordenada de entidades dependientes que deben
// eliminarse atómicamente al borrar una raíz de tenencia (un admin o una
// empresa). Solo planifica: la ejecución corre en una transacción del
// almacenamiento (PlanExecutor) y se revierte completa ante cualquier fallo.
type Planner struct {
	graph TenancyGraph
	index ResourceIndex
}

// NewPlanner construye el planificador de cascadas.
func NewPlanner(graph TenancyGraph, index ResourceIndex) *Planner {
	return &Planner{graph: graph, index: index}
}

// PlanDeletion despacha por tipo de raíz. Las únicas raíces de cascada del
// modelo son el admin (KindUser) y la empresa (KindCompany); borrar cualquier
// otro usuario no cascadea.
func (p *Planner) PlanDeletion(ctx context.Context, rootKind ResourceKind, rootID string) ([]DeletionStep, error) {
	switch rootKind {
	case KindUser:
		return p.PlanAdminDeletion(ctx, rootID)
	case KindCompany:
		return p.PlanCompanyDeletion(ctx, rootID)
	default:
		return nil, fmt.Errorf("raíz de cascada no soportada: %s: %w", rootKind, domain.ErrInvalidInput)
	}
}

// PlanAdminDeletion clausura completa de un admin: todas sus empresas, las
// sucursales de cada una, los recursos y usuarios de cada sucursal, y al
// final el propio registro del admin.
func (p *Planner) PlanAdminDeletion(ctx context.Context, adminID string) ([]DeletionStep, error) {
	companies, err := p.graph.CompaniesOwnedBy(ctx, adminID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	steps, err := p.planCompanies(ctx, companies, adminID)
	if err != nil {
		return nil, err
	}
	steps = append(steps, DeletionStep{Kind: KindUser, IDs: []string{adminID}})
	return steps, nil
}

// PlanCompanyDeletion clausura de una sola empresa (sin tocar al admin dueño).
func (p *Planner) PlanCompanyDeletion(ctx context.Context, companyID string) ([]DeletionStep, error) {
	return p.planCompanies(ctx, []string{companyID}, "")
}

// planCompanies emite los pasos comunes: recursos hoja por tipo, luego
// usuarios de sucursal (excluyendo al admin raíz, que va en su propio paso
// final), luego sucursales, luego empresas. Los pasos sin ids se omiten.
func (p *Planner) planCompanies(ctx context.Context, companyIDs []string, excludeUserID string) ([]DeletionStep, error) {
	var branchIDs []string
	for _, companyID := range companyIDs {
		branches, err := p.graph.BranchesOfCompany(ctx, companyID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		branchIDs = append(branchIDs, branches...)
	}

	var steps []DeletionStep
	for _, kind := range cascadeResourceOrder {
		var ids []string
		for _, branchID := range branchIDs {
			resIDs, err := p.index.ResourceIDsOfBranch(ctx, kind, branchID)
			if err != nil {
				return nil, err
			}
			ids = append(ids, resIDs...)
		}
		if len(ids) > 0 {
			steps = append(steps, DeletionStep{Kind: kind, IDs: ids})
		}
	}

	var userIDs []string
	for _, branchID := range branchIDs {
		ids, err := p.index.ResourceIDsOfBranch(ctx, KindUser, branchID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if id != excludeUserID {
				userIDs = append(userIDs, id)
			}
		}
	}
	if len(userIDs) > 0 {
		steps = append(steps, DeletionStep{Kind: KindUser, IDs: userIDs})
	}
	if len(branchIDs) > 0 {
		steps = append(steps, DeletionStep{Kind: KindBranch, IDs: branchIDs})
	}
	if len(companyIDs) > 0 {
		steps = append(steps, DeletionStep{Kind: KindCompany, IDs: companyIDs})
	}
	return steps, nil
}
