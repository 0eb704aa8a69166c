package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/authz"
)

var _ authz.PlanExecutor = (*CascadeExecutor)(nil)

// CascadeExecutor aplica un plan de borrado dentro de una única transacción
// PostgreSQL: todos los pasos o ninguno. Una lectura concurrente nunca observa
// una sucursal borrada con usuarios vivos ni una empresa borrada con
// sucursales que la referencien.
type CascadeExecutor struct {
	pool *pgxpool.Pool
}

// deletionTables tabla física por tipo de paso del plan.
var deletionTables = map[authz.ResourceKind]string{
	authz.KindSale:     "sales",
	authz.KindShift:    "shifts",
	authz.KindBatch:    "batches",
	authz.KindProduct:  "products",
	authz.KindCustomer: "customers",
	authz.KindUser:     "users",
	authz.KindBranch:   "branches",
	authz.KindCompany:  "companies",
}

// NewCascadeExecutor construye el ejecutor con el pool.
func NewCascadeExecutor(pool *pgxpool.Pool) *CascadeExecutor {
	return &CascadeExecutor{pool: pool}
}

// ApplyDeletionPlan ejecuta los pasos en el orden recibido (hojas primero) y
// hace Commit solo si todos tuvieron éxito; cualquier fallo revierte todo.
func (e *CascadeExecutor) ApplyDeletionPlan(ctx context.Context, steps []authz.DeletionStep) error {
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, step := range steps {
		table, ok := deletionTables[step.Kind]
		if !ok {
			return fmt.Errorf("paso de borrado sin tabla: %s: %w", step.Kind, domain.ErrInvalidInput)
		}
		if len(step.IDs) == 0 {
			continue
		}
		query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, table)
		if _, err := tx.Exec(ctx, query, step.IDs); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
