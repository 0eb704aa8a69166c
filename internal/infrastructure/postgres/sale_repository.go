package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/entity"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// La columna total es NUMERIC y mapea a shopspring/decimal vía el codec del pool.
type SaleRepo struct {
	pool *pgxpool.Pool
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepo {
	return &SaleRepo{pool: pool}
}

// Create persiste una nueva venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, branch_id, shift_id, total, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		sale.ID, sale.BranchID, sale.ShiftID, sale.Total, sale.CreatedBy, sale.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound // la sucursal o el turno referenciado no existe
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID (nil si no existe).
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `
		SELECT id, branch_id, shift_id, total, created_by, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.BranchID, &s.ShiftID, &s.Total, &s.CreatedBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by id: %w", err)
	}
	return &s, nil
}

// List lista ventas visibles según el filtro de alcance, con paginación.
func (r *SaleRepo) List(ctx context.Context, f repository.ScopeFilter, limit, offset int) ([]*entity.Sale, error) {
	var args []any
	cond := branchScopedCond(f, &args)
	if cond == "FALSE" {
		return nil, nil
	}
	if cond != "" {
		cond = "WHERE " + cond
	}
	query := fmt.Sprintf(`
		SELECT id, branch_id, shift_id, total, created_by, created_at
		FROM sales %s ORDER BY created_at DESC LIMIT %s OFFSET %s`,
		cond, appendArg(&args, limit), appendArg(&args, offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.BranchID, &s.ShiftID, &s.Total, &s.CreatedBy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
