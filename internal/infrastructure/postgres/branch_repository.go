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

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL.
type BranchRepo struct {
	pool *pgxpool.Pool
}

// NewBranchRepository construye el adaptador de persistencia para sucursales.
func NewBranchRepository(pool *pgxpool.Pool) *BranchRepo {
	return &BranchRepo{pool: pool}
}

// Create persiste una nueva sucursal.
func (r *BranchRepo) Create(ctx context.Context, branch *entity.Branch) error {
	query := `
		INSERT INTO branches (id, company_id, name, address, manager_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		branch.ID, branch.CompanyID, branch.Name, branch.Address, branch.ManagerID,
		branch.CreatedAt, branch.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound // la empresa referenciada no existe
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID (nil si no existe).
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	query := `
		SELECT id, company_id, name, address, manager_id, created_at, updated_at
		FROM branches WHERE id = $1`
	var b entity.Branch
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.ManagerID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch by id: %w", err)
	}
	return &b, nil
}

// Update actualiza una sucursal (incluida la reasignación de gerente).
func (r *BranchRepo) Update(ctx context.Context, branch *entity.Branch) error {
	query := `
		UPDATE branches SET name = $2, address = $3, manager_id = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		branch.ID, branch.Name, branch.Address, branch.ManagerID, branch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	return nil
}

// List lista sucursales visibles según el filtro de alcance, con paginación.
func (r *BranchRepo) List(ctx context.Context, f repository.ScopeFilter, limit, offset int) ([]*entity.Branch, error) {
	var args []any
	cond := companyScopedCond(f, &args, "id")
	if cond == "FALSE" {
		return nil, nil
	}
	if cond != "" {
		cond = "WHERE " + cond
	}
	query := fmt.Sprintf(`
		SELECT id, company_id, name, address, manager_id, created_at, updated_at
		FROM branches %s ORDER BY created_at DESC LIMIT %s OFFSET %s`,
		cond, appendArg(&args, limit), appendArg(&args, offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.ManagerID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
