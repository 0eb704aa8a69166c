package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/FarmaPOS-api/internal/domain"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/entity"
	"github.com/jhoicas/FarmaPOS-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo implementación del puerto ShiftRepository sobre PostgreSQL.
// assigned_user_ids se almacena como uuid[] y se filtra con ANY.
type ShiftRepo struct {
	pool *pgxpool.Pool
}

// NewShiftRepository construye el adaptador de persistencia para turnos.
func NewShiftRepository(pool *pgxpool.Pool) *ShiftRepo {
	return &ShiftRepo{pool: pool}
}

// Create persiste un nuevo turno.
func (r *ShiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	query := `
		INSERT INTO shifts (id, branch_id, assigned_user_ids, starts_at, ends_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		shift.ID, shift.BranchID, shift.AssignedUserIDs, shift.StartsAt, shift.EndsAt,
		shift.Status, shift.CreatedAt, shift.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound // la sucursal referenciada no existe
		}
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

// GetByID obtiene un turno por ID (nil si no existe).
func (r *ShiftRepo) GetByID(ctx context.Context, id string) (*entity.Shift, error) {
	query := `
		SELECT id, branch_id, assigned_user_ids, starts_at, ends_at, status, created_at, updated_at
		FROM shifts WHERE id = $1`
	var s entity.Shift
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.BranchID, &s.AssignedUserIDs, &s.StartsAt, &s.EndsAt, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift by id: %w", err)
	}
	return &s, nil
}

// Update actualiza un turno (asignaciones incluidas).
func (r *ShiftRepo) Update(ctx context.Context, shift *entity.Shift) error {
	query := `
		UPDATE shifts SET assigned_user_ids = $2, starts_at = $3, ends_at = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		shift.ID, shift.AssignedUserIDs, shift.StartsAt, shift.EndsAt, shift.Status, shift.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	return nil
}

// List lista turnos visibles según el filtro de alcance, con paginación.
// Para cajeros/farmacéuticos el filtro trae además AssignedTo: solo turnos
// donde el usuario aparece asignado.
func (r *ShiftRepo) List(ctx context.Context, f repository.ScopeFilter, limit, offset int) ([]*entity.Shift, error) {
	var args []any
	var conds []string
	if c := branchScopedCond(f, &args); c == "FALSE" {
		return nil, nil
	} else if c != "" {
		conds = append(conds, c)
	}
	if f.AssignedTo != "" {
		conds = append(conds, fmt.Sprintf("%s = ANY(assigned_user_ids)", appendArg(&args, f.AssignedTo)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	query := fmt.Sprintf(`
		SELECT id, branch_id, assigned_user_ids, starts_at, ends_at, status, created_at, updated_at
		FROM shifts %s ORDER BY starts_at DESC LIMIT %s OFFSET %s`,
		where, appendArg(&args, limit), appendArg(&args, offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shift
	for rows.Next() {
		var s entity.Shift
		if err := rows.Scan(&s.ID, &s.BranchID, &s.AssignedUserIDs, &s.StartsAt, &s.EndsAt,
			&s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un turno por ID.
func (r *ShiftRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	return nil
}
