package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portsrepo "github.com/restobook/restobook/internal/core/ports/repositories"
)

type StaffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository creates a repository for staff users.
func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

var _ portsrepo.StaffRepository = (*StaffRepository)(nil)

const staffColumns = `user_id, name, email, role, pin_hash, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanStaff(row pgx.Row) (*domain.StaffUser, error) {
	var user domain.StaffUser
	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.PINHash,
		&user.IsActive,
		&user.CreatedAt,
		&user.CreatedBy,
		&user.LastUpdatedAt,
		&user.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *StaffRepository) SaveStaff(ctx context.Context, user domain.StaffUser) error {
	query := `
		INSERT INTO staff_users (` + staffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.Role,
		user.PINHash,
		user.IsActive,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save staff user: %w", err)
	}
	return nil
}

func (r *StaffRepository) findOne(ctx context.Context, query string, arg any) (*domain.StaffUser, error) {
	user, err := scanStaff(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff user: %w", err)
	}
	return user, nil
}

func (r *StaffRepository) FindStaffByID(ctx context.Context, userID string) (*domain.StaffUser, error) {
	return r.findOne(ctx, `SELECT `+staffColumns+` FROM staff_users WHERE user_id = $1;`, userID)
}

func (r *StaffRepository) FindStaffByName(ctx context.Context, name string) (*domain.StaffUser, error) {
	return r.findOne(ctx, `SELECT `+staffColumns+` FROM staff_users WHERE name = $1;`, name)
}

func (r *StaffRepository) FindStaffByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	return r.findOne(ctx, `SELECT `+staffColumns+` FROM staff_users WHERE email = $1;`, email)
}

func (r *StaffRepository) ListStaff(ctx context.Context) ([]domain.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users ORDER BY name;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff users: %w", err)
	}
	defer rows.Close()

	users := []domain.StaffUser{}
	for rows.Next() {
		user, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff user rows: %w", err)
	}
	return users, nil
}

func (r *StaffRepository) UpdateStaff(ctx context.Context, user domain.StaffUser) error {
	query := `
		UPDATE staff_users
		SET name = $1, email = $2, role = $3, pin_hash = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE user_id = $8;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		user.Name,
		user.Email,
		user.Role,
		user.PINHash,
		user.IsActive,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
		user.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
