package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/timeqr/timeqr-backend-go/internal/domain/justification"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/database"
)

type justificationRepository struct {
	db *database.DB
}

func NewJustificationRepository(db *database.DB) justification.JustificationRepository {
	return &justificationRepository{db: db}
}

const justificationColumns = `
	j.id, j.employee_id, j.type, j.start_date, j.end_date, j.reason,
	j.created_at, j.updated_at,
	e.code, e.first_name, e.last_name, e.branch
`

func scanJustification(row pgx.Row) (justification.Justification, error) {
	var (
		j                   justification.Justification
		kind                string
		firstName, lastName string
	)
	err := row.Scan(
		&j.ID, &j.EmployeeID, &kind, &j.StartDate, &j.EndDate, &j.Reason,
		&j.CreatedAt, &j.UpdatedAt,
		&j.EmployeeCode, &firstName, &lastName, &j.Branch,
	)
	if err != nil {
		return justification.Justification{}, err
	}
	j.Type = justification.JustificationType(kind)
	j.EmployeeName = strings.TrimSpace(firstName + " " + lastName)
	return j, nil
}

// Create implements justification.JustificationRepository.
func (r *justificationRepository) Create(ctx context.Context, j justification.Justification) (justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO justifications (
			id, employee_id, type, start_date, end_date, reason,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query,
		j.ID, j.EmployeeID, string(j.Type), j.StartDate, j.EndDate, j.Reason,
		j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return justification.Justification{}, fmt.Errorf("failed to create justification: %w", err)
	}
	return j, nil
}

// GetByID implements justification.JustificationRepository.
func (r *justificationRepository) GetByID(ctx context.Context, id string) (justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM justifications j
		JOIN employees e ON e.id = j.employee_id
		WHERE j.id = $1
	`, justificationColumns)

	j, err := scanJustification(q.QueryRow(ctx, query, id))
	if err != nil {
		return justification.Justification{}, fmt.Errorf("failed to get justification: %w", err)
	}
	return j, nil
}

// Update implements justification.JustificationRepository.
func (r *justificationRepository) Update(ctx context.Context, j justification.Justification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE justifications
		SET employee_id = $2, type = $3, start_date = $4, end_date = $5,
		    reason = $6, updated_at = $7
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		j.ID, j.EmployeeID, string(j.Type), j.StartDate, j.EndDate,
		j.Reason, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update justification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return justification.ErrJustificationNotFound
	}
	return nil
}

// Delete implements justification.JustificationRepository.
func (r *justificationRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM justifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete justification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return justification.ErrJustificationNotFound
	}
	return nil
}

// ListOverlapping implements justification.JustificationRepository.
func (r *justificationRepository) ListOverlapping(ctx context.Context, startDate, endDate, branch string) ([]justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"j.start_date <= $2", "j.end_date >= $1"}
	args := []any{startDate, endDate}
	if branch != "" {
		conditions = append(conditions, "e.branch = $3")
		args = append(args, branch)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM justifications j
		JOIN employees e ON e.id = j.employee_id
		WHERE %s
		ORDER BY j.start_date, j.id
	`, justificationColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list justifications: %w", err)
	}
	defer rows.Close()

	var items []justification.Justification
	for rows.Next() {
		j, err := scanJustification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan justification: %w", err)
		}
		items = append(items, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read justifications: %w", err)
	}
	return items, nil
}
