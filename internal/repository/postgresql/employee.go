package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/timeqr/timeqr-backend-go/internal/domain/employee"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	e.id, e.code, e.first_name, e.last_name, e.email, e.branch, e.position,
	e.schedule_id, e.active, e.created_at, e.updated_at, s.name
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Code, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.Branch, &emp.Position, &emp.ScheduleID, &emp.Active,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.ScheduleName,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, code, first_name, last_name, email, branch, position,
			schedule_id, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := q.Exec(ctx, query,
		emp.ID, emp.Code, emp.FirstName, emp.LastName, emp.Email,
		emp.Branch, emp.Position, emp.ScheduleID, emp.Active,
		emp.CreatedAt, emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		LEFT JOIN schedules s ON s.id = e.schedule_id
		WHERE e.id = $1
	`, employeeColumns)

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		LEFT JOIN schedules s ON s.id = e.schedule_id
		WHERE e.code = $1
	`, employeeColumns)

	emp, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}
	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, branch = $5,
		    position = $6, schedule_id = $7, active = $8, updated_at = $9
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		emp.ID, emp.FirstName, emp.LastName, emp.Email, emp.Branch,
		emp.Position, emp.ScheduleID, emp.Active, emp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	var args []any
	argIdx := 1

	if filter.Branch != "" {
		conditions = append(conditions, fmt.Sprintf("e.branch = $%d", argIdx))
		args = append(args, filter.Branch)
		argIdx++
	}
	if filter.Position != "" {
		conditions = append(conditions, fmt.Sprintf("e.position = $%d", argIdx))
		args = append(args, filter.Position)
		argIdx++
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "e.active = TRUE")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		LEFT JOIN schedules s ON s.id = e.schedule_id
		WHERE %s
		ORDER BY e.code
	`, employeeColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	return employees, nil
}
