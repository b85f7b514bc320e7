package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/pulseworks/worktrack/modules/directory/domain/aggregates/employee"
	"github.com/pulseworks/worktrack/pkg/composables"
)

const employeeColumns = `
	id, name, designation, role, reports_to, manager_id, application_name, created_at, updated_at`

type EmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &EmployeeRepository{}
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "counting employees")
	}
	return count, nil
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT`+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing employees")
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (r *EmployeeRepository) GetPaginated(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	if params == nil {
		params = &employee.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	where := []string{"1=1"}
	args := []any{}
	if q := strings.TrimSpace(params.Q); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		where = append(where, "LOWER(name) LIKE $"+itoa(len(args)))
	}
	if params.Role != "" {
		args = append(args, string(params.Role))
		where = append(where, "role = $"+itoa(len(args)))
	}
	if app := strings.TrimSpace(params.ApplicationName); app != "" {
		args = append(args, app)
		where = append(where, "LOWER(application_name) = LOWER($"+itoa(len(args))+")")
	}
	args = append(args, limit)
	limitPos := itoa(len(args))
	args = append(args, offset)
	offsetPos := itoa(len(args))

	query := `SELECT` + employeeColumns + ` FROM employees WHERE ` +
		strings.Join(where, " AND ") +
		` ORDER BY id LIMIT $` + limitPos + ` OFFSET $` + offsetPos

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "listing employees paginated")
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	row := tx.QueryRow(ctx, `SELECT`+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrNotFound
		}
		return employee.Employee{}, gerrors.Wrap(err, "fetching employee")
	}
	return e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, data employee.Employee) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO employees (name, designation, role, reports_to, manager_id, application_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING`+employeeColumns,
		data.Name(), data.Designation(), string(data.Role()), data.ReportsTo(), data.ManagerID(), data.ApplicationName(),
	)
	created, err := scanEmployee(row)
	if err != nil {
		return employee.Employee{}, gerrors.Wrap(err, "creating employee")
	}
	return created, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, data employee.Employee) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE employees
		SET name = $1, designation = $2, role = $3, reports_to = $4,
		    manager_id = $5, application_name = $6, updated_at = NOW()
		WHERE id = $7`,
		data.Name(), data.Designation(), string(data.Role()), data.ReportsTo(),
		data.ManagerID(), data.ApplicationName(), data.ID(),
	)
	if err != nil {
		return gerrors.Wrap(err, "updating employee")
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) DetachReports(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE employees SET reports_to = NULL WHERE reports_to = $1`, id); err != nil {
		return gerrors.Wrap(err, "detaching reports")
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return gerrors.Wrap(err, "deleting employee")
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrNotFound
	}
	return nil
}
