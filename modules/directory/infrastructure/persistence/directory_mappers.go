package persistence

import (
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pulseworks/worktrack/modules/directory/domain/aggregates/employee"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		id              int64
		name            string
		designation     string
		role            string
		reportsTo       *int64
		managerID       *int64
		applicationName string
		createdAt       time.Time
		updatedAt       time.Time
	)
	if err := row.Scan(&id, &name, &designation, &role, &reportsTo, &managerID, &applicationName, &createdAt, &updatedAt); err != nil {
		return employee.Employee{}, err
	}
	parsedRole, ok := employee.ParseRole(role)
	if !ok {
		parsedRole = employee.RoleEmployee
	}
	return employee.Hydrate(id, name, designation, parsedRole, reportsTo, managerID, applicationName, createdAt, updatedAt), nil
}

func scanEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
