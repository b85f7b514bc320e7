package employee

import (
	"strings"
	"time"
)

// Role is the supervisory role of an employee inside the reporting tree.
type Role string

const (
	RoleHeadLT   Role = "head_lt"
	RoleLT       Role = "lt"
	RoleALT      Role = "alt"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func ParseRole(v string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case RoleHeadLT:
		return RoleHeadLT, true
	case RoleLT:
		return RoleLT, true
	case RoleALT:
		return RoleALT, true
	case RoleManager:
		return RoleManager, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleEmployee:
		return RoleEmployee, true
	}
	return "", false
}

// Employee is a node in the reporting tree. ReportsTo is a back-reference to
// the direct supervisor, never an ownership edge; ManagerID is the
// denormalized nearest manager ancestor.
type Employee struct {
	id              int64
	name            string
	designation     string
	role            Role
	reportsTo       *int64
	managerID       *int64
	applicationName string
	createdAt       time.Time
	updatedAt       time.Time
}

func New(name, designation string, role Role, reportsTo, managerID *int64, applicationName string) Employee {
	return Employee{
		name:            strings.TrimSpace(name),
		designation:     strings.TrimSpace(designation),
		role:            role,
		reportsTo:       reportsTo,
		managerID:       managerID,
		applicationName: strings.TrimSpace(applicationName),
	}
}

func Hydrate(
	id int64,
	name string,
	designation string,
	role Role,
	reportsTo *int64,
	managerID *int64,
	applicationName string,
	createdAt time.Time,
	updatedAt time.Time,
) Employee {
	return Employee{
		id:              id,
		name:            name,
		designation:     designation,
		role:            role,
		reportsTo:       reportsTo,
		managerID:       managerID,
		applicationName: applicationName,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (e Employee) ID() int64               { return e.id }
func (e Employee) Name() string            { return e.name }
func (e Employee) Designation() string     { return e.designation }
func (e Employee) Role() Role              { return e.role }
func (e Employee) ReportsTo() *int64       { return e.reportsTo }
func (e Employee) ManagerID() *int64       { return e.managerID }
func (e Employee) ApplicationName() string { return e.applicationName }
func (e Employee) CreatedAt() time.Time    { return e.createdAt }
func (e Employee) UpdatedAt() time.Time    { return e.updatedAt }
func (e Employee) IsZero() bool            { return e.id == 0 && e.name == "" }

// WithReportsTo reassigns the supervisor edge.
func (e Employee) WithReportsTo(reportsTo *int64) Employee {
	e.reportsTo = reportsTo
	return e
}

func (e Employee) WithManagerID(managerID *int64) Employee {
	e.managerID = managerID
	return e
}
