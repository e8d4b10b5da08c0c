// Package domain contains core types for unified owner/employee auth.
package domain

import (
	"github.com/bwmarrin/snowflake"

	employeedomain "github.com/enotehq/enote/internal/employee/domain"
	ownerdomain "github.com/enotehq/enote/internal/owner/domain"
)

// Role discriminates the two actor kinds sharing one token namespace.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleEmployee Role = "employee"
)

// Actor is the resolved caller behind a bearer token. Exactly one of Owner
// or Employee is set, matching Role.
type Actor struct {
	Role     Role
	Owner    *ownerdomain.Owner
	Employee *employeedomain.Employee
}

// OwnerID returns the owner scope the actor operates under: the owner's own
// id, or the employing owner's id for an employee.
func (a Actor) OwnerID() snowflake.ID {
	if a.Role == RoleEmployee && a.Employee != nil {
		return a.Employee.OwnerID
	}
	if a.Owner != nil {
		return a.Owner.ID
	}
	return 0
}

// SellerEmployeeID returns the employee id when an employee acts as seller,
// nil when the owner sells directly.
func (a Actor) SellerEmployeeID() *snowflake.ID {
	if a.Role == RoleEmployee && a.Employee != nil {
		id := a.Employee.ID
		return &id
	}
	return nil
}

// SellerName returns the display name recorded on invoices issued by the actor.
func (a Actor) SellerName() string {
	switch a.Role {
	case RoleEmployee:
		if a.Employee != nil {
			return a.Employee.Name
		}
	case RoleOwner:
		if a.Owner != nil {
			return a.Owner.Name
		}
	}
	return ""
}

// IsOwner reports whether the actor is an owner account.
func (a Actor) IsOwner() bool { return a.Role == RoleOwner }
