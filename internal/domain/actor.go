package domain

import "github.com/google/uuid"

// Role identifies which kind of user is acting.
type Role string

// List of possible actor roles
const (
	RoleDonor          Role = "donor"
	RoleRecipient      Role = "recipient"
	RoleLogisticsStaff Role = "logistics_staff"
)

var allowedRoles = [...]Role{RoleDonor, RoleRecipient, RoleLogisticsStaff}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Actor is the caller identity resolved once by the authentication
// layer and passed explicitly into the core. Business logic never
// reconstructs identity from nullable per-role fields.
type Actor struct {
	Role Role
	ID   uuid.UUID
}
