package enums

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

var validRoles = []Role{
	RoleCustomer,
	RoleAdmin,
}

// Capability names a privileged action checked at each admin-gated operation.
type Capability string

const (
	CapabilityConfirmPayment Capability = "orders.confirm_payment"
	CapabilityManageDelivery Capability = "orders.manage_delivery"
	CapabilityDeleteOrder    Capability = "orders.delete"
	CapabilityViewAllOrders  Capability = "orders.view_all"
	CapabilityManageCatalog  Capability = "catalog.manage"
	CapabilityManageSettings Capability = "settings.manage"
	CapabilityManageUploads  Capability = "uploads.manage"
	CapabilityReadInbox      Capability = "notifications.read"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapabilityConfirmPayment,
		CapabilityManageDelivery,
		CapabilityDeleteOrder,
		CapabilityViewAllOrders,
		CapabilityManageCatalog,
		CapabilityManageSettings,
		CapabilityManageUploads,
		CapabilityReadInbox,
	},
	RoleCustomer: {},
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// Allows reports whether the role grants the capability. Unknown roles grant nothing.
func (r Role) Allows(capability Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == capability {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role. Matching is case-insensitive.
func ParseRole(value string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
