package enums

import "fmt"

// Permission is a capability string carried on roles and access tokens.
type Permission string

const (
	PermissionDeliveriesRead  Permission = "deliveries:read"
	PermissionDeliveriesWrite Permission = "deliveries:write"
	PermissionProductionRead  Permission = "production:read"
	PermissionProductionWrite Permission = "production:write"
	PermissionInventoryRead   Permission = "inventory:read"
	PermissionInventoryWrite  Permission = "inventory:write"
	PermissionCatalogWrite    Permission = "catalog:write"
	PermissionStoresWrite     Permission = "stores:write"
	PermissionCustomersWrite  Permission = "customers:write"
	PermissionUsersAdmin      Permission = "users:admin"
	PermissionAuditRead       Permission = "audit:read"
)

var validPermissions = []Permission{
	PermissionDeliveriesRead,
	PermissionDeliveriesWrite,
	PermissionProductionRead,
	PermissionProductionWrite,
	PermissionInventoryRead,
	PermissionInventoryWrite,
	PermissionCatalogWrite,
	PermissionStoresWrite,
	PermissionCustomersWrite,
	PermissionUsersAdmin,
	PermissionAuditRead,
}

// String implements fmt.Stringer.
func (v Permission) String() string {
	return string(v)
}

// IsValid reports whether the value is a known Permission.
func (v Permission) IsValid() bool {
	for _, candidate := range validPermissions {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParsePermission converts raw input into a Permission.
func ParsePermission(value string) (Permission, error) {
	for _, candidate := range validPermissions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid permission %q", value)
}

// AllPermissions returns every known permission; used to seed the admin role.
func AllPermissions() []Permission {
	out := make([]Permission, len(validPermissions))
	copy(out, validPermissions)
	return out
}
