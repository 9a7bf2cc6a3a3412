package entities

import "strings"

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleCSR    Role = "CSR"
	RoleVendor Role = "Vendor"
)

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "csr":
		return RoleCSR, true
	case "vendor":
		return RoleVendor, true
	default:
		return "", false
	}
}

// Actor is the authenticated caller. For vendors ID is the vendor id.
type Actor struct {
	Role Role
	ID   string
}
