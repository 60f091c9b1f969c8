package role

import "strings"

type Role string

const (
	Customer Role = "CUSTOMER"
	Provider Role = "PROVIDER"
	Admin    Role = "ADMIN"
)

// Parse accepts the stored names plus the legacy USER alias for customers.
func Parse(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CUSTOMER", "USER":
		return Customer, true
	case "PROVIDER":
		return Provider, true
	case "ADMIN":
		return Admin, true
	}
	return "", false
}

func (r Role) Valid() bool {
	switch r {
	case Customer, Provider, Admin:
		return true
	}
	return false
}

// In reports whether r is one of allowed.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Registrable reports whether a role may be chosen at self registration.
func (r Role) Registrable() bool {
	switch r {
	case Customer, Provider:
		return true
	case Admin:
		return false
	}
	return false
}
