package domain

import "slices"

// Principal captures the authenticated caller.
type Principal struct {
	ID      string
	Subject string
	Issuer  string
	Email   string
	Name    string
	Roles   []string
}

// HasRole checks if the principal carries any of the roles.
func (p Principal) HasRole(roles ...string) bool {
	for _, r := range p.Roles {
		if slices.Contains(roles, r) {
			return true
		}
	}
	return false
}
