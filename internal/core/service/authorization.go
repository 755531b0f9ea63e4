package service

import "github.com/casa-moreno/catalog-system/internal/core/domain"

// Both rules fail closed: a nil principal is an integration bug surfaced as
// ErrNoAuthenticatedPrincipal, not a routine denial.

// AuthorizeAdmin allows the action only for ADMIN principals.
func AuthorizeAdmin(principal *domain.Principal) error {
	if principal == nil {
		return domain.ErrNoAuthenticatedPrincipal
	}
	if !principal.IsAdmin() {
		return domain.ErrAccessDenied
	}
	return nil
}

// AuthorizeAdminOrOwner allows the action for ADMIN principals and for the
// owner of the target resource, identified by login handle.
func AuthorizeAdminOrOwner(principal *domain.Principal, ownerUsername string) error {
	if principal == nil {
		return domain.ErrNoAuthenticatedPrincipal
	}
	if principal.IsAdmin() || principal.Username == ownerUsername {
		return nil
	}
	return domain.ErrAccessDenied
}
