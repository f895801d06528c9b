package api

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	HeaderUserRole = "X-User-Role"
	HeaderCondoID  = "X-Condo-ID"

	principalKey = "principal"
)

type Role string

const (
	RolePlatformAdmin Role = "platform_admin"
	RoleManagement    Role = "management"
	RoleSecurity      Role = "security"
	RoleResident      Role = "resident"
	RoleVisitor       Role = "visitor"
)

var knownRoles = []Role{RolePlatformAdmin, RoleManagement, RoleSecurity, RoleResident, RoleVisitor}

var ErrUnauthenticated = errors.New("request carries no resolvable principal")

// Principal is the caller as established by the identity provider. Only
// platform admins may have an empty CondoID.
type Principal struct {
	Role    Role
	CondoID string
}

// TenantResolver extracts the caller's role and condo from a request.
type TenantResolver interface {
	Resolve(r *http.Request) (Principal, error)
}

// HeaderResolver trusts identity headers set by the upstream auth proxy.
type HeaderResolver struct{}

func (HeaderResolver) Resolve(r *http.Request) (Principal, error) {
	role := Role(strings.TrimSpace(r.Header.Get(HeaderUserRole)))
	if !slices.Contains(knownRoles, role) {
		return Principal{}, ErrUnauthenticated
	}

	condoID := strings.TrimSpace(r.Header.Get(HeaderCondoID))
	if condoID == "" && role != RolePlatformAdmin {
		return Principal{}, ErrUnauthenticated
	}

	return Principal{Role: role, CondoID: condoID}, nil
}

// RequireTenant admits callers holding one of roles. Everyone except a
// platform admin is confined to the condo named in the :condo_id path
// parameter.
func RequireTenant(resolver TenantResolver, roles ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := resolver.Resolve(c.Request)
		if err != nil {
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required", nil)
			return
		}

		if !slices.Contains(roles, principal.Role) {
			respondError(c, http.StatusForbidden, ErrCodeForbidden, "Role not permitted", nil)
			return
		}

		if principal.Role != RolePlatformAdmin && principal.CondoID != c.Param("condo_id") {
			respondError(c, http.StatusForbidden, ErrCodeForbidden, "Access to this condo is not permitted", nil)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by RequireTenant.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
