package auth

import "github.com/gin-gonic/gin"

// Role is the coarse permission level attached to every caller.
type Role string

const (
	RoleUser      Role = "user"
	RoleTurfOwner Role = "turf_owner"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleUser, RoleTurfOwner, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated caller passed explicitly into services.
// Services trust it and do not re-authenticate.
type Identity struct {
	UserID string
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetRole returns the authenticated user's role, defaulting to RoleUser.
func GetRole(c *gin.Context) Role {
	if v, ok := c.Get("userRole"); ok {
		if s, ok := v.(string); ok && ValidRole(s) {
			return Role(s)
		}
	}
	return RoleUser
}

// GetIdentity assembles the caller identity from the request context.
func GetIdentity(c *gin.Context) Identity {
	return Identity{
		UserID: GetUserID(c),
		Role:   GetRole(c),
	}
}
