package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-approval-api/internal/auth"
	"github.com/yukikurage/task-approval-api/internal/constants"
	apierrors "github.com/yukikurage/task-approval-api/internal/errors"
	"github.com/yukikurage/task-approval-api/internal/models"
	"github.com/yukikurage/task-approval-api/internal/services"
)

// RequireAuth accepts a bearer token first and falls back to the session cookie.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFromBearer(c, tokens)
		if !ok {
			identity, ok = identityFromSession(c)
		}
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		c.Set(constants.ContextKeyIdentity, identity)
		c.Next()
	}
}

func identityFromBearer(c *gin.Context, tokens *auth.TokenManager) (services.Identity, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || tokens == nil {
		return services.Identity{}, false
	}

	raw, err := auth.ExtractBearer(header)
	if err != nil {
		return services.Identity{}, false
	}
	claims, err := tokens.Validate(raw)
	if err != nil {
		return services.Identity{}, false
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return services.Identity{}, false
	}

	return services.Identity{ID: claims.UserID, Name: claims.Name, Role: role}, true
}

func identityFromSession(c *gin.Context) (services.Identity, bool) {
	if _, installed := c.Get(sessions.DefaultKey); !installed {
		return services.Identity{}, false
	}
	session := sessions.Default(c)

	userID, _ := session.Get(constants.SessionKeyUserID).(string)
	name, _ := session.Get(constants.SessionKeyName).(string)
	rawRole, _ := session.Get(constants.SessionKeyRole).(string)
	if userID == "" {
		return services.Identity{}, false
	}
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return services.Identity{}, false
	}

	return services.Identity{ID: userID, Name: name, Role: role}, true
}

// GetIdentity retrieves the authenticated identity from context
func GetIdentity(c *gin.Context) (services.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return services.Identity{}, false
	}
	identity, ok := value.(services.Identity)
	return identity, ok
}

// RequireRole rejects identities whose role is not listed.
func RequireRole(message string, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		apierrors.Forbidden(c, message)
	}
}
