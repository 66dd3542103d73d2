package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"notemark/apperr"
	"notemark/model"
	"notemark/utils"
)

const identityKey = "identity"

// Authenticator resolves a bearer token to the user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Identity, error)
}

// RequireAuth rejects the request with 401 unless it carries a valid
// bearer token for an existing user.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.Fail(c, apperr.Unauthorized("Not authorized - no token provided"))
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.Fail(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth attaches the identity when the token is valid and carries on
// without one otherwise.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if identity, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the identity set by RequireAuth or OptionalAuth.
func CurrentUser(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return model.Identity{}, false
	}
	identity, ok := v.(model.Identity)
	return identity, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[7:])
	return token, token != ""
}
