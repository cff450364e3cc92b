package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/types"
)

// UserKey is the gin context key holding the authenticated *types.User
const UserKey = "user"

var (
	ErrUnauthorized = errors.New("Unauthorized")
	ErrInvalidToken = errors.New("Invalid or expired token")
)

// UserResolver resolves an access token to the user owning it
type UserResolver interface {
	GetUser(ctx context.Context, token string) (*types.User, error)
}

// ValidateToken extracts the bearer token from the Authorization header and
// asks the provider for its user. The provider is not called when no token is present.
func ValidateToken(ctx context.Context, provider UserResolver, header string) (*types.User, error) {
	token := bearerToken(header)
	if token == "" {
		return nil, ErrUnauthorized
	}

	user, err := provider.GetUser(ctx, token)
	if err != nil || user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireUser rejects requests without a valid access token and stores the user in the context
func RequireUser(provider UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := ValidateToken(c.Request.Context(), provider, c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: err.Error()})
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireUser
func CurrentUser(c *gin.Context) (*types.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*types.User)
	return user, ok && user != nil
}
