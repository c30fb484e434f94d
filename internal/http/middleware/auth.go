package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dispatch-service/internal/auth"
	"dispatch-service/internal/model"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer"
	tokenQueryParam     = "token"
	principalContextKey = "principal"
)

// Auth accepts the token either as a Bearer header or, for websocket
// endpoints where browsers cannot set headers, as a ?token= query parameter.
func Auth(parser *auth.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err})
			return
		}
		claims, parseErr := parser.Parse(tokenStr)
		if parseErr != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		principal := model.Principal{
			UserID: claims.UserID,
			Role:   claims.Role,
			Phone:  claims.Phone,
		}
		c.Set(principalContextKey, principal)
		c.Next()
	}
}

func extractToken(c *gin.Context) (token, errMsg string) {
	raw := c.GetHeader(authorizationHeader)
	if raw == "" {
		if q := c.Query(tokenQueryParam); q != "" {
			return q, ""
		}
		return "", "authorization header missing"
	}
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) {
		return "", "invalid authorization header"
	}
	return parts[1], ""
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	if !ok {
		return model.Principal{}, false
	}
	return principal, true
}
