package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-identity/internal/domain"
	"storefront-identity/internal/token"
)

// The storefront clients send the bearer token in a plain `token` header
// rather than `Authorization: Bearer`; kept for compatibility.
const tokenHeader = "token"

const principalKey = "principal"

// Principal is the resolved identity attached to the request context by the
// user gate.
type Principal struct {
	User *domain.User
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, token")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireUser resolves the bearer token into a user principal. The token
// signature alone is not enough: the subject is re-checked against the store
// so a deleted account's old token stops working here.
func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := h.tokens.Verify(c.GetHeader(tokenHeader))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized Login Again"})
			return
		}
		if token.IsAdminSubject(subject) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized Login Again"})
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), subject)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account no longer exists"})
				return
			}
			h.logger.Errorf("resolve user principal: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}

		c.Set(principalKey, &Principal{User: user})
		c.Next()
	}
}

// requireAdmin admits only tokens minted for the admin singleton principal.
// A valid customer token is still forbidden here.
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := h.tokens.Verify(c.GetHeader(tokenHeader))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized Login Again"})
			return
		}
		if !token.IsAdminSubject(subject) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Not Authorized Login Again"})
			return
		}

		c.Next()
	}
}

func currentPrincipal(c *gin.Context) *Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*Principal)
	return p
}
