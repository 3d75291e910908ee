package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by Auth
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextUserRole = "userRole"
)

var (
	errMissingToken = errors.New("se requiere el encabezado Authorization")
	errBadHeader    = errors.New("formato de Authorization inválido, use Bearer <token>")
	errExpiredToken = errors.New("la sesión expiró")
	errBadToken     = errors.New("token inválido")
)

// Claims are the fields the API signs into access tokens
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Auth rejects requests without a valid access token and stores the caller in the context
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c)
		if err == nil {
			var claims *Claims
			if claims, err = ParseToken(raw, jwtSecret); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUsername, claims.Username)
				c.Set(ContextUserRole, claims.Role)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	}
}

// bearerToken reads the token from the Authorization header. PDF and print links
// open in a new tab without headers, so ?token= is accepted when the header is absent.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if token := c.Query("token"); token != "" {
			return token, nil
		}
		return "", errMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", errBadHeader
	}
	return strings.TrimSpace(token), nil
}

// ParseToken verifies an HS256 access token
func ParseToken(raw, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, errExpiredToken
	case err != nil:
		return nil, errBadToken
	}
	return claims, nil
}

// GetUserID returns the authenticated user's id, or 0
func GetUserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

// GetUserRole returns the authenticated user's role, or ""
func GetUserRole(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}

func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == "admin"
}

// RequireAdmin limits a route to administrators; it must run after Auth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "No tienes acceso a esta sección",
			})
			return
		}
		c.Next()
	}
}
