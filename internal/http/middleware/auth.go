package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pgat/internal/domain"
	"pgat/internal/services"
)

const principalKey = "principal"

// Auth valida el token Bearer y deja el principal en el contexto. Sin token
// válido la petición no avanza.
func Auth(secret string) gin.HandlerFunc {
	svc := services.AuthService{JWTSecret: secret}
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" || raw == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "token de autenticación requerido",
			})
			return
		}

		p, err := svc.ParseToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "token inválido o expirado",
			})
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// GetPrincipal devuelve el usuario autenticado de la petición.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// RequireRoles corta la petición cuando el tipo del principal no está en la
// lista permitida.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = true
	}
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok || !allowed[strings.ToLower(p.Tipo)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "no tiene permisos para acceder a este recurso",
			})
			return
		}
		c.Next()
	}
}
