package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pgat/internal/config"
	"pgat/internal/domain"
	"pgat/internal/http/middleware"
	"pgat/internal/repositories"
	"pgat/internal/services"
)

var authEnv config.Env

// SetAuthEnv fija la configuración usada para firmar tokens.
func SetAuthEnv(env config.Env) {
	authEnv = env
}

func authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		UsuarioRepo: repositories.UsuarioRepository{},
		JWTSecret:   authEnv.JWTSecret,
		JWTTTL:      authEnv.JWTTTL,
		RequestID:   middleware.GetRequestID(c),
	}
}

func Login(c *gin.Context) {
	var in services.LoginInput
	if !BindJSONOrError(c, &in) {
		return
	}

	out, err := authService(c).Login(c.Request.Context(), in)
	if err != nil {
		if domain.IsInternal(err) {
			RespondDomainError(c, err)
			return
		}
		// Credenciales malas siempre responden 401, sin detallar la causa.
		RespondError(c, http.StatusUnauthorized, "credenciales inválidas")
		return
	}
	Respond(c, http.StatusOK, out, "inicio de sesión exitoso")
}

// Logout es una operación del lado del cliente con JWT sin estado; el
// endpoint existe para que el frontend tenga un punto único de salida.
func Logout(c *gin.Context) {
	Respond(c, http.StatusOK, gin.H{"loggedOutAt": time.Now()}, "sesión cerrada correctamente")
}
