package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pgat/internal/http/middleware"
	"pgat/internal/services"
)

// Perfil del administrador autenticado.

func GetProfile(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "sesión no válida")
		return
	}
	out, err := perfilService(c).Obtener(c.Request.Context(), p.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, out, "perfil obtenido correctamente")
}

func UpdateProfile(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "sesión no válida")
		return
	}
	var in services.ActualizarUsuarioInput
	if !BindJSONOrError(c, &in) {
		return
	}
	// El estado no se cambia desde el perfil propio.
	in.Estado = nil
	in.Password = nil

	u, err := usuarioService(c).Actualizar(c.Request.Context(), p.ID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, u, "perfil actualizado correctamente")
}

func ChangeProfilePassword(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "sesión no válida")
		return
	}
	var in struct {
		Actual string `json:"currentPassword" binding:"required"`
		Nueva  string `json:"newPassword" binding:"required"`
	}
	if !BindJSONOrError(c, &in) {
		return
	}
	if err := usuarioService(c).CambiarPassword(c.Request.Context(), p.ID, in.Actual, in.Nueva); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, nil, "contraseña actualizada correctamente")
}
