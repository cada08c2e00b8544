package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pgat/internal/http/middleware"
	"pgat/internal/repositories"
	"pgat/internal/services"
)

func usuarioService(c *gin.Context) services.UsuarioService {
	return services.UsuarioService{
		UsuarioRepo: repositories.UsuarioRepository{},
		PerfilRepo:  repositories.PerfilRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
}

func GetUsuarios(c *gin.Context) {
	f := repositories.UsuarioFiltro{
		Tipo:   strings.TrimSpace(c.Query("tipo")),
		Estado: strings.TrimSpace(c.Query("estado")),
		Search: strings.TrimSpace(c.Query("search")),
	}
	out, err := usuarioService(c).Listar(c.Request.Context(), f, PageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, out, "usuarios obtenidos correctamente")
}

func GetUsuarioByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	u, err := usuarioService(c).Obtener(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, u, "usuario obtenido correctamente")
}

func CreateUsuario(c *gin.Context) {
	var in services.CrearUsuarioInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := usuarioService(c).Crear(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, u, "usuario creado correctamente")
}

func UpdateUsuario(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var in services.ActualizarUsuarioInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := usuarioService(c).Actualizar(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, u, "usuario actualizado correctamente")
}

// ChangeUsuarioStatus alterna o fija el estado activo/inactivo.
func ChangeUsuarioStatus(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var in struct {
		Estado string `json:"estado"`
	}
	// Cuerpo vacío significa alternar el estado actual.
	_ = c.ShouldBindJSON(&in)

	u, err := usuarioService(c).CambiarEstado(c.Request.Context(), id, in.Estado)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, u, "estado de usuario actualizado correctamente")
}

func DeleteUsuario(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	if err := usuarioService(c).Eliminar(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, nil, "usuario eliminado correctamente")
}
