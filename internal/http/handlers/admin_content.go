package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Bandeja de moderación del panel administrativo: las "publicaciones" son
// ofertas académicas y su aprobación las vuelve visibles para estudiantes.

func GetPendingContent(c *gin.Context) {
	f, err := ofertaFiltroFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out, err := ofertaService(c).ListarPendientes(c.Request.Context(), f, PageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, out, "contenido pendiente obtenido correctamente")
}

func GetAllContent(c *gin.Context) {
	f, err := ofertaFiltroFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out, err := ofertaService(c).Listar(c.Request.Context(), f, PageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, out, "contenido obtenido correctamente")
}

func GetContentByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	o, err := ofertaService(c).Obtener(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, o, "contenido obtenido correctamente")
}

func ApproveContent(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	o, err := ofertaService(c).Aprobar(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, o, "oferta aprobada correctamente")
}

func RejectContent(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var in struct {
		Motivo string `json:"motivo"`
	}
	// El motivo es opcional; un cuerpo vacío rechaza sin comentario.
	_ = c.ShouldBindJSON(&in)

	o, err := ofertaService(c).Rechazar(c.Request.Context(), id, in.Motivo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, o, "oferta rechazada correctamente")
}
