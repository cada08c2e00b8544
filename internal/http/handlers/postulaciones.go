package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pgat/internal/http/middleware"
	"pgat/internal/repositories"
	"pgat/internal/services"
)

func postulacionService(c *gin.Context) services.PostulacionService {
	return services.PostulacionService{
		PostulacionRepo: repositories.PostulacionRepository{},
		OfertaRepo:      repositories.OfertaRepository{},
		RequestID:       middleware.GetRequestID(c),
	}
}

func GetPostulaciones(c *gin.Context) {
	estudianteID, err := ParseOptionalID(c, "estudiante_id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ofertaID, err := ParseOptionalID(c, "oferta_id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	f := repositories.PostulacionFiltro{
		Estado:       strings.TrimSpace(c.Query("estado")),
		EstudianteID: estudianteID,
		OfertaID:     ofertaID,
	}
	out, err := postulacionService(c).Listar(c.Request.Context(), f, PageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, out, "postulaciones obtenidas correctamente")
}

func GetPostulacionByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	p, err := postulacionService(c).Obtener(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, p, "postulación obtenida correctamente")
}

func CreatePostulacion(c *gin.Context) {
	var in services.CrearPostulacionInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := postulacionService(c).Crear(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, p, "postulación creada correctamente")
}

func UpdatePostulacion(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var in services.ActualizarPostulacionInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := postulacionService(c).Actualizar(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, p, "postulación actualizada correctamente")
}

func DeletePostulacion(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	if err := postulacionService(c).Eliminar(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, nil, "postulación eliminada correctamente")
}
