package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pgat/internal/http/middleware"
	"pgat/internal/repositories"
	"pgat/internal/services"
)

func ofertaService(c *gin.Context) services.OfertaService {
	return services.OfertaService{
		OfertaRepo: repositories.OfertaRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
}

func ofertaFiltroFromQuery(c *gin.Context) (repositories.OfertaFiltro, error) {
	escuelaID, err := ParseOptionalID(c, "escuela_id")
	if err != nil {
		return repositories.OfertaFiltro{}, err
	}
	profesorID, err := ParseOptionalID(c, "profesor_id")
	if err != nil {
		return repositories.OfertaFiltro{}, err
	}
	return repositories.OfertaFiltro{
		Tipo:       strings.TrimSpace(c.Query("tipo")),
		Estado:     strings.TrimSpace(c.Query("estado")),
		EscuelaID:  escuelaID,
		ProfesorID: profesorID,
		Search:     strings.TrimSpace(c.Query("search")),
	}, nil
}

func GetOfertas(c *gin.Context) {
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
	Respond(c, http.StatusOK, out, "ofertas obtenidas correctamente")
}

func GetOfertaByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	o, err := ofertaService(c).Obtener(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, o, "oferta obtenida correctamente")
}

func CreateOferta(c *gin.Context) {
	var in services.CrearOfertaInput
	if !BindJSONOrError(c, &in) {
		return
	}
	o, err := ofertaService(c).Crear(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, o, "oferta creada correctamente")
}

func UpdateOferta(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var in services.ActualizarOfertaInput
	if !BindJSONOrError(c, &in) {
		return
	}
	o, err := ofertaService(c).Actualizar(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, o, "oferta actualizada correctamente")
}

func DeleteOferta(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	if err := ofertaService(c).Eliminar(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, nil, "oferta eliminada correctamente")
}
