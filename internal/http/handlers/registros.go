package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pgat/internal/http/middleware"
	"pgat/internal/repositories"
	"pgat/internal/services"
)

// Evaluaciones: sólo alta y consulta, como define el flujo académico.

func evaluacionService(c *gin.Context) services.EvaluacionService {
	return services.EvaluacionService{
		EvaluacionRepo:  repositories.EvaluacionRepository{},
		PostulacionRepo: repositories.PostulacionRepository{},
		RequestID:       middleware.GetRequestID(c),
	}
}

func GetEvaluaciones(c *gin.Context) {
	items, err := evaluacionService(c).Listar(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, items, "evaluaciones obtenidas correctamente")
}

func GetEvaluacionByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	e, err := evaluacionService(c).Obtener(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, e, "evaluación obtenida correctamente")
}

func CreateEvaluacion(c *gin.Context) {
	var in services.CrearEvaluacionInput
	if !BindJSONOrError(c, &in) {
		return
	}
	e, err := evaluacionService(c).Crear(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, e, "evaluación creada correctamente")
}

// Registro de horas.

func horasService(c *gin.Context) services.RegistroHorasService {
	return services.RegistroHorasService{
		HorasRepo: repositories.RegistroHorasRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

func GetRegistrosHoras(c *gin.Context) {
	postulacionID, err := ParseOptionalID(c, "postulacion_id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	f := repositories.RegistroHorasFiltro{
		Estado:        strings.TrimSpace(c.Query("estado")),
		PostulacionID: postulacionID,
	}
	out, err := horasService(c).Listar(c.Request.Context(), f, PageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, out, "registros de horas obtenidos correctamente")
}

func GetRegistroHorasByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	h, err := horasService(c).Obtener(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, h, "registro de horas obtenido correctamente")
}

func CreateRegistroHoras(c *gin.Context) {
	var in services.CrearHorasInput
	if !BindJSONOrError(c, &in) {
		return
	}
	h, err := horasService(c).Crear(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, h, "registro de horas creado correctamente")
}

func UpdateRegistroHoras(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var in services.ActualizarHorasInput
	if !BindJSONOrError(c, &in) {
		return
	}
	h, err := horasService(c).Actualizar(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, h, "registro de horas actualizado correctamente")
}

func DeleteRegistroHoras(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	if err := horasService(c).Eliminar(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, nil, "registro de horas eliminado correctamente")
}

// Beneficios económicos.

func beneficioService(c *gin.Context) services.BeneficioService {
	return services.BeneficioService{
		BeneficioRepo: repositories.BeneficioRepository{},
		RequestID:     middleware.GetRequestID(c),
	}
}

func GetBeneficios(c *gin.Context) {
	postulacionID, err := ParseOptionalID(c, "postulacion_id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	f := repositories.BeneficioFiltro{
		Tipo:          strings.TrimSpace(c.Query("tipo")),
		Estado:        strings.TrimSpace(c.Query("estado")),
		PostulacionID: postulacionID,
	}
	out, err := beneficioService(c).Listar(c.Request.Context(), f, PageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, out, "beneficios obtenidos correctamente")
}

func GetBeneficioByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	b, err := beneficioService(c).Obtener(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, b, "beneficio obtenido correctamente")
}

func CreateBeneficio(c *gin.Context) {
	var in services.CrearBeneficioInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := beneficioService(c).Crear(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, b, "beneficio creado correctamente")
}

func UpdateBeneficio(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var in services.ActualizarBeneficioInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := beneficioService(c).Actualizar(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, b, "beneficio actualizado correctamente")
}

func DeleteBeneficio(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	if err := beneficioService(c).Eliminar(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, nil, "beneficio eliminado correctamente")
}

// Proyectos de investigación.

func proyectoService(c *gin.Context) services.ProyectoService {
	return services.ProyectoService{
		ProyectoRepo: repositories.ProyectoRepository{},
		OfertaRepo:   repositories.OfertaRepository{},
		RequestID:    middleware.GetRequestID(c),
	}
}

func GetProyectos(c *gin.Context) {
	items, err := proyectoService(c).Listar(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, items, "proyectos obtenidos correctamente")
}

func GetProyectoByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	p, err := proyectoService(c).Obtener(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, p, "proyecto obtenido correctamente")
}

func CreateProyecto(c *gin.Context) {
	var in services.CrearProyectoInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := proyectoService(c).Crear(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, p, "proyecto creado correctamente")
}

func UpdateProyecto(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var in services.ActualizarProyectoInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := proyectoService(c).Actualizar(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, p, "proyecto actualizado correctamente")
}

func DeleteProyecto(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	if err := proyectoService(c).Eliminar(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, nil, "proyecto eliminado correctamente")
}
