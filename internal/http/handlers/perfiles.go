package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pgat/internal/domain/models"
	"pgat/internal/http/middleware"
	"pgat/internal/repositories"
	"pgat/internal/services"
)

func perfilService(c *gin.Context) services.PerfilService {
	return services.PerfilService{
		PerfilRepo:  repositories.PerfilRepository{},
		UsuarioRepo: repositories.UsuarioRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
}

// listarPorTipo lista usuarios de un tipo fijo con los filtros comunes.
func listarPorTipo(c *gin.Context, tipo, mensaje string) {
	f := repositories.UsuarioFiltro{
		Tipo:   tipo,
		Estado: strings.TrimSpace(c.Query("estado")),
		Search: strings.TrimSpace(c.Query("search")),
	}
	out, err := usuarioService(c).Listar(c.Request.Context(), f, PageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, out, mensaje)
}

func GetEstudiantes(c *gin.Context) {
	listarPorTipo(c, models.TipoEstudiante, "estudiantes obtenidos correctamente")
}

func GetEstudianteByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	p, err := perfilService(c).Obtener(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, p, "estudiante obtenido correctamente")
}

type crearEstudianteInput struct {
	UsuarioID       int64    `json:"usuario_id"`
	Carnet          string   `json:"carnet"`
	Carrera         string   `json:"carrera"`
	Nivel           string   `json:"nivel"`
	Promedio        float64  `json:"promedio"`
	CursosAprobados []string `json:"cursos_aprobados"`
	Habilidades     []string `json:"habilidades"`
}

func CreateEstudiante(c *gin.Context) {
	var in crearEstudianteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	e, err := perfilService(c).CrearEstudiante(c.Request.Context(), models.Estudiante{
		UsuarioID:       in.UsuarioID,
		Carnet:          strings.TrimSpace(in.Carnet),
		Carrera:         strings.TrimSpace(in.Carrera),
		Nivel:           strings.TrimSpace(in.Nivel),
		Promedio:        in.Promedio,
		CursosAprobados: in.CursosAprobados,
		Habilidades:     in.Habilidades,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, e, "estudiante creado correctamente")
}

func DeleteEstudiante(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	if err := perfilService(c).EliminarEstudiante(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, nil, "estudiante eliminado correctamente")
}

type actualizarEstudianteInput struct {
	Carrera         *string  `json:"carrera"`
	Nivel           *string  `json:"nivel"`
	Promedio        *float64 `json:"promedio"`
	CursosAprobados []string `json:"cursos_aprobados"`
	Habilidades     []string `json:"habilidades"`
}

func UpdateEstudiante(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var in actualizarEstudianteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	e, err := perfilService(c).ActualizarEstudiante(c.Request.Context(), id, repositories.EstudianteCambios{
		Carrera:         in.Carrera,
		Nivel:           in.Nivel,
		Promedio:        in.Promedio,
		CursosAprobados: in.CursosAprobados,
		Habilidades:     in.Habilidades,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, e, "estudiante actualizado correctamente")
}

func GetProfesores(c *gin.Context) {
	listarPorTipo(c, models.TipoProfesor, "profesores obtenidos correctamente")
}

func GetProfesorByID(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	p, err := perfilService(c).Obtener(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, p, "profesor obtenido correctamente")
}

type crearProfesorInput struct {
	UsuarioID    int64  `json:"usuario_id"`
	Departamento string `json:"departamento"`
	Especialidad string `json:"especialidad"`
	Telefono     string `json:"telefono"`
}

func CreateProfesor(c *gin.Context) {
	var in crearProfesorInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := perfilService(c).CrearProfesor(c.Request.Context(), models.Profesor{
		UsuarioID:    in.UsuarioID,
		Departamento: strings.TrimSpace(in.Departamento),
		Especialidad: strings.TrimSpace(in.Especialidad),
		Telefono:     strings.TrimSpace(in.Telefono),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, p, "profesor creado correctamente")
}

func DeleteProfesor(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	if err := perfilService(c).EliminarProfesor(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, nil, "profesor eliminado correctamente")
}

type actualizarProfesorInput struct {
	Departamento *string `json:"departamento"`
	Especialidad *string `json:"especialidad"`
	Telefono     *string `json:"telefono"`
}

func UpdateProfesor(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var in actualizarProfesorInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := perfilService(c).ActualizarProfesor(c.Request.Context(), id, repositories.ProfesorCambios{
		Departamento: in.Departamento,
		Especialidad: in.Especialidad,
		Telefono:     in.Telefono,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, p, "profesor actualizado correctamente")
}
