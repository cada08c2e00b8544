package services

import (
	"context"
	"database/sql"
	"errors"

	intdb "pgat/internal/db"
	"pgat/internal/domain"
	"pgat/internal/domain/models"
	"pgat/internal/repositories"
	"pgat/internal/utils"
)

// EvaluacionService cubre las evaluaciones de desempeño: se crean y se
// consultan, nunca se editan ni se eliminan.
type EvaluacionService struct {
	EvaluacionRepo  repositories.EvaluacionRepository
	PostulacionRepo repositories.PostulacionRepository
	RequestID       string
}

type CrearEvaluacionInput struct {
	PostulacionID int64   `json:"postulacion_id" binding:"required"`
	Comentario    string  `json:"comentario"`
	Calificacion  float64 `json:"calificacion"`
}

func (s EvaluacionService) Crear(ctx context.Context, in CrearEvaluacionInput) (models.Evaluacion, error) {
	if in.Calificacion < 0 || in.Calificacion > 100 {
		return models.Evaluacion{}, domain.ValidationError{Field: "calificacion", Msg: "debe estar entre 0 y 100"}
	}
	if _, err := s.PostulacionRepo.GetByID(ctx, in.PostulacionID); errors.Is(err, sql.ErrNoRows) {
		return models.Evaluacion{}, domain.NotFoundError{Resource: "postulación"}
	} else if err != nil {
		return models.Evaluacion{}, domain.InternalError{Err: err}
	}

	e, err := s.EvaluacionRepo.Create(ctx, models.Evaluacion{
		PostulacionID: in.PostulacionID,
		Comentario:    in.Comentario,
		Calificacion:  in.Calificacion,
	})
	if err != nil {
		return models.Evaluacion{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "evaluaciones", "crear", "evaluacion_id="+formatID(e.ID))
	return e, nil
}

func (s EvaluacionService) Obtener(ctx context.Context, id int64) (models.Evaluacion, error) {
	e, err := s.EvaluacionRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Evaluacion{}, domain.NotFoundError{Resource: "evaluación"}
	}
	if err != nil {
		return models.Evaluacion{}, domain.InternalError{Err: err}
	}
	return e, nil
}

func (s EvaluacionService) Listar(ctx context.Context) ([]models.Evaluacion, error) {
	items, err := s.EvaluacionRepo.ListAll(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return items, nil
}

// RegistroHorasService administra las horas reportadas por los asistentes.
type RegistroHorasService struct {
	HorasRepo repositories.RegistroHorasRepository
	RequestID string
}

type CrearHorasInput struct {
	PostulacionID int64   `json:"postulacion_id" binding:"required"`
	Fecha         string  `json:"fecha" binding:"required"`
	Horas         float64 `json:"horas" binding:"required"`
	Descripcion   string  `json:"descripcion"`
}

func (s RegistroHorasService) Crear(ctx context.Context, in CrearHorasInput) (models.RegistroHoras, error) {
	if in.Horas <= 0 || in.Horas > 24 {
		return models.RegistroHoras{}, domain.ValidationError{Field: "horas", Msg: "debe estar entre 0 y 24"}
	}
	h, err := s.HorasRepo.Create(ctx, models.RegistroHoras{
		PostulacionID: in.PostulacionID,
		Fecha:         in.Fecha,
		Horas:         in.Horas,
		Descripcion:   in.Descripcion,
		Estado:        models.HorasPendiente,
	})
	if err != nil {
		return models.RegistroHoras{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "horas", "crear", "registro_id="+formatID(h.ID))
	return h, nil
}

func (s RegistroHorasService) Obtener(ctx context.Context, id int64) (models.RegistroHoras, error) {
	h, err := s.HorasRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RegistroHoras{}, domain.NotFoundError{Resource: "registro de horas"}
	}
	if err != nil {
		return models.RegistroHoras{}, domain.InternalError{Err: err}
	}
	return h, nil
}

type ListaHoras struct {
	Items      []models.RegistroHoras `json:"items"`
	Pagination intdb.Pagination       `json:"pagination"`
}

func (s RegistroHorasService) Listar(ctx context.Context, f repositories.RegistroHorasFiltro, page intdb.PageRequest) (ListaHoras, error) {
	items, total, err := s.HorasRepo.List(ctx, f, page)
	if err != nil {
		return ListaHoras{}, domain.InternalError{Err: err}
	}
	return ListaHoras{Items: items, Pagination: intdb.NewPagination(total, page)}, nil
}

func estadoHorasValido(estado string) bool {
	switch estado {
	case models.HorasPendiente, models.HorasAprobado, models.HorasRechazado:
		return true
	}
	return false
}

type ActualizarHorasInput struct {
	Estado      *string `json:"estado"`
	Descripcion *string `json:"descripcion"`
}

func (s RegistroHorasService) Actualizar(ctx context.Context, id int64, in ActualizarHorasInput) (models.RegistroHoras, error) {
	if in.Estado != nil && !estadoHorasValido(*in.Estado) {
		return models.RegistroHoras{}, domain.ValidationError{Field: "estado", Msg: "debe ser pendiente, aprobado o rechazado"}
	}
	h, err := s.HorasRepo.Update(ctx, id, repositories.RegistroHorasCambios{
		Estado:      in.Estado,
		Descripcion: in.Descripcion,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.RegistroHoras{}, domain.NotFoundError{Resource: "registro de horas"}
	}
	if err != nil {
		return models.RegistroHoras{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "horas", "actualizar", "registro_id="+formatID(id))
	return h, nil
}

func (s RegistroHorasService) Eliminar(ctx context.Context, id int64) error {
	ok, err := s.HorasRepo.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "registro de horas"}
	}
	utils.LogEvent(s.RequestID, "horas", "eliminar", "registro_id="+formatID(id))
	return nil
}

// BeneficioService administra los beneficios económicos ligados a una
// postulación aprobada.
type BeneficioService struct {
	BeneficioRepo repositories.BeneficioRepository
	RequestID     string
}

func tipoBeneficioValido(tipo string) bool {
	switch tipo {
	case models.BeneficioExoneracion, models.BeneficioPago, models.BeneficioMixto:
		return true
	}
	return false
}

type CrearBeneficioInput struct {
	PostulacionID         int64    `json:"postulacion_id" binding:"required"`
	Tipo                  string   `json:"tipo" binding:"required"`
	PorcentajeExoneracion *float64 `json:"porcentaje_exoneracion"`
	MontoPorHora          *float64 `json:"monto_por_hora"`
	TotalHoras            *float64 `json:"total_horas"`
	MontoTotal            *float64 `json:"monto_total"`
}

func (s BeneficioService) Crear(ctx context.Context, in CrearBeneficioInput) (models.BeneficioEconomico, error) {
	if !tipoBeneficioValido(in.Tipo) {
		return models.BeneficioEconomico{}, domain.ValidationError{Field: "tipo", Msg: "debe ser exoneracion, pago o mixto"}
	}
	b, err := s.BeneficioRepo.Create(ctx, models.BeneficioEconomico{
		PostulacionID:         in.PostulacionID,
		Tipo:                  in.Tipo,
		PorcentajeExoneracion: in.PorcentajeExoneracion,
		MontoPorHora:          in.MontoPorHora,
		TotalHoras:            in.TotalHoras,
		MontoTotal:            in.MontoTotal,
		Estado:                models.BeneficioPendiente,
	})
	if err != nil {
		return models.BeneficioEconomico{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "beneficios", "crear", "beneficio_id="+formatID(b.ID))
	return b, nil
}

func (s BeneficioService) Obtener(ctx context.Context, id int64) (models.BeneficioEconomico, error) {
	b, err := s.BeneficioRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BeneficioEconomico{}, domain.NotFoundError{Resource: "beneficio"}
	}
	if err != nil {
		return models.BeneficioEconomico{}, domain.InternalError{Err: err}
	}
	return b, nil
}

type ListaBeneficios struct {
	Items      []models.BeneficioEconomico `json:"items"`
	Pagination intdb.Pagination            `json:"pagination"`
}

func (s BeneficioService) Listar(ctx context.Context, f repositories.BeneficioFiltro, page intdb.PageRequest) (ListaBeneficios, error) {
	items, total, err := s.BeneficioRepo.List(ctx, f, page)
	if err != nil {
		return ListaBeneficios{}, domain.InternalError{Err: err}
	}
	return ListaBeneficios{Items: items, Pagination: intdb.NewPagination(total, page)}, nil
}

type ActualizarBeneficioInput struct {
	Tipo                  *string  `json:"tipo"`
	PorcentajeExoneracion *float64 `json:"porcentaje_exoneracion"`
	MontoPorHora          *float64 `json:"monto_por_hora"`
	TotalHoras            *float64 `json:"total_horas"`
	MontoTotal            *float64 `json:"monto_total"`
	Estado                *string  `json:"estado"`
}

func (s BeneficioService) Actualizar(ctx context.Context, id int64, in ActualizarBeneficioInput) (models.BeneficioEconomico, error) {
	if in.Tipo != nil && !tipoBeneficioValido(*in.Tipo) {
		return models.BeneficioEconomico{}, domain.ValidationError{Field: "tipo", Msg: "debe ser exoneracion, pago o mixto"}
	}
	b, err := s.BeneficioRepo.Update(ctx, id, repositories.BeneficioCambios{
		Tipo:                  in.Tipo,
		PorcentajeExoneracion: in.PorcentajeExoneracion,
		MontoPorHora:          in.MontoPorHora,
		TotalHoras:            in.TotalHoras,
		MontoTotal:            in.MontoTotal,
		Estado:                in.Estado,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.BeneficioEconomico{}, domain.NotFoundError{Resource: "beneficio"}
	}
	if err != nil {
		return models.BeneficioEconomico{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "beneficios", "actualizar", "beneficio_id="+formatID(id))
	return b, nil
}

func (s BeneficioService) Eliminar(ctx context.Context, id int64) error {
	ok, err := s.BeneficioRepo.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "beneficio"}
	}
	utils.LogEvent(s.RequestID, "beneficios", "eliminar", "beneficio_id="+formatID(id))
	return nil
}

// ProyectoService administra los proyectos de investigación ligados a ofertas.
type ProyectoService struct {
	ProyectoRepo repositories.ProyectoRepository
	OfertaRepo   repositories.OfertaRepository
	RequestID    string
}

type CrearProyectoInput struct {
	OfertaID            int64  `json:"oferta_id" binding:"required"`
	AreaInvestigacion   string `json:"area_investigacion" binding:"required"`
	Objetivos           string `json:"objetivos"`
	ResultadosEsperados string `json:"resultados_esperados"`
}

func (s ProyectoService) Crear(ctx context.Context, in CrearProyectoInput) (models.ProyectoInvestigacion, error) {
	if _, err := s.OfertaRepo.GetByID(ctx, in.OfertaID); errors.Is(err, sql.ErrNoRows) {
		return models.ProyectoInvestigacion{}, domain.NotFoundError{Resource: "oferta"}
	} else if err != nil {
		return models.ProyectoInvestigacion{}, domain.InternalError{Err: err}
	}
	p, err := s.ProyectoRepo.Create(ctx, models.ProyectoInvestigacion{
		OfertaID:            in.OfertaID,
		AreaInvestigacion:   in.AreaInvestigacion,
		Objetivos:           in.Objetivos,
		ResultadosEsperados: in.ResultadosEsperados,
	})
	if err != nil {
		return models.ProyectoInvestigacion{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "proyectos", "crear", "proyecto_id="+formatID(p.ID))
	return p, nil
}

func (s ProyectoService) Obtener(ctx context.Context, id int64) (models.ProyectoInvestigacion, error) {
	p, err := s.ProyectoRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ProyectoInvestigacion{}, domain.NotFoundError{Resource: "proyecto"}
	}
	if err != nil {
		return models.ProyectoInvestigacion{}, domain.InternalError{Err: err}
	}
	return p, nil
}

func (s ProyectoService) Listar(ctx context.Context) ([]models.ProyectoInvestigacion, error) {
	items, err := s.ProyectoRepo.ListAll(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return items, nil
}

type ActualizarProyectoInput struct {
	AreaInvestigacion   *string `json:"area_investigacion"`
	Objetivos           *string `json:"objetivos"`
	ResultadosEsperados *string `json:"resultados_esperados"`
}

func (s ProyectoService) Actualizar(ctx context.Context, id int64, in ActualizarProyectoInput) (models.ProyectoInvestigacion, error) {
	p, err := s.ProyectoRepo.Update(ctx, id, repositories.ProyectoCambios{
		AreaInvestigacion:   in.AreaInvestigacion,
		Objetivos:           in.Objetivos,
		ResultadosEsperados: in.ResultadosEsperados,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.ProyectoInvestigacion{}, domain.NotFoundError{Resource: "proyecto"}
	}
	if err != nil {
		return models.ProyectoInvestigacion{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "proyectos", "actualizar", "proyecto_id="+formatID(id))
	return p, nil
}

func (s ProyectoService) Eliminar(ctx context.Context, id int64) error {
	ok, err := s.ProyectoRepo.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "proyecto"}
	}
	utils.LogEvent(s.RequestID, "proyectos", "eliminar", "proyecto_id="+formatID(id))
	return nil
}
