package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intdb "pgat/internal/db"
	"pgat/internal/domain"
	"pgat/internal/domain/models"
	"pgat/internal/repositories"
	"pgat/internal/utils"
)

type OfertaService struct {
	OfertaRepo repositories.OfertaRepository
	RequestID  string
}

func tipoOfertaValido(tipo string) bool {
	switch tipo {
	case models.OfertaAsistencia, models.OfertaTutoria, models.OfertaProyecto:
		return true
	}
	return false
}

type CrearOfertaInput struct {
	Nombre           string  `json:"nombre" binding:"required"`
	Tipo             string  `json:"tipo" binding:"required"`
	Descripcion      string  `json:"descripcion"`
	Vacantes         int     `json:"vacantes"`
	HorasSemana      int     `json:"horas_semana"`
	FechaInicio      string  `json:"fecha_inicio"`
	FechaFin         string  `json:"fecha_fin"`
	EscuelaID        *int64  `json:"escuela_id"`
	ProfesorID       *int64  `json:"profesor_id"`
	PromedioMinimo   float64 `json:"promedio_minimo"`
	CursosRequeridos *string `json:"cursos_requeridos"`
	Beneficio        string  `json:"beneficio"`
}

// Crear registra una oferta; toda oferta nace pendiente de aprobación.
func (s OfertaService) Crear(ctx context.Context, in CrearOfertaInput) (models.Oferta, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return models.Oferta{}, domain.ValidationError{Field: "nombre", Msg: "es requerido"}
	}
	if !tipoOfertaValido(in.Tipo) {
		return models.Oferta{}, domain.ValidationError{Field: "tipo", Msg: "debe ser Asistencia, Tutoría o Proyecto"}
	}
	if in.Vacantes <= 0 {
		return models.Oferta{}, domain.ValidationError{Field: "vacantes", Msg: "debe ser mayor que cero"}
	}

	o, err := s.OfertaRepo.Create(ctx, models.Oferta{
		Nombre:           strings.TrimSpace(in.Nombre),
		Tipo:             in.Tipo,
		Descripcion:      in.Descripcion,
		Vacantes:         in.Vacantes,
		HorasSemana:      in.HorasSemana,
		FechaInicio:      in.FechaInicio,
		FechaFin:         in.FechaFin,
		Estado:           models.OfertaPendiente,
		EscuelaID:        in.EscuelaID,
		ProfesorID:       in.ProfesorID,
		PromedioMinimo:   in.PromedioMinimo,
		CursosRequeridos: in.CursosRequeridos,
		Beneficio:        in.Beneficio,
	})
	if err != nil {
		return models.Oferta{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "ofertas", "crear", "oferta_id="+formatID(o.ID))
	return o, nil
}

func (s OfertaService) Obtener(ctx context.Context, id int64) (models.OfertaDetalle, error) {
	o, err := s.OfertaRepo.GetDetalleByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.OfertaDetalle{}, domain.NotFoundError{Resource: "oferta"}
	}
	if err != nil {
		return models.OfertaDetalle{}, domain.InternalError{Err: err}
	}
	return o, nil
}

type ListaOfertas struct {
	Items      []models.OfertaDetalle `json:"items"`
	Pagination intdb.Pagination       `json:"pagination"`
}

func (s OfertaService) Listar(ctx context.Context, f repositories.OfertaFiltro, page intdb.PageRequest) (ListaOfertas, error) {
	items, total, err := s.OfertaRepo.List(ctx, f, page, false)
	if err != nil {
		return ListaOfertas{}, domain.InternalError{Err: err}
	}
	return ListaOfertas{Items: items, Pagination: intdb.NewPagination(total, page)}, nil
}

// ListarPendientes es la bandeja de moderación: sólo ofertas en estado
// pendiente, con los mismos filtros opcionales del listado general.
func (s OfertaService) ListarPendientes(ctx context.Context, f repositories.OfertaFiltro, page intdb.PageRequest) (ListaOfertas, error) {
	items, total, err := s.OfertaRepo.List(ctx, f, page, true)
	if err != nil {
		return ListaOfertas{}, domain.InternalError{Err: err}
	}
	return ListaOfertas{Items: items, Pagination: intdb.NewPagination(total, page)}, nil
}

type ActualizarOfertaInput struct {
	Nombre           *string  `json:"nombre"`
	Tipo             *string  `json:"tipo"`
	Descripcion      *string  `json:"descripcion"`
	Vacantes         *int     `json:"vacantes"`
	HorasSemana      *int     `json:"horas_semana"`
	FechaInicio      *string  `json:"fecha_inicio"`
	FechaFin         *string  `json:"fecha_fin"`
	Estado           *string  `json:"estado"`
	PromedioMinimo   *float64 `json:"promedio_minimo"`
	CursosRequeridos *string  `json:"cursos_requeridos"`
	Beneficio        *string  `json:"beneficio"`
}

func (s OfertaService) Actualizar(ctx context.Context, id int64, in ActualizarOfertaInput) (models.Oferta, error) {
	if in.Tipo != nil && !tipoOfertaValido(*in.Tipo) {
		return models.Oferta{}, domain.ValidationError{Field: "tipo", Msg: "debe ser Asistencia, Tutoría o Proyecto"}
	}
	o, err := s.OfertaRepo.Update(ctx, id, repositories.OfertaCambios{
		Nombre:           in.Nombre,
		Tipo:             in.Tipo,
		Descripcion:      in.Descripcion,
		Vacantes:         in.Vacantes,
		HorasSemana:      in.HorasSemana,
		FechaInicio:      in.FechaInicio,
		FechaFin:         in.FechaFin,
		Estado:           in.Estado,
		PromedioMinimo:   in.PromedioMinimo,
		CursosRequeridos: in.CursosRequeridos,
		Beneficio:        in.Beneficio,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Oferta{}, domain.NotFoundError{Resource: "oferta"}
	}
	if err != nil {
		return models.Oferta{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "ofertas", "actualizar", "oferta_id="+formatID(id))
	return o, nil
}

// Aprobar mueve una oferta pendiente a activa. Si la oferta existe pero ya
// salió del estado pendiente, el resultado es un conflicto que nombra el
// estado actual; nunca una aprobación repetida.
func (s OfertaService) Aprobar(ctx context.Context, id int64) (models.Oferta, error) {
	o, err := s.transicionar(ctx, id, models.OfertaPendiente, models.OfertaActiva, nil)
	if err != nil {
		return models.Oferta{}, err
	}
	utils.LogEvent(s.RequestID, "ofertas", "aprobar", "oferta_id="+formatID(id))
	return o, nil
}

// Rechazar mueve una oferta pendiente a cancelada y conserva el motivo.
func (s OfertaService) Rechazar(ctx context.Context, id int64, motivo string) (models.Oferta, error) {
	var m *string
	if v := strings.TrimSpace(motivo); v != "" {
		m = &v
	}
	o, err := s.transicionar(ctx, id, models.OfertaPendiente, models.OfertaCancelada, m)
	if err != nil {
		return models.Oferta{}, err
	}
	utils.LogEvent(s.RequestID, "ofertas", "rechazar", "oferta_id="+formatID(id))
	return o, nil
}

func (s OfertaService) transicionar(ctx context.Context, id int64, desde, hacia string, motivo *string) (models.Oferta, error) {
	o, err := s.OfertaRepo.Transition(ctx, id, desde, hacia, motivo)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Oferta{}, domain.InternalError{Err: err}
	}

	// La transición condicional no tocó filas: o la oferta no existe, o ya
	// no está en el estado esperado.
	actual, getErr := s.OfertaRepo.GetByID(ctx, id)
	if errors.Is(getErr, sql.ErrNoRows) {
		return models.Oferta{}, domain.NotFoundError{Resource: "oferta"}
	}
	if getErr != nil {
		return models.Oferta{}, domain.InternalError{Err: getErr}
	}
	return models.Oferta{}, domain.ConflictError{Resource: "oferta", Current: actual.Estado}
}

func (s OfertaService) Eliminar(ctx context.Context, id int64) error {
	ok, err := s.OfertaRepo.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "oferta"}
	}
	utils.LogEvent(s.RequestID, "ofertas", "eliminar", "oferta_id="+formatID(id))
	return nil
}
