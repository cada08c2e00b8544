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

type PostulacionService struct {
	PostulacionRepo repositories.PostulacionRepository
	OfertaRepo      repositories.OfertaRepository
	RequestID       string
}

type CrearPostulacionInput struct {
	EstudianteID int64   `json:"estudiante_id" binding:"required"`
	OfertaID     int64   `json:"oferta_id" binding:"required"`
	Motivacion   *string `json:"motivacion"`
}

// Crear registra una postulación de un estudiante a una oferta activa.
func (s PostulacionService) Crear(ctx context.Context, in CrearPostulacionInput) (models.Postulacion, error) {
	oferta, err := s.OfertaRepo.GetByID(ctx, in.OfertaID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Postulacion{}, domain.NotFoundError{Resource: "oferta"}
	}
	if err != nil {
		return models.Postulacion{}, domain.InternalError{Err: err}
	}
	if oferta.Estado != models.OfertaActiva {
		return models.Postulacion{}, domain.ConflictError{Resource: "oferta", Current: oferta.Estado}
	}

	p, err := s.PostulacionRepo.Create(ctx, models.Postulacion{
		EstudianteID: in.EstudianteID,
		OfertaID:     in.OfertaID,
		Estado:       models.PostulacionPendiente,
		Motivacion:   in.Motivacion,
	})
	if err != nil {
		return models.Postulacion{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "postulaciones", "crear", "postulacion_id="+formatID(p.ID))
	return p, nil
}

func (s PostulacionService) Obtener(ctx context.Context, id int64) (models.Postulacion, error) {
	p, err := s.PostulacionRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Postulacion{}, domain.NotFoundError{Resource: "postulación"}
	}
	if err != nil {
		return models.Postulacion{}, domain.InternalError{Err: err}
	}
	return p, nil
}

type ListaPostulaciones struct {
	Items      []models.Postulacion `json:"items"`
	Pagination intdb.Pagination     `json:"pagination"`
}

func (s PostulacionService) Listar(ctx context.Context, f repositories.PostulacionFiltro, page intdb.PageRequest) (ListaPostulaciones, error) {
	items, total, err := s.PostulacionRepo.List(ctx, f, page)
	if err != nil {
		return ListaPostulaciones{}, domain.InternalError{Err: err}
	}
	return ListaPostulaciones{Items: items, Pagination: intdb.NewPagination(total, page)}, nil
}

func estadoPostulacionValido(estado string) bool {
	switch estado {
	case models.PostulacionPendiente, models.PostulacionAprobada,
		models.PostulacionRechazada, models.PostulacionCancelada:
		return true
	}
	return false
}

type ActualizarPostulacionInput struct {
	Estado     *string `json:"estado"`
	Comentario *string `json:"comentario"`
	Motivacion *string `json:"motivacion"`
}

func (s PostulacionService) Actualizar(ctx context.Context, id int64, in ActualizarPostulacionInput) (models.Postulacion, error) {
	if in.Estado != nil && !estadoPostulacionValido(*in.Estado) {
		return models.Postulacion{}, domain.ValidationError{Field: "estado", Msg: "estado de postulación desconocido"}
	}
	p, err := s.PostulacionRepo.Update(ctx, id, repositories.PostulacionCambios{
		Estado:     in.Estado,
		Comentario: in.Comentario,
		Motivacion: in.Motivacion,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Postulacion{}, domain.NotFoundError{Resource: "postulación"}
	}
	if err != nil {
		return models.Postulacion{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "postulaciones", "actualizar", "postulacion_id="+formatID(id))
	return p, nil
}

func (s PostulacionService) Eliminar(ctx context.Context, id int64) error {
	ok, err := s.PostulacionRepo.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "postulación"}
	}
	utils.LogEvent(s.RequestID, "postulaciones", "eliminar", "postulacion_id="+formatID(id))
	return nil
}
