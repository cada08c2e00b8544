package services

import (
	"context"
	"database/sql"
	"errors"

	"pgat/internal/domain"
	"pgat/internal/domain/models"
	"pgat/internal/repositories"
)

// PerfilService expone los perfiles tipados a partir del usuario dueño.
type PerfilService struct {
	PerfilRepo  repositories.PerfilRepository
	UsuarioRepo repositories.UsuarioRepository
	RequestID   string
}

// PerfilUsuario combina el usuario con su perfil tipado para las vistas de
// detalle de estudiantes y profesores.
type PerfilUsuario struct {
	Usuario    models.Usuario     `json:"usuario"`
	Estudiante *models.Estudiante `json:"estudiante,omitempty"`
	Profesor   *models.Profesor   `json:"profesor,omitempty"`
	Escuela    *models.Escuela    `json:"escuela,omitempty"`
}

func (s PerfilService) Obtener(ctx context.Context, usuarioID int64) (PerfilUsuario, error) {
	u, err := s.UsuarioRepo.GetByID(ctx, usuarioID)
	if errors.Is(err, sql.ErrNoRows) {
		return PerfilUsuario{}, domain.NotFoundError{Resource: "usuario"}
	}
	if err != nil {
		return PerfilUsuario{}, domain.InternalError{Err: err}
	}
	u.Password = ""

	out := PerfilUsuario{Usuario: u}
	switch u.Tipo {
	case models.TipoEstudiante:
		e, err := s.PerfilRepo.GetEstudianteByUsuario(ctx, usuarioID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return PerfilUsuario{}, domain.InternalError{Err: err}
		}
		if err == nil {
			out.Estudiante = &e
		}
	case models.TipoProfesor:
		p, err := s.PerfilRepo.GetProfesorByUsuario(ctx, usuarioID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return PerfilUsuario{}, domain.InternalError{Err: err}
		}
		if err == nil {
			out.Profesor = &p
		}
	case models.TipoEscuela:
		e, err := s.PerfilRepo.GetEscuelaByUsuario(ctx, usuarioID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return PerfilUsuario{}, domain.InternalError{Err: err}
		}
		if err == nil {
			out.Escuela = &e
		}
	}
	return out, nil
}

func (s PerfilService) CrearEstudiante(ctx context.Context, e models.Estudiante) (models.Estudiante, error) {
	switch {
	case e.UsuarioID <= 0:
		return models.Estudiante{}, domain.ValidationError{Field: "usuario_id", Msg: "es requerido"}
	case e.Carnet == "":
		return models.Estudiante{}, domain.ValidationError{Field: "carnet", Msg: "es requerido"}
	case e.Carrera == "":
		return models.Estudiante{}, domain.ValidationError{Field: "carrera", Msg: "es requerida"}
	case e.Nivel == "":
		return models.Estudiante{}, domain.ValidationError{Field: "nivel", Msg: "es requerido"}
	case e.Promedio < 0 || e.Promedio > 100:
		return models.Estudiante{}, domain.ValidationError{Field: "promedio", Msg: "debe estar entre 0 y 100"}
	}
	if _, err := s.UsuarioRepo.GetByID(ctx, e.UsuarioID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Estudiante{}, domain.NotFoundError{Resource: "usuario"}
		}
		return models.Estudiante{}, domain.InternalError{Err: err}
	}
	if _, err := s.PerfilRepo.GetEstudianteByUsuario(ctx, e.UsuarioID); err == nil {
		return models.Estudiante{}, domain.ValidationError{Field: "usuario_id", Msg: "ya tiene un perfil de estudiante"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.Estudiante{}, domain.InternalError{Err: err}
	}
	creado, err := s.PerfilRepo.CreateEstudiante(ctx, e)
	if err != nil {
		return models.Estudiante{}, domain.InternalError{Err: err}
	}
	return creado, nil
}

func (s PerfilService) ActualizarEstudiante(ctx context.Context, usuarioID int64, c repositories.EstudianteCambios) (models.Estudiante, error) {
	e, err := s.PerfilRepo.UpdateEstudiante(ctx, usuarioID, c)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Estudiante{}, domain.NotFoundError{Resource: "estudiante"}
	}
	if err != nil {
		return models.Estudiante{}, domain.InternalError{Err: err}
	}
	return e, nil
}

func (s PerfilService) EliminarEstudiante(ctx context.Context, usuarioID int64) error {
	ok, err := s.PerfilRepo.DeleteEstudiante(ctx, usuarioID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "estudiante"}
	}
	return nil
}

func (s PerfilService) CrearProfesor(ctx context.Context, p models.Profesor) (models.Profesor, error) {
	switch {
	case p.UsuarioID <= 0:
		return models.Profesor{}, domain.ValidationError{Field: "usuario_id", Msg: "es requerido"}
	case p.Departamento == "":
		return models.Profesor{}, domain.ValidationError{Field: "departamento", Msg: "es requerido"}
	}
	if _, err := s.UsuarioRepo.GetByID(ctx, p.UsuarioID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profesor{}, domain.NotFoundError{Resource: "usuario"}
		}
		return models.Profesor{}, domain.InternalError{Err: err}
	}
	if _, err := s.PerfilRepo.GetProfesorByUsuario(ctx, p.UsuarioID); err == nil {
		return models.Profesor{}, domain.ValidationError{Field: "usuario_id", Msg: "ya tiene un perfil de profesor"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.Profesor{}, domain.InternalError{Err: err}
	}
	creado, err := s.PerfilRepo.CreateProfesor(ctx, p)
	if err != nil {
		return models.Profesor{}, domain.InternalError{Err: err}
	}
	return creado, nil
}

func (s PerfilService) EliminarProfesor(ctx context.Context, usuarioID int64) error {
	ok, err := s.PerfilRepo.DeleteProfesor(ctx, usuarioID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "profesor"}
	}
	return nil
}

func (s PerfilService) ActualizarProfesor(ctx context.Context, usuarioID int64, c repositories.ProfesorCambios) (models.Profesor, error) {
	p, err := s.PerfilRepo.UpdateProfesor(ctx, usuarioID, c)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profesor{}, domain.NotFoundError{Resource: "profesor"}
	}
	if err != nil {
		return models.Profesor{}, domain.InternalError{Err: err}
	}
	return p, nil
}

func (s PerfilService) ActualizarEscuela(ctx context.Context, usuarioID int64, c repositories.EscuelaCambios) (models.Escuela, error) {
	e, err := s.PerfilRepo.UpdateEscuela(ctx, usuarioID, c)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Escuela{}, domain.NotFoundError{Resource: "escuela"}
	}
	if err != nil {
		return models.Escuela{}, domain.InternalError{Err: err}
	}
	return e, nil
}
