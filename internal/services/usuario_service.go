package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	intdb "pgat/internal/db"
	"pgat/internal/domain"
	"pgat/internal/domain/models"
	"pgat/internal/repositories"
	"pgat/internal/utils"
)

// Sólo se admiten correos institucionales del TEC.
var correoInstitucional = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@(estudiante\.tec\.ac\.cr|itcr\.ac\.cr)$`)

const minPasswordLen = 6

type UsuarioService struct {
	UsuarioRepo repositories.UsuarioRepository
	PerfilRepo  repositories.PerfilRepository
	RequestID   string
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// PerfilInput agrupa los campos del perfil tipado que acompaña al usuario.
type PerfilInput struct {
	Carnet          string   `json:"carnet"`
	Carrera         string   `json:"carrera"`
	Nivel           string   `json:"nivel"`
	Promedio        float64  `json:"promedio"`
	CursosAprobados []string `json:"cursos_aprobados"`
	Habilidades     []string `json:"habilidades"`

	Departamento string `json:"departamento"`
	Especialidad string `json:"especialidad"`
	Telefono     string `json:"telefono"`

	Facultad    string `json:"facultad"`
	Responsable string `json:"responsable"`
	Descripcion string `json:"descripcion"`
}

type CrearUsuarioInput struct {
	Nombre   string       `json:"nombre" binding:"required"`
	Correo   string       `json:"correo" binding:"required"`
	Password string       `json:"password" binding:"required"`
	Tipo     string       `json:"tipo" binding:"required"`
	Perfil   *PerfilInput `json:"perfil"`
}

// Crear registra un usuario y, según su tipo, el perfil asociado.
func (s UsuarioService) Crear(ctx context.Context, in CrearUsuarioInput) (models.Usuario, error) {
	nombre := strings.TrimSpace(in.Nombre)
	correo := strings.TrimSpace(strings.ToLower(in.Correo))
	tipo := strings.TrimSpace(strings.ToLower(in.Tipo))

	if nombre == "" {
		return models.Usuario{}, domain.ValidationError{Field: "nombre", Msg: "es requerido"}
	}
	if !models.TipoValido(tipo) {
		return models.Usuario{}, domain.ValidationError{Field: "tipo", Msg: "debe ser estudiante, profesor, escuela o admin"}
	}
	if !correoInstitucional.MatchString(correo) {
		return models.Usuario{}, domain.ValidationError{Field: "correo", Msg: "debe ser un correo institucional"}
	}
	if len(in.Password) < minPasswordLen {
		return models.Usuario{}, domain.ValidationError{Field: "password", Msg: "debe tener al menos 6 caracteres"}
	}

	if _, err := s.UsuarioRepo.GetByCorreo(ctx, correo); err == nil {
		return models.Usuario{}, domain.ValidationError{Field: "correo", Msg: "ya se encuentra registrado"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.Usuario{}, domain.InternalError{Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Usuario{}, domain.InternalError{Err: err}
	}

	u, err := s.UsuarioRepo.Create(ctx, models.Usuario{
		Nombre:   nombre,
		Correo:   correo,
		Password: string(hash),
		Tipo:     tipo,
		Estado:   models.EstadoActivo,
	})
	if err != nil {
		return models.Usuario{}, domain.InternalError{Err: err}
	}

	if err := s.crearPerfil(ctx, u, in.Perfil); err != nil {
		return models.Usuario{}, err
	}

	u.Password = ""
	utils.LogEvent(s.RequestID, "usuarios", "crear", "usuario_id="+formatID(u.ID)+" tipo="+u.Tipo)
	return u, nil
}

func (s UsuarioService) crearPerfil(ctx context.Context, u models.Usuario, p *PerfilInput) error {
	if p == nil {
		p = &PerfilInput{}
	}
	var err error
	switch u.Tipo {
	case models.TipoEstudiante:
		_, err = s.PerfilRepo.CreateEstudiante(ctx, models.Estudiante{
			UsuarioID:       u.ID,
			Carnet:          strings.TrimSpace(p.Carnet),
			Carrera:         strings.TrimSpace(p.Carrera),
			Nivel:           strings.TrimSpace(p.Nivel),
			Promedio:        p.Promedio,
			CursosAprobados: p.CursosAprobados,
			Habilidades:     p.Habilidades,
		})
	case models.TipoProfesor:
		_, err = s.PerfilRepo.CreateProfesor(ctx, models.Profesor{
			UsuarioID:    u.ID,
			Departamento: strings.TrimSpace(p.Departamento),
			Especialidad: strings.TrimSpace(p.Especialidad),
			Telefono:     strings.TrimSpace(p.Telefono),
		})
	case models.TipoEscuela:
		_, err = s.PerfilRepo.CreateEscuela(ctx, models.Escuela{
			UsuarioID:   u.ID,
			Facultad:    strings.TrimSpace(p.Facultad),
			Responsable: strings.TrimSpace(p.Responsable),
			Telefono:    strings.TrimSpace(p.Telefono),
			Descripcion: strings.TrimSpace(p.Descripcion),
		})
	}
	if err != nil {
		return domain.InternalError{Msg: "no se pudo crear el perfil del usuario", Err: err}
	}
	return nil
}

func (s UsuarioService) Obtener(ctx context.Context, id int64) (models.Usuario, error) {
	u, err := s.UsuarioRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Usuario{}, domain.NotFoundError{Resource: "usuario"}
	}
	if err != nil {
		return models.Usuario{}, domain.InternalError{Err: err}
	}
	u.Password = ""
	return u, nil
}

type ListaUsuarios struct {
	Items      []models.Usuario `json:"items"`
	Pagination intdb.Pagination `json:"pagination"`
}

func (s UsuarioService) Listar(ctx context.Context, f repositories.UsuarioFiltro, page intdb.PageRequest) (ListaUsuarios, error) {
	items, total, err := s.UsuarioRepo.List(ctx, f, page)
	if err != nil {
		return ListaUsuarios{}, domain.InternalError{Err: err}
	}
	for i := range items {
		items[i].Password = ""
	}
	return ListaUsuarios{Items: items, Pagination: intdb.NewPagination(total, page)}, nil
}

type ActualizarUsuarioInput struct {
	Nombre   *string `json:"nombre"`
	Correo   *string `json:"correo"`
	Password *string `json:"password"`
	Estado   *string `json:"estado"`
}

func (s UsuarioService) Actualizar(ctx context.Context, id int64, in ActualizarUsuarioInput) (models.Usuario, error) {
	cambios := repositories.UsuarioCambios{Nombre: in.Nombre}

	if in.Correo != nil {
		correo := strings.TrimSpace(strings.ToLower(*in.Correo))
		if !correoInstitucional.MatchString(correo) {
			return models.Usuario{}, domain.ValidationError{Field: "correo", Msg: "debe ser un correo institucional"}
		}
		if existente, err := s.UsuarioRepo.GetByCorreo(ctx, correo); err == nil && existente.ID != id {
			return models.Usuario{}, domain.ValidationError{Field: "correo", Msg: "ya se encuentra registrado"}
		} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return models.Usuario{}, domain.InternalError{Err: err}
		}
		cambios.Correo = &correo
	}

	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return models.Usuario{}, domain.ValidationError{Field: "password", Msg: "debe tener al menos 6 caracteres"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.Usuario{}, domain.InternalError{Err: err}
		}
		hashed := string(hash)
		cambios.Password = &hashed
	}

	if in.Estado != nil {
		estado := strings.TrimSpace(strings.ToLower(*in.Estado))
		if estado != models.EstadoActivo && estado != models.EstadoInactivo {
			return models.Usuario{}, domain.ValidationError{Field: "estado", Msg: "debe ser activo o inactivo"}
		}
		cambios.Estado = &estado
	}

	u, err := s.UsuarioRepo.Update(ctx, id, cambios)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Usuario{}, domain.NotFoundError{Resource: "usuario"}
	}
	if err != nil {
		return models.Usuario{}, domain.InternalError{Err: err}
	}
	u.Password = ""
	utils.LogEvent(s.RequestID, "usuarios", "actualizar", "usuario_id="+formatID(id))
	return u, nil
}

// CambiarEstado alterna o fija el estado activo/inactivo de un usuario.
func (s UsuarioService) CambiarEstado(ctx context.Context, id int64, estado string) (models.Usuario, error) {
	estado = strings.TrimSpace(strings.ToLower(estado))
	if estado == "" {
		actual, err := s.Obtener(ctx, id)
		if err != nil {
			return models.Usuario{}, err
		}
		if actual.Estado == models.EstadoActivo {
			estado = models.EstadoInactivo
		} else {
			estado = models.EstadoActivo
		}
	}
	return s.Actualizar(ctx, id, ActualizarUsuarioInput{Estado: &estado})
}

// Eliminar borra un usuario. Un profesor con ofertas vigentes no puede
// eliminarse; primero deben cancelarse o finalizarse sus ofertas.
func (s UsuarioService) Eliminar(ctx context.Context, id int64) error {
	u, err := s.Obtener(ctx, id)
	if err != nil {
		return err
	}

	if u.Tipo == models.TipoProfesor {
		n, err := s.UsuarioRepo.OfertasNoCanceladasPorProfesor(ctx, id)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if n > 0 {
			return domain.ValidationError{Msg: "el profesor tiene ofertas vigentes; cancélelas antes de eliminarlo"}
		}
	}

	ok, err := s.UsuarioRepo.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "usuario"}
	}
	utils.LogEvent(s.RequestID, "usuarios", "eliminar", "usuario_id="+formatID(id))
	return nil
}

// CambiarPassword verifica la contraseña actual antes de reemplazarla.
func (s UsuarioService) CambiarPassword(ctx context.Context, id int64, actual, nueva string) error {
	u, err := s.UsuarioRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "usuario"}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(actual)) != nil {
		return domain.ValidationError{Msg: "la contraseña actual es incorrecta"}
	}
	if len(nueva) < minPasswordLen {
		return domain.ValidationError{Field: "password", Msg: "debe tener al menos 6 caracteres"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nueva), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	hashed := string(hash)
	if _, err := s.UsuarioRepo.Update(ctx, id, repositories.UsuarioCambios{Password: &hashed}); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "usuarios", "cambiar_password", "usuario_id="+formatID(id))
	return nil
}
