package repositories

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"pgat/internal/config"
	"pgat/internal/domain/models"
)

// PerfilRepository maneja los perfiles tipados (estudiante, profesor, escuela)
// ligados uno a uno con la tabla usuarios.
type PerfilRepository struct {
	DB *sql.DB
}

func (r PerfilRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const estudianteCols = `id, usuario_id, carnet, carrera, nivel, promedio, cursos_aprobados, habilidades`

func scanEstudiante(row interface{ Scan(...any) error }) (models.Estudiante, error) {
	var e models.Estudiante
	err := row.Scan(&e.ID, &e.UsuarioID, &e.Carnet, &e.Carrera, &e.Nivel, &e.Promedio,
		pq.Array(&e.CursosAprobados), pq.Array(&e.Habilidades))
	return e, err
}

func (r PerfilRepository) CreateEstudiante(ctx context.Context, e models.Estudiante) (models.Estudiante, error) {
	row := r.db().QueryRowContext(ctx, `
		INSERT INTO estudiantes (usuario_id, carnet, carrera, nivel, promedio, cursos_aprobados, habilidades)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+estudianteCols,
		e.UsuarioID, e.Carnet, e.Carrera, e.Nivel, e.Promedio,
		pq.Array(e.CursosAprobados), pq.Array(e.Habilidades))
	return scanEstudiante(row)
}

func (r PerfilRepository) GetEstudianteByUsuario(ctx context.Context, usuarioID int64) (models.Estudiante, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+estudianteCols+` FROM estudiantes WHERE usuario_id = $1`, usuarioID)
	return scanEstudiante(row)
}

type EstudianteCambios struct {
	Carrera         *string
	Nivel           *string
	Promedio        *float64
	CursosAprobados []string
	Habilidades     []string
}

func (r PerfilRepository) UpdateEstudiante(ctx context.Context, usuarioID int64, c EstudianteCambios) (models.Estudiante, error) {
	var cursos, habilidades any
	if c.CursosAprobados != nil {
		cursos = pq.Array(c.CursosAprobados)
	}
	if c.Habilidades != nil {
		habilidades = pq.Array(c.Habilidades)
	}
	row := r.db().QueryRowContext(ctx, `
		UPDATE estudiantes SET
			carrera = COALESCE($2, carrera),
			nivel = COALESCE($3, nivel),
			promedio = COALESCE($4, promedio),
			cursos_aprobados = COALESCE($5, cursos_aprobados),
			habilidades = COALESCE($6, habilidades)
		WHERE usuario_id = $1
		RETURNING `+estudianteCols,
		usuarioID, c.Carrera, c.Nivel, c.Promedio, cursos, habilidades)
	return scanEstudiante(row)
}

func (r PerfilRepository) DeleteEstudiante(ctx context.Context, usuarioID int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM estudiantes WHERE usuario_id = $1`, usuarioID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const profesorCols = `id, usuario_id, departamento, especialidad, telefono`

func scanProfesor(row interface{ Scan(...any) error }) (models.Profesor, error) {
	var p models.Profesor
	err := row.Scan(&p.ID, &p.UsuarioID, &p.Departamento, &p.Especialidad, &p.Telefono)
	return p, err
}

func (r PerfilRepository) CreateProfesor(ctx context.Context, p models.Profesor) (models.Profesor, error) {
	row := r.db().QueryRowContext(ctx, `
		INSERT INTO profesores (usuario_id, departamento, especialidad, telefono)
		VALUES ($1, $2, $3, $4)
		RETURNING `+profesorCols,
		p.UsuarioID, p.Departamento, p.Especialidad, p.Telefono)
	return scanProfesor(row)
}

func (r PerfilRepository) GetProfesorByUsuario(ctx context.Context, usuarioID int64) (models.Profesor, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+profesorCols+` FROM profesores WHERE usuario_id = $1`, usuarioID)
	return scanProfesor(row)
}

type ProfesorCambios struct {
	Departamento *string
	Especialidad *string
	Telefono     *string
}

func (r PerfilRepository) UpdateProfesor(ctx context.Context, usuarioID int64, c ProfesorCambios) (models.Profesor, error) {
	row := r.db().QueryRowContext(ctx, `
		UPDATE profesores SET
			departamento = COALESCE($2, departamento),
			especialidad = COALESCE($3, especialidad),
			telefono = COALESCE($4, telefono)
		WHERE usuario_id = $1
		RETURNING `+profesorCols,
		usuarioID, c.Departamento, c.Especialidad, c.Telefono)
	return scanProfesor(row)
}

func (r PerfilRepository) DeleteProfesor(ctx context.Context, usuarioID int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM profesores WHERE usuario_id = $1`, usuarioID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const escuelaCols = `id, usuario_id, facultad, responsable, telefono, descripcion`

func scanEscuela(row interface{ Scan(...any) error }) (models.Escuela, error) {
	var e models.Escuela
	err := row.Scan(&e.ID, &e.UsuarioID, &e.Facultad, &e.Responsable, &e.Telefono, &e.Descripcion)
	return e, err
}

func (r PerfilRepository) CreateEscuela(ctx context.Context, e models.Escuela) (models.Escuela, error) {
	row := r.db().QueryRowContext(ctx, `
		INSERT INTO escuelas (usuario_id, facultad, responsable, telefono, descripcion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+escuelaCols,
		e.UsuarioID, e.Facultad, e.Responsable, e.Telefono, e.Descripcion)
	return scanEscuela(row)
}

func (r PerfilRepository) GetEscuelaByUsuario(ctx context.Context, usuarioID int64) (models.Escuela, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+escuelaCols+` FROM escuelas WHERE usuario_id = $1`, usuarioID)
	return scanEscuela(row)
}

type EscuelaCambios struct {
	Facultad    *string
	Responsable *string
	Telefono    *string
	Descripcion *string
}

func (r PerfilRepository) UpdateEscuela(ctx context.Context, usuarioID int64, c EscuelaCambios) (models.Escuela, error) {
	row := r.db().QueryRowContext(ctx, `
		UPDATE escuelas SET
			facultad = COALESCE($2, facultad),
			responsable = COALESCE($3, responsable),
			telefono = COALESCE($4, telefono),
			descripcion = COALESCE($5, descripcion)
		WHERE usuario_id = $1
		RETURNING `+escuelaCols,
		usuarioID, c.Facultad, c.Responsable, c.Telefono, c.Descripcion)
	return scanEscuela(row)
}
