package repositories

import (
	"context"
	"database/sql"

	"pgat/internal/config"
	intdb "pgat/internal/db"
	"pgat/internal/domain/models"
)

// UsuarioRepository wraps DB access for the usuarios table.
type UsuarioRepository struct {
	DB *sql.DB
}

func (r UsuarioRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const usuarioCols = `id, nombre, correo, password, tipo, estado, ultimo_acceso, fecha_creacion, fecha_actualizacion`

func scanUsuario(row interface{ Scan(...any) error }) (models.Usuario, error) {
	var u models.Usuario
	err := row.Scan(
		&u.ID,
		&u.Nombre,
		&u.Correo,
		&u.Password,
		&u.Tipo,
		&u.Estado,
		&u.UltimoAcceso,
		&u.FechaCreacion,
		&u.FechaActualizacion,
	)
	return u, err
}

func (r UsuarioRepository) Create(ctx context.Context, u models.Usuario) (models.Usuario, error) {
	row := r.db().QueryRowContext(ctx, `
		INSERT INTO usuarios (nombre, correo, password, tipo, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+usuarioCols,
		u.Nombre, u.Correo, u.Password, u.Tipo, u.Estado)
	return scanUsuario(row)
}

func (r UsuarioRepository) GetByID(ctx context.Context, id int64) (models.Usuario, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+usuarioCols+` FROM usuarios WHERE id = $1`, id)
	return scanUsuario(row)
}

func (r UsuarioRepository) GetByCorreo(ctx context.Context, correo string) (models.Usuario, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+usuarioCols+` FROM usuarios WHERE correo = $1`, correo)
	return scanUsuario(row)
}

// UsuarioFiltro son los filtros opcionales del listado de usuarios. Los
// valores vacíos no participan del predicado.
type UsuarioFiltro struct {
	Tipo   string
	Estado string
	Search string
}

func (f UsuarioFiltro) predicate() *intdb.Predicate {
	return intdb.NewPredicate("").
		AddEq("tipo", f.Tipo).
		AddEq("estado", f.Estado).
		AddSearch(f.Search, "nombre", "correo")
}

// List devuelve una página de usuarios junto con el total independiente de
// la paginación. Ambas consultas comparten el mismo predicado compilado y se
// ejecutan en paralelo contra el pool.
func (r UsuarioRepository) List(ctx context.Context, f UsuarioFiltro, page intdb.PageRequest) ([]models.Usuario, int, error) {
	pred := f.predicate()
	query := `SELECT id, nombre, correo, tipo, estado, ultimo_acceso, fecha_creacion FROM usuarios ` +
		pred.Where(1) + intdb.PageSuffix("fecha_creacion", "id", pred.NumParams()+1)
	args := append(pred.Args(), page.Limit, page.Offset())

	items := []models.Usuario{}
	var total int
	err := intdb.Parallel(
		func() error {
			rows, err := r.db().QueryContext(ctx, query, args...)
			if err != nil {
				return err
			}
			defer rows.Close()
			for rows.Next() {
				var u models.Usuario
				if err := rows.Scan(&u.ID, &u.Nombre, &u.Correo, &u.Tipo, &u.Estado, &u.UltimoAcceso, &u.FechaCreacion); err != nil {
					return err
				}
				items = append(items, u)
			}
			return rows.Err()
		},
		func() error {
			t, err := intdb.CountWhere(ctx, r.db(), "usuarios", pred)
			total = t
			return err
		},
	)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UsuarioCambios son los campos actualizables; nil conserva el valor actual.
type UsuarioCambios struct {
	Nombre       *string
	Correo       *string
	Password     *string
	Estado       *string
	UltimoAcceso *sql.NullTime
}

func (r UsuarioRepository) Update(ctx context.Context, id int64, c UsuarioCambios) (models.Usuario, error) {
	var ultimo any
	if c.UltimoAcceso != nil {
		ultimo = *c.UltimoAcceso
	}
	row := r.db().QueryRowContext(ctx, `
		UPDATE usuarios SET
			nombre = COALESCE($2, nombre),
			correo = COALESCE($3, correo),
			password = COALESCE($4, password),
			estado = COALESCE($5, estado),
			ultimo_acceso = COALESCE($6, ultimo_acceso),
			fecha_actualizacion = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING `+usuarioCols,
		id, c.Nombre, c.Correo, c.Password, c.Estado, ultimo)
	return scanUsuario(row)
}

// TouchUltimoAcceso registra el acceso exitoso de un usuario.
func (r UsuarioRepository) TouchUltimoAcceso(ctx context.Context, id int64) error {
	_, err := r.db().ExecContext(ctx,
		`UPDATE usuarios SET ultimo_acceso = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

func (r UsuarioRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// OfertasNoCanceladasPorProfesor cuenta las ofertas vigentes de un profesor,
// usado como guarda antes de eliminar su usuario.
func (r UsuarioRepository) OfertasNoCanceladasPorProfesor(ctx context.Context, usuarioID int64) (int, error) {
	var total int
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ofertas o
		JOIN profesores p ON o.profesor_id = p.id
		WHERE p.usuario_id = $1 AND o.estado != $2`,
		usuarioID, models.OfertaCancelada).Scan(&total)
	return total, err
}
