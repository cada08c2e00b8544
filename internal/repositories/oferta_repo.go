package repositories

import (
	"context"
	"database/sql"

	"pgat/internal/config"
	intdb "pgat/internal/db"
	"pgat/internal/domain/models"
)

// OfertaRepository wraps DB access for the ofertas table, including the
// moderation queue queries of the admin console.
type OfertaRepository struct {
	DB *sql.DB
}

func (r OfertaRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const ofertaCols = `id, nombre, tipo, descripcion, vacantes, horas_semana, fecha_inicio, fecha_fin,
	estado, escuela_id, profesor_id, promedio_minimo, cursos_requeridos, beneficio, motivo_rechazo,
	fecha_creacion, fecha_actualizacion`

func scanOferta(row interface{ Scan(...any) error }) (models.Oferta, error) {
	var o models.Oferta
	err := row.Scan(
		&o.ID, &o.Nombre, &o.Tipo, &o.Descripcion, &o.Vacantes, &o.HorasSemana,
		&o.FechaInicio, &o.FechaFin, &o.Estado, &o.EscuelaID, &o.ProfesorID,
		&o.PromedioMinimo, &o.CursosRequeridos, &o.Beneficio, &o.MotivoRechazo,
		&o.FechaCreacion, &o.FechaActualizacion,
	)
	return o, err
}

func (r OfertaRepository) Create(ctx context.Context, o models.Oferta) (models.Oferta, error) {
	row := r.db().QueryRowContext(ctx, `
		INSERT INTO ofertas (
			nombre, tipo, descripcion, vacantes, horas_semana, fecha_inicio, fecha_fin,
			estado, escuela_id, profesor_id, promedio_minimo, cursos_requeridos, beneficio
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+ofertaCols,
		o.Nombre, o.Tipo, o.Descripcion, o.Vacantes, o.HorasSemana, o.FechaInicio, o.FechaFin,
		o.Estado, o.EscuelaID, o.ProfesorID, o.PromedioMinimo, o.CursosRequeridos, o.Beneficio)
	return scanOferta(row)
}

func (r OfertaRepository) GetByID(ctx context.Context, id int64) (models.Oferta, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+ofertaCols+` FROM ofertas WHERE id = $1`, id)
	return scanOferta(row)
}

// GetDetalleByID resuelve además los nombres de escuela y profesor.
func (r OfertaRepository) GetDetalleByID(ctx context.Context, id int64) (models.OfertaDetalle, error) {
	var d models.OfertaDetalle
	row := r.db().QueryRowContext(ctx, `
		SELECT o.id, o.nombre, o.tipo, o.descripcion, o.vacantes, o.horas_semana,
		       o.fecha_inicio, o.fecha_fin, o.estado, o.escuela_id, o.profesor_id,
		       o.promedio_minimo, o.cursos_requeridos, o.beneficio, o.motivo_rechazo,
		       o.fecha_creacion, o.fecha_actualizacion,
		       COALESCE(e.nombre, 'N/A'), COALESCE(p.nombre, 'N/A')
		FROM ofertas o
		LEFT JOIN escuelas e ON o.escuela_id = e.id
		LEFT JOIN profesores p ON o.profesor_id = p.id
		WHERE o.id = $1`, id)
	err := row.Scan(
		&d.ID, &d.Nombre, &d.Tipo, &d.Descripcion, &d.Vacantes, &d.HorasSemana,
		&d.FechaInicio, &d.FechaFin, &d.Estado, &d.EscuelaID, &d.ProfesorID,
		&d.PromedioMinimo, &d.CursosRequeridos, &d.Beneficio, &d.MotivoRechazo,
		&d.FechaCreacion, &d.FechaActualizacion,
		&d.EscuelaNombre, &d.ProfesorNombre,
	)
	return d, err
}

// OfertaFiltro son los filtros opcionales de los listados de supervisión.
// EscuelaID y ProfesorID valen 0 cuando no aplican.
type OfertaFiltro struct {
	Tipo       string
	Estado     string
	EscuelaID  int64
	ProfesorID int64
	Search     string
}

func (f OfertaFiltro) predicate(base string) *intdb.Predicate {
	pred := intdb.NewPredicate(base).
		AddEq("o.tipo", f.Tipo).
		AddEq("o.estado", f.Estado)
	if f.EscuelaID > 0 {
		pred.Add(intdb.Eq("o.escuela_id", f.EscuelaID))
	}
	if f.ProfesorID > 0 {
		pred.Add(intdb.Eq("o.profesor_id", f.ProfesorID))
	}
	return pred.AddSearch(f.Search, "o.nombre")
}

const ofertaListFrom = `ofertas o
		LEFT JOIN escuelas e ON o.escuela_id = e.id
		LEFT JOIN profesores p ON o.profesor_id = p.id`

// List devuelve una página de ofertas con nombres resueltos más el total.
// Cuando soloPendientes es true el predicado base fija estado 'pendiente'
// (cola de moderación); el filtro Estado se ignora en ese caso.
func (r OfertaRepository) List(ctx context.Context, f OfertaFiltro, page intdb.PageRequest, soloPendientes bool) ([]models.OfertaDetalle, int, error) {
	base := ""
	if soloPendientes {
		base = "o.estado = 'pendiente'"
		f.Estado = ""
	}
	pred := f.predicate(base)

	query := `
		SELECT o.id, o.nombre, o.tipo, o.descripcion, o.vacantes, o.horas_semana,
		       o.fecha_inicio, o.fecha_fin, o.estado, o.escuela_id, o.profesor_id,
		       o.promedio_minimo, o.cursos_requeridos, o.beneficio, o.motivo_rechazo,
		       o.fecha_creacion, o.fecha_actualizacion,
		       COALESCE(e.nombre, 'N/A'), COALESCE(p.nombre, 'N/A')
		FROM ` + ofertaListFrom + `
		` + pred.Where(1) + intdb.PageSuffix("o.fecha_creacion", "o.id", pred.NumParams()+1)
	args := append(pred.Args(), page.Limit, page.Offset())

	items := []models.OfertaDetalle{}
	var total int
	err := intdb.Parallel(
		func() error {
			rows, err := r.db().QueryContext(ctx, query, args...)
			if err != nil {
				return err
			}
			defer rows.Close()
			for rows.Next() {
				var d models.OfertaDetalle
				if err := rows.Scan(
					&d.ID, &d.Nombre, &d.Tipo, &d.Descripcion, &d.Vacantes, &d.HorasSemana,
					&d.FechaInicio, &d.FechaFin, &d.Estado, &d.EscuelaID, &d.ProfesorID,
					&d.PromedioMinimo, &d.CursosRequeridos, &d.Beneficio, &d.MotivoRechazo,
					&d.FechaCreacion, &d.FechaActualizacion,
					&d.EscuelaNombre, &d.ProfesorNombre,
				); err != nil {
					return err
				}
				items = append(items, d)
			}
			return rows.Err()
		},
		func() error {
			t, err := intdb.CountWhere(ctx, r.db(), ofertaListFrom, pred)
			total = t
			return err
		},
	)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

type OfertaCambios struct {
	Nombre           *string
	Tipo             *string
	Descripcion      *string
	Vacantes         *int
	HorasSemana      *int
	FechaInicio      *string
	FechaFin         *string
	Estado           *string
	PromedioMinimo   *float64
	CursosRequeridos *string
	Beneficio        *string
}

func (r OfertaRepository) Update(ctx context.Context, id int64, c OfertaCambios) (models.Oferta, error) {
	row := r.db().QueryRowContext(ctx, `
		UPDATE ofertas SET
			nombre = COALESCE($2, nombre),
			tipo = COALESCE($3, tipo),
			descripcion = COALESCE($4, descripcion),
			vacantes = COALESCE($5, vacantes),
			horas_semana = COALESCE($6, horas_semana),
			fecha_inicio = COALESCE($7, fecha_inicio),
			fecha_fin = COALESCE($8, fecha_fin),
			estado = COALESCE($9, estado),
			promedio_minimo = COALESCE($10, promedio_minimo),
			cursos_requeridos = COALESCE($11, cursos_requeridos),
			beneficio = COALESCE($12, beneficio),
			fecha_actualizacion = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING `+ofertaCols,
		id, c.Nombre, c.Tipo, c.Descripcion, c.Vacantes, c.HorasSemana,
		c.FechaInicio, c.FechaFin, c.Estado, c.PromedioMinimo, c.CursosRequeridos, c.Beneficio)
	return scanOferta(row)
}

// Transition cambia el estado solo si la oferta está en el estado esperado.
// Devuelve sql.ErrNoRows cuando no hay fila en ese estado; el servicio
// distingue entre inexistente y conflicto.
func (r OfertaRepository) Transition(ctx context.Context, id int64, desde, hacia string, motivo *string) (models.Oferta, error) {
	row := r.db().QueryRowContext(ctx, `
		UPDATE ofertas
		SET estado = $3,
		    motivo_rechazo = COALESCE($4, motivo_rechazo),
		    fecha_actualizacion = CURRENT_TIMESTAMP
		WHERE id = $1 AND estado = $2
		RETURNING `+ofertaCols,
		id, desde, hacia, motivo)
	return scanOferta(row)
}

func (r OfertaRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM ofertas WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
