package repositories

import (
	"context"
	"database/sql"

	"pgat/internal/config"
	intdb "pgat/internal/db"
	"pgat/internal/domain/models"
)

type PostulacionRepository struct {
	DB *sql.DB
}

func (r PostulacionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const postulacionCols = `id, estudiante_id, oferta_id, fecha_postulacion, estado, comentario, motivacion, fecha_actualizacion`

func scanPostulacion(row interface{ Scan(...any) error }) (models.Postulacion, error) {
	var p models.Postulacion
	err := row.Scan(
		&p.ID, &p.EstudianteID, &p.OfertaID, &p.FechaPostulacion,
		&p.Estado, &p.Comentario, &p.Motivacion, &p.FechaActualizacion,
	)
	return p, err
}

func (r PostulacionRepository) Create(ctx context.Context, p models.Postulacion) (models.Postulacion, error) {
	row := r.db().QueryRowContext(ctx, `
		INSERT INTO postulaciones (estudiante_id, oferta_id, estado, comentario, motivacion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+postulacionCols,
		p.EstudianteID, p.OfertaID, p.Estado, p.Comentario, p.Motivacion)
	return scanPostulacion(row)
}

func (r PostulacionRepository) GetByID(ctx context.Context, id int64) (models.Postulacion, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+postulacionCols+` FROM postulaciones WHERE id = $1`, id)
	return scanPostulacion(row)
}

// PostulacionFiltro filtra el listado; EstudianteID/OfertaID en 0 no aplican.
type PostulacionFiltro struct {
	Estado       string
	EstudianteID int64
	OfertaID     int64
}

func (f PostulacionFiltro) predicate() *intdb.Predicate {
	pred := intdb.NewPredicate("").AddEq("estado", f.Estado)
	if f.EstudianteID > 0 {
		pred.Add(intdb.Eq("estudiante_id", f.EstudianteID))
	}
	if f.OfertaID > 0 {
		pred.Add(intdb.Eq("oferta_id", f.OfertaID))
	}
	return pred
}

func (r PostulacionRepository) List(ctx context.Context, f PostulacionFiltro, page intdb.PageRequest) ([]models.Postulacion, int, error) {
	pred := f.predicate()
	query := `SELECT ` + postulacionCols + ` FROM postulaciones ` +
		pred.Where(1) + intdb.PageSuffix("fecha_postulacion", "id", pred.NumParams()+1)
	args := append(pred.Args(), page.Limit, page.Offset())

	items := []models.Postulacion{}
	var total int
	err := intdb.Parallel(
		func() error {
			rows, err := r.db().QueryContext(ctx, query, args...)
			if err != nil {
				return err
			}
			defer rows.Close()
			for rows.Next() {
				p, err := scanPostulacion(rows)
				if err != nil {
					return err
				}
				items = append(items, p)
			}
			return rows.Err()
		},
		func() error {
			t, err := intdb.CountWhere(ctx, r.db(), "postulaciones", pred)
			total = t
			return err
		},
	)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

type PostulacionCambios struct {
	Estado     *string
	Comentario *string
	Motivacion *string
}

func (r PostulacionRepository) Update(ctx context.Context, id int64, c PostulacionCambios) (models.Postulacion, error) {
	row := r.db().QueryRowContext(ctx, `
		UPDATE postulaciones SET
			estado = COALESCE($2, estado),
			comentario = COALESCE($3, comentario),
			motivacion = COALESCE($4, motivacion),
			fecha_actualizacion = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING `+postulacionCols,
		id, c.Estado, c.Comentario, c.Motivacion)
	return scanPostulacion(row)
}

func (r PostulacionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM postulaciones WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
