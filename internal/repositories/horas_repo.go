package repositories

import (
	"context"
	"database/sql"

	"pgat/internal/config"
	intdb "pgat/internal/db"
	"pgat/internal/domain/models"
)

type RegistroHorasRepository struct {
	DB *sql.DB
}

func (r RegistroHorasRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const horasCols = `id, postulacion_id, fecha, horas, descripcion, estado, fecha_registro`

func scanRegistroHoras(row interface{ Scan(...any) error }) (models.RegistroHoras, error) {
	var h models.RegistroHoras
	err := row.Scan(&h.ID, &h.PostulacionID, &h.Fecha, &h.Horas, &h.Descripcion, &h.Estado, &h.FechaRegistro)
	return h, err
}

func (r RegistroHorasRepository) Create(ctx context.Context, h models.RegistroHoras) (models.RegistroHoras, error) {
	row := r.db().QueryRowContext(ctx, `
		INSERT INTO registro_horas (postulacion_id, fecha, horas, descripcion, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+horasCols,
		h.PostulacionID, h.Fecha, h.Horas, h.Descripcion, h.Estado)
	return scanRegistroHoras(row)
}

func (r RegistroHorasRepository) GetByID(ctx context.Context, id int64) (models.RegistroHoras, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+horasCols+` FROM registro_horas WHERE id = $1`, id)
	return scanRegistroHoras(row)
}

type RegistroHorasFiltro struct {
	Estado        string
	PostulacionID int64
}

func (r RegistroHorasRepository) List(ctx context.Context, f RegistroHorasFiltro, page intdb.PageRequest) ([]models.RegistroHoras, int, error) {
	pred := intdb.NewPredicate("").AddEq("estado", f.Estado)
	if f.PostulacionID > 0 {
		pred.Add(intdb.Eq("postulacion_id", f.PostulacionID))
	}
	query := `SELECT ` + horasCols + ` FROM registro_horas ` +
		pred.Where(1) + intdb.PageSuffix("fecha_registro", "id", pred.NumParams()+1)
	args := append(pred.Args(), page.Limit, page.Offset())

	items := []models.RegistroHoras{}
	var total int
	err := intdb.Parallel(
		func() error {
			rows, err := r.db().QueryContext(ctx, query, args...)
			if err != nil {
				return err
			}
			defer rows.Close()
			for rows.Next() {
				h, err := scanRegistroHoras(rows)
				if err != nil {
					return err
				}
				items = append(items, h)
			}
			return rows.Err()
		},
		func() error {
			t, err := intdb.CountWhere(ctx, r.db(), "registro_horas", pred)
			total = t
			return err
		},
	)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

type RegistroHorasCambios struct {
	Estado      *string
	Descripcion *string
}

func (r RegistroHorasRepository) Update(ctx context.Context, id int64, c RegistroHorasCambios) (models.RegistroHoras, error) {
	row := r.db().QueryRowContext(ctx, `
		UPDATE registro_horas SET
			estado = COALESCE($2, estado),
			descripcion = COALESCE($3, descripcion)
		WHERE id = $1
		RETURNING `+horasCols,
		id, c.Estado, c.Descripcion)
	return scanRegistroHoras(row)
}

func (r RegistroHorasRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM registro_horas WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
