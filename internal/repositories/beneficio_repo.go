package repositories

import (
	"context"
	"database/sql"

	"pgat/internal/config"
	intdb "pgat/internal/db"
	"pgat/internal/domain/models"
)

type BeneficioRepository struct {
	DB *sql.DB
}

func (r BeneficioRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const beneficioCols = `id, postulacion_id, tipo, porcentaje_exoneracion, monto_por_hora,
	total_horas, monto_total, estado, fecha_creacion, fecha_actualizacion`

func scanBeneficio(row interface{ Scan(...any) error }) (models.BeneficioEconomico, error) {
	var b models.BeneficioEconomico
	err := row.Scan(&b.ID, &b.PostulacionID, &b.Tipo, &b.PorcentajeExoneracion, &b.MontoPorHora,
		&b.TotalHoras, &b.MontoTotal, &b.Estado, &b.FechaCreacion, &b.FechaActualizacion)
	return b, err
}

func (r BeneficioRepository) Create(ctx context.Context, b models.BeneficioEconomico) (models.BeneficioEconomico, error) {
	row := r.db().QueryRowContext(ctx, `
		INSERT INTO beneficios_economicos
			(postulacion_id, tipo, porcentaje_exoneracion, monto_por_hora, total_horas, monto_total, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+beneficioCols,
		b.PostulacionID, b.Tipo, b.PorcentajeExoneracion, b.MontoPorHora, b.TotalHoras, b.MontoTotal, b.Estado)
	return scanBeneficio(row)
}

func (r BeneficioRepository) GetByID(ctx context.Context, id int64) (models.BeneficioEconomico, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+beneficioCols+` FROM beneficios_economicos WHERE id = $1`, id)
	return scanBeneficio(row)
}

type BeneficioFiltro struct {
	Tipo          string
	Estado        string
	PostulacionID int64
}

func (f BeneficioFiltro) predicate(prefix string) *intdb.Predicate {
	pred := intdb.NewPredicate("").
		AddEq(prefix+"tipo", f.Tipo).
		AddEq(prefix+"estado", f.Estado)
	if f.PostulacionID > 0 {
		pred.Add(intdb.Eq(prefix+"postulacion_id", f.PostulacionID))
	}
	return pred
}

func (r BeneficioRepository) List(ctx context.Context, f BeneficioFiltro, page intdb.PageRequest) ([]models.BeneficioEconomico, int, error) {
	pred := f.predicate("")
	query := `SELECT ` + beneficioCols + ` FROM beneficios_economicos ` +
		pred.Where(1) + intdb.PageSuffix("fecha_creacion", "id", pred.NumParams()+1)
	args := append(pred.Args(), page.Limit, page.Offset())

	items := []models.BeneficioEconomico{}
	var total int
	err := intdb.Parallel(
		func() error {
			rows, err := r.db().QueryContext(ctx, query, args...)
			if err != nil {
				return err
			}
			defer rows.Close()
			for rows.Next() {
				b, err := scanBeneficio(rows)
				if err != nil {
					return err
				}
				items = append(items, b)
			}
			return rows.Err()
		},
		func() error {
			t, err := intdb.CountWhere(ctx, r.db(), "beneficios_economicos", pred)
			total = t
			return err
		},
	)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

type BeneficioCambios struct {
	Tipo                  *string
	PorcentajeExoneracion *float64
	MontoPorHora          *float64
	TotalHoras            *float64
	MontoTotal            *float64
	Estado                *string
}

func (r BeneficioRepository) Update(ctx context.Context, id int64, c BeneficioCambios) (models.BeneficioEconomico, error) {
	row := r.db().QueryRowContext(ctx, `
		UPDATE beneficios_economicos SET
			tipo = COALESCE($2, tipo),
			porcentaje_exoneracion = COALESCE($3, porcentaje_exoneracion),
			monto_por_hora = COALESCE($4, monto_por_hora),
			total_horas = COALESCE($5, total_horas),
			monto_total = COALESCE($6, monto_total),
			estado = COALESCE($7, estado),
			fecha_actualizacion = NOW()
		WHERE id = $1
		RETURNING `+beneficioCols,
		id, c.Tipo, c.PorcentajeExoneracion, c.MontoPorHora, c.TotalHoras, c.MontoTotal, c.Estado)
	return scanBeneficio(row)
}

func (r BeneficioRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM beneficios_economicos WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
