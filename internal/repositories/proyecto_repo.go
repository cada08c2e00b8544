package repositories

import (
	"context"
	"database/sql"

	"pgat/internal/config"
	"pgat/internal/domain/models"
)

type ProyectoRepository struct {
	DB *sql.DB
}

func (r ProyectoRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const proyectoCols = `id, oferta_id, area_investigacion, objetivos, resultados_esperados`

func scanProyecto(row interface{ Scan(...any) error }) (models.ProyectoInvestigacion, error) {
	var p models.ProyectoInvestigacion
	err := row.Scan(&p.ID, &p.OfertaID, &p.AreaInvestigacion, &p.Objetivos, &p.ResultadosEsperados)
	return p, err
}

func (r ProyectoRepository) Create(ctx context.Context, p models.ProyectoInvestigacion) (models.ProyectoInvestigacion, error) {
	row := r.db().QueryRowContext(ctx, `
		INSERT INTO proyectos_investigacion (oferta_id, area_investigacion, objetivos, resultados_esperados)
		VALUES ($1, $2, $3, $4)
		RETURNING `+proyectoCols,
		p.OfertaID, p.AreaInvestigacion, p.Objetivos, p.ResultadosEsperados)
	return scanProyecto(row)
}

func (r ProyectoRepository) GetByID(ctx context.Context, id int64) (models.ProyectoInvestigacion, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+proyectoCols+` FROM proyectos_investigacion WHERE id = $1`, id)
	return scanProyecto(row)
}

func (r ProyectoRepository) GetByOferta(ctx context.Context, ofertaID int64) (models.ProyectoInvestigacion, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+proyectoCols+` FROM proyectos_investigacion WHERE oferta_id = $1`, ofertaID)
	return scanProyecto(row)
}

func (r ProyectoRepository) ListAll(ctx context.Context) ([]models.ProyectoInvestigacion, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT `+proyectoCols+` FROM proyectos_investigacion ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.ProyectoInvestigacion{}
	for rows.Next() {
		p, err := scanProyecto(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

type ProyectoCambios struct {
	AreaInvestigacion   *string
	Objetivos           *string
	ResultadosEsperados *string
}

func (r ProyectoRepository) Update(ctx context.Context, id int64, c ProyectoCambios) (models.ProyectoInvestigacion, error) {
	row := r.db().QueryRowContext(ctx, `
		UPDATE proyectos_investigacion SET
			area_investigacion = COALESCE($2, area_investigacion),
			objetivos = COALESCE($3, objetivos),
			resultados_esperados = COALESCE($4, resultados_esperados)
		WHERE id = $1
		RETURNING `+proyectoCols,
		id, c.AreaInvestigacion, c.Objetivos, c.ResultadosEsperados)
	return scanProyecto(row)
}

func (r ProyectoRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM proyectos_investigacion WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
