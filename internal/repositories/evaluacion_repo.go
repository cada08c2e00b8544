package repositories

import (
	"context"
	"database/sql"

	"pgat/internal/config"
	"pgat/internal/domain/models"
)

type EvaluacionRepository struct {
	DB *sql.DB
}

func (r EvaluacionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r EvaluacionRepository) Create(ctx context.Context, e models.Evaluacion) (models.Evaluacion, error) {
	row := r.db().QueryRowContext(ctx, `
		INSERT INTO evaluaciones (postulacion_id, comentario, calificacion)
		VALUES ($1, $2, $3)
		RETURNING id, postulacion_id, fecha, comentario, calificacion`,
		e.PostulacionID, e.Comentario, e.Calificacion)
	err := row.Scan(&e.ID, &e.PostulacionID, &e.Fecha, &e.Comentario, &e.Calificacion)
	return e, err
}

func (r EvaluacionRepository) GetByID(ctx context.Context, id int64) (models.Evaluacion, error) {
	var e models.Evaluacion
	err := r.db().QueryRowContext(ctx,
		`SELECT id, postulacion_id, fecha, comentario, calificacion FROM evaluaciones WHERE id = $1`, id).
		Scan(&e.ID, &e.PostulacionID, &e.Fecha, &e.Comentario, &e.Calificacion)
	return e, err
}

func (r EvaluacionRepository) ListAll(ctx context.Context) ([]models.Evaluacion, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT id, postulacion_id, fecha, comentario, calificacion FROM evaluaciones ORDER BY fecha DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Evaluacion{}
	for rows.Next() {
		var e models.Evaluacion
		if err := rows.Scan(&e.ID, &e.PostulacionID, &e.Fecha, &e.Comentario, &e.Calificacion); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
