package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	intdb "pgat/internal/db"
)

func ofertaRow(id int64, estado string) *sqlmock.Rows {
	creado := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "nombre", "tipo", "descripcion", "vacantes", "horas_semana", "fecha_inicio", "fecha_fin",
		"estado", "escuela_id", "profesor_id", "promedio_minimo", "cursos_requeridos", "beneficio",
		"motivo_rechazo", "fecha_creacion", "fecha_actualizacion",
	}).AddRow(id, "Asistencia Cálculo", "Asistencia", "Apoyo al curso", 2, 10, "2025-03-01", "2025-06-30",
		estado, 1, 1, 80.0, nil, "Exoneración", nil, creado, nil)
}

func TestOfertaTransitionHappyPath(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE ofertas\s+SET estado = \$3`).
		WithArgs(int64(5), "pendiente", "activa", nil).
		WillReturnRows(ofertaRow(5, "activa"))

	repo := OfertaRepository{DB: db}
	o, err := repo.Transition(context.Background(), 5, "pendiente", "activa", nil)
	if err != nil {
		t.Fatalf("Transition error: %v", err)
	}
	if o.Estado != "activa" {
		t.Fatalf("estado = %q", o.Estado)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOfertaTransitionNoMatchingState(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// RETURNING with no matching row yields an empty result set, which the
	// row scan surfaces as sql.ErrNoRows.
	mock.ExpectQuery(`UPDATE ofertas\s+SET estado = \$3`).
		WithArgs(int64(5), "pendiente", "cancelada", "sin presupuesto").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := OfertaRepository{DB: db}
	motivo := "sin presupuesto"
	_, terr := repo.Transition(context.Background(), 5, "pendiente", "cancelada", &motivo)
	if !errors.Is(terr, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", terr)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOfertaListPendingQueue(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	creado := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{
		"id", "nombre", "tipo", "descripcion", "vacantes", "horas_semana", "fecha_inicio", "fecha_fin",
		"estado", "escuela_id", "profesor_id", "promedio_minimo", "cursos_requeridos", "beneficio",
		"motivo_rechazo", "fecha_creacion", "fecha_actualizacion", "escuela_nombre", "profesor_nombre",
	}
	mock.ExpectQuery(`FROM ofertas o\s+LEFT JOIN escuelas e ON o\.escuela_id = e\.id\s+LEFT JOIN profesores p ON o\.profesor_id = p\.id\s+WHERE o\.estado = 'pendiente' ORDER BY o\.fecha_creacion DESC, o\.id DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(3, "Tutoría Física", "Tutoría", "", 1, 6, "2025-03-01", "2025-06-30",
				"pendiente", 1, nil, 0.0, nil, "", nil, creado, nil, "Computación", "N/A"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total FROM ofertas o\s+LEFT JOIN escuelas e`).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(1))

	repo := OfertaRepository{DB: db}
	items, total, err := repo.List(context.Background(),
		OfertaFiltro{Estado: "activa"}, // ignored in queue mode
		intdb.PageRequest{Page: 1, Limit: 10}, true)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("total = %d items = %d", total, len(items))
	}
	if items[0].Estado != "pendiente" || items[0].EscuelaNombre != "Computación" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
