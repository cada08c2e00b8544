package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"pgat/internal/domain"
	"pgat/internal/repositories"
)

func ofertaMockRows(id int64, estado string) *sqlmock.Rows {
	creado := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "nombre", "tipo", "descripcion", "vacantes", "horas_semana", "fecha_inicio", "fecha_fin",
		"estado", "escuela_id", "profesor_id", "promedio_minimo", "cursos_requeridos", "beneficio",
		"motivo_rechazo", "fecha_creacion", "fecha_actualizacion",
	}).AddRow(id, "Asistencia Cálculo", "Asistencia", "", 2, 10, "2025-03-01", "2025-06-30",
		estado, 1, 1, 80.0, nil, "", nil, creado, nil)
}

func TestAprobarOferta(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE ofertas`).
		WithArgs(int64(5), "pendiente", "activa", nil).
		WillReturnRows(ofertaMockRows(5, "activa"))

	svc := OfertaService{OfertaRepo: repositories.OfertaRepository{DB: db}}
	o, err := svc.Aprobar(context.Background(), 5)
	if err != nil {
		t.Fatalf("Aprobar error: %v", err)
	}
	if o.Estado != "activa" {
		t.Fatalf("estado = %q", o.Estado)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAprobarOfertaYaResuelta(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE ofertas`).
		WithArgs(int64(5), "pendiente", "activa", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT .+ FROM ofertas WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(ofertaMockRows(5, "cancelada"))

	svc := OfertaService{OfertaRepo: repositories.OfertaRepository{DB: db}}
	_, err = svc.Aprobar(context.Background(), 5)
	var conflict domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if conflict.Current != "cancelada" {
		t.Fatalf("conflict should report the actual state, got %q", conflict.Current)
	}
}

func TestAprobarOfertaInexistente(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE ofertas`).
		WithArgs(int64(404), "pendiente", "activa", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT .+ FROM ofertas WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := OfertaService{OfertaRepo: repositories.OfertaRepository{DB: db}}
	_, err = svc.Aprobar(context.Background(), 404)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRechazarOfertaGuardaMotivo(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE ofertas`).
		WithArgs(int64(5), "pendiente", "cancelada", "sin presupuesto").
		WillReturnRows(ofertaMockRows(5, "cancelada"))

	svc := OfertaService{OfertaRepo: repositories.OfertaRepository{DB: db}}
	o, err := svc.Rechazar(context.Background(), 5, "  sin presupuesto  ")
	if err != nil {
		t.Fatalf("Rechazar error: %v", err)
	}
	if o.Estado != "cancelada" {
		t.Fatalf("estado = %q", o.Estado)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCrearOfertaValidaciones(t *testing.T) {
	svc := OfertaService{}
	cases := []CrearOfertaInput{
		{Nombre: "", Tipo: "Asistencia", Vacantes: 1},
		{Nombre: "X", Tipo: "Pasantía", Vacantes: 1},
		{Nombre: "X", Tipo: "Asistencia", Vacantes: 0},
	}
	for i, in := range cases {
		if _, err := svc.Crear(context.Background(), in); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}
