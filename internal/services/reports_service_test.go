package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"pgat/internal/repositories"
)

func relojFijo() time.Time {
	return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
}

func TestUsersReportPeriodoSemana(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	now := relojFijo()
	desde := now.AddDate(0, 0, -7)
	creado := now.AddDate(0, 0, -2)

	mock.ExpectQuery(`SELECT u\.id, u\.nombre, u\.correo, u\.tipo, u\.estado, u\.fecha_creacion, u\.ultimo_acceso`).
		WithArgs(desde, now, "estudiante").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "nombre", "correo", "tipo", "estado", "fecha_creacion", "ultimo_acceso",
			"carnet", "carrera", "departamento", "facultad",
		}).AddRow(7, "Ana Rojas", "ana@estudiante.tec.ac.cr", "estudiante", "activo", creado, nil,
			"2020123456", "Computación", nil, nil))

	// La estadística por tipo no aplica el filtro de tipo; la de estado no
	// aplica el de estado.
	mock.ExpectQuery(`SELECT tipo, COUNT\(\*\) AS total FROM usuarios WHERE 1=1 AND fecha_creacion >= \$1 AND fecha_creacion <= \$2 GROUP BY tipo`).
		WithArgs(desde, now).
		WillReturnRows(sqlmock.NewRows([]string{"tipo", "total"}).AddRow("estudiante", 1))
	mock.ExpectQuery(`SELECT estado, COUNT\(\*\) AS total FROM usuarios WHERE 1=1 AND fecha_creacion >= \$1 AND fecha_creacion <= \$2 AND tipo = \$3 GROUP BY estado`).
		WithArgs(desde, now, "estudiante").
		WillReturnRows(sqlmock.NewRows([]string{"estado", "total"}).AddRow("activo", 1))

	svc := ReportsService{
		ReportRepo: repositories.ReportRepository{DB: db},
		Now:        relojFijo,
	}
	rep, err := svc.UsersReport(context.Background(), UsersReportFilter{Period: "week", Tipo: "estudiante"})
	if err != nil {
		t.Fatalf("UsersReport error: %v", err)
	}

	if rep.Metadata.TotalRecords != 1 {
		t.Fatalf("totalRecords = %d", rep.Metadata.TotalRecords)
	}
	if rep.Metadata.Filters["period"] != "week" {
		t.Fatalf("period filter = %q", rep.Metadata.Filters["period"])
	}
	if rep.Metadata.Filters["startDate"] != desde.Format("2006-01-02") {
		t.Fatalf("startDate = %q", rep.Metadata.Filters["startDate"])
	}
	if rep.Metadata.Filters["estado"] != "Todos" {
		t.Fatalf("an absent filter should read Todos, got %q", rep.Metadata.Filters["estado"])
	}
	if len(rep.Statistics["byType"]) != 1 || len(rep.Statistics["byStatus"]) != 1 {
		t.Fatalf("statistics = %+v", rep.Statistics)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestActivityPeriodoCompleto(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	now := relojFijo()
	inicio := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	dia := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM usuarios\s+WHERE fecha_creacion BETWEEN \$1 AND \$2`).
		WithArgs(inicio, now).
		WillReturnRows(sqlmock.NewRows([]string{"fecha", "total", "estudiantes", "profesores", "escuelas", "administradores"}).
			AddRow(dia, 4, 3, 1, 0, 0))
	mock.ExpectQuery(`FROM ofertas\s+WHERE fecha_creacion BETWEEN \$1 AND \$2`).
		WithArgs(inicio, now).
		WillReturnRows(sqlmock.NewRows([]string{"fecha", "total", "asistencias", "tutorias", "proyectos"}).
			AddRow(dia, 2, 1, 1, 0))
	mock.ExpectQuery(`FROM postulaciones\s+WHERE fecha_postulacion BETWEEN \$1 AND \$2`).
		WithArgs(inicio, now).
		WillReturnRows(sqlmock.NewRows([]string{"fecha", "total", "aprobadas", "rechazadas", "pendientes", "canceladas"}).
			AddRow(dia, 5, 1, 0, 4, 0))
	mock.ExpectQuery(`EXTRACT\(HOUR FROM ultimo_acceso\)`).
		WithArgs(inicio, now).
		WillReturnRows(sqlmock.NewRows([]string{"hora", "total_accesos"}).AddRow(9, 7))

	svc := ReportsService{
		ReportRepo: repositories.ReportRepository{DB: db},
		Now:        relojFijo,
	}
	rep, err := svc.Activity(context.Background(), "all")
	if err != nil {
		t.Fatalf("Activity error: %v", err)
	}

	if rep.Metadata.StartDate != "2000-01-01" {
		t.Fatalf("an unbounded period should start at the epoch floor, got %q", rep.Metadata.StartDate)
	}
	if rep.Summary.TotalNewUsers != 4 || rep.Summary.TotalNewOffers != 2 || rep.Summary.TotalNewApplications != 5 {
		t.Fatalf("summary = %+v", rep.Summary)
	}
	if len(rep.DailyActivity.Users) != 1 || rep.DailyActivity.Users[0].Desglose["estudiantes"] != 3 {
		t.Fatalf("daily users = %+v", rep.DailyActivity.Users)
	}
	if len(rep.AccessPatterns.ByHour) != 1 || rep.AccessPatterns.ByHour[0].Hora != 9 {
		t.Fatalf("access patterns = %+v", rep.AccessPatterns.ByHour)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
